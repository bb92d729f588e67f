// Package metrics exposes Prometheus collectors for content resolution and search.
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "devotional"

type Metrics struct {
	CacheLookups   *prometheus.CounterVec
	CacheLoads     *prometheus.CounterVec
	FeedFailures   *prometheus.CounterVec
	FeedDropped    *prometheus.CounterVec
	Searches       *prometheus.CounterVec
	SearchDuration *prometheus.HistogramVec
	HTTPRequests   *prometheus.CounterVec
	HTTPDuration   *prometheus.HistogramVec

	gatherer prometheus.Gatherer
}

// New registers all collectors with reg.
func New(reg *prometheus.Registry) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		CacheLookups: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "source_cache_lookups_total",
			Help:      "Source cache lookups by kind, language and result (hit or miss).",
		}, []string{"kind", "language", "result"}),
		CacheLoads: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "source_cache_loads_total",
			Help:      "Source cache populations by kind, language and origin.",
		}, []string{"kind", "language", "origin"}),
		FeedFailures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "external_feed_failures_total",
			Help:      "External feed fetches that failed and fell back.",
		}, []string{"kind", "language"}),
		FeedDropped: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "external_feed_dropped_entries_total",
			Help:      "External feed entries dropped during normalization.",
		}, []string{"kind"}),
		Searches: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_total",
			Help:      "Local searches by kind, mode and outcome.",
		}, []string{"kind", "mode", "outcome"}),
		SearchDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_duration_seconds",
			Help:      "Local search latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"kind", "mode"}),
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		gatherer: reg,
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

func (m *Metrics) CacheLookup(kind, language string, hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheLookups.WithLabelValues(kind, language, result).Inc()
}

func (m *Metrics) CacheLoad(kind, language, origin string) {
	if m == nil {
		return
	}
	m.CacheLoads.WithLabelValues(kind, language, origin).Inc()
}

func (m *Metrics) FeedFailure(kind, language string) {
	if m == nil {
		return
	}
	m.FeedFailures.WithLabelValues(kind, language).Inc()
}

func (m *Metrics) FeedEntryDropped(kind string) {
	if m == nil {
		return
	}
	m.FeedDropped.WithLabelValues(kind).Inc()
}

func (m *Metrics) Search(kind, mode string, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.Searches.WithLabelValues(kind, mode, outcome).Inc()
	m.SearchDuration.WithLabelValues(kind, mode).Observe(elapsed.Seconds())
}

func (m *Metrics) HTTPRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
