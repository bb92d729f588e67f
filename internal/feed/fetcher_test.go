package feed

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"

	"devotional/internal/config"
	"devotional/internal/domain"
	"devotional/internal/metrics"
)

type staticURLs map[string]string

func (s staticURLs) URLFor(kind, language string) string {
	if u, ok := s[kind+"/"+language]; ok {
		return u
	}
	return s[kind]
}

type FetcherTestSuite struct {
	suite.Suite
	logger  *slog.Logger
	metrics *metrics.Metrics
	calls   atomic.Int32
}

func (s *FetcherTestSuite) SetupTest() {
	s.logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	s.metrics = metrics.New(prometheus.NewRegistry())
	s.calls.Store(0)
}

func TestFetcherTestSuite(t *testing.T) {
	suite.Run(t, new(FetcherTestSuite))
}

func (s *FetcherTestSuite) serve(status int, body string) *httptest.Server {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.calls.Add(1)
		s.Equal("application/json", r.Header.Get("Accept"))
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	s.T().Cleanup(srv.Close)
	return srv
}

func (s *FetcherTestSuite) newFetcher(urls URLResolver, attempts int) *Fetcher {
	f := New(Config{
		Timeout:        time.Second,
		UserAgent:      "test",
		MaxAttempts:    attempts,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     time.Millisecond,
	}, urls, s.logger, s.metrics)
	f.now = func() time.Time { return fetchedAt }
	return f
}

func (s *FetcherTestSuite) TestFetch_NoURLConfigured() {
	f := s.newFetcher(staticURLs{}, 1)

	records := f.Fetch(context.Background(), domain.KindPrayers, "en")

	s.NotNil(records)
	s.Empty(records)
}

func (s *FetcherTestSuite) TestFetch_TopLevelArray() {
	srv := s.serve(http.StatusOK, `[
		{"title": "Our Father", "content": "Our Father, who art in heaven", "tags": ["Daily"]},
		{"title": "", "content": "dropped"},
		"not an object",
		{"title": "Hail Mary", "content": "Hail Mary, full of grace", "updatedAt": "2026-01-01T00:00:00Z"}
	]`)
	f := s.newFetcher(staticURLs{"prayers": srv.URL}, 1)

	records := f.Fetch(context.Background(), domain.KindPrayers, "en")

	s.Require().Len(records, 2)
	s.Equal("external-prayers-en-0", records[0].ID)
	s.Equal("our-father", records[0].Slug)
	s.Equal([]string{"daily"}, records[0].Tags)
	s.Equal(fetchedAt, records[0].UpdatedAt)
	s.Equal("external-prayers-en-3", records[1].ID)
	s.Equal(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), records[1].UpdatedAt)
	s.Equal(2.0, testutil.ToFloat64(s.metrics.FeedDropped.WithLabelValues("prayers")))
}

func (s *FetcherTestSuite) TestFetch_ItemsObject() {
	srv := s.serve(http.StatusOK, `{"items": [{"name": "San José", "biography": "Esposo de María"}]}`)
	f := s.newFetcher(staticURLs{"saints/es": srv.URL}, 1)

	records := f.Fetch(context.Background(), domain.KindSaints, "es")

	s.Require().Len(records, 1)
	s.Equal("San José", records[0].Name)
	s.Equal("es", records[0].Language)
}

func (s *FetcherTestSuite) TestFetch_ServerErrorYieldsEmpty() {
	srv := s.serve(http.StatusInternalServerError, `oops`)
	f := s.newFetcher(staticURLs{"prayers": srv.URL}, 1)

	records := f.Fetch(context.Background(), domain.KindPrayers, "es")

	s.NotNil(records)
	s.Empty(records)
	s.Equal(int32(1), s.calls.Load())
	s.Equal(1.0, testutil.ToFloat64(s.metrics.FeedFailures.WithLabelValues("prayers", "es")))
}

func (s *FetcherTestSuite) TestFetch_RetriesUpToMaxAttempts() {
	srv := s.serve(http.StatusBadGateway, ``)
	f := s.newFetcher(staticURLs{"prayers": srv.URL}, 3)

	records := f.Fetch(context.Background(), domain.KindPrayers, "en")

	s.Empty(records)
	s.Equal(int32(3), s.calls.Load())
}

func (s *FetcherTestSuite) TestFetch_MalformedBody() {
	for _, body := range []string{`{"items": [`, `{"data": []}`, `42`} {
		srv := s.serve(http.StatusOK, body)
		f := s.newFetcher(staticURLs{"apparitions": srv.URL}, 1)

		records := f.Fetch(context.Background(), domain.KindApparitions, "en")
		s.Empty(records, body)
	}
}

func (s *FetcherTestSuite) TestFetch_Unreachable() {
	srv := s.serve(http.StatusOK, `[]`)
	url := srv.URL
	srv.Close()

	f := s.newFetcher(staticURLs{"prayers": url}, 1)

	s.Empty(f.Fetch(context.Background(), domain.KindPrayers, "en"))
}

func (s *FetcherTestSuite) TestFetch_ShippedConfigRequestsOnce() {
	data, err := os.ReadFile(filepath.Join("..", "..", "config.yaml"))
	s.Require().NoError(err)
	cfg, err := config.Parse(data)
	s.Require().NoError(err)

	srv := s.serve(http.StatusInternalServerError, "boom")
	cfg.Feeds.Sources["prayers"] = config.FeedSource{URL: srv.URL}

	f := New(Config{
		Timeout:        cfg.Feeds.Timeout,
		UserAgent:      cfg.Feeds.UserAgent,
		MaxAttempts:    cfg.Feeds.Retry.MaxAttempts,
		InitialBackoff: cfg.Feeds.Retry.InitialBackoff,
		MaxBackoff:     cfg.Feeds.Retry.MaxBackoff,
	}, cfg.Feeds, s.logger, s.metrics)

	start := time.Now()
	records := f.Fetch(context.Background(), domain.KindPrayers, "es")

	s.Empty(records)
	s.Equal(int32(1), s.calls.Load())
	s.Less(time.Since(start), cfg.Feeds.Retry.InitialBackoff)
}
