// Package cache holds the per-process fallback content for each kind and
// language: the external feed when it yields records, the built-in library
// otherwise.
package cache

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"devotional/internal/domain"
	"devotional/internal/metrics"
)

// Fetcher loads an external feed. It reports failure as an empty slice.
type Fetcher interface {
	Fetch(ctx context.Context, kind domain.Kind, language string) []domain.Record
}

// Library serves the built-in records.
type Library interface {
	BuiltIn(kind domain.Kind, language string) []domain.Record
}

// SourceCache resolves and memoizes fallback records. Entries are never
// evicted or refreshed for the lifetime of the cache.
type SourceCache struct {
	fetcher Fetcher
	library Library
	logger  *slog.Logger
	metrics *metrics.Metrics

	mu      sync.RWMutex
	entries map[string][]domain.Record
	group   singleflight.Group
}

// New creates an empty cache.
func New(fetcher Fetcher, library Library, logger *slog.Logger, m *metrics.Metrics) *SourceCache {
	return &SourceCache{
		fetcher: fetcher,
		library: library,
		logger:  logger.With("component", "source_cache"),
		metrics: m,
		entries: make(map[string][]domain.Record),
	}
}

func key(kind domain.Kind, language string) string {
	return kind.String() + "/" + language
}

// GetOrLoad returns the fallback records for kind and language, loading them
// on first use. Concurrent first calls for the same key share one load.
// The returned slice is shared and must not be modified.
func (c *SourceCache) GetOrLoad(ctx context.Context, kind domain.Kind, language string) []domain.Record {
	k := key(kind, language)

	c.mu.RLock()
	records, ok := c.entries[k]
	c.mu.RUnlock()
	if ok {
		c.metrics.CacheLookup(kind.String(), language, true)
		return records
	}
	c.metrics.CacheLookup(kind.String(), language, false)

	v, _, _ := c.group.Do(k, func() (any, error) {
		c.mu.RLock()
		records, ok := c.entries[k]
		c.mu.RUnlock()
		if ok {
			return records, nil
		}

		records = c.load(context.WithoutCancel(ctx), kind, language)

		c.mu.Lock()
		c.entries[k] = records
		c.mu.Unlock()
		return records, nil
	})

	return v.([]domain.Record)
}

// load prefers the external feed and falls back to built-ins when it is empty.
func (c *SourceCache) load(ctx context.Context, kind domain.Kind, language string) []domain.Record {
	origin := domain.OriginExternal
	records := c.fetcher.Fetch(ctx, kind, language)
	if len(records) == 0 {
		origin = domain.OriginBuiltin
		records = c.library.BuiltIn(kind, language)
	}
	if records == nil {
		records = []domain.Record{}
	}

	c.metrics.CacheLoad(kind.String(), language, string(origin))
	c.logger.Info("source cache populated",
		"kind", kind,
		"language", language,
		"origin", origin,
		"records", len(records),
	)

	return records
}

// Warm populates every kind and language pair concurrently.
func (c *SourceCache) Warm(ctx context.Context, kinds []domain.Kind, languages []string) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	for _, kind := range kinds {
		for _, lang := range languages {
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				c.GetOrLoad(ctx, kind, lang)
				return nil
			})
		}
	}

	return g.Wait()
}

// Len reports the number of populated keys.
func (c *SourceCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
