package service

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"devotional/internal/config"
	"devotional/internal/domain"
)

// Aggregator lists content from the database, falling back to the source
// cache when the database has nothing for a kind and language.
type Aggregator struct {
	store  ContentStore
	cache  SourceCache
	logger *slog.Logger
	config config.ContentConfig
}

func NewAggregator(store ContentStore, cache SourceCache, logger *slog.Logger, cfg config.ContentConfig) *Aggregator {
	return &Aggregator{
		store:  store,
		cache:  cache,
		logger: logger.With("component", "aggregator"),
		config: cfg,
	}
}

// ClampTake maps a requested page size onto [1, MaxPageSize]; zero selects
// the default page size.
func (a *Aggregator) ClampTake(take int) int {
	if take == 0 {
		take = a.config.DefaultPageSize
	}
	return min(max(take, 1), a.config.MaxPageSize)
}

// List returns one page of kind in language. A non-empty database page is
// returned as is; otherwise the whole cached fallback is returned without a
// cursor. Database and fallback records are never mixed. The fallback items
// are shared with the cache and must not be modified.
func (a *Aggregator) List(ctx context.Context, kind domain.Kind, language string, take int, cursor string) (*domain.Page, error) {
	take = a.ClampTake(take)

	var (
		rows     []domain.Record
		hasMore  bool
		fallback []domain.Record
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rows, hasMore, err = a.store.List(gctx, kind, language, take, cursor)
		if err != nil {
			return fmt.Errorf("list %s from database: %w", kind, err)
		}
		return nil
	})
	if cursor == "" {
		g.Go(func() error {
			fallback = a.cache.GetOrLoad(gctx, kind, language)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(rows) > 0 {
		page := &domain.Page{Items: rows}
		if hasMore {
			next := rows[len(rows)-1].ID
			page.NextCursor = &next
		}
		return page, nil
	}

	// Past the last database row there is nothing more to page through.
	if cursor != "" {
		return &domain.Page{Items: []domain.Record{}}, nil
	}

	a.logger.Debug("database empty, serving fallback",
		"kind", kind,
		"language", language,
		"records", len(fallback),
	)

	if fallback == nil {
		fallback = []domain.Record{}
	}
	return &domain.Page{Items: fallback}, nil
}

// Get returns the record of kind with slug, preferring the database over the
// cached fallback.
func (a *Aggregator) Get(ctx context.Context, kind domain.Kind, language, slug string) (*domain.Record, error) {
	record, err := a.store.GetBySlug(ctx, kind, language, slug)
	if err != nil {
		return nil, fmt.Errorf("get %s from database: %w", kind, err)
	}
	if record != nil {
		return record, nil
	}

	for _, r := range a.cache.GetOrLoad(ctx, kind, language) {
		if r.Slug == slug {
			return &r, nil
		}
	}

	return nil, ErrNotFound
}
