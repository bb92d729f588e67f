package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"devotional/internal/domain"
)

// Importer copies the external-or-built-in content of a kind and language
// into the database.
type Importer struct {
	fetcher   Fetcher
	library   Library
	records   ImportStore
	state     ImportStateStore
	txManager TransactionManager
	publisher Publisher
	logger    *slog.Logger
}

// NewImporter creates an importer. publisher may be nil.
func NewImporter(
	fetcher Fetcher,
	library Library,
	records ImportStore,
	state ImportStateStore,
	txManager TransactionManager,
	publisher Publisher,
	logger *slog.Logger,
) *Importer {
	return &Importer{
		fetcher:   fetcher,
		library:   library,
		records:   records,
		state:     state,
		txManager: txManager,
		publisher: publisher,
		logger:    logger.With("component", "importer"),
	}
}

func (s *Importer) Import(ctx context.Context, kind domain.Kind, language string) (*domain.ImportStats, error) {
	startTime := time.Now()
	logger := s.logger.With("kind", kind, "language", language)
	logger.Info("starting import")

	records := s.load(ctx, kind, language)
	logger.Info("loaded records", "count", len(records))

	existing, err := s.existing(ctx, kind, language, records)
	if err != nil {
		return nil, fmt.Errorf("filter for import: %w", err)
	}

	toImport := filterForImport(records, existing)
	logger.Info("records to import", "count", len(toImport))

	stats := &domain.ImportStats{
		Kind:     kind,
		Language: language,
		Fetched:  len(records),
		Skipped:  len(records) - len(toImport),
	}

	for i := range toImport {
		record := &toImport[i]
		_, isUpdate := existing[record.Slug]
		isNew := !isUpdate

		if err := s.saveRecord(ctx, record); err != nil {
			logger.Warn("failed to save record", "slug", record.Slug, "error", err)
			stats.Errors++
			continue
		}

		if s.publisher != nil {
			if err := s.publisher.Publish(ctx, record, isNew); err != nil {
				logger.Warn("failed to publish record", "slug", record.Slug, "error", err)
				stats.Errors++
			} else {
				stats.Published++
			}
		}

		if isNew {
			stats.New++
		} else {
			stats.Updated++
		}
	}

	if err := s.updateState(ctx, kind, language, stats); err != nil {
		return stats, fmt.Errorf("update import state: %w", err)
	}

	stats.Duration = time.Since(startTime)

	logger.Info("import completed",
		"new", stats.New,
		"updated", stats.Updated,
		"skipped", stats.Skipped,
		"errors", stats.Errors,
		"published", stats.Published,
		"duration", stats.Duration,
	)

	return stats, nil
}

// ImportAll imports every kind and language pair, continuing past failures.
func (s *Importer) ImportAll(ctx context.Context, kinds []domain.Kind, languages []string) ([]*domain.ImportStats, error) {
	var (
		all  []*domain.ImportStats
		errs []error
	)

	for _, kind := range kinds {
		for _, lang := range languages {
			if err := ctx.Err(); err != nil {
				return all, errors.Join(append(errs, err)...)
			}

			stats, err := s.Import(ctx, kind, lang)
			if err != nil {
				errs = append(errs, fmt.Errorf("import %s/%s: %w", kind, lang, err))
			}
			if stats != nil {
				all = append(all, stats)
			}
		}
	}

	return all, errors.Join(errs...)
}

// load applies the same precedence as the source cache without caching.
func (s *Importer) load(ctx context.Context, kind domain.Kind, language string) []domain.Record {
	if records := s.fetcher.Fetch(ctx, kind, language); len(records) > 0 {
		return records
	}
	return s.library.BuiltIn(kind, language)
}

func (s *Importer) existing(ctx context.Context, kind domain.Kind, language string, records []domain.Record) (map[string]time.Time, error) {
	if len(records) == 0 {
		return map[string]time.Time{}, nil
	}

	slugs := make([]string, len(records))
	for i, r := range records {
		slugs[i] = r.Slug
	}
	return s.records.GetExistingBySlugs(ctx, kind, language, slugs)
}

// filterForImport keeps records that are absent or newer than the stored
// copy. Later duplicates of a slug are dropped.
func filterForImport(records []domain.Record, existing map[string]time.Time) []domain.Record {
	seen := make(map[string]struct{}, len(records))
	var toImport []domain.Record
	for _, r := range records {
		if _, dup := seen[r.Slug]; dup {
			continue
		}
		seen[r.Slug] = struct{}{}

		storedAt, exists := existing[r.Slug]
		if !exists || r.UpdatedAt.After(storedAt) {
			toImport = append(toImport, r)
		}
	}
	return toImport
}

func (s *Importer) saveRecord(ctx context.Context, record *domain.Record) error {
	return s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if _, err := s.records.Upsert(txCtx, record); err != nil {
			return fmt.Errorf("upsert record: %w", err)
		}
		return nil
	})
}

func (s *Importer) updateState(ctx context.Context, kind domain.Kind, language string, stats *domain.ImportStats) error {
	state, err := s.state.Get(ctx, kind, language)
	if err != nil {
		return err
	}

	state.Kind = kind
	state.Language = language
	state.LastImportedAt = time.Now()
	state.TotalImported += int64(stats.New + stats.Updated)

	return s.state.Update(ctx, state)
}
