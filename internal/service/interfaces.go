package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"time"

	"devotional/internal/domain"
)

type ContentStore interface {
	List(ctx context.Context, kind domain.Kind, language string, take int, cursor string) ([]domain.Record, bool, error)
	Search(ctx context.Context, kind domain.Kind, language, query string, limit int) ([]domain.Record, error)
	GetBySlug(ctx context.Context, kind domain.Kind, language, slug string) (*domain.Record, error)
}

type ImportStore interface {
	Upsert(ctx context.Context, record *domain.Record) (string, error)
	GetExistingBySlugs(ctx context.Context, kind domain.Kind, language string, slugs []string) (map[string]time.Time, error)
}

type ImportStateStore interface {
	Get(ctx context.Context, kind domain.Kind, language string) (*domain.ImportState, error)
	Update(ctx context.Context, state *domain.ImportState) error
}

type SourceCache interface {
	GetOrLoad(ctx context.Context, kind domain.Kind, language string) []domain.Record
}

type Fetcher interface {
	Fetch(ctx context.Context, kind domain.Kind, language string) []domain.Record
}

type Library interface {
	BuiltIn(kind domain.Kind, language string) []domain.Record
}

type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type Publisher interface {
	Publish(ctx context.Context, record *domain.Record, isNew bool) error
	Close() error
}
