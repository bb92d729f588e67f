package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"devotional/internal/domain"
)

type ImportStateStore struct {
	db *sqlx.DB
}

func NewImportStateStore(db *sqlx.DB) *ImportStateStore {
	return &ImportStateStore{db: db}
}

// Get returns the state for kind and language; a pair that was never
// imported yields a zero state.
func (s *ImportStateStore) Get(ctx context.Context, kind domain.Kind, language string) (*domain.ImportState, error) {
	var state domain.ImportState
	query := `
		SELECT id, kind, language, last_imported_at, total_imported
		FROM import_state
		WHERE kind = $1 AND language = $2`

	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &state, query, kind.String(), language)
	if errors.Is(err, sql.ErrNoRows) {
		return &domain.ImportState{Kind: kind, Language: language}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get import state: %w", err)
	}
	return &state, nil
}

func (s *ImportStateStore) Update(ctx context.Context, state *domain.ImportState) error {
	query := `
		INSERT INTO import_state (kind, language, last_imported_at, total_imported)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (kind, language) DO UPDATE SET
			last_imported_at = EXCLUDED.last_imported_at,
			total_imported = EXCLUDED.total_imported`

	_, err := GetExecutor(ctx, s.db).ExecContext(ctx, query,
		state.Kind.String(),
		state.Language,
		state.LastImportedAt,
		state.TotalImported,
	)
	if err != nil {
		return fmt.Errorf("update import state: %w", err)
	}
	return nil
}
