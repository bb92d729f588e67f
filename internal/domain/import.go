package domain

import "time"

// ImportStats holds statistics about an import run.
type ImportStats struct {
	Kind      Kind
	Language  string
	Fetched   int
	New       int
	Updated   int
	Skipped   int
	Errors    int
	Published int
	Duration  time.Duration
}

// ImportState tracks import progress for one kind and language.
type ImportState struct {
	ID             int64     `db:"id"`
	Kind           Kind      `db:"kind"`
	Language       string    `db:"language"`
	LastImportedAt time.Time `db:"last_imported_at"`
	TotalImported  int64     `db:"total_imported"`
}
