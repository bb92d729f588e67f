package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"devotional/internal/domain"
)

// table maps a kind onto its postgres table.
type table struct {
	kind      domain.Kind
	name      string
	titleCol  string
	bodyCol   string
	extraCols []string
}

var tables = map[domain.Kind]table{
	domain.KindPrayers: {
		kind: domain.KindPrayers, name: "prayers",
		titleCol: "title", bodyCol: "content",
		extraCols: []string{"category"},
	},
	domain.KindSaints: {
		kind: domain.KindSaints, name: "saints",
		titleCol: "name", bodyCol: "biography",
		extraCols: []string{"feast_day", "patronages"},
	},
	domain.KindApparitions: {
		kind: domain.KindApparitions, name: "apparitions",
		titleCol: "title", bodyCol: "story",
		extraCols: []string{"location", "approved_year"},
	},
}

func tableFor(kind domain.Kind) (table, error) {
	t, ok := tables[kind]
	if !ok {
		return table{}, fmt.Errorf("unknown kind %q", kind)
	}
	return t, nil
}

func (t table) selectColumns() string {
	cols := []string{
		"id", "language", "slug",
		t.titleCol + " AS title",
		t.bodyCol + " AS body",
		"tags", "is_active", "source", "source_attribution", "updated_at",
	}
	return strings.Join(append(cols, t.extraCols...), ", ")
}

func (t table) writeColumns() []string {
	cols := []string{
		"language", "slug", t.titleCol, t.bodyCol,
		"tags", "is_active", "source", "source_attribution", "updated_at",
	}
	return append(cols, t.extraCols...)
}

func (t table) writeValues(r *domain.Record) []any {
	values := []any{
		r.Language,
		r.Slug,
		r.DisplayTitle(),
		r.Body(),
		pq.Array(nonNil(r.Tags)),
		r.IsActive,
		nullString(r.Source),
		nullString(r.SourceAttribution),
		r.UpdatedAt,
	}

	switch t.kind {
	case domain.KindSaints:
		values = append(values, nullString(r.FeastDay), pq.Array(nonNil(r.Patronages)))
	case domain.KindApparitions:
		values = append(values, nullString(r.Location), nullInt(r.ApprovedYear))
	default:
		values = append(values, nullString(r.Category))
	}
	return values
}

func (t table) upsertQuery() string {
	cols := t.writeColumns()

	placeholders := make([]string, len(cols))
	updates := make([]string, 0, len(cols))
	for i, c := range cols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		if c != "language" && c != "slug" {
			updates = append(updates, c+" = EXCLUDED."+c)
		}
	}

	return fmt.Sprintf(`
		INSERT INTO %[1]s (%[2]s)
		VALUES (%[3]s)
		ON CONFLICT (language, slug) DO UPDATE SET
			%[4]s
		WHERE %[1]s.updated_at < EXCLUDED.updated_at
		RETURNING id`,
		t.name,
		strings.Join(cols, ", "),
		strings.Join(placeholders, ", "),
		strings.Join(updates, ",\n\t\t\t"),
	)
}

type contentRow struct {
	ID                string         `db:"id"`
	Language          string         `db:"language"`
	Slug              string         `db:"slug"`
	Title             string         `db:"title"`
	Body              string         `db:"body"`
	Tags              pq.StringArray `db:"tags"`
	IsActive          bool           `db:"is_active"`
	Source            sql.NullString `db:"source"`
	SourceAttribution sql.NullString `db:"source_attribution"`
	UpdatedAt         time.Time      `db:"updated_at"`
	Category          sql.NullString `db:"category"`
	FeastDay          sql.NullString `db:"feast_day"`
	Patronages        pq.StringArray `db:"patronages"`
	Location          sql.NullString `db:"location"`
	ApprovedYear      sql.NullInt64  `db:"approved_year"`
}

func (row *contentRow) toDomain(kind domain.Kind) domain.Record {
	r := domain.Record{
		ID:                row.ID,
		Kind:              kind,
		Language:          row.Language,
		Slug:              row.Slug,
		Tags:              nonNil(row.Tags),
		UpdatedAt:         row.UpdatedAt,
		IsActive:          row.IsActive,
		Source:            row.Source.String,
		SourceAttribution: row.SourceAttribution.String,
		Origin:            domain.OriginDatabase,
	}

	switch kind {
	case domain.KindSaints:
		r.Name = row.Title
		r.Biography = row.Body
		r.FeastDay = row.FeastDay.String
		r.Patronages = nonNil(row.Patronages)
	case domain.KindApparitions:
		r.Title = row.Title
		r.Story = row.Body
		r.Location = row.Location.String
		r.ApprovedYear = int(row.ApprovedYear.Int64)
	default:
		r.Title = row.Title
		r.Content = row.Body
		r.Category = row.Category.String
	}
	return r
}

func toDomain(kind domain.Kind, rows []contentRow) []domain.Record {
	records := make([]domain.Record, len(rows))
	for i := range rows {
		records[i] = rows[i].toDomain(kind)
	}
	return records
}

// ContentStore reads and writes prayers, saints and apparitions.
type ContentStore struct {
	db *sqlx.DB
}

func NewContentStore(db *sqlx.DB) *ContentStore {
	return &ContentStore{db: db}
}

// List returns up to take active records ordered by display title then id,
// starting after the record whose id is cursor. The boolean reports whether
// more rows follow the page.
func (s *ContentStore) List(ctx context.Context, kind domain.Kind, language string, take int, cursor string) ([]domain.Record, bool, error) {
	t, err := tableFor(kind)
	if err != nil {
		return nil, false, err
	}

	args := []any{language}
	where := "language = $1 AND is_active"
	if cursor != "" {
		args = append(args, cursor)
		where += fmt.Sprintf(
			" AND (%[1]s, id) > (SELECT %[1]s, id FROM %[2]s WHERE id = $2)",
			t.titleCol, t.name,
		)
	}
	args = append(args, take+1)

	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s ORDER BY %s, id LIMIT $%d",
		t.selectColumns(), t.name, where, t.titleCol, len(args),
	)

	var rows []contentRow
	if err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &rows, query, args...); err != nil {
		return nil, false, fmt.Errorf("list %s: %w", kind, err)
	}

	hasMore := len(rows) > take
	if hasMore {
		rows = rows[:take]
	}

	return toDomain(kind, rows), hasMore, nil
}

// Search returns active records whose title or body contains query
// case-insensitively, or whose tags include the lowercased query, most
// recently updated first.
func (s *ContentStore) Search(ctx context.Context, kind domain.Kind, language, query string, limit int) ([]domain.Record, error) {
	t, err := tableFor(kind)
	if err != nil {
		return nil, err
	}

	q := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE language = $1 AND is_active
			AND (%s ILIKE $2 OR %s ILIKE $2 OR $3 = ANY(tags))
		ORDER BY updated_at DESC
		LIMIT $4`,
		t.selectColumns(), t.name, t.titleCol, t.bodyCol,
	)

	pattern := "%" + escapeLike(query) + "%"

	var rows []contentRow
	if err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &rows, q, language, pattern, strings.ToLower(query), limit); err != nil {
		return nil, fmt.Errorf("search %s: %w", kind, err)
	}

	return toDomain(kind, rows), nil
}

// GetBySlug returns the active record with slug, or nil when there is none.
func (s *ContentStore) GetBySlug(ctx context.Context, kind domain.Kind, language, slug string) (*domain.Record, error) {
	t, err := tableFor(kind)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE language = $1 AND slug = $2 AND is_active",
		t.selectColumns(), t.name,
	)

	var row contentRow
	err = sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &row, query, language, slug)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %s by slug: %w", kind, err)
	}

	record := row.toDomain(kind)
	return &record, nil
}

// Upsert inserts record or updates the stored row with the same language and
// slug when record is newer. It returns the row id either way.
func (s *ContentStore) Upsert(ctx context.Context, record *domain.Record) (string, error) {
	t, err := tableFor(record.Kind)
	if err != nil {
		return "", err
	}

	exec := GetExecutor(ctx, s.db)

	var id string
	err = exec.QueryRowxContext(ctx, t.upsertQuery(), t.writeValues(record)...).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		err = exec.QueryRowxContext(ctx,
			fmt.Sprintf("SELECT id FROM %s WHERE language = $1 AND slug = $2", t.name),
			record.Language, record.Slug,
		).Scan(&id)
	}

	if err != nil {
		return "", fmt.Errorf("upsert %s: %w", record.Kind, err)
	}

	return id, nil
}

// GetExistingBySlugs maps each stored slug among slugs to its updated_at.
func (s *ContentStore) GetExistingBySlugs(ctx context.Context, kind domain.Kind, language string, slugs []string) (map[string]time.Time, error) {
	if len(slugs) == 0 {
		return make(map[string]time.Time), nil
	}

	t, err := tableFor(kind)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf("SELECT slug, updated_at FROM %s WHERE language = $1 AND slug = ANY($2)", t.name)

	rows, err := GetExecutor(ctx, s.db).QueryContext(ctx, query, language, pq.Array(slugs))
	if err != nil {
		return nil, fmt.Errorf("get existing %s: %w", kind, err)
	}
	defer rows.Close()

	result := make(map[string]time.Time)
	for rows.Next() {
		var slug string
		var updatedAt time.Time
		if err := rows.Scan(&slug, &updatedAt); err != nil {
			return nil, err
		}
		result[slug] = updatedAt
	}

	return result, rows.Err()
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt(n int) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(n), Valid: n != 0}
}
