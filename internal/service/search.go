package service

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"devotional/internal/config"
	"devotional/internal/domain"
	"devotional/internal/metrics"
)

// maxSuggestions bounds the suggestion list of every search.
const maxSuggestions = 3

// Engine ranks database and fallback records against a query.
type Engine struct {
	store   ContentStore
	cache   SourceCache
	logger  *slog.Logger
	metrics *metrics.Metrics
	config  config.SearchConfig
	now     func() time.Time
}

func NewEngine(store ContentStore, cache SourceCache, logger *slog.Logger, m *metrics.Metrics, cfg config.SearchConfig) *Engine {
	return &Engine{
		store:   store,
		cache:   cache,
		logger:  logger.With("component", "search"),
		metrics: m,
		config:  cfg,
		now:     time.Now,
	}
}

// Search returns up to three suggestions for query and, in full mode, every
// deduplicated match ranked by score.
func (e *Engine) Search(ctx context.Context, kind domain.Kind, language, query string, mode domain.SearchMode) (result *domain.SearchResult, err error) {
	start := time.Now()
	defer func() { e.metrics.Search(kind.String(), string(mode), err, time.Since(start)) }()

	q, err := e.normalize(query, mode)
	if err != nil {
		return nil, err
	}

	result = &domain.SearchResult{
		Suggestions: []domain.Suggestion{},
		Results:     []domain.Record{},
	}
	if q == "" {
		return result, nil
	}

	ranked, err := e.rank(ctx, kind, language, q, mode)
	if err != nil {
		return nil, err
	}

	result.Suggestions = suggest(ranked)
	if mode == domain.ModeFull {
		result.Results = ranked
	}
	return result, nil
}

// SearchSaints searches saints, apparitions or both. Each kind is ranked on
// its own; suggestions list saints before apparitions.
func (e *Engine) SearchSaints(ctx context.Context, language, query string, mode domain.SearchMode, typ domain.SaintsSearchType) (result *domain.SaintsSearchResult, err error) {
	start := time.Now()
	label := "saints_invalid"
	defer func() { e.metrics.Search(label, string(mode), err, time.Since(start)) }()

	switch typ {
	case domain.SaintsTypeSaint, domain.SaintsTypeApparition, domain.SaintsTypeAll:
		label = "saints_" + string(typ)
	default:
		return nil, ErrInvalidType
	}

	q, err := e.normalize(query, mode)
	if err != nil {
		return nil, err
	}

	result = &domain.SaintsSearchResult{
		Suggestions:        []domain.Suggestion{},
		ResultsSaints:      []domain.Record{},
		ResultsApparitions: []domain.Record{},
	}
	if q == "" {
		return result, nil
	}

	var saints, apparitions []domain.Record

	g, gctx := errgroup.WithContext(ctx)
	if typ != domain.SaintsTypeApparition {
		g.Go(func() error {
			var err error
			saints, err = e.rank(gctx, domain.KindSaints, language, q, mode)
			return err
		})
	}
	if typ != domain.SaintsTypeSaint {
		g.Go(func() error {
			var err error
			apparitions, err = e.rank(gctx, domain.KindApparitions, language, q, mode)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	suggestions := append(suggest(saints), suggest(apparitions)...)
	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	result.Suggestions = suggestions

	if mode == domain.ModeFull {
		if saints != nil {
			result.ResultsSaints = saints
		}
		if apparitions != nil {
			result.ResultsApparitions = apparitions
		}
	}
	return result, nil
}

// normalize validates mode and query and returns the lowercased, trimmed query.
func (e *Engine) normalize(query string, mode domain.SearchMode) (string, error) {
	if mode != domain.ModeSuggest && mode != domain.ModeFull {
		return "", ErrInvalidMode
	}

	q := strings.TrimSpace(query)
	if e.config.MaxQueryLength > 0 && utf8.RuneCountInString(q) > e.config.MaxQueryLength {
		return "", ErrQueryTooLong
	}
	return strings.ToLower(q), nil
}

func (e *Engine) limit(mode domain.SearchMode) int {
	if mode == domain.ModeFull {
		return e.config.FullLimit
	}
	return e.config.SuggestLimit
}

type candidate struct {
	record domain.Record
	score  float64
}

// rank gathers the database and fallback pools concurrently, scores every
// candidate, orders them by descending score and drops duplicates. Equal
// scores keep database candidates ahead of fallback ones.
func (e *Engine) rank(ctx context.Context, kind domain.Kind, language, q string, mode domain.SearchMode) ([]domain.Record, error) {
	var dbPool, fallbackPool []domain.Record

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		dbPool, err = e.store.Search(gctx, kind, language, q, e.limit(mode))
		if err != nil {
			return fmt.Errorf("search %s in database: %w", kind, err)
		}
		return nil
	})
	g.Go(func() error {
		fallbackPool = e.cache.GetOrLoad(gctx, kind, language)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	weights := WeightsFor(kind)
	now := e.now()

	candidates := make([]candidate, 0, len(dbPool)+len(fallbackPool))
	for i := range dbPool {
		candidates = append(candidates, candidate{
			record: dbPool[i],
			score:  Score(&dbPool[i], q, domain.OriginDatabase, weights, now),
		})
	}
	for i := range fallbackPool {
		r := &fallbackPool[i]
		if !Matches(r, q) {
			continue
		}
		candidates = append(candidates, candidate{
			record: *r,
			score:  Score(r, q, r.Origin, weights, now),
		})
	}

	slices.SortStableFunc(candidates, func(a, b candidate) int {
		return cmp.Compare(b.score, a.score)
	})

	seen := make(map[string]struct{}, len(candidates))
	ranked := make([]domain.Record, 0, len(candidates))
	for _, c := range candidates {
		key := c.record.DedupKey()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		ranked = append(ranked, c.record)
	}

	e.logger.Debug("ranked candidates",
		"kind", kind,
		"language", language,
		"database", len(dbPool),
		"fallback", len(fallbackPool),
		"results", len(ranked),
	)

	return ranked, nil
}

func suggest(records []domain.Record) []domain.Suggestion {
	n := min(len(records), maxSuggestions)
	suggestions := make([]domain.Suggestion, 0, n)
	for i := range n {
		suggestions = append(suggestions, domain.NewSuggestion(&records[i]))
	}
	return suggestions
}
