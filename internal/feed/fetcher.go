// Package feed loads optional external JSON feeds and normalizes their entries.
package feed

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"devotional/internal/domain"
	"devotional/internal/metrics"
)

// maxBodyBytes bounds the size of a feed response.
const maxBodyBytes = 10 << 20

var errNoItems = errors.New("body is neither an array nor an object with an items array")

// Config holds feed client configuration.
type Config struct {
	Timeout        time.Duration
	UserAgent      string
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

// URLResolver maps a kind and language to a feed URL, "" meaning none.
type URLResolver interface {
	URLFor(kind, language string) string
}

// Fetcher downloads and normalizes external feeds.
type Fetcher struct {
	httpClient     *http.Client
	urls           URLResolver
	userAgent      string
	maxAttempts    int
	initialBackoff time.Duration
	maxBackoff     time.Duration
	logger         *slog.Logger
	metrics        *metrics.Metrics
	now            func() time.Time
}

// New creates a fetcher.
func New(cfg Config, urls URLResolver, logger *slog.Logger, m *metrics.Metrics) *Fetcher {
	maxAttempts := cfg.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &Fetcher{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		urls:           urls,
		userAgent:      cfg.UserAgent,
		maxAttempts:    maxAttempts,
		initialBackoff: cfg.InitialBackoff,
		maxBackoff:     cfg.MaxBackoff,
		logger:         logger.With("component", "feed"),
		metrics:        m,
		now:            time.Now,
	}
}

// Fetch returns the normalized entries of the feed configured for kind and
// language. It never fails: a missing URL, transport error, bad status or
// undecodable body all yield an empty slice. Malformed entries are dropped.
func (f *Fetcher) Fetch(ctx context.Context, kind domain.Kind, language string) []domain.Record {
	url := f.urls.URLFor(kind.String(), language)
	if url == "" {
		return []domain.Record{}
	}

	logger := f.logger.With("kind", kind, "language", language)

	entries, err := f.fetchEntries(ctx, url)
	if err != nil {
		logger.Warn("external feed unavailable, using built-in library",
			"url", url,
			"error", err,
		)
		f.metrics.FeedFailure(kind.String(), language)
		return []domain.Record{}
	}

	now := f.now()
	records := make([]domain.Record, 0, len(entries))
	for i, raw := range entries {
		var entry RawEntry
		if err := json.Unmarshal(raw, &entry); err != nil || entry == nil {
			logger.Debug("dropping feed entry", "index", i, "reason", "not an object")
			f.metrics.FeedEntryDropped(kind.String())
			continue
		}

		record, err := Normalize(kind, language, i, entry, now)
		if err != nil {
			logger.Debug("dropping feed entry", "index", i, "error", err)
			f.metrics.FeedEntryDropped(kind.String())
			continue
		}
		records = append(records, record)
	}

	logger.Info("fetched external feed",
		"entries", len(entries),
		"records", len(records),
	)

	return records
}

func (f *Fetcher) fetchEntries(ctx context.Context, url string) ([]json.RawMessage, error) {
	var entries []json.RawMessage
	var err error

	for attempt := 1; attempt <= f.maxAttempts; attempt++ {
		entries, err = f.doRequest(ctx, url)
		if err == nil {
			return entries, nil
		}

		if attempt == f.maxAttempts {
			break
		}

		backoff := f.calculateBackoff(attempt)
		f.logger.Warn("request failed, retrying",
			"attempt", attempt,
			"backoff", backoff,
			"error", err,
		)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}

	if f.maxAttempts > 1 {
		return nil, fmt.Errorf("after %d attempts: %w", f.maxAttempts, err)
	}
	return nil, err
}

func (f *Fetcher) doRequest(ctx context.Context, url string) ([]json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	entries, err := decodeEntries(body)
	if err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return entries, nil
}

// decodeEntries accepts a top-level array or an object with an items array.
func decodeEntries(body []byte) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(body)

	if len(trimmed) > 0 && trimmed[0] == '[' {
		var entries []json.RawMessage
		if err := json.Unmarshal(trimmed, &entries); err != nil {
			return nil, err
		}
		return entries, nil
	}

	var wrapper struct {
		Items []json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal(trimmed, &wrapper); err != nil {
		return nil, err
	}
	if wrapper.Items == nil {
		return nil, errNoItems
	}
	return wrapper.Items, nil
}

func (f *Fetcher) calculateBackoff(attempt int) time.Duration {
	backoff := f.initialBackoff
	for i := 1; i < attempt; i++ {
		backoff *= 2
	}
	if backoff > f.maxBackoff {
		backoff = f.maxBackoff
	}
	return backoff
}
