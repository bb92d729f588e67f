package feed

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"devotional/internal/domain"
)

// maxSlugLength bounds slugs in runes.
const maxSlugLength = 140

var whitespaceRun = regexp.MustCompile(`\s+`)

// RawEntry is one loosely-typed element of an external feed.
type RawEntry map[string]any

// ValidationError explains why a feed entry was dropped.
type ValidationError struct {
	Kind   domain.Kind
	Index  int
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s entry %d: %s %s", e.Kind, e.Index, e.Field, e.Reason)
}

// fieldSet lists, per kind, the accepted source keys for each record field in
// order of preference.
type fieldSet struct {
	title []string
	body  []string
}

var fields = map[domain.Kind]fieldSet{
	domain.KindPrayers: {
		title: []string{"title", "name"},
		body:  []string{"content", "text", "body"},
	},
	domain.KindSaints: {
		title: []string{"name", "title"},
		body:  []string{"biography", "bio", "description"},
	},
	domain.KindApparitions: {
		title: []string{"title", "name"},
		body:  []string{"story", "description", "content"},
	},
}

// ExternalID builds the synthetic id of the feed entry at index.
func ExternalID(kind domain.Kind, language string, index int) string {
	return fmt.Sprintf("external-%s-%s-%d", kind, language, index)
}

// Normalize converts raw into a record of kind in language. Entries without a
// title or body string are rejected with a *ValidationError. now stamps
// entries that carry no usable updatedAt.
func Normalize(kind domain.Kind, language string, index int, raw RawEntry, now time.Time) (domain.Record, error) {
	fs, ok := fields[kind]
	if !ok {
		return domain.Record{}, &ValidationError{Kind: kind, Index: index, Field: "kind", Reason: "is not supported"}
	}

	title := firstString(raw, fs.title...)
	if title == "" {
		return domain.Record{}, &ValidationError{Kind: kind, Index: index, Field: fs.title[0], Reason: "must be a non-empty string"}
	}
	body := firstString(raw, fs.body...)
	if body == "" {
		return domain.Record{}, &ValidationError{Kind: kind, Index: index, Field: fs.body[0], Reason: "must be a non-empty string"}
	}

	slug := firstString(raw, "slug")
	if slug == "" {
		slug = Slugify(title)
	}

	r := domain.Record{
		ID:                ExternalID(kind, language, index),
		Kind:              kind,
		Language:          language,
		Slug:              truncate(slug, maxSlugLength),
		Tags:              lowerStrings(raw["tags"]),
		UpdatedAt:         parseTime(raw["updatedAt"], now),
		IsActive:          true,
		Source:            firstString(raw, "source"),
		SourceAttribution: firstString(raw, "sourceAttribution", "source_attribution"),
		Origin:            domain.OriginExternal,
	}

	switch kind {
	case domain.KindSaints:
		r.Name = title
		r.Biography = body
		r.FeastDay = firstString(raw, "feastDay", "feast_day")
		r.Patronages = trimmedStrings(raw["patronages"])
	case domain.KindApparitions:
		r.Title = title
		r.Story = body
		r.Location = firstString(raw, "location")
		r.ApprovedYear = intValue(raw, "approvedYear", "year")
	default:
		r.Title = title
		r.Content = body
		r.Category = firstString(raw, "category")
	}

	return r, nil
}

// Slugify lowercases s and joins whitespace-separated words with hyphens.
func Slugify(s string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), "-")
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

func firstString(raw RawEntry, keys ...string) string {
	for _, k := range keys {
		if s, ok := raw[k].(string); ok {
			if s = strings.TrimSpace(s); s != "" {
				return s
			}
		}
	}
	return ""
}

func trimmedStrings(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

func lowerStrings(v any) []string {
	out := trimmedStrings(v)
	for i := range out {
		out[i] = strings.ToLower(out[i])
	}
	return out
}

func parseTime(v any, fallback time.Time) time.Time {
	s, ok := v.(string)
	if !ok {
		return fallback
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, strings.TrimSpace(s)); err == nil {
			return t
		}
	}
	return fallback
}

func intValue(raw RawEntry, keys ...string) int {
	for _, k := range keys {
		switch v := raw[k].(type) {
		case float64:
			if !math.IsNaN(v) && !math.IsInf(v, 0) {
				return int(v)
			}
		case string:
			if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
				return n
			}
		}
	}
	return 0
}
