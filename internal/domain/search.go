package domain

import "strings"

// SearchMode selects between autocomplete and full result lists.
type SearchMode string

const (
	ModeSuggest SearchMode = "suggest"
	ModeFull    SearchMode = "full"
)

// ParseSearchMode maps the mode query parameter; empty means suggest.
func ParseSearchMode(s string) (SearchMode, bool) {
	switch SearchMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeSuggest:
		return ModeSuggest, true
	case ModeFull:
		return ModeFull, true
	}
	return "", false
}

// SaintsSearchType restricts a saints search to one sub-kind or both.
type SaintsSearchType string

const (
	SaintsTypeSaint      SaintsSearchType = "saint"
	SaintsTypeApparition SaintsSearchType = "apparition"
	SaintsTypeAll        SaintsSearchType = "all"
)

// ParseSaintsSearchType maps the type query parameter; empty means all.
func ParseSaintsSearchType(s string) (SaintsSearchType, bool) {
	switch SaintsSearchType(strings.ToLower(strings.TrimSpace(s))) {
	case "", SaintsTypeAll:
		return SaintsTypeAll, true
	case SaintsTypeSaint:
		return SaintsTypeSaint, true
	case SaintsTypeApparition:
		return SaintsTypeApparition, true
	}
	return "", false
}

// Suggestion is the autocomplete projection of a record.
type Suggestion struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Slug     string `json:"slug"`
	Type     Kind   `json:"type"`
	Category string `json:"category,omitempty"`
	FeastDay string `json:"feastDay,omitempty"`
	Location string `json:"location,omitempty"`
}

// NewSuggestion projects r.
func NewSuggestion(r *Record) Suggestion {
	s := Suggestion{
		ID:    r.ID,
		Title: r.DisplayTitle(),
		Slug:  r.Slug,
		Type:  r.Kind,
	}
	switch r.Kind {
	case KindSaints:
		s.FeastDay = r.FeastDay
	case KindApparitions:
		s.Location = r.Location
	default:
		s.Category = r.Category
	}
	return s
}

// SearchResult is the outcome of a single-kind search.
type SearchResult struct {
	Suggestions []Suggestion
	Results     []Record
}

// SaintsSearchResult is the outcome of a saints/apparitions search.
type SaintsSearchResult struct {
	Suggestions        []Suggestion
	ResultsSaints      []Record
	ResultsApparitions []Record
}
