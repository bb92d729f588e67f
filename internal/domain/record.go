package domain

import (
	"strings"
	"time"
)

// Kind names one of the content collections the service resolves and searches.
type Kind string

const (
	KindPrayers     Kind = "prayers"
	KindSaints      Kind = "saints"
	KindApparitions Kind = "apparitions"
)

// Kinds lists every content kind in a stable order.
var Kinds = []Kind{KindPrayers, KindSaints, KindApparitions}

// ParseKind returns the Kind for s, reporting false for unknown names.
func ParseKind(s string) (Kind, bool) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindPrayers, KindSaints, KindApparitions:
		return k, true
	}
	return "", false
}

func (k Kind) String() string {
	return string(k)
}

// Origin records where a record came from.
type Origin string

const (
	OriginDatabase Origin = "database"
	OriginExternal Origin = "external"
	OriginBuiltin  Origin = "builtin"
)

// Record is a prayer, saint or apparition in one language. Which of the
// kind-specific fields are set depends on Kind.
type Record struct {
	ID       string `json:"id"`
	Kind     Kind   `json:"-"`
	Language string `json:"language"`
	Slug     string `json:"slug"`

	// prayers and apparitions
	Title string `json:"title,omitempty"`
	// saints
	Name string `json:"name,omitempty"`

	Content   string `json:"content,omitempty"`
	Biography string `json:"biography,omitempty"`
	Story     string `json:"story,omitempty"`

	Category     string   `json:"category,omitempty"`
	FeastDay     string   `json:"feastDay,omitempty"`
	Patronages   []string `json:"patronages,omitempty"`
	Location     string   `json:"location,omitempty"`
	ApprovedYear int      `json:"approvedYear,omitempty"`

	Tags              []string  `json:"tags"`
	UpdatedAt         time.Time `json:"updatedAt"`
	IsActive          bool      `json:"isActive"`
	Source            string    `json:"source,omitempty"`
	SourceAttribution string    `json:"sourceAttribution,omitempty"`

	Origin Origin `json:"-"`
}

// DisplayTitle is the name for saints and the title for everything else.
func (r *Record) DisplayTitle() string {
	if r.Kind == KindSaints {
		return r.Name
	}
	return r.Title
}

// Body returns the primary searchable text of the record.
func (r *Record) Body() string {
	switch r.Kind {
	case KindSaints:
		return r.Biography
	case KindApparitions:
		return r.Story
	default:
		return r.Content
	}
}

// DedupKey identifies "the same" record across origins within a language.
func (r *Record) DedupKey() string {
	switch {
	case r.Slug != "":
		return r.Language + ":" + r.Slug
	case r.ID != "":
		return r.Language + ":" + r.ID
	default:
		return r.Language + ":" + strings.ToLower(r.DisplayTitle())
	}
}

// Page is one listing response.
type Page struct {
	Items      []Record
	NextCursor *string
}
