// Package library holds the hand-authored content shipped with the service.
// It is used whenever no external feed is configured or the feed yields nothing.
package library

import (
	"embed"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"devotional/internal/domain"
)

// Language is the only language the built-in library is written in.
const Language = "en"

const sourceName = "builtin"

//go:embed data/*.yaml
var files embed.FS

type entry struct {
	Slug              string   `yaml:"slug"`
	Title             string   `yaml:"title"`
	Name              string   `yaml:"name"`
	Content           string   `yaml:"content"`
	Biography         string   `yaml:"biography"`
	Story             string   `yaml:"story"`
	Category          string   `yaml:"category"`
	FeastDay          string   `yaml:"feastDay"`
	Patronages        []string `yaml:"patronages"`
	Location          string   `yaml:"location"`
	ApprovedYear      int      `yaml:"approvedYear"`
	Tags              []string `yaml:"tags"`
	SourceAttribution string   `yaml:"sourceAttribution"`
}

// Library serves the built-in records. It is safe for concurrent use.
type Library struct {
	records map[domain.Kind][]domain.Record
}

// New decodes the embedded library. Records are stamped with the load time.
func New() (*Library, error) {
	return load(time.Now().UTC())
}

func load(loadedAt time.Time) (*Library, error) {
	lib := &Library{records: make(map[domain.Kind][]domain.Record, len(domain.Kinds))}

	for _, kind := range domain.Kinds {
		data, err := files.ReadFile("data/" + kind.String() + ".yaml")
		if err != nil {
			return nil, fmt.Errorf("read %s library: %w", kind, err)
		}

		var entries []entry
		if err := yaml.Unmarshal(data, &entries); err != nil {
			return nil, fmt.Errorf("parse %s library: %w", kind, err)
		}

		records := make([]domain.Record, 0, len(entries))
		for i, e := range entries {
			records = append(records, e.toRecord(kind, i, loadedAt))
		}
		lib.records[kind] = records
	}

	return lib, nil
}

// BuiltIn returns the built-in records of kind for language. Only English is
// authored; every other language yields an empty slice. The returned slice is
// a copy and may be modified by the caller.
func (l *Library) BuiltIn(kind domain.Kind, language string) []domain.Record {
	if strings.ToLower(language) != Language {
		return []domain.Record{}
	}
	src := l.records[kind]
	out := make([]domain.Record, len(src))
	copy(out, src)
	return out
}

// ID builds the synthetic id of the built-in record at index.
func ID(kind domain.Kind, language string, index int) string {
	return fmt.Sprintf("builtin-%s-%s-%d", kind, language, index)
}

func (e entry) toRecord(kind domain.Kind, index int, loadedAt time.Time) domain.Record {
	tags := make([]string, 0, len(e.Tags))
	for _, t := range e.Tags {
		tags = append(tags, strings.ToLower(strings.TrimSpace(t)))
	}

	return domain.Record{
		ID:                ID(kind, Language, index),
		Kind:              kind,
		Language:          Language,
		Slug:              e.Slug,
		Title:             e.Title,
		Name:              e.Name,
		Content:           strings.TrimSpace(e.Content),
		Biography:         strings.TrimSpace(e.Biography),
		Story:             strings.TrimSpace(e.Story),
		Category:          e.Category,
		FeastDay:          e.FeastDay,
		Patronages:        e.Patronages,
		Location:          e.Location,
		ApprovedYear:      e.ApprovedYear,
		Tags:              tags,
		UpdatedAt:         loadedAt,
		IsActive:          true,
		Source:            sourceName,
		SourceAttribution: e.SourceAttribution,
		Origin:            domain.OriginBuiltin,
	}
}
