package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecord_DedupKey(t *testing.T) {
	tests := []struct {
		name   string
		record Record
		want   string
	}{
		{
			name:   "slug wins",
			record: Record{ID: "42", Language: "en", Slug: "our-father", Title: "Our Father"},
			want:   "en:our-father",
		},
		{
			name:   "falls back to id",
			record: Record{ID: "42", Language: "en", Title: "Our Father"},
			want:   "en:42",
		},
		{
			name:   "falls back to lowercased title",
			record: Record{Language: "es", Title: "Padre Nuestro"},
			want:   "es:padre nuestro",
		},
		{
			name:   "saints use name",
			record: Record{Kind: KindSaints, Language: "en", Name: "Saint Joseph"},
			want:   "en:saint joseph",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.record.DedupKey())
		})
	}
}

func TestRecord_KindAccessors(t *testing.T) {
	saint := Record{Kind: KindSaints, Name: "Saint Francis", Biography: "Founder", FeastDay: "October 4"}
	assert.Equal(t, "Saint Francis", saint.DisplayTitle())
	assert.Equal(t, "Founder", saint.Body())

	apparition := Record{Kind: KindApparitions, Title: "Our Lady of Lourdes", Story: "Grotto", Location: "Lourdes, France"}
	assert.Equal(t, "Our Lady of Lourdes", apparition.DisplayTitle())
	assert.Equal(t, "Grotto", apparition.Body())

	prayer := Record{Kind: KindPrayers, Title: "Hail Mary", Content: "Hail Mary, full of grace", Category: "marian"}
	assert.Equal(t, "Hail Mary", prayer.DisplayTitle())
	assert.Equal(t, "Hail Mary, full of grace", prayer.Body())
}

func TestParsers(t *testing.T) {
	k, ok := ParseKind(" Saints ")
	assert.True(t, ok)
	assert.Equal(t, KindSaints, k)

	_, ok = ParseKind("journal")
	assert.False(t, ok)

	mode, ok := ParseSearchMode("")
	assert.True(t, ok)
	assert.Equal(t, ModeSuggest, mode)

	mode, ok = ParseSearchMode("FULL")
	assert.True(t, ok)
	assert.Equal(t, ModeFull, mode)

	_, ok = ParseSearchMode("fuzzy")
	assert.False(t, ok)

	typ, ok := ParseSaintsSearchType("")
	assert.True(t, ok)
	assert.Equal(t, SaintsTypeAll, typ)

	_, ok = ParseSaintsSearchType("angel")
	assert.False(t, ok)
}

func TestNewSuggestion(t *testing.T) {
	r := Record{ID: "1", Kind: KindSaints, Slug: "saint-joseph", Name: "Saint Joseph", FeastDay: "March 19"}
	s := NewSuggestion(&r)
	assert.Equal(t, Suggestion{ID: "1", Title: "Saint Joseph", Slug: "saint-joseph", Type: KindSaints, FeastDay: "March 19"}, s)
}

func TestNewSuggestion_KindDetail(t *testing.T) {
	apparition := Record{ID: "2", Kind: KindApparitions, Slug: "lourdes", Title: "Our Lady of Lourdes", Location: "Lourdes, France", Category: "ignored"}
	assert.Equal(t,
		Suggestion{ID: "2", Title: "Our Lady of Lourdes", Slug: "lourdes", Type: KindApparitions, Location: "Lourdes, France"},
		NewSuggestion(&apparition),
	)

	prayer := Record{ID: "3", Kind: KindPrayers, Slug: "hail-mary", Title: "Hail Mary", Category: "marian", Location: "ignored"}
	assert.Equal(t,
		Suggestion{ID: "3", Title: "Hail Mary", Slug: "hail-mary", Type: KindPrayers, Category: "marian"},
		NewSuggestion(&prayer),
	)
}
