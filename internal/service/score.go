package service

import (
	"strings"
	"time"

	"devotional/internal/domain"
)

// Weights are the ranking constants of one content kind.
type Weights struct {
	ExactTitle     float64
	PartialTitle   float64
	Tag            float64
	DatabaseOrigin float64
	FallbackOrigin float64
	RecencyMax     float64
	RecencyDecay   float64 // per day
}

var (
	PrayerWeights = Weights{
		ExactTitle:     120,
		PartialTitle:   80,
		Tag:            40,
		DatabaseOrigin: 12,
		FallbackOrigin: 6,
		RecencyMax:     20,
		RecencyDecay:   0.5,
	}

	// DevotionWeights rank saints and apparitions.
	DevotionWeights = Weights{
		ExactTitle:     110,
		PartialTitle:   70,
		Tag:            30,
		DatabaseOrigin: 10,
		FallbackOrigin: 5,
		RecencyMax:     18,
		RecencyDecay:   0.4,
	}
)

func WeightsFor(kind domain.Kind) Weights {
	if kind == domain.KindPrayers {
		return PrayerWeights
	}
	return DevotionWeights
}

// Matches reports whether r contains the lowercased query in its display
// title or body, or carries it as a tag.
func Matches(r *domain.Record, query string) bool {
	return strings.Contains(strings.ToLower(r.DisplayTitle()), query) ||
		strings.Contains(strings.ToLower(r.Body()), query) ||
		hasTag(r, query)
}

// Score ranks r against the lowercased query. Records updated in the future
// get the full recency bonus.
func Score(r *domain.Record, query string, origin domain.Origin, w Weights, now time.Time) float64 {
	var score float64

	title := strings.ToLower(r.DisplayTitle())
	switch {
	case title == query:
		score += w.ExactTitle
	case strings.Contains(title, query):
		score += w.PartialTitle
	}

	if hasTag(r, query) {
		score += w.Tag
	}

	if origin == domain.OriginDatabase {
		score += w.DatabaseOrigin
	} else {
		score += w.FallbackOrigin
	}

	ageDays := max(0, now.Sub(r.UpdatedAt).Hours()/24)
	score += max(0, w.RecencyMax-ageDays*w.RecencyDecay)

	return score
}

func hasTag(r *domain.Record, query string) bool {
	for _, t := range r.Tags {
		if strings.ToLower(t) == query {
			return true
		}
	}
	return false
}
