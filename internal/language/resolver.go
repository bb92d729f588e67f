// Package language picks the content language of a request.
package language

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/language"
)

// Fallback is used when nothing else matches.
const Fallback = "en"

// Request carries the language hints of one HTTP request.
type Request struct {
	// UserLanguage is the authenticated user's explicit preference, if any.
	UserLanguage string
	// QueryLanguage is the language or lang query parameter.
	QueryLanguage string
	// AcceptLanguage is the raw Accept-Language header.
	AcceptLanguage string
}

// Resolver resolves request hints against a fixed set of supported codes.
type Resolver struct {
	supported       map[string]struct{}
	defaultLanguage string
}

// NewResolver creates a resolver. defaultLanguage is ignored at resolve time
// when it is not one of supported.
func NewResolver(supported []string, defaultLanguage string) *Resolver {
	set := make(map[string]struct{}, len(supported))
	for _, code := range supported {
		if c := normalize(code); c != "" {
			set[c] = struct{}{}
		}
	}
	return &Resolver{
		supported:       set,
		defaultLanguage: normalize(defaultLanguage),
	}
}

// Resolve returns the first supported language among, in order: the user
// override, the query parameter, the server default and the Accept-Language
// header. Unsupported values are skipped; "en" is the last resort.
func (r *Resolver) Resolve(req Request) string {
	for _, candidate := range []string{req.UserLanguage, req.QueryLanguage, r.defaultLanguage} {
		if r.IsSupported(candidate) {
			return normalize(candidate)
		}
	}

	if lang, ok := r.fromAcceptLanguage(req.AcceptLanguage); ok {
		return lang
	}

	return Fallback
}

// IsSupported reports whether code is in the supported set.
func (r *Resolver) IsSupported(code string) bool {
	c := normalize(code)
	if c == "" {
		return false
	}
	_, ok := r.supported[c]
	return ok
}

// Supported returns the supported codes in no particular order.
func (r *Resolver) Supported() []string {
	codes := make([]string, 0, len(r.supported))
	for c := range r.supported {
		codes = append(codes, c)
	}
	return codes
}

func (r *Resolver) fromAcceptLanguage(header string) (string, bool) {
	for _, tag := range parseAcceptLanguage(header) {
		full := normalize(tag.String())
		if r.IsSupported(full) {
			return full, true
		}
		base, _ := tag.Base()
		if primary := normalize(base.String()); r.IsSupported(primary) {
			return primary, true
		}
	}

	return "", false
}

type weightedTag struct {
	tag     language.Tag
	quality float64
}

// parseAcceptLanguage returns the well-formed entries of header ordered by
// descending quality. Malformed entries and q=0 are dropped individually.
func parseAcceptLanguage(header string) []language.Tag {
	var weighted []weightedTag
	for _, entry := range strings.Split(header, ",") {
		name, params, _ := strings.Cut(entry, ";")
		name = strings.TrimSpace(name)
		if name == "" || name == "*" {
			continue
		}

		tag, err := language.Parse(name)
		if err != nil {
			continue
		}

		quality, ok := parseQuality(params)
		if !ok || quality <= 0 {
			continue
		}
		weighted = append(weighted, weightedTag{tag: tag, quality: quality})
	}

	slices.SortStableFunc(weighted, func(a, b weightedTag) int {
		return cmp.Compare(b.quality, a.quality)
	})

	tags := make([]language.Tag, 0, len(weighted))
	for _, w := range weighted {
		tags = append(tags, w.tag)
	}
	return tags
}

// parseQuality reads the q parameter; a missing q means 1.
func parseQuality(params string) (float64, bool) {
	for _, param := range strings.Split(params, ";") {
		key, value, found := strings.Cut(strings.TrimSpace(param), "=")
		if !found || !strings.EqualFold(strings.TrimSpace(key), "q") {
			continue
		}
		q, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil || q < 0 || q > 1 {
			return 0, false
		}
		return q, true
	}
	return 1, true
}

func normalize(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}
