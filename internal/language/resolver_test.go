package language

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolver_Resolve(t *testing.T) {
	supported := []string{"en", "es", "pt", "pt-br", "fr"}

	tests := []struct {
		name     string
		fallback string
		req      Request
		want     string
	}{
		{
			name: "user override wins",
			req:  Request{UserLanguage: "fr", QueryLanguage: "es", AcceptLanguage: "pt"},
			want: "fr",
		},
		{
			name: "unsupported user override is skipped",
			req:  Request{UserLanguage: "ja", QueryLanguage: "es"},
			want: "es",
		},
		{
			name: "query param is case insensitive",
			req:  Request{QueryLanguage: " ES "},
			want: "es",
		},
		{
			name:     "server default before header",
			fallback: "pt",
			req:      Request{AcceptLanguage: "fr"},
			want:     "pt",
		},
		{
			name:     "unsupported server default is skipped",
			fallback: "la",
			req:      Request{AcceptLanguage: "fr-CA,fr;q=0.9"},
			want:     "fr",
		},
		{
			name: "accept language full tag",
			req:  Request{AcceptLanguage: "pt-BR,pt;q=0.8"},
			want: "pt-br",
		},
		{
			name: "accept language primary subtag",
			req:  Request{AcceptLanguage: "es-MX"},
			want: "es",
		},
		{
			name: "accept language honors quality order",
			req:  Request{AcceptLanguage: "de;q=0.5, fr;q=0.9"},
			want: "fr",
		},
		{
			name: "nothing matches",
			req:  Request{AcceptLanguage: "ja,zh;q=0.8"},
			want: "en",
		},
		{
			name: "malformed entry is skipped",
			req:  Request{AcceptLanguage: "xx-invalid_tag,fr;q=0.5"},
			want: "fr",
		},
		{
			name: "malformed quality drops only its entry",
			req:  Request{AcceptLanguage: "es;q=abc, pt;q=0.4"},
			want: "pt",
		},
		{
			name: "zero quality is refused",
			req:  Request{AcceptLanguage: "es;q=0, fr;q=0.2"},
			want: "fr",
		},
		{
			name: "wildcard is ignored",
			req:  Request{AcceptLanguage: "*, es;q=0.3"},
			want: "es",
		},
		{
			name: "garbage header",
			req:  Request{AcceptLanguage: ";;;"},
			want: "en",
		},
		{
			name: "no hints",
			req:  Request{},
			want: "en",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver(supported, tt.fallback)
			assert.Equal(t, tt.want, r.Resolve(tt.req))
		})
	}
}

func TestResolver_IsSupported(t *testing.T) {
	r := NewResolver([]string{"EN", " es"}, "")

	assert.True(t, r.IsSupported("en"))
	assert.True(t, r.IsSupported("ES"))
	assert.False(t, r.IsSupported(""))
	assert.False(t, r.IsSupported("de"))
	assert.ElementsMatch(t, []string{"en", "es"}, r.Supported())
}
