package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/imagebatch/pkg/slug"
)

func TestMake(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		opts []slug.Option
		want string
	}{
		{name: "simple", in: "Hello, World!", want: "hello-world"},
		{name: "diacritics", in: "Café & Restaurant", want: "cafe-restaurant"},
		{name: "eszett", in: "Straße in München", want: "strasse-in-munchen"},
		{name: "trim_edges", in: "  --trip--  ", want: "trip"},
		{name: "digits", in: "Trip 2024", want: "trip-2024"},
		{name: "non_latin", in: "北京", want: ""},
		{name: "max_length", in: "Trip 2024!", opts: []slug.Option{slug.MaxLength(5)}, want: "trip"},
		{name: "separator", in: "Summer Trip", opts: []slug.Option{slug.Separator("_")}, want: "summer_trip"},
		{name: "keep_case", in: "Summer Trip", opts: []slug.Option{slug.Lowercase(false)}, want: "Summer-Trip"},
		{name: "replace", in: "Rock & Roll", opts: []slug.Option{slug.CustomReplace(map[string]string{"&": "and"})}, want: "rock-and-roll"},
		{name: "empty", in: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, slug.Make(tt.in, tt.opts...))
		})
	}
}
