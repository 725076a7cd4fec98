package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

type options struct {
	maxLength int
	separator string
	lowercase bool
	replace   map[string]string
}

// Option configures Make.
type Option func(*options)

// MaxLength caps the result in runes; trailing separators are trimmed after the cut.
func MaxLength(n int) Option {
	return func(o *options) { o.maxLength = n }
}

// Separator replaces the default "-".
func Separator(sep string) Option {
	return func(o *options) { o.separator = sep }
}

// Lowercase toggles lowercasing (default true).
func Lowercase(on bool) Option {
	return func(o *options) { o.lowercase = on }
}

// CustomReplace applies literal replacements before folding.
func CustomReplace(m map[string]string) Option {
	return func(o *options) { o.replace = m }
}

var transliterations = map[rune]string{
	'ß': "ss", 'æ': "ae", 'Æ': "AE", 'ø': "o", 'Ø': "O",
	'œ': "oe", 'Œ': "OE", 'ł': "l", 'Ł': "L", 'đ': "d", 'Đ': "D",
	'þ': "th", 'Þ': "TH",
}

// Make builds a slug from s.
func Make(s string, opts ...Option) string {
	o := options{separator: "-", lowercase: true}
	for _, opt := range opts {
		opt(&o)
	}

	for from, to := range o.replace {
		s = strings.ReplaceAll(s, from, to)
	}

	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), s)
	if err == nil {
		s = folded
	}

	var b strings.Builder
	pendingSep := false
	for _, r := range s {
		if t, ok := transliterations[r]; ok {
			if pendingSep && b.Len() > 0 {
				b.WriteString(o.separator)
			}
			pendingSep = false
			b.WriteString(t)
			continue
		}
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			if pendingSep && b.Len() > 0 {
				b.WriteString(o.separator)
			}
			pendingSep = false
			b.WriteRune(r)
			continue
		}
		pendingSep = true
	}

	out := b.String()
	if o.lowercase {
		out = strings.ToLower(out)
	}
	if o.maxLength > 0 {
		if rs := []rune(out); len(rs) > o.maxLength {
			out = strings.TrimRight(string(rs[:o.maxLength]), o.separator)
		}
	}
	return out
}
