package naming

import (
	"path"
	"strconv"
	"strings"
	"unicode"
)

// OptimizedSuffix marks transform outputs; bundle naming looks for it.
const OptimizedSuffix = "-optimized"

// Stem returns the base name of filename without its last extension.
func Stem(filename string) string {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if ext := path.Ext(base); ext != "" && ext != base {
		return strings.TrimSuffix(base, ext)
	}
	return base
}

// Ext returns the extension of filename without the dot.
func Ext(filename string) string {
	return strings.TrimPrefix(path.Ext(filename), ".")
}

// FallbackStem replaces stems that sanitise to nothing.
const FallbackStem = "image"

// SanitizeStem keeps letters, digits, '.', '-' and '_' and replaces anything
// else with '_'. Leading dots are dropped so the result is never hidden.
func SanitizeStem(stem string) string {
	s := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '.', r == '-', r == '_':
			return r
		}
		return '_'
	}, stem)
	s = strings.TrimLeft(s, ".")
	if s == "" {
		return FallbackStem
	}
	return s
}

// OptimizedName is {stem}-optimized.{ext} with the stem sanitised.
func OptimizedName(original, outExt string) string {
	return SanitizeStem(Stem(original)) + OptimizedSuffix + "." + outExt
}

// RenamedName is {base}-{index}.{ext}; an empty ext drops the dot.
func RenamedName(base string, index uint64, ext string) string {
	name := base + "-" + strconv.FormatUint(index, 10)
	if ext == "" {
		return name
	}
	return name + "." + ext
}

// LooksRenamed reports whether name resembles a rename output rather than an
// optimize output. It is a display heuristic only.
func LooksRenamed(name string) bool {
	return strings.Contains(name, "-") && !strings.Contains(name, OptimizedSuffix)
}
