package archive

import (
	"slices"
	"strings"
)

// Scope selects what goes into a bundle.
type Scope struct {
	// SessionID limits the bundle to one session; empty means the whole store.
	SessionID string
	// Files, when non-empty, keeps only entries with exactly these names.
	Files []string
}

// ParseFilter splits a comma-separated filename list. Empty items are
// dropped; names are matched exactly as given, spaces included.
func ParseFilter(s string) []string {
	var out []string
	for item := range strings.SplitSeq(s, ",") {
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

func (s Scope) matches(name string) bool {
	return len(s.Files) == 0 || slices.Contains(s.Files, name)
}
