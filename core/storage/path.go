package storage

import (
	"fmt"
	"path"
	"strings"
)

// CleanPath normalises p to a root-relative slash path.
// The root itself is returned as "".
func CleanPath(p string) (string, error) {
	p = strings.ReplaceAll(p, "\\", "/")
	for seg := range strings.SplitSeq(p, "/") {
		if seg == ".." {
			return "", fmt.Errorf("%w: %q", ErrInvalidPath, p)
		}
	}
	if strings.ContainsRune(p, 0) {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, p)
	}

	p = path.Clean("/" + p)
	p = strings.TrimPrefix(p, "/")
	return p, nil
}

// Join joins elements and cleans the result.
func Join(elem ...string) (string, error) {
	return CleanPath(path.Join(elem...))
}
