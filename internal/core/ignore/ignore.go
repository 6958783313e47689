// Package ignore implements the repository's ignore list: a set of absolute
// path prefixes that are never ingested (spec.md §4.6).
package ignore

import (
	"path/filepath"
	"strings"
)

// List is a set of absolute path prefixes.
type List struct {
	prefixes []string
}

// New returns an empty ignore list.
func New() *List {
	return &List{}
}

// Add registers an absolute path prefix. path is cleaned before storage so
// comparisons in Ignores are exact.
func (l *List) Add(path string) {
	l.prefixes = append(l.prefixes, filepath.Clean(path))
}

// Ignores reports whether path equals or is a descendant of any stored
// prefix.
func (l *List) Ignores(path string) bool {
	path = filepath.Clean(path)
	for _, prefix := range l.prefixes {
		if path == prefix || strings.HasPrefix(path, prefix+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// ForRepo returns a List pre-seeded with the object-store root, so the
// repository's own storage is never ingested (spec.md §4.6).
func ForRepo(storeRoot string) *List {
	l := New()
	l.Add(storeRoot)
	return l
}
