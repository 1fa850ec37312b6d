// Package pathmatch implements the archive-entry predicates shared by the
// filename matcher and the fallback identify check: basename and parent
// directory extraction for "/" or "\" separated entries, and Unicode
// case-folded substring containment.
package pathmatch

import (
	"strings"

	"golang.org/x/text/cases"
)

// normalize converts Windows separators so archive listings produced on
// either platform split the same way.
func normalize(entry string) string {
	return strings.ReplaceAll(entry, `\`, "/")
}

// Base returns the final element of entry. Directory entries (trailing
// separator) have an empty base.
func Base(entry string) string {
	e := normalize(entry)
	return e[strings.LastIndex(e, "/")+1:]
}

// ParentName returns the name of the directory directly containing entry,
// or "" for entries at the archive root.
func ParentName(entry string) string {
	e := normalize(entry)
	i := strings.LastIndex(e, "/")
	if i < 0 {
		return ""
	}
	return Base(strings.TrimRight(e[:i], "/"))
}

// ContainsFold reports whether sub is within s under Unicode case folding.
func ContainsFold(s, sub string) bool {
	// Casers carry state and must not be shared between goroutines.
	fold := cases.Fold()
	return strings.Contains(fold.String(s), fold.String(sub))
}

// Match reports whether entry's basename contains pattern and its parent
// directory name contains root, both case-insensitively. An empty pattern
// never matches; an empty root accepts any parent.
func Match(entry, pattern, root string) bool {
	if pattern == "" {
		return false
	}
	return ContainsFold(Base(entry), pattern) && ContainsFold(ParentName(entry), root)
}

// FirstMatch returns the first entry in files that satisfies Match.
func FirstMatch(files []string, pattern, root string) (string, bool) {
	for _, f := range files {
		if Match(f, pattern, root) {
			return f, true
		}
	}
	return "", false
}
