package format

import "github.com/modforge-labs/modforge/internal/registry"

// FileMatch pairs a filename pattern with the archive entry it matched.
type FileMatch struct {
	Pattern string `json:"pattern"`
	Path    string `json:"path"`
}

// Result is the outcome of one matching pass. A Result with a nil Type is
// the "no recognized installer format" outcome, which is not an error.
type Result struct {
	Type registry.ScriptType
	// Matches holds one entry per matching pattern, in pattern order.
	Matches []FileMatch
	// RequiredFiles holds the distinct matched entries, in pattern order.
	// An entry matched by several patterns appears once here but once per
	// pattern in Matches.
	RequiredFiles []string
}

// Empty reports whether no script type matched.
func (r *Result) Empty() bool {
	return r == nil || r.Type == nil
}

// TypeID returns the matched type id, or "" for an empty result.
func (r *Result) TypeID() string {
	if r.Empty() {
		return ""
	}
	return r.Type.TypeID()
}

// Primary returns the entry matched by the first matching pattern; this is
// the authoritative script file when one must be singled out.
func (r *Result) Primary() string {
	if r.Empty() || len(r.Matches) == 0 {
		return ""
	}
	return r.Matches[0].Path
}

func emptyResult() *Result {
	return &Result{RequiredFiles: []string{}}
}
