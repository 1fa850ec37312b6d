package format

import (
	"context"

	"github.com/modforge-labs/modforge/internal/pathmatch"
	"github.com/modforge-labs/modforge/internal/registry"
)

// Match runs the filename matcher over types in order. It never fails for
// empty inputs; the only error is ctx cancellation, checked between types.
func Match(ctx context.Context, types []registry.ScriptType, files []string) (*Result, error) {
	for _, t := range types {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		patterns := t.FileNames()
		if len(patterns) == 0 {
			continue
		}

		matches := matchType(patterns, t.RootFolder(), files)
		if len(matches) == 0 {
			continue
		}

		return &Result{
			Type:          t,
			Matches:       matches,
			RequiredFiles: distinctPaths(matches),
		}, nil
	}
	return emptyResult(), nil
}

// matchType evaluates every pattern of one script type, keeping the first
// matching entry per pattern.
func matchType(patterns []string, root string, files []string) []FileMatch {
	var matches []FileMatch
	for _, pattern := range patterns {
		if path, ok := pathmatch.FirstMatch(files, pattern, root); ok {
			matches = append(matches, FileMatch{Pattern: pattern, Path: path})
		}
	}
	return matches
}

// distinctPaths returns the matched entries without repeats, in order.
func distinctPaths(matches []FileMatch) []string {
	seen := make(map[string]bool, len(matches))
	paths := make([]string, 0, len(matches))
	for _, m := range matches {
		if !seen[m.Path] {
			seen[m.Path] = true
			paths = append(paths, m.Path)
		}
	}
	return paths
}
