package registry

import (
	"context"
)

// ScriptType is the capability set every script-type provider exposes.
type ScriptType interface {
	// TypeID returns the identifier, unique within one Registry.
	TypeID() string
	// FileNames returns the ordered filename patterns that signal this type
	// inside an archive. Empty means the type is never matched by name.
	FileNames() []string
	// RootFolder returns the archive root token (e.g., "fomod") that must
	// appear in the parent directory name of a matching entry.
	RootFolder() string
	// Identify reports whether the archive listing belongs to this type,
	// using whatever detection the provider implements.
	Identify(ctx context.Context, files []string) (bool, error)
}

// Source represents a directory to scan for providers.
type Source struct {
	Name     string // e.g., "app", "user"
	BasePath string // absolute path to the directory holding provider subdirectories
	Optional bool   // a missing optional source is skipped instead of failing discovery
}

// Discoverer produces Registry snapshots.
type Discoverer interface {
	Discover(ctx context.Context) (*Registry, error)
}
