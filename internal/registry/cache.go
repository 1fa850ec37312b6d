package registry

import (
	"context"
	"maps"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/modforge-labs/modforge/internal/manifest"
)

// Cache is a Discoverer that reuses the last snapshot while the scanned
// sources are unchanged. Every call still lists the sources, so a required
// source that disappears fails that call just as a fresh scan would.
type Cache struct {
	scanner *Scanner

	mu          sync.Mutex
	snapshot    *Registry
	fingerprint map[string]int64
	cachedAt    time.Time
}

// NewCache wraps scanner with snapshot reuse.
func NewCache(scanner *Scanner) *Cache {
	return &Cache{scanner: scanner}
}

// Discover returns the cached snapshot if no source directory, provider
// directory, or manifest file has changed since it was built, and rescans
// otherwise.
func (c *Cache) Discover(ctx context.Context) (*Registry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	fp, err := c.currentFingerprint()
	if err != nil {
		c.invalidateLocked()
		return nil, err
	}
	if c.snapshot != nil && maps.Equal(fp, c.fingerprint) {
		return c.snapshot, nil
	}

	reg, err := c.scanner.Discover(ctx)
	if err != nil {
		c.invalidateLocked()
		return nil, err
	}

	c.snapshot = reg
	c.fingerprint = fp
	c.cachedAt = time.Now()
	return reg, nil
}

// Invalidate drops the cached snapshot; the next Discover rescans.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidateLocked()
}

// CachedAt returns when the current snapshot was built, or the zero time.
func (c *Cache) CachedAt() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cachedAt
}

func (c *Cache) invalidateLocked() {
	c.snapshot = nil
	c.fingerprint = nil
	c.cachedAt = time.Time{}
}

// currentFingerprint records modification times of each source directory,
// its immediate subdirectories, and their manifest files. Editing a manifest
// in place does not touch its directory's mtime, hence the file entries.
func (c *Cache) currentFingerprint() (map[string]int64, error) {
	fp := make(map[string]int64)
	for _, src := range c.scanner.Sources {
		entries, _, err := readSource(src)
		if err != nil {
			return nil, err
		}
		record(fp, src.BasePath)

		for _, entry := range entries {
			dir := filepath.Join(src.BasePath, entry.Name())
			if !isDir(dir, entry) {
				continue
			}
			record(fp, dir)
			for _, name := range manifest.FileNamesInPriority {
				record(fp, filepath.Join(dir, name))
			}
		}
	}
	return fp, nil
}

// record stores path's mtime; missing paths are omitted so their later
// appearance changes the fingerprint.
func record(fp map[string]int64, path string) {
	if info, err := os.Stat(path); err == nil {
		fp[path] = info.ModTime().UnixNano()
	}
}
