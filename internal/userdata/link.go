package userdata

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/modforge-labs/modforge/internal/manifest"
	"github.com/modforge-labs/modforge/internal/platform"
)

// Link is a provider directory linked into the user provider directory.
type Link struct {
	Name     string // link name, the provider's type id
	Path     string // the link itself
	Target   string // where it points
	Dangling bool   // target no longer exists
}

// LinkProvider links the provider directory dir into the user provider
// directory under its type id, so discovery picks it up without copying.
// The manifest must pass schema validation.
func LinkProvider(dir string) (*Link, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", dir, err)
	}

	manifestPath, err := findManifest(abs)
	if err != nil {
		return nil, err
	}
	result, err := manifest.ValidateFile(manifestPath)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		return nil, &manifest.InvalidError{Path: manifestPath, Issues: result.Issues}
	}
	m, err := manifest.Parse(manifestPath)
	if err != nil {
		return nil, err
	}

	usersDir := UserProvidersDir()
	if err := os.MkdirAll(usersDir, DirPermNormal); err != nil {
		return nil, fmt.Errorf("creating %s: %w", usersDir, err)
	}

	linkPath := filepath.Join(usersDir, m.ID)
	if _, err := os.Lstat(linkPath); err == nil {
		return nil, fmt.Errorf("%s already exists; unlink it first", linkPath)
	}
	if err := platform.LinkDir(abs, linkPath); err != nil {
		return nil, err
	}
	return &Link{Name: m.ID, Path: linkPath, Target: abs}, nil
}

// UnlinkProvider removes the link named id from the user provider
// directory. Real directories are left alone.
func UnlinkProvider(id string) (string, error) {
	linkPath := filepath.Join(UserProvidersDir(), id)
	if err := platform.RemoveLink(linkPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("no linked provider named %q", id)
		}
		return "", err
	}
	return linkPath, nil
}

// ListLinks returns the links in dir sorted by name. A missing dir has none.
func ListLinks(dir string) ([]Link, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	var links []Link
	for _, e := range entries {
		path := filepath.Join(dir, e.Name())
		target, err := platform.ReadLink(path)
		if err != nil {
			continue
		}
		links = append(links, Link{
			Name:     e.Name(),
			Path:     path,
			Target:   target,
			Dangling: platform.IsDanglingLink(path),
		})
	}
	return links, nil
}

func findManifest(dir string) (string, error) {
	for _, name := range manifest.FileNamesInPriority {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", fmt.Errorf("no %s found in %s", manifest.FileName, dir)
}
