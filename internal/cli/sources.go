package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/modforge-labs/modforge/internal/config"
	"github.com/modforge-labs/modforge/internal/format"
	"github.com/modforge-labs/modforge/internal/registry"
	"github.com/modforge-labs/modforge/internal/userdata"
	"github.com/spf13/cobra"
)

// providerSources returns the sources to scan, in order: the primary
// directory (--root, then discovery.root, then next to the binary) and the
// optional user directory.
func providerSources() ([]registry.Source, error) {
	root := rootDir
	if root == "" {
		root = config.DiscoveryRoot()
	}
	if root == "" {
		var err error
		if root, err = userdata.DefaultProvidersRoot(); err != nil {
			return nil, fmt.Errorf("resolving provider root: %w", err)
		}
	}

	sources := []registry.Source{{Name: "app", BasePath: root}}
	if noUserTypes {
		return sources, nil
	}

	userDir := userdata.UserProvidersDir()
	if filepath.Clean(userDir) != filepath.Clean(root) {
		sources = append(sources, registry.Source{Name: "user", BasePath: userDir, Optional: true})
	}
	return sources, nil
}

// hostVersion is the version manifests' host_version constraints are checked against.
func hostVersion() string {
	return buildVersion
}

// newDiscoverer returns a fresh-scan Discoverer, or a caching one when
// --cache or discovery.cache is set.
func newDiscoverer() (registry.Discoverer, error) {
	sources, err := providerSources()
	if err != nil {
		return nil, err
	}
	scanner := registry.NewScanner(hostVersion(), sources...)
	if useCache || config.CacheEnabled() {
		return registry.NewCache(scanner), nil
	}
	return scanner, nil
}

func newManager() (*format.Manager, error) {
	d, err := newDiscoverer()
	if err != nil {
		return nil, err
	}
	return format.NewManager(d), nil
}

// commandContext returns the command's context, or Background when the
// command was run without one.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// discoveryFailed labels discovery errors so they are never mistaken for
// "no recognized installer format".
func discoveryFailed(err error) error {
	if errors.Is(err, registry.ErrDiscovery) {
		return fmt.Errorf("discovery failed: %w", err)
	}
	return err
}
