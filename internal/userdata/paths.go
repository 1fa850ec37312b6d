package userdata

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/modforge-labs/modforge/internal/branding"
	"github.com/modforge-labs/modforge/internal/config"
)

// Permission constants.
const (
	DirPermNormal  os.FileMode = 0755
	FilePermNormal os.FileMode = 0644
	ExecPerm       os.FileMode = 0755
)

// HomeRoot returns the per-user directory. It honors MODFORGE_HOME and
// falls back to ~/.modforge.
func HomeRoot() string {
	return config.Dir()
}

// UserProvidersDir returns the optional per-user provider directory.
// It checks the MODFORGE_USER_PROVIDERS environment variable first, then
// the discovery.user_dir config key, then falls back to
// <home root>/scripttypes.
func UserProvidersDir() string {
	if v := os.Getenv(branding.EnvVar("USER_PROVIDERS")); v != "" {
		return v
	}
	if v := config.UserDir(); v != "" {
		return v
	}
	return filepath.Join(HomeRoot(), branding.ProvidersDir())
}

// ExecutableDir returns the directory holding the running binary, with
// symlinks resolved so a linked binary still finds its providers.
func ExecutableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locating executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}

// DefaultProvidersRoot returns the primary provider directory,
// <executable dir>/scripttypes.
func DefaultProvidersRoot() (string, error) {
	dir, err := ExecutableDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, branding.ProvidersDir()), nil
}
