package userdata

import (
	"fmt"
	"io"
	"os"

	"github.com/modforge-labs/modforge/internal/config"
	"github.com/modforge-labs/modforge/internal/platform"
)

// Default content for config.yaml.
const defaultConfigContent = `discovery:
  # root: /path/to/scripttypes
  cache: false
log:
  level: 0
`

// InitUser creates the home directory, the user provider directory and a
// default config file. It prints progress messages to w; existing items are
// skipped with a message.
func InitUser(w io.Writer) error {
	if err := ensureDir(w, HomeRoot(), DirPermNormal); err != nil {
		return err
	}
	if err := ensureDir(w, UserProvidersDir(), DirPermNormal); err != nil {
		return err
	}
	return ensureFile(w, config.FilePath(), defaultConfigContent, FilePermNormal)
}

// ensureDir creates a directory if it doesn't exist.
func ensureDir(w io.Writer, path string, perm os.FileMode) error {
	if info, err := os.Stat(path); err == nil {
		if info.IsDir() {
			fmt.Fprintf(w, "  [SKIP] %s already exists\n", path)
			return nil
		}
		return fmt.Errorf("%s exists but is not a directory", path)
	}

	if err := os.MkdirAll(path, perm); err != nil {
		return fmt.Errorf("creating directory %s: %w", path, err)
	}
	// MkdirAll may not apply exact perms if parent dirs needed creation.
	if err := platform.Chmod(path, perm); err != nil {
		return fmt.Errorf("setting permissions on %s: %w", path, err)
	}
	fmt.Fprintf(w, "  [ OK ] Created %s\n", path)
	return nil
}

// ensureFile creates a file with content if it doesn't exist.
func ensureFile(w io.Writer, path, content string, perm os.FileMode) error {
	if _, err := os.Stat(path); err == nil {
		fmt.Fprintf(w, "  [SKIP] %s already exists\n", path)
		return nil
	}

	if err := os.WriteFile(path, []byte(content), perm); err != nil {
		return fmt.Errorf("creating file %s: %w", path, err)
	}
	fmt.Fprintf(w, "  [ OK ] Created %s\n", path)
	return nil
}
