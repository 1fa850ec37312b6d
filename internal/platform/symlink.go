package platform

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"
)

// ErrNotLink is returned when a path expected to be a symlink is not one.
var ErrNotLink = errors.New("not a symbolic link")

// LinkDir creates a symbolic link at link pointing to the directory target.
// On Windows this requires Developer Mode or an elevated shell; the error
// says so instead of silently copying the tree.
func LinkDir(target, link string) error {
	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("link target: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("link target %s is not a directory", target)
	}

	if err := os.Symlink(target, link); err != nil {
		if runtime.GOOS == "windows" {
			return fmt.Errorf("creating symlink %s (enable Developer Mode or run elevated): %w", link, err)
		}
		return fmt.Errorf("creating symlink %s: %w", link, err)
	}
	return nil
}

// IsLink reports whether path itself is a symbolic link.
func IsLink(path string) bool {
	info, err := os.Lstat(path)
	return err == nil && info.Mode()&fs.ModeSymlink != 0
}

// ReadLink returns the target of the symlink at path.
func ReadLink(path string) (string, error) {
	if !IsLink(path) {
		return "", fmt.Errorf("%s: %w", path, ErrNotLink)
	}
	return os.Readlink(path)
}

// RemoveLink removes the symlink at path. It refuses to remove anything
// that is not a symlink so a real provider directory is never deleted.
func RemoveLink(path string) error {
	if _, err := os.Lstat(path); err != nil {
		return err
	}
	if !IsLink(path) {
		return fmt.Errorf("%s: %w", path, ErrNotLink)
	}
	return os.Remove(path)
}

// IsDanglingLink reports whether path is a symlink whose target is gone.
func IsDanglingLink(path string) bool {
	if !IsLink(path) {
		return false
	}
	_, err := os.Stat(path)
	return errors.Is(err, fs.ErrNotExist)
}
