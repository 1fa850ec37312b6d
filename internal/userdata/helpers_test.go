package userdata

import (
	"os"
	"path/filepath"
	"testing"
)

// withHome points MODFORGE_HOME at a fresh temp dir and returns it.
func withHome(t *testing.T) string {
	t.Helper()
	home := filepath.Join(t.TempDir(), "home")
	t.Setenv("MODFORGE_HOME", home)
	t.Setenv("MODFORGE_USER_PROVIDERS", "")
	return home
}

// writeProvider creates <base>/<dir>/scripttype.yaml and returns the
// provider directory.
func writeProvider(t *testing.T, base, dir, body string) string {
	t.Helper()
	providerDir := filepath.Join(base, dir)
	if err := os.MkdirAll(providerDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(providerDir, "scripttype.yaml"), []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return providerDir
}
