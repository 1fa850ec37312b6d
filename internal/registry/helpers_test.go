package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeProvider creates <base>/<dir>/scripttype.yaml with the given body.
func writeProvider(t *testing.T, base, dir, body string) string {
	t.Helper()
	providerDir := filepath.Join(base, dir)
	if err := os.MkdirAll(providerDir, 0755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(providerDir, "scripttype.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// manifestYAML renders a minimal valid manifest.
func manifestYAML(id, root string, priority int, patterns ...string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "id: %s\nname: %s\nversion: 1.0.0\nroot: %s\n", id, id, root)
	if priority != 0 {
		fmt.Fprintf(&b, "priority: %d\n", priority)
	}
	if len(patterns) > 0 {
		b.WriteString("file_names:\n")
		for _, p := range patterns {
			fmt.Fprintf(&b, "  - %q\n", p)
		}
	}
	return b.String()
}
