package runtime

import (
	"context"
	"os/exec"

	"github.com/modforge-labs/modforge/internal/manifest"
)

// ExecRuntime runs the identify entry point directly as an executable.
type ExecRuntime struct{}

// Identify executes <providerDir>/<entry> with the listing on stdin.
func (e *ExecRuntime) Identify(ctx context.Context, providerDir string, m *manifest.ScriptTypeManifest, files []string) (*Output, error) {
	entry, err := resolveEntry(providerDir, m)
	if err != nil {
		return nil, err
	}
	return runIdentify(exec.CommandContext(ctx, entry), providerDir, m, files)
}
