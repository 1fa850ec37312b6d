package runtime

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/modforge-labs/modforge/internal/manifest"
)

// NodeRuntime runs Node.js identify scripts.
type NodeRuntime struct{}

// Identify executes `node <entry> identify` with the listing on stdin.
func (n *NodeRuntime) Identify(ctx context.Context, providerDir string, m *manifest.ScriptTypeManifest, files []string) (*Output, error) {
	nodeBin, err := exec.LookPath("node")
	if err != nil {
		return nil, fmt.Errorf("node runtime requires Node.js: %w", err)
	}

	entry, err := resolveEntry(providerDir, m)
	if err != nil {
		return nil, err
	}

	return runIdentify(exec.CommandContext(ctx, nodeBin, entry, "identify"), providerDir, m, files)
}
