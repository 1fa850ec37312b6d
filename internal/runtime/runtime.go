package runtime

import (
	"context"
	"fmt"

	"github.com/modforge-labs/modforge/internal/manifest"
)

// Runtime defines the interface for running a provider's identify entry point.
type Runtime interface {
	// Identify runs the entry point of the provider rooted at providerDir
	// against the archive listing files.
	Identify(ctx context.Context, providerDir string, m *manifest.ScriptTypeManifest, files []string) (*Output, error)
}

// Output captures the result of an identify run.
type Output struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Exit codes understood by Verdict.
const (
	ExitIdentified    = 0
	ExitNotIdentified = 1
)

// Verdict converts an identify exit code into a decision. Exit codes other
// than ExitIdentified and ExitNotIdentified are errors.
func (o *Output) Verdict() (bool, error) {
	switch o.ExitCode {
	case ExitIdentified:
		return true, nil
	case ExitNotIdentified:
		return false, nil
	default:
		return false, fmt.Errorf("identify exited with code %d: %s", o.ExitCode, o.Stderr)
	}
}

// Supported runtime identifiers.
const (
	RuntimeExec = "exec"
	RuntimeNode = "node"
)

// DispatchRuntime returns the appropriate Runtime implementation for the given
// runtime identifier. Returns an error-producing runtime for unknown values.
func DispatchRuntime(runtime string) Runtime {
	switch runtime {
	case RuntimeExec:
		return &ExecRuntime{}
	case RuntimeNode:
		return &NodeRuntime{}
	default:
		return &unknownRuntime{name: runtime}
	}
}

// unknownRuntime is returned when the runtime identifier is not recognized.
type unknownRuntime struct {
	name string
}

func (u *unknownRuntime) Identify(_ context.Context, _ string, _ *manifest.ScriptTypeManifest, _ []string) (*Output, error) {
	return nil, fmt.Errorf("unknown runtime %q: supported runtimes are %q and %q", u.name, RuntimeExec, RuntimeNode)
}
