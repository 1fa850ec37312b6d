package runtime

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/modforge-labs/modforge/internal/branding"
	"github.com/modforge-labs/modforge/internal/manifest"
)

// resolveEntry returns the absolute path of the manifest's identify entry,
// refusing entries that escape the provider directory.
func resolveEntry(providerDir string, m *manifest.ScriptTypeManifest) (string, error) {
	if m == nil || m.Identify == nil || m.Identify.Entry == "" {
		return "", fmt.Errorf("provider in %s declares no identify entry", providerDir)
	}

	entry := filepath.Join(providerDir, filepath.FromSlash(m.Identify.Entry))
	rel, err := filepath.Rel(providerDir, entry)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("identify entry %q escapes provider directory %s", m.Identify.Entry, providerDir)
	}

	if _, err := os.Stat(entry); err != nil {
		return "", fmt.Errorf("identify entry point not found at %s: %w", entry, err)
	}
	return entry, nil
}

// runIdentify executes cmd with the listing on stdin and captures its output.
// A non-zero exit is reported through Output.ExitCode, not as an error.
func runIdentify(cmd *exec.Cmd, providerDir string, m *manifest.ScriptTypeManifest, files []string) (*Output, error) {
	cmd.Dir = providerDir
	cmd.Env = buildEnv(providerDir, m)
	cmd.Stdin = strings.NewReader(listingInput(files))

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	err := cmd.Run()

	output := &Output{
		Stdout: stdoutBuf.String(),
		Stderr: stderrBuf.String(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			output.ExitCode = exitErr.ExitCode()
			return output, nil
		}
		return output, fmt.Errorf("executing identify for %s: %w", m.ID, err)
	}

	return output, nil
}

// listingInput renders the listing one path per line.
func listingInput(files []string) string {
	if len(files) == 0 {
		return ""
	}
	return strings.Join(files, "\n") + "\n"
}

// buildEnv inherits the current process environment and adds provider-specific variables.
func buildEnv(providerDir string, m *manifest.ScriptTypeManifest) []string {
	env := os.Environ()
	env = setEnv(env, branding.EnvVar("PROVIDER_DIR"), providerDir)
	env = setEnv(env, branding.EnvVar("TYPE_ID"), m.ID)
	env = setEnv(env, branding.EnvVar("ROOT_FOLDER"), m.Root)
	return env
}

// setEnv sets or replaces an environment variable in the env slice.
func setEnv(env []string, key, value string) []string {
	prefix := key + "="
	for i, e := range env {
		if strings.HasPrefix(e, prefix) {
			env[i] = prefix + value
			return env
		}
	}
	return append(env, prefix+value)
}
