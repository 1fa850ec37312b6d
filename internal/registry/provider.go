package registry

import (
	"context"

	"github.com/modforge-labs/modforge/internal/manifest"
	"github.com/modforge-labs/modforge/internal/pathmatch"
	"github.com/modforge-labs/modforge/internal/runtime"
)

// Provider is a ScriptType loaded from a scripttype.yaml manifest.
type Provider struct {
	manifest *manifest.ScriptTypeManifest
	dir      string
	source   string
	runtime  runtime.Runtime // nil when the manifest has no identify block
}

// NewProvider wraps a decoded manifest found in dir.
func NewProvider(m *manifest.ScriptTypeManifest, dir, source string) *Provider {
	p := &Provider{manifest: m, dir: dir, source: source}
	if m.Identify != nil {
		p.runtime = runtime.DispatchRuntime(m.Identify.Runtime)
	}
	return p
}

func (p *Provider) TypeID() string     { return p.manifest.ID }
func (p *Provider) RootFolder() string { return p.manifest.Root }

func (p *Provider) FileNames() []string {
	if len(p.manifest.FileNames) == 0 {
		return nil
	}
	out := make([]string, len(p.manifest.FileNames))
	copy(out, p.manifest.FileNames)
	return out
}

// Name returns the display name from the manifest.
func (p *Provider) Name() string { return p.manifest.Name }

// Version returns the provider version from the manifest.
func (p *Provider) Version() string { return p.manifest.Version }

// Description returns the manifest description.
func (p *Provider) Description() string { return p.manifest.Description }

// Priority returns the manifest priority; higher sorts first.
func (p *Provider) Priority() int { return p.manifest.Priority }

// Dir returns the provider directory.
func (p *Provider) Dir() string { return p.dir }

// Source returns the name of the source the provider was found in.
func (p *Provider) Source() string { return p.source }

// IdentifyEntry returns the declared identify runtime and entry path
// relative to Dir, or empty strings when the provider has no identify block.
func (p *Provider) IdentifyEntry() (runtimeName, entry string) {
	if p.manifest.Identify == nil {
		return "", ""
	}
	return p.manifest.Identify.Runtime, p.manifest.Identify.Entry
}

// Identify runs the provider's identify entry point when one is declared.
// Otherwise it reports whether any filename pattern matches under the
// provider's root folder.
func (p *Provider) Identify(ctx context.Context, files []string) (bool, error) {
	if p.runtime == nil {
		return matchesSignature(p, files), nil
	}
	out, err := p.runtime.Identify(ctx, p.dir, p.manifest, files)
	if err != nil {
		return false, err
	}
	return out.Verdict()
}

// StaticType is an in-memory ScriptType, used for script types compiled
// into the host and in tests.
type StaticType struct {
	ID       string
	Patterns []string
	Root     string
}

func (s *StaticType) TypeID() string      { return s.ID }
func (s *StaticType) FileNames() []string { return s.Patterns }
func (s *StaticType) RootFolder() string  { return s.Root }

// Identify reports whether any pattern matches under the root folder.
func (s *StaticType) Identify(_ context.Context, files []string) (bool, error) {
	return matchesSignature(s, files), nil
}

func matchesSignature(t ScriptType, files []string) bool {
	root := t.RootFolder()
	for _, pattern := range t.FileNames() {
		if _, ok := pathmatch.FirstMatch(files, pattern, root); ok {
			return true
		}
	}
	return false
}
