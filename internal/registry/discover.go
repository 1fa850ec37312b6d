package registry

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/modforge-labs/modforge/internal/logging"
	"github.com/modforge-labs/modforge/internal/manifest"
)

// Scanner discovers providers from a list of sources. Every call to
// Discover rescans the sources from scratch.
type Scanner struct {
	Sources     []Source
	HostVersion string // checked against each manifest's host_version
}

// NewScanner returns a Scanner over sources in priority order.
func NewScanner(hostVersion string, sources ...Source) *Scanner {
	return &Scanner{Sources: sources, HostVersion: hostVersion}
}

// DiscoverScriptTypes scans a single discovery root.
func DiscoverScriptTypes(ctx context.Context, root, hostVersion string) (*Registry, error) {
	return NewScanner(hostVersion, Source{Name: "app", BasePath: root}).Discover(ctx)
}

// candidate is a loaded provider awaiting ordering.
type candidate struct {
	provider *Provider
	path     string
}

// Discover walks all sources and returns a snapshot ordered by manifest
// priority (higher first), then source order, then directory name.
// When two providers share a type id, the first in that order wins.
func (s *Scanner) Discover(ctx context.Context) (*Registry, error) {
	logger := logging.GetLogger("registry")
	done := logging.LogOperationStart(logger, "discover")
	defer done()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(s.Sources) == 0 {
		return nil, &DiscoveryError{Source: "none", Err: errors.New("no provider sources configured")}
	}

	var (
		candidates  []candidate
		diagnostics []Diagnostic
	)

	for _, src := range s.Sources {
		entries, diag, err := readSource(src)
		if err != nil {
			return nil, err
		}
		if diag != nil {
			diagnostics = append(diagnostics, *diag)
			continue
		}

		for _, entry := range entries {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			dir := filepath.Join(src.BasePath, entry.Name())
			if !isDir(dir, entry) {
				continue
			}

			manifestPath, ok := findManifest(dir)
			if !ok {
				logger.Trace().Str("dir", dir).Msg("Skipping directory without manifest")
				continue
			}

			m, err := manifest.Load(manifestPath, s.HostVersion)
			if err != nil {
				diagnostics = append(diagnostics, loadFailure(dir, manifestPath, err))
				continue
			}

			candidates = append(candidates, candidate{
				provider: NewProvider(m, dir, src.Name),
				path:     manifestPath,
			})
		}
	}

	// Stable sort keeps source order and lexical directory order within a priority.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].provider.Priority() > candidates[j].provider.Priority()
	})

	reg := &Registry{byID: make(map[string]ScriptType, len(candidates))}
	for _, c := range candidates {
		p := c.provider
		if existing, dup := reg.byID[p.TypeID()]; dup {
			cause := &ProviderLoadError{
				Dir:    p.Dir(),
				TypeID: p.TypeID(),
				Err:    fmt.Errorf("type id already provided by %s", existing.(*Provider).Dir()),
			}
			diagnostics = append(diagnostics, Diagnostic{
				Severity: SeverityError,
				Code:     CodeDuplicateTypeID,
				Message:  cause.Error(),
				Path:     c.path,
				Cause:    cause,
			})
			continue
		}

		if !p.manifest.HasFileSignature() && p.runtime == nil {
			diagnostics = append(diagnostics, Diagnostic{
				Severity: SeverityWarning,
				Code:     CodeNoFileSignature,
				Message:  fmt.Sprintf("script type %s declares neither file_names nor identify and can never match", p.TypeID()),
				Path:     c.path,
			})
		}

		reg.byID[p.TypeID()] = p
		reg.types = append(reg.types, p)
	}
	reg.diagnostics = diagnostics

	for _, d := range diagnostics {
		logger.Warn().
			Str("code", d.Code).
			Str("path", d.Path).
			Msg(d.Message)
	}
	logger.Debug().
		Int("types", reg.Len()).
		Int("diagnostics", len(diagnostics)).
		Strs("order", reg.IDs()).
		Msg("Script type discovery complete")

	return reg, nil
}

// readSource lists a source directory. A required source that cannot be
// read is a *DiscoveryError; an optional one yields a diagnostic, or nothing
// at all when it simply does not exist.
func readSource(src Source) ([]os.DirEntry, *Diagnostic, error) {
	entries, err := listDir(src.BasePath)
	if err == nil {
		return entries, nil, nil
	}

	if !src.Optional {
		return nil, nil, &DiscoveryError{Source: src.Name, Path: src.BasePath, Err: err}
	}
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil, nil
	}
	return nil, &Diagnostic{
		Severity: SeverityWarning,
		Code:     CodeSourceUnreadable,
		Message:  fmt.Sprintf("skipping %s source: %v", src.Name, err),
		Path:     src.BasePath,
		Cause:    err,
	}, nil
}

// listDir returns the entries of dir sorted by name.
func listDir(dir string) ([]os.DirEntry, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}
	return os.ReadDir(dir)
}

// isDir follows symlinks so linked provider directories are discovered.
func isDir(path string, entry os.DirEntry) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// findManifest returns the highest-priority manifest file in dir.
func findManifest(dir string) (string, bool) {
	for _, name := range manifest.FileNamesInPriority {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}

// loadFailure converts a manifest load error into a diagnostic.
func loadFailure(dir, manifestPath string, err error) Diagnostic {
	code := CodeLoadFailed
	var invalid *manifest.InvalidError
	switch {
	case errors.As(err, &invalid):
		code = CodeInvalidManifest
	case errors.Is(err, manifest.ErrIncompatibleHost):
		code = CodeIncompatibleHost
	}

	typeID := ""
	if m, parseErr := manifest.Parse(manifestPath); parseErr == nil {
		typeID = m.ID
	}

	cause := &ProviderLoadError{Dir: dir, TypeID: typeID, Err: err}
	return Diagnostic{
		Severity: SeverityError,
		Code:     code,
		Message:  cause.Error(),
		Path:     manifestPath,
		Cause:    cause,
	}
}
