package format

import (
	"context"

	"github.com/modforge-labs/modforge/internal/logging"
	"github.com/modforge-labs/modforge/internal/registry"
	"github.com/rs/zerolog"
)

// Manager answers "which script type governs this archive" and "which
// entries does it need". Each call takes a snapshot from its Discoverer
// and then runs the matcher on a separate goroutine.
type Manager struct {
	discoverer registry.Discoverer
	logger     zerolog.Logger
}

// NewManager returns a Manager that takes snapshots from d.
func NewManager(d registry.Discoverer) *Manager {
	return &Manager{
		discoverer: d,
		logger:     logging.GetLogger("format"),
	}
}

// Resolve discovers script types and matches files against them.
// Discovery errors are returned unchanged. A cancelled ctx yields ctx.Err()
// and no result.
func (m *Manager) Resolve(ctx context.Context, files []string) (*Result, error) {
	reg, err := m.discoverer.Discover(ctx)
	if err != nil {
		return nil, err
	}

	type outcome struct {
		result *Result
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		res, err := Match(ctx, reg.Types(), files)
		done <- outcome{result: res, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case o := <-done:
		if o.err != nil {
			return nil, o.err
		}
		m.logger.Debug().
			Int("files", len(files)).
			Int("types", reg.Len()).
			Str("matched", o.result.TypeID()).
			Strs("required", o.result.RequiredFiles).
			Msg("Resolved script type")
		return o.result, nil
	}
}

// ResolveRequiredFiles returns the archive entries the matched script type
// needs, or an empty slice when nothing matches.
func (m *Manager) ResolveRequiredFiles(ctx context.Context, files []string) ([]string, error) {
	res, err := m.Resolve(ctx, files)
	if err != nil {
		return nil, err
	}
	return res.RequiredFiles, nil
}

// ResolveScriptType returns the matched script type, or nil when nothing matches.
func (m *Manager) ResolveScriptType(ctx context.Context, files []string) (registry.ScriptType, error) {
	res, err := m.Resolve(ctx, files)
	if err != nil {
		return nil, err
	}
	return res.Type, nil
}

// Identify asks each script type in registry order to identify the listing
// with its own detection and returns the first that accepts it, or nil.
// A provider whose identify fails is logged and skipped.
func (m *Manager) Identify(ctx context.Context, files []string) (registry.ScriptType, error) {
	reg, err := m.discoverer.Discover(ctx)
	if err != nil {
		return nil, err
	}

	for _, t := range reg.Types() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ok, err := t.Identify(ctx, files)
		if err != nil {
			m.logger.Warn().Err(err).Str("type", t.TypeID()).Msg("Identify failed, skipping script type")
			continue
		}
		if ok {
			return t, nil
		}
	}
	return nil, nil
}
