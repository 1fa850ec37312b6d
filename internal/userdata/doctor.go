package userdata

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/modforge-labs/modforge/internal/config"
	"github.com/modforge-labs/modforge/internal/platform"
	"github.com/modforge-labs/modforge/internal/registry"
	"github.com/modforge-labs/modforge/internal/runtime"
)

// DoctorOptions selects what Doctor inspects.
type DoctorOptions struct {
	Sources     []registry.Source
	HostVersion string
	Fix         bool // create missing user dirs, drop dangling links, chmod entry points
}

// lookPath is swapped in tests.
var lookPath = exec.LookPath

// Doctor validates the user directory, every provider source, and every
// discovered provider, printing one line per check to w. It returns the
// number of problems still present after any fixes. Discovery failure is
// reported as a problem, not returned as an error.
func Doctor(ctx context.Context, w io.Writer, opts DoctorOptions) (int, error) {
	problems := 0

	fmt.Fprintln(w, "User directory:")
	problems += checkDirExists(w, HomeRoot(), opts.Fix)
	problems += checkDirExists(w, UserProvidersDir(), opts.Fix)
	checkFileExists(w, config.FilePath())

	fmt.Fprintln(w, "Sources:")
	for _, src := range opts.Sources {
		problems += checkSource(w, src, opts.Fix)
	}

	fmt.Fprintln(w, "Providers:")
	reg, err := registry.NewScanner(opts.HostVersion, opts.Sources...).Discover(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return problems, err
		}
		fmt.Fprintf(w, "  [FAIL] discovery failed: %v\n", err)
		return problems + 1, nil
	}

	for _, t := range reg.Types() {
		p, ok := t.(*registry.Provider)
		if !ok {
			continue
		}
		problems += checkProvider(w, p, opts.Fix)
	}
	for _, d := range reg.Diagnostics() {
		tag := "WARN"
		if d.Severity == registry.SeverityError {
			tag = "FAIL"
			problems++
		}
		fmt.Fprintf(w, "  [%s] %s: %s\n", tag, d.Code, d.Message)
	}
	if reg.Len() == 0 {
		fmt.Fprintln(w, "  [WARN] no script types discovered")
	}
	return problems, nil
}

// checkSource reports a source directory and any dangling links in it.
func checkSource(w io.Writer, src registry.Source, fix bool) int {
	info, err := os.Stat(src.BasePath)
	switch {
	case errors.Is(err, fs.ErrNotExist) && src.Optional:
		fmt.Fprintf(w, "  [SKIP] %s source %s does not exist (optional)\n", src.Name, src.BasePath)
		return 0
	case err != nil:
		fmt.Fprintf(w, "  [FAIL] %s source %s: %v\n", src.Name, src.BasePath, err)
		return 1
	case !info.IsDir():
		fmt.Fprintf(w, "  [FAIL] %s source %s is not a directory\n", src.Name, src.BasePath)
		return 1
	}
	fmt.Fprintf(w, "  [ OK ] %s source %s\n", src.Name, src.BasePath)

	links, err := ListLinks(src.BasePath)
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %v\n", err)
		return 1
	}
	problems := 0
	for _, l := range links {
		if !l.Dangling {
			continue
		}
		fmt.Fprintf(w, "  [WARN] %s -> %s (target does not exist)\n", l.Path, l.Target)
		if fix {
			if rmErr := platform.RemoveLink(l.Path); rmErr != nil {
				fmt.Fprintf(w, "  [FAIL] Could not remove %s: %v\n", l.Path, rmErr)
				problems++
				continue
			}
			fmt.Fprintf(w, "  [FIX ] Removed %s\n", l.Path)
			continue
		}
		problems++
	}
	return problems
}

// checkProvider verifies a provider's identify entry point can run.
func checkProvider(w io.Writer, p *registry.Provider, fix bool) int {
	rt, entry := p.IdentifyEntry()
	if rt == "" {
		fmt.Fprintf(w, "  [ OK ] %s (%s) signature only\n", p.TypeID(), p.Source())
		return 0
	}

	path := filepath.Join(p.Dir(), filepath.FromSlash(entry))
	info, err := os.Stat(path)
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %s: identify entry %s: %v\n", p.TypeID(), entry, err)
		return 1
	}

	switch rt {
	case runtime.RuntimeNode:
		if _, err := lookPath("node"); err != nil {
			fmt.Fprintf(w, "  [FAIL] %s: node runtime requires Node.js on PATH\n", p.TypeID())
			return 1
		}
	case runtime.RuntimeExec:
		if !platform.IsExecutable(info.Mode()) {
			fmt.Fprintf(w, "  [WARN] %s: %s is not executable\n", p.TypeID(), path)
			if !fix {
				return 1
			}
			if chErr := platform.Chmod(path, ExecPerm); chErr != nil {
				fmt.Fprintf(w, "  [FAIL] Could not fix permissions on %s: %v\n", path, chErr)
				return 1
			}
			fmt.Fprintf(w, "  [FIX ] Made %s executable\n", path)
		}
	}
	fmt.Fprintf(w, "  [ OK ] %s (%s) identify via %s\n", p.TypeID(), p.Source(), rt)
	return 0
}

func checkDirExists(w io.Writer, path string, fix bool) int {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(w, "  [MISS] %s does not exist\n", path)
		if !fix {
			return 0
		}
		if mkErr := os.MkdirAll(path, DirPermNormal); mkErr != nil {
			fmt.Fprintf(w, "  [FAIL] Could not create %s: %v\n", path, mkErr)
			return 1
		}
		fmt.Fprintf(w, "  [FIX ] Created %s\n", path)
		return 0
	}
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %s: %v\n", path, err)
		return 1
	}
	if !info.IsDir() {
		fmt.Fprintf(w, "  [FAIL] %s exists but is not a directory\n", path)
		return 1
	}
	fmt.Fprintf(w, "  [ OK ] %s exists\n", path)
	return 0
}

func checkFileExists(w io.Writer, path string) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(w, "  [MISS] %s does not exist (defaults apply)\n", path)
		return
	}
	fmt.Fprintf(w, "  [ OK ] %s exists\n", path)
}
