package scaffold

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/modforge-labs/modforge/internal/manifest"
	"github.com/modforge-labs/modforge/internal/platform"
	"github.com/modforge-labs/modforge/internal/runtime"
)

// Template set names.
const (
	SetSignature = "signature"
	setCommon    = "common"
)

// executables are generated files that need the execute bit.
var executables = map[string]bool{"identify": true}

// ScaffoldData holds all template variables available to scaffold templates.
type ScaffoldData struct {
	ID          string   // e.g., "fomod"
	Name        string   // display name, defaults to ID
	Description string   // Human-readable description
	Version     string   // Semver, e.g., "0.1.0"
	Root        string   // archive root token, "fomod" or "omod"
	FileNames   []string // filename patterns
	Runtime     string   // "", "exec" or "node"
	Entry       string   // Derived: identify entry point for Runtime
}

// Result holds the outcome of a scaffold generation.
type Result struct {
	OutputDir string
	Files     []string
	Warnings  []string
}

// NewScaffoldData creates a ScaffoldData with derived fields populated.
func NewScaffoldData(id, root string, fileNames []string, runtimeName string) *ScaffoldData {
	d := &ScaffoldData{
		ID:        id,
		Name:      id,
		Version:   "0.1.0",
		Root:      root,
		FileNames: fileNames,
		Runtime:   runtimeName,
	}
	d.Description = fmt.Sprintf("%s installer script type", id)

	switch runtimeName {
	case runtime.RuntimeExec:
		d.Entry = "identify"
	case runtime.RuntimeNode:
		d.Entry = "identify.mjs"
	}
	return d
}

// templateSetName returns the embedded directory name for a runtime.
func templateSetName(runtimeName string) string {
	if runtimeName == "" {
		return SetSignature
	}
	return runtimeName
}

// Generate creates a new provider directory from scaffolding templates and
// validates the generated manifest. Schema problems are returned as
// warnings; the files are still written.
func Generate(data *ScaffoldData, outputDir string) (*Result, error) {
	setName := templateSetName(data.Runtime)
	setDir := path.Join("scaffolds", setName)

	// Verify template set exists in embedded FS.
	setEntries, err := fs.ReadDir(scaffoldFS, setDir)
	if err != nil {
		return nil, fmt.Errorf("template set %q not found: %w", setName, err)
	}
	commonDir := path.Join("scaffolds", setCommon)
	commonEntries, err := fs.ReadDir(scaffoldFS, commonDir)
	if err != nil {
		return nil, fmt.Errorf("reading common templates: %w", err)
	}

	// Create output directory.
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	// Check for existing files to prevent accidental overwrites.
	existingEntries, err := os.ReadDir(outputDir)
	if err == nil && len(existingEntries) > 0 {
		return nil, fmt.Errorf("output directory %s is not empty; remove existing files first", outputDir)
	}

	result := &Result{
		OutputDir: outputDir,
	}

	render := func(dir string, entries []fs.DirEntry) error {
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			outName, err := renderTemplate(path.Join(dir, entry.Name()), outputDir, data)
			if err != nil {
				return err
			}
			result.Files = append(result.Files, outName)
		}
		return nil
	}
	if err := render(commonDir, commonEntries); err != nil {
		return nil, err
	}
	if err := render(setDir, setEntries); err != nil {
		return nil, err
	}

	// Validate the generated manifest against JSON Schema.
	manifestFile := filepath.Join(outputDir, manifest.FileName)
	valResult, valErr := manifest.ValidateFile(manifestFile)
	if valErr != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Could not validate manifest: %v", valErr))
	} else if !valResult.Valid {
		for _, issue := range valResult.Issues {
			result.Warnings = append(result.Warnings, issue.String())
		}
	}

	return result, nil
}

// renderTemplate executes one embedded template into outputDir and returns
// the generated file name.
func renderTemplate(tmplPath, outputDir string, data *ScaffoldData) (string, error) {
	tmplBytes, err := fs.ReadFile(scaffoldFS, tmplPath)
	if err != nil {
		return "", fmt.Errorf("reading template %s: %w", tmplPath, err)
	}

	// Strip .tmpl extension for the output filename.
	outName := strings.TrimSuffix(path.Base(tmplPath), ".tmpl")
	outPath := filepath.Join(outputDir, outName)

	tmpl, err := template.New(outName).Parse(string(tmplBytes))
	if err != nil {
		return "", fmt.Errorf("parsing template %s: %w", tmplPath, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing template %s: %w", tmplPath, err)
	}

	if err := os.WriteFile(outPath, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("writing %s: %w", outPath, err)
	}
	if executables[outName] {
		if err := platform.Chmod(outPath, 0755); err != nil {
			return "", fmt.Errorf("setting permissions on %s: %w", outPath, err)
		}
	}
	return outName, nil
}
