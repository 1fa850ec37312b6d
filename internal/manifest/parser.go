package manifest

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// Parse reads a manifest file and returns the decoded manifest.
// It does not validate; see Validate and Load.
func Parse(path string) (*ScriptTypeManifest, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return ParseBytes(data, path)
}

// ParseBytes decodes manifest YAML. path is used only in error messages.
func ParseBytes(data []byte, path string) (*ScriptTypeManifest, error) {
	var m ScriptTypeManifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return &m, nil
}

// Load reads, schema-validates, and decodes a manifest, then checks it
// against hostVersion. Schema violations are reported as a single error
// listing every issue.
func Load(path, hostVersion string) (*ScriptTypeManifest, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	result, err := Validate(data)
	if err != nil {
		return nil, fmt.Errorf("validating manifest %s: %w", path, err)
	}
	if !result.Valid {
		return nil, &InvalidError{Path: path, Issues: result.Issues}
	}

	m, err := ParseBytes(data, path)
	if err != nil {
		return nil, err
	}

	if err := CheckCompatibility(m, hostVersion); err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}
	return m, nil
}

// readFile reads the contents of a file at the given path.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}
