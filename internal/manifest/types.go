package manifest

// ScriptTypeManifest describes one script-type provider.
type ScriptTypeManifest struct {
	ID          string         `yaml:"id" json:"id"`
	Name        string         `yaml:"name" json:"name"`
	Version     string         `yaml:"version" json:"version"`
	Description string         `yaml:"description,omitempty" json:"description,omitempty"`
	Author      string         `yaml:"author,omitempty" json:"author,omitempty"`
	Root        string         `yaml:"root" json:"root"`
	FileNames   []string       `yaml:"file_names,omitempty" json:"file_names,omitempty"`
	Priority    int            `yaml:"priority,omitempty" json:"priority,omitempty"`
	HostVersion string         `yaml:"host_version,omitempty" json:"host_version,omitempty"`
	Identify    *IdentifyBlock `yaml:"identify,omitempty" json:"identify,omitempty"`
}

// IdentifyBlock points at an executable that decides whether an archive
// listing belongs to the script type.
type IdentifyBlock struct {
	Runtime string `yaml:"runtime" json:"runtime"`
	Entry   string `yaml:"entry" json:"entry"`
}

// Archive root conventions.
const (
	RootFomod = "fomod" // scripted installs
	RootOmod  = "omod"  // legacy convention
)

// KnownRoots contains every accepted value of the root field.
var KnownRoots = []string{RootFomod, RootOmod}

// Manifest file names, in lookup priority order.
const (
	FileName    = "scripttype.yaml"
	AltFileName = "scripttype.yml"
)

// FileNamesInPriority lists the accepted manifest file names.
var FileNamesInPriority = []string{FileName, AltFileName}

// HasFileSignature reports whether the manifest declares at least one
// non-empty filename pattern.
func (m *ScriptTypeManifest) HasFileSignature() bool {
	for _, p := range m.FileNames {
		if p != "" {
			return true
		}
	}
	return false
}
