package cli

import (
	"fmt"
	"path/filepath"
	"regexp"
	"slices"

	"github.com/modforge-labs/modforge/internal/manifest"
	"github.com/modforge-labs/modforge/internal/runtime"
	"github.com/modforge-labs/modforge/internal/scaffold"
	"github.com/modforge-labs/modforge/internal/userdata"
	"github.com/spf13/cobra"
)

var idPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

var (
	newRoot      string
	newFileNames []string
	newRuntime   string
	newName      string
	newOutputDir string
)

var newCmd = &cobra.Command{
	Use:   "new <id>",
	Short: "Scaffold a new script-type provider",
	Long: `Create a provider directory with a scripttype.yaml manifest and, with
--runtime, an identify entry point. The provider is written to the user
provider directory unless --output-dir is given.`,
	Example: `  modforge new fomod --root fomod --file-name ModuleConfig.xml --file-name script.cs
  modforge new legacy-omod --root omod --runtime exec --output-dir ./legacy-omod`,
	Args: cobra.ExactArgs(1),
	RunE: runNew,
}

func init() {
	newCmd.Flags().StringVar(&newRoot, "root", manifest.RootFomod, "Archive root token (fomod or omod)")
	newCmd.Flags().StringArrayVar(&newFileNames, "file-name", nil, "Filename pattern (repeatable)")
	newCmd.Flags().StringVar(&newRuntime, "runtime", "", "Identify entry point runtime (exec or node)")
	newCmd.Flags().StringVar(&newName, "name", "", "Display name (default: the id)")
	newCmd.Flags().StringVar(&newOutputDir, "output-dir", "", "Output directory (default: <user providers dir>/<id>)")
	rootCmd.AddCommand(newCmd)
}

func runNew(cmd *cobra.Command, args []string) error {
	id := args[0]
	if !idPattern.MatchString(id) {
		return fmt.Errorf("invalid id %q: must start with a letter or digit and contain only letters, digits, '.', '_' or '-'", id)
	}
	if !slices.Contains(manifest.KnownRoots, newRoot) {
		return fmt.Errorf("--root must be one of %v, got %q", manifest.KnownRoots, newRoot)
	}
	if newRuntime != "" && newRuntime != runtime.RuntimeExec && newRuntime != runtime.RuntimeNode {
		return fmt.Errorf("--runtime must be %q or %q, got %q", runtime.RuntimeExec, runtime.RuntimeNode, newRuntime)
	}
	for _, f := range newFileNames {
		if f == "" {
			return fmt.Errorf("--file-name must not be empty")
		}
	}

	data := scaffold.NewScaffoldData(id, newRoot, newFileNames, newRuntime)
	if newName != "" {
		data.Name = newName
	}

	outDir := newOutputDir
	if outDir == "" {
		outDir = filepath.Join(userdata.UserProvidersDir(), id)
	}

	result, err := scaffold.Generate(data, outDir)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Created script type %s in %s\n", id, result.OutputDir)
	for _, f := range result.Files {
		fmt.Fprintf(w, "  %s\n", f)
	}
	for _, warning := range result.Warnings {
		fmt.Fprintf(w, "  warning: %s\n", warning)
	}
	if len(newFileNames) == 0 && newRuntime == "" {
		fmt.Fprintln(w, "  note: no --file-name or --runtime given; this type can never match until one is added")
	}
	return nil
}
