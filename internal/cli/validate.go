package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/modforge-labs/modforge/internal/manifest"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <scripttype.yaml|provider-dir>...",
	Short: "Validate provider manifests",
	Long: `Validate one or more scripttype.yaml manifests against the manifest schema
and check their host_version constraint against this binary.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()
	failed := 0

	for _, arg := range args {
		path, err := manifestPath(arg)
		if err != nil {
			fmt.Fprintf(w, "FAIL %s\n  %v\n", arg, err)
			failed++
			continue
		}

		_, err = manifest.Load(path, hostVersion())
		if err == nil {
			fmt.Fprintf(w, "ok   %s\n", path)
			continue
		}

		failed++
		fmt.Fprintf(w, "FAIL %s\n", path)
		var invalid *manifest.InvalidError
		if errors.As(err, &invalid) {
			for _, issue := range invalid.Issues {
				fmt.Fprintf(w, "  %s\n", issue)
			}
			continue
		}
		fmt.Fprintf(w, "  %v\n", err)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d manifests failed validation", failed, len(args))
	}
	return nil
}

// manifestPath accepts a manifest file or a provider directory.
func manifestPath(arg string) (string, error) {
	info, err := os.Stat(arg)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return arg, nil
	}
	for _, name := range manifest.FileNamesInPriority {
		p := filepath.Join(arg, name)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("no %s in %s", manifest.FileName, arg)
}
