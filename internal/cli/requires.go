package cli

import (
	"fmt"

	"github.com/modforge-labs/modforge/internal/listing"
	"github.com/spf13/cobra"
)

var requiresJSON bool

var requiresCmd = &cobra.Command{
	Use:   "requires <listing|archive.zip|->",
	Short: "List the archive entries the matching script type needs",
	Long: `Print the archive entries the matching script type needs, one per line, in
pattern order. Nothing is printed when no script type matches.`,
	Args: cobra.ExactArgs(1),
	RunE: runRequires,
}

func init() {
	requiresCmd.Flags().BoolVar(&requiresJSON, "json", false, "Output as a JSON array")
	rootCmd.AddCommand(requiresCmd)
}

func runRequires(cmd *cobra.Command, args []string) error {
	files, err := listing.Load(args[0], cmd.InOrStdin())
	if err != nil {
		return err
	}

	mgr, err := newManager()
	if err != nil {
		return err
	}
	required, err := mgr.ResolveRequiredFiles(commandContext(cmd), files)
	if err != nil {
		return discoveryFailed(err)
	}

	w := cmd.OutOrStdout()
	if requiresJSON {
		return printJSON(w, required)
	}
	for _, f := range required {
		fmt.Fprintln(w, f)
	}
	return nil
}
