package cli

import (
	"fmt"

	"github.com/modforge-labs/modforge/internal/branding"
	"github.com/modforge-labs/modforge/internal/userdata"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the user directory and default config",
	Long:  `Create ~/.modforge/, the user provider directory, and a default config.yaml. Existing files are left alone.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "Initializing %s user directory:\n", branding.DisplayName())
		return userdata.InitUser(w)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
