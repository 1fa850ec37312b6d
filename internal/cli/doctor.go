package cli

import (
	"fmt"

	"github.com/modforge-labs/modforge/internal/userdata"
	"github.com/spf13/cobra"
)

var doctorFix bool

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check provider directories and providers",
	Long: `Check the user directory, every provider source, and every discovered
provider, including identify entry points. With --fix, create missing user
directories, remove dangling links and make exec entry points executable.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sources, err := providerSources()
		if err != nil {
			return err
		}
		problems, err := userdata.Doctor(commandContext(cmd), cmd.OutOrStdout(), userdata.DoctorOptions{
			Sources:     sources,
			HostVersion: hostVersion(),
			Fix:         doctorFix,
		})
		if err != nil {
			return err
		}
		if problems > 0 {
			return fmt.Errorf("%d problem(s) found", problems)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "No problems found.")
		return nil
	},
}

func init() {
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Repair what can be repaired")
	rootCmd.AddCommand(doctorCmd)
}
