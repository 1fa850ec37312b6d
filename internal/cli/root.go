package cli

import (
	"context"
	"os"
	"os/signal"

	"github.com/modforge-labs/modforge/internal/branding"
	"github.com/modforge-labs/modforge/internal/config"
	"github.com/modforge-labs/modforge/internal/logging"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

// Global flags.
var (
	verbosity   int
	rootDir     string
	useCache    bool
	noUserTypes bool
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` recognizes which installer script type governs a mod archive.

Script types are discovered at run time from provider directories: the
scripttypes directory next to the binary (or --root) and the optional
user directory ~/.modforge/scripttypes. Each provider declares the
filename patterns and archive root folder that identify its format.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()

		level := verbosity
		if !cmd.Flags().Changed("verbose") {
			level = config.LogLevel()
		}
		logging.Setup(level, cmd.ErrOrStderr())
	},
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	rootCmd.PersistentFlags().StringVar(&rootDir, "root", "", "Primary provider directory (default: <binary dir>/scripttypes)")
	rootCmd.PersistentFlags().BoolVar(&useCache, "cache", false, "Reuse the discovery snapshot within this invocation while provider directories are unchanged")
	rootCmd.PersistentFlags().BoolVar(&noUserTypes, "no-user", false, "Skip the user provider directory")
}

// Execute runs the root command with build info injected via ldflags.
// An interrupt cancels the command's context.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}
