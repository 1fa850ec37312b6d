package cli

import (
	"fmt"

	"github.com/modforge-labs/modforge/internal/format"
	"github.com/modforge-labs/modforge/internal/listing"
	"github.com/spf13/cobra"
)

// noFormatMessage is printed when no script type claims the archive.
const noFormatMessage = "no recognized installer format"

var (
	detectJSON bool
	detectDeep bool
)

var detectCmd = &cobra.Command{
	Use:   "detect <listing|archive.zip|->",
	Short: "Detect the installer script type of an archive",
	Long: `Detect which script type governs an archive. The argument is a .zip or
.tar.gz archive, a text file listing one archive entry per line, or - to
read the listing from stdin.

With --deep, providers that declare an identify entry point are consulted
when no filename pattern matches.`,
	Example: `  modforge detect MyMod.zip
  unzip -Z1 MyMod.zip | modforge detect -
  modforge detect --deep --json listing.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runDetect,
}

func init() {
	detectCmd.Flags().BoolVar(&detectJSON, "json", false, "Output in JSON format")
	detectCmd.Flags().BoolVar(&detectDeep, "deep", false, "Fall back to provider identify entry points")
	rootCmd.AddCommand(detectCmd)
}

// detectOutput is the JSON shape of a detection.
type detectOutput struct {
	Type          string             `json:"type"`
	Method        string             `json:"method,omitempty"`
	Primary       string             `json:"primary,omitempty"`
	RequiredFiles []string           `json:"required_files"`
	Matches       []format.FileMatch `json:"matches,omitempty"`
}

// Detection methods.
const (
	methodFileNames = "file_names"
	methodIdentify  = "identify"
)

func runDetect(cmd *cobra.Command, args []string) error {
	files, err := listing.Load(args[0], cmd.InOrStdin())
	if err != nil {
		return err
	}

	mgr, err := newManager()
	if err != nil {
		return err
	}
	ctx := commandContext(cmd)

	res, err := mgr.Resolve(ctx, files)
	if err != nil {
		return discoveryFailed(err)
	}

	out := detectOutput{RequiredFiles: res.RequiredFiles}
	if !res.Empty() {
		out.Type = res.TypeID()
		out.Method = methodFileNames
		out.Primary = res.Primary()
		out.Matches = res.Matches
	} else if detectDeep {
		st, err := mgr.Identify(ctx, files)
		if err != nil {
			return discoveryFailed(err)
		}
		if st != nil {
			out.Type = st.TypeID()
			out.Method = methodIdentify
		}
	}

	w := cmd.OutOrStdout()
	if detectJSON {
		return printJSON(w, out)
	}
	if out.Type == "" {
		fmt.Fprintln(w, noFormatMessage)
		return nil
	}
	fmt.Fprintln(w, out.Type)
	return nil
}
