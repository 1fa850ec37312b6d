package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/modforge-labs/modforge/internal/registry"
	"github.com/spf13/cobra"
)

var typesJSON bool

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List discovered script types",
	Long: `List the script types discovered in the provider directories, in the order
the matcher consults them, followed by any providers that were skipped.`,
	Args: cobra.NoArgs,
	RunE: runTypes,
}

func init() {
	typesCmd.Flags().BoolVar(&typesJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(typesCmd)
}

// typeEntry represents a discovered script type for display.
type typeEntry struct {
	ID        string   `json:"id"`
	Name      string   `json:"name,omitempty"`
	Version   string   `json:"version,omitempty"`
	Root      string   `json:"root"`
	FileNames []string `json:"file_names"`
	Priority  int      `json:"priority"`
	Identify  string   `json:"identify,omitempty"`
	Source    string   `json:"source,omitempty"`
	Dir       string   `json:"dir,omitempty"`
}

// diagnosticEntry is the JSON form of a registry.Diagnostic.
type diagnosticEntry struct {
	Severity string `json:"severity"`
	Code     string `json:"code"`
	Message  string `json:"message"`
	Path     string `json:"path,omitempty"`
}

type typesOutput struct {
	Types       []typeEntry       `json:"types"`
	Diagnostics []diagnosticEntry `json:"diagnostics"`
}

func runTypes(cmd *cobra.Command, args []string) error {
	d, err := newDiscoverer()
	if err != nil {
		return err
	}
	reg, err := d.Discover(commandContext(cmd))
	if err != nil {
		return discoveryFailed(err)
	}

	out := typesOutput{
		Types:       make([]typeEntry, 0, reg.Len()),
		Diagnostics: make([]diagnosticEntry, 0, len(reg.Diagnostics())),
	}
	for _, t := range reg.Types() {
		out.Types = append(out.Types, newTypeEntry(t))
	}
	for _, diag := range reg.Diagnostics() {
		out.Diagnostics = append(out.Diagnostics, diagnosticEntry{
			Severity: string(diag.Severity),
			Code:     diag.Code,
			Message:  diag.Message,
			Path:     diag.Path,
		})
	}

	if typesJSON {
		return printJSON(cmd.OutOrStdout(), out)
	}
	return printTypesTable(cmd.OutOrStdout(), out)
}

func newTypeEntry(t registry.ScriptType) typeEntry {
	e := typeEntry{
		ID:        t.TypeID(),
		Root:      t.RootFolder(),
		FileNames: t.FileNames(),
	}
	if e.FileNames == nil {
		e.FileNames = []string{}
	}
	if p, ok := t.(*registry.Provider); ok {
		e.Name = p.Name()
		e.Version = p.Version()
		e.Priority = p.Priority()
		e.Source = p.Source()
		e.Dir = p.Dir()
		e.Identify, _ = p.IdentifyEntry()
	}
	return e
}

func printTypesTable(w io.Writer, out typesOutput) error {
	if len(out.Types) == 0 {
		fmt.Fprintln(w, "No script types discovered.")
	} else {
		tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
		fmt.Fprintln(tw, "ID\tROOT\tFILE NAMES\tPRIORITY\tSOURCE")
		for _, e := range out.Types {
			names := strings.Join(e.FileNames, ", ")
			if names == "" {
				names = "-"
			}
			if e.Identify != "" {
				names += " (+" + e.Identify + ")"
			}
			source := e.Source
			if source == "" {
				source = "-"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", e.ID, e.Root, names, e.Priority, source)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	if len(out.Diagnostics) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Skipped or suspicious providers:")
		for _, d := range out.Diagnostics {
			fmt.Fprintf(w, "  [%s] %s: %s\n", d.Severity, d.Code, d.Message)
		}
	}
	return nil
}

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
