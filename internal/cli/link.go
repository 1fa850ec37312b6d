package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/modforge-labs/modforge/internal/userdata"
	"github.com/spf13/cobra"
)

var linkList bool

var linkCmd = &cobra.Command{
	Use:   "link [provider-dir]",
	Short: "Link a provider under development into the user provider directory",
	Long: `Symlink a provider directory into the user provider directory under its type
id so it is discovered without copying. With --list, show existing links.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		if linkList {
			links, err := userdata.ListLinks(userdata.UserProvidersDir())
			if err != nil {
				return err
			}
			if len(links) == 0 {
				fmt.Fprintln(w, "No linked providers.")
				return nil
			}
			tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
			fmt.Fprintln(tw, "ID\tTARGET\tSTATUS")
			for _, l := range links {
				status := "ok"
				if l.Dangling {
					status = "dangling"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", l.Name, l.Target, status)
			}
			return tw.Flush()
		}

		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}
		link, err := userdata.LinkProvider(dir)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Linked %s -> %s\n", link.Path, link.Target)
		return nil
	},
}

var unlinkCmd = &cobra.Command{
	Use:   "unlink <id>",
	Short: "Remove a linked provider from the user provider directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := userdata.UnlinkProvider(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", path)
		return nil
	},
}

func init() {
	linkCmd.Flags().BoolVar(&linkList, "list", false, "List linked providers")
	rootCmd.AddCommand(linkCmd)
	rootCmd.AddCommand(unlinkCmd)
}
