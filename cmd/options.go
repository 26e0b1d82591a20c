package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marcus/markselect/pkg/dropdown"
)

var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "List the selectable marks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		for i, opt := range dropdown.Options() {
			fmt.Fprintf(out, "%d\t%s\t%s\n", i+1, opt, opt.Display())
		}
		fmt.Fprintf(out, "placeholder\t%s\n", dropdown.Placeholder)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "markselect %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(optionsCmd)
	rootCmd.AddCommand(versionCmd)
}
