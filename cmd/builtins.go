package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/pipesh/pipesh/core/shell"
)

// builtinsCmd lists the commands the interpreter handles itself
var builtinsCmd = &cobra.Command{
	Use:   "builtins",
	Short: "Show the interpreter's built-in commands.",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		builtins := append([]string(nil), shell.Builtins...)
		sort.Strings(builtins)

		for _, v := range builtins {
			fmt.Fprintln(cmd.OutOrStdout(), v)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(builtinsCmd)
}
