package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// versionCmd prints the same string the version built-in does, so scripts
// can check it without starting a session.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the interpreter version.",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), cfg.Version)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
