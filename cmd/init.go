package cmd

import (
	"log"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pipesh/pipesh/core/config"
)

// initCmd writes the default configuration
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration to the config directory.",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		logger := log.New(cmd.ErrOrStderr(), "", 0)

		cfg, err := config.Initialize(cfgPath, logger)
		if err != nil {
			return err
		}

		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "ready: prompt %q, version %s\n", cfg.Prompt, cfg.Version)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
