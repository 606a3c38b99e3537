package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/pipesh/pipesh/core/events"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Explore the interpreter event log.",
}

var reportCommand = &cobra.Command{
	Use:   "report",
	Short: "Show a report of logged sessions and pipelines.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		config, err := loadConfig()
		if err != nil {
			return err
		}

		if !config.EventLogEnabled() {
			return errors.New("no event log is configured, set log_path in config.yaml")
		}

		fd, err := config.ReadEventLog()
		if err != nil {
			return err
		}
		defer fd.Close()

		report := events.NewReport()
		if err := events.ReadJSONLines(fd, report.Update); err != nil {
			return err
		}

		out, err := yaml.Marshal(report)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), string(out))

		return nil
	},
}

func init() {
	rootCmd.AddCommand(eventsCmd)
	eventsCmd.AddCommand(reportCommand)
}
