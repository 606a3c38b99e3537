package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/pipesh/pipesh/core/config"
	"github.com/pipesh/pipesh/core/events"
	"github.com/pipesh/pipesh/core/shell"
)

var cfgPath string

// loadConfig reads the configuration, falling back to the built-in defaults
// when no file exists so a bare "pipesh" works without any setup.
func loadConfig() (*config.Configuration, error) {
	configuration, err := config.Load(cfgPath)

	if errors.Is(err, fs.ErrNotExist) {
		return config.Default(), nil
	}

	return configuration, err
}

// rootCmd represents the base command when called without any subcommands.
// Bare invocation runs the interpreter itself.
var rootCmd = &cobra.Command{
	Use:   "pipesh",
	Short: "A pipe-oriented command interpreter",
	Long: fmt.Sprintf(`An interactive interpreter that reads one line at a time, splits it on
"|" into a pipeline, and runs each stage as a real process with adjacent
stages' standard streams connected.

Built-in commands: %s.`, strings.Join(shell.Builtins, ", ")),
	Args:          cobra.ExactArgs(0),
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		return runInterpreter(cfg)
	},
}

// runInterpreter drives one interactive session over the process's stdio
// until the input ends or the exit built-in terminates the process.
func runInterpreter(cfg *config.Configuration) error {
	streams := shell.StdStreams()

	eventLog := events.NewNop()
	if cfg.EventLogEnabled() {
		fd, err := cfg.OpenEventLog()
		if err != nil {
			return err
		}
		defer fd.Close()
		eventLog = events.NewJSONLines(fd)
	}

	interactive := isatty.IsTerminal(os.Stdin.Fd())

	var source shell.LineSource
	if interactive {
		rl, err := shell.NewReadlineSource(streams)
		if err != nil {
			return err
		}
		defer rl.Close()
		source = rl
	} else {
		source = shell.NewPlainSource(streams.In, streams.Out)
	}

	settings := shell.Settings{
		Prompt:  promptText(cfg, interactive),
		Version: cfg.Version,
	}
	executor := shell.NewExecutor(settings, streams, shell.WithStrictPipes(cfg.StrictPipes))

	session := eventLog.NewSession()
	session.Record(events.SessionStart{Interactive: interactive, Version: cfg.Version})

	if err := shell.NewSession(executor, source, session).Run(); err != nil {
		session.Record(events.SessionEnd{Reason: "read-error"})
		return err
	}
	session.Record(events.SessionEnd{Reason: "eof"})
	return nil
}

// promptText styles the configured prompt when stdin is a terminal and a
// prompt color is configured.
func promptText(cfg *config.Configuration, interactive bool) string {
	if !interactive {
		return cfg.Prompt
	}
	if r, g, b, ok := cfg.PromptRGB(); ok {
		return fmt.Sprintf("\x1b[38;2;%d;%d;%dm%s\x1b[0m", r, g, b, cfg.Prompt)
	}
	return cfg.Prompt
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", ".", "config path")
}
