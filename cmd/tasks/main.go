package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/baiirun/tracker/internal/config"
	"github.com/baiirun/tracker/internal/tracker"
)

var (
	flagConfig   string
	flagOutput   string
	flagLogLevel string
)

var rootCmd = &cobra.Command{
	Use:   "tasks",
	Short: "In-memory task tracker",
	Long: `A tracker for tasks, epics and subtasks. Epic status is derived from its
subtasks and every viewed item is kept in a recency history.

State lives for a single invocation: use 'run' to drive a tracker from a script.`,
	SilenceUsage: true,
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Walk through sample tasks, epics and history",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup(cmd)
		if err != nil {
			return err
		}
		// The demo script refers to ids from 1.
		m := tracker.New(tracker.WithLogger(logger))
		return runDemo(m, printer{w: cmd.OutOrStdout(), format: cfg.Output})
	},
}

var runCmd = &cobra.Command{
	Use:   "run [script]",
	Short: "Run tracker commands from a file or stdin",
	Long: `Run tracker commands, one per line, against a fresh tracker.

Commands:
  task NAME [DESCRIPTION]
  epic NAME [DESCRIPTION]
  subtask EPIC_ID NAME [DESCRIPTION]
  status ID STATUS        (NEW, IN_PROGRESS, DONE; tasks and subtasks only)
  rename ID NAME
  move SUBTASK_ID EPIC_ID
  show ID                 (records the view in history)
  delete ID
  clear tasks|epics|subtasks
  list
  history
  echo TEXT

Words are split with shell quoting. Lines starting with # are ignored.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup(cmd)
		if err != nil {
			return err
		}

		src := cmd.InOrStdin()
		if len(args) == 1 && args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open script: %w", err)
			}
			defer func() { _ = f.Close() }()
			src = f
		}

		runner := &scriptRunner{
			m:   tracker.New(tracker.WithLogger(logger), tracker.WithFirstID(cfg.FirstID)),
			out: printer{w: cmd.OutOrStdout(), format: cfg.Output},
		}
		return runner.run(src)
	},
}

// setup loads configuration and builds the logger shared by a command.
func setup(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	path := flagConfig
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path, cmd.Flags())
	if err != nil {
		return nil, nil, err
	}
	level, err := cfg.Level()
	if err != nil {
		return nil, nil, err
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	return cfg, logger, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default ~/.config/tasks/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagOutput, "output", "", "output format: text or json")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn, error")

	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(runCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
