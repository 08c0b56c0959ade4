package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tgienger/todo/internal/config"
	"github.com/tgienger/todo/internal/ui"
)

// Version information set via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "todo",
		Short:   "A keyboard-driven task list for the terminal",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", config.DefaultPath(), "Path to the YAML config file")
	rootCmd.PersistentFlags().BoolVar(&opts.ephemeral, "ephemeral", false, "Keep everything in memory for this run")

	rootCmd.AddCommand(statsCmd(opts))
	rootCmd.AddCommand(listCmd(opts))
	rootCmd.AddCommand(compactCmd(opts))
	rootCmd.AddCommand(recordsCmd(opts))
	rootCmd.AddCommand(resetCmd(opts))
	rootCmd.AddCommand(versionCmd())

	return rootCmd
}

func runTUI(cmd *cobra.Command, opts *globalOptions) error {
	e, err := openEnv(cmd.Context(), opts)
	if err != nil {
		return err
	}
	defer e.Close()

	app := ui.NewApp(e.session(), e.logger)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(cmd.Context()))

	if _, err := p.Run(); err != nil {
		e.logger.Error("application exited with error", zap.Error(err))
		return fmt.Errorf("error running application: %w", err)
	}
	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "todo %s (commit: %s, built: %s)\n", version, commit, date)
		},
	}
}
