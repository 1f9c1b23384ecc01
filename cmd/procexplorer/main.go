package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/archie-linux/process-explorer/config"
	"github.com/archie-linux/process-explorer/model"
	"github.com/archie-linux/process-explorer/monitor"
	"github.com/archie-linux/process-explorer/proc"
	"github.com/archie-linux/process-explorer/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// logEnv names a file that receives the log; without it logs are dropped
// because the TUI owns the terminal.
const logEnv = "PROCEXPLORER_LOG"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var filter, sortKey string

	cmd := &cobra.Command{
		Use:           "procexplorer",
		Short:         "Terminal process explorer",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := run(cmd.Context(), filter, sortKey); err != nil {
				fmt.Fprintln(os.Stderr, "procexplorer:", err)
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&filter, "filter", "f", "", "Initial process name filter")
	cmd.Flags().StringVarP(&sortKey, "sort", "s", model.SortByCPU.String(), "Initial sort column (cpu or memory)")
	return cmd
}

func run(ctx context.Context, filter, sortKey string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg := config.Default(filter)
	if err := cfg.SortBy(sortKey); err != nil {
		return err
	}

	logger := log.New(io.Discard, "[procexplorer] ", log.LstdFlags)
	if path := os.Getenv(logEnv); path != "" {
		f, err := tea.LogToFileWith(path, "[procexplorer] ", logger)
		if err != nil {
			return fmt.Errorf("open log %s: %w", path, err)
		}
		defer f.Close()
	}

	collector := monitor.NewCollector(monitor.HostSource{})
	// Fail fast if the process table cannot be read at all.
	if _, err := collector.Capture(ctx); err != nil {
		return err
	}

	engine := monitor.NewEngine(
		collector,
		proc.NewTerminator(config.GraceInterval),
		cfg,
		logger,
	)
	logger.Printf("starting, filter=%q sort=%s", filter, cfg.Sorter.Key)

	return ui.Run(ctx, engine, config.RefreshInterval)
}
