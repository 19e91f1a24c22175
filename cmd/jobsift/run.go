package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fetch, dedupe, enrich, and append",
	Long:  "One full pass: fetch postings, drop already-tracked ids, evaluate fit and match contacts when enabled, append the rest to the record store.",
	RunE:  runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pipe, cleanup, err := buildPipeline(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to build pipeline", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	result, err := pipe.Run(ctx, false)
	if err != nil {
		logger.Error("run failed", "error", err)
		os.Exit(1)
	}

	if err := setupNotifier(cfg, logger).Notify(result); err != nil {
		logger.Error("notification failed", "error", err)
	}
	return nil
}
