package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mhalder/jobsift/internal/scheduler"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Poll for new postings on an interval",
	Long:  "Runs the full pipeline repeatedly, appending fresh rows and notifying after each cycle.",
	RunE:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
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

	sched := scheduler.NewScheduler(pipe, setupNotifier(cfg, logger), cfg.Watch.Interval, logger)
	return sched.Run(ctx)
}
