package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mhalder/jobsift/internal/pipeline"
	"github.com/mhalder/jobsift/internal/review"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Review fresh rows interactively before appending",
	Long:  "Builds the fresh rows like a preview, then opens a TUI to toggle which ones get appended.",
	RunE:  runReview,
}

func init() {
	rootCmd.AddCommand(reviewCmd)
}

func runReview(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The TUI owns the terminal; route pipeline logs away from it.
	silentLogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	pipe, cleanup, err := buildPipeline(ctx, cfg, silentLogger)
	if err != nil {
		logger.Error("failed to build pipeline", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	result, err := review.RunLoader(cfg.Source.Query, func(ctx context.Context) (*pipeline.Result, error) {
		return pipe.Run(ctx, true)
	})
	if err != nil {
		logger.Error("fetch failed", "error", err)
		os.Exit(1)
	}

	if result.Fresh == 0 {
		fmt.Printf("fetched %d, nothing fresh to review\n", result.Fetched)
		return nil
	}

	kept, err := review.Run(result.Rows)
	if err != nil {
		return fmt.Errorf("review TUI: %w", err)
	}
	if len(kept) == 0 {
		fmt.Println("nothing selected, nothing written")
		return nil
	}

	appended, err := pipe.Append(ctx, kept)
	if err != nil {
		logger.Error("append failed", "error", err)
		os.Exit(1)
	}

	fmt.Printf("fetched %d, fresh %d, appended %d\n", result.Fetched, result.Fresh, appended)
	return nil
}
