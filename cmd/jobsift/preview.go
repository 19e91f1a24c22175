package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mhalder/jobsift/internal/model"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Run the pipeline without writing, print rows as JSON",
	Long:  "Fetches and dedupes like a real run but skips the append, printing the rows that would have been written.",
	RunE:  runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
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

	result, err := pipe.Run(ctx, true)
	if err != nil {
		logger.Error("preview failed", "error", err)
		os.Exit(1)
	}

	// Keyed by column name so the output reads like the sheet will.
	out := make([]map[string]string, 0, len(result.Rows))
	for _, r := range result.Rows {
		m := make(map[string]string, len(model.Columns))
		for _, col := range model.Columns {
			m[col] = r.Value(col)
		}
		out = append(out, m)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal preview: %w", err)
	}
	fmt.Println(string(data))

	fmt.Fprintf(os.Stderr, "fetched %d, fresh %d (nothing written)\n", result.Fetched, result.Fresh)
	return nil
}
