package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/mhalder/jobsift/internal/adzuna"
	"github.com/mhalder/jobsift/internal/config"
	"github.com/mhalder/jobsift/internal/eval"
	"github.com/mhalder/jobsift/internal/model"
	"github.com/mhalder/jobsift/internal/notifier"
	"github.com/mhalder/jobsift/internal/pipeline"
	"github.com/mhalder/jobsift/internal/ratelimit"
	"github.com/mhalder/jobsift/internal/retry"
	"github.com/mhalder/jobsift/internal/store"
)

var (
	cfgPath string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "jobsift",
	Short: "Job-listing ingestion pipeline",
	Long:  "jobsift pulls postings from Adzuna, drops the ones already tracked, optionally scores fit and matches contacts, and appends the rest to your sheet.",
	// Default to `run` so that `jobsift` with no args does a full pass.
	RunE: runRun,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: JOBSIFT_CONFIG env var or ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// loadConfig resolves the config path and parses it.
// Priority: explicit path arg > JOBSIFT_CONFIG env var > "./config.yaml"
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		if env := os.Getenv("JOBSIFT_CONFIG"); env != "" {
			path = env
		} else {
			path = "config.yaml"
		}
	}
	return config.Load(path)
}

func setupLogger(dbg bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if dbg {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
}

func setupNotifier(cfg *config.Config, logger *slog.Logger) notifier.Notifier {
	switch cfg.Notification.Type {
	case "slack":
		logger.Info("using slack notifier")
		httpClient := &http.Client{Timeout: cfg.Source.Timeout}
		return notifier.NewSlackNotifier(cfg.Notification.WebhookURL, httpClient, logger)
	default:
		return notifier.NewLogNotifier(logger)
	}
}

func retryPolicy(cfg *config.Config) retry.Policy {
	return retry.Policy{
		MaxAttempts: cfg.Retry.MaxAttempts,
		BaseDelay:   cfg.Retry.BaseDelay,
		MaxDelay:    cfg.Retry.MaxDelay,
		Timeout:     cfg.Source.Timeout,
	}
}

// buildStore opens the configured record store backend. The returned cleanup
// is safe to call unconditionally.
func buildStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (model.RecordStore, func(), error) {
	switch cfg.Store.Backend {
	case "sqlite":
		s, err := store.NewSQLiteStore(cfg.Store.SQLitePath)
		if err != nil {
			return nil, func() {}, err
		}
		return s, func() { s.Close() }, nil
	default:
		s, err := store.NewSheetStore(ctx,
			cfg.Store.SpreadsheetID,
			cfg.Store.JobsTab,
			cfg.Store.ContactsTab,
			cfg.Store.CredentialsFile,
			retryPolicy(cfg),
			logger,
		)
		if err != nil {
			return nil, func() {}, err
		}
		return s, func() {}, nil
	}
}

// buildPipeline wires the full pipeline from config.
func buildPipeline(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*pipeline.Pipeline, func(), error) {
	httpClient := &http.Client{Timeout: cfg.Source.Timeout}

	source := adzuna.NewClient(cfg.Source.AppID, cfg.Source.AppKey, adzuna.Params{
		Query:          cfg.Source.Query,
		Country:        cfg.Source.Country,
		ResultsPerPage: cfg.Source.ResultsPerPage,
		Where:          cfg.Source.Where,
		Category:       cfg.Source.Category,
	}, httpClient, retryPolicy(cfg), logger)

	recordStore, cleanup, err := buildStore(ctx, cfg, logger)
	if err != nil {
		return nil, func() {}, fmt.Errorf("open record store: %w", err)
	}

	var evaluator *eval.Evaluator
	var profile map[string]any
	if cfg.Eval.Enabled {
		profile, err = config.LoadProfile(cfg.Eval.ProfilePath)
		if err != nil {
			cleanup()
			return nil, func() {}, err
		}

		var provider eval.Provider
		switch cfg.Eval.Provider {
		case "gemini":
			provider, err = eval.NewGeminiProvider(ctx, cfg.Eval.APIKey, cfg.Eval.Model, cfg.Eval.BaseURL)
			if err != nil {
				cleanup()
				return nil, func() {}, err
			}
		default:
			evalClient := &http.Client{Timeout: cfg.Eval.Timeout}
			provider = eval.NewOpenAIProvider(cfg.Eval.BaseURL, cfg.Eval.APIKey, cfg.Eval.Model, evalClient)
		}
		evaluator = eval.New(provider, ratelimit.NewPacer(cfg.Eval.Pacing), logger)
		logger.Info("fit evaluation enabled", "provider", cfg.Eval.Provider, "model", cfg.Eval.Model)
	}

	opts := pipeline.Options{
		Pages:          cfg.Source.Pages,
		MatchContacts:  cfg.Contacts.Enabled,
		MatchThreshold: cfg.Contacts.Threshold,
	}
	return pipeline.New(source, recordStore, evaluator, profile, opts, logger), cleanup, nil
}
