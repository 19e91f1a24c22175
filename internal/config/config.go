package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration for jobsift.
type Config struct {
	Source       SourceConfig
	Store        StoreConfig
	Eval         EvalConfig
	Contacts     ContactsConfig
	Retry        RetryConfig
	Watch        WatchConfig
	Notification NotificationConfig
}

// SourceConfig describes the Adzuna search to run.
type SourceConfig struct {
	AppID          string
	AppKey         string
	Query          string
	Country        string // two-letter code, defaults to "us"
	ResultsPerPage int
	Pages          int
	Where          string // optional location filter
	Category       string // optional Adzuna category code
	Timeout        time.Duration
}

// StoreConfig selects and configures the record store backend.
type StoreConfig struct {
	Backend         string // "sheets" or "sqlite"
	SpreadsheetID   string
	JobsTab         string
	ContactsTab     string
	CredentialsFile string
	SQLitePath      string
}

// EvalConfig controls the optional LLM fit evaluation.
type EvalConfig struct {
	Enabled     bool
	Provider    string // "openai" or "gemini"
	Model       string
	APIKey      string // expanded from env var by Load
	BaseURL     string
	Timeout     time.Duration // per-request timeout
	Pacing      time.Duration // minimum gap between consecutive LLM calls
	ProfilePath string        // candidate profile JSON
}

// ContactsConfig controls contact matching.
type ContactsConfig struct {
	Enabled   bool
	Threshold int // minimum similarity score 0-100
}

// RetryConfig bounds the resilient fetch wrapper.
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// WatchConfig controls watch mode.
type WatchConfig struct {
	Interval time.Duration
}

// NotificationConfig controls which notifier is used and its settings.
type NotificationConfig struct {
	Type       string `yaml:"type"`        // "log" or "slack"
	WebhookURL string `yaml:"webhook_url"` // required if type is "slack"
}

const (
	defaultOpenAIBaseURL = "https://api.openai.com/v1"
	defaultJobsTab       = "Jobs"
	defaultContactsTab   = "Contacts"
	defaultSQLitePath    = "jobs.db"
)

// rawConfig is used for YAML unmarshaling (snake_case fields and durations
// as strings).
type rawConfig struct {
	Source       rawSourceConfig    `yaml:"source"`
	Store        rawStoreConfig     `yaml:"store"`
	Eval         rawEvalConfig      `yaml:"evaluation"`
	Contacts     rawContactsConfig  `yaml:"contacts"`
	Retry        rawRetryConfig     `yaml:"retry"`
	Watch        rawWatchConfig     `yaml:"watch"`
	Notification NotificationConfig `yaml:"notification"`
}

type rawSourceConfig struct {
	AppID          string `yaml:"app_id"`
	AppKey         string `yaml:"app_key"`
	Query          string `yaml:"query"`
	Country        string `yaml:"country"`
	ResultsPerPage int    `yaml:"results_per_page"`
	Pages          int    `yaml:"pages"`
	Where          string `yaml:"where"`
	Category       string `yaml:"category"`
	Timeout        string `yaml:"timeout"`
}

type rawStoreConfig struct {
	Backend         string `yaml:"backend"`
	SpreadsheetID   string `yaml:"spreadsheet_id"`
	JobsTab         string `yaml:"jobs_tab"`
	ContactsTab     string `yaml:"contacts_tab"`
	CredentialsFile string `yaml:"credentials_file"`
	SQLitePath      string `yaml:"sqlite_path"`
}

type rawEvalConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Provider    string `yaml:"provider"`
	Model       string `yaml:"model"`
	APIKey      string `yaml:"api_key"`
	BaseURL     string `yaml:"base_url"`
	Timeout     string `yaml:"timeout"`
	Pacing      string `yaml:"pacing"`
	ProfilePath string `yaml:"profile_path"`
}

type rawContactsConfig struct {
	Enabled   bool `yaml:"enabled"`
	Threshold int  `yaml:"threshold"`
}

type rawRetryConfig struct {
	MaxAttempts int    `yaml:"max_attempts"`
	BaseDelay   string `yaml:"base_delay"`
	MaxDelay    string `yaml:"max_delay"`
}

type rawWatchConfig struct {
	Interval string `yaml:"interval"`
}

// Load reads and parses the YAML config file at path, expands environment
// variables, validates it, and returns Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Expand environment variables
	expanded := os.ExpandEnv(string(data))

	var raw rawConfig
	if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	sourceTimeout, err := duration(raw.Source.Timeout, 20*time.Second, "source.timeout")
	if err != nil {
		return nil, err
	}
	evalTimeout, err := duration(raw.Eval.Timeout, 30*time.Second, "evaluation.timeout")
	if err != nil {
		return nil, err
	}
	pacing, err := duration(raw.Eval.Pacing, 250*time.Millisecond, "evaluation.pacing")
	if err != nil {
		return nil, err
	}
	baseDelay, err := duration(raw.Retry.BaseDelay, 1*time.Second, "retry.base_delay")
	if err != nil {
		return nil, err
	}
	maxDelay, err := duration(raw.Retry.MaxDelay, 16*time.Second, "retry.max_delay")
	if err != nil {
		return nil, err
	}
	watchInterval, err := duration(raw.Watch.Interval, 1*time.Hour, "watch.interval")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Source: SourceConfig{
			AppID:          raw.Source.AppID,
			AppKey:         raw.Source.AppKey,
			Query:          raw.Source.Query,
			Country:        stringOr(raw.Source.Country, "us"),
			ResultsPerPage: intOr(raw.Source.ResultsPerPage, 50),
			Pages:          intOr(raw.Source.Pages, 1),
			Where:          raw.Source.Where,
			Category:       raw.Source.Category,
			Timeout:        sourceTimeout,
		},
		Store: StoreConfig{
			Backend:         stringOr(raw.Store.Backend, "sheets"),
			SpreadsheetID:   raw.Store.SpreadsheetID,
			JobsTab:         stringOr(raw.Store.JobsTab, defaultJobsTab),
			ContactsTab:     stringOr(raw.Store.ContactsTab, defaultContactsTab),
			CredentialsFile: raw.Store.CredentialsFile,
			SQLitePath:      stringOr(raw.Store.SQLitePath, defaultSQLitePath),
		},
		Eval: EvalConfig{
			Enabled:     raw.Eval.Enabled,
			Provider:    stringOr(raw.Eval.Provider, "openai"),
			Model:       raw.Eval.Model,
			APIKey:      raw.Eval.APIKey,
			BaseURL:     raw.Eval.BaseURL,
			Timeout:     evalTimeout,
			Pacing:      pacing,
			ProfilePath: raw.Eval.ProfilePath,
		},
		Contacts: ContactsConfig{
			Enabled:   raw.Contacts.Enabled,
			Threshold: intOr(raw.Contacts.Threshold, 90),
		},
		Retry: RetryConfig{
			MaxAttempts: intOr(raw.Retry.MaxAttempts, 5),
			BaseDelay:   baseDelay,
			MaxDelay:    maxDelay,
		},
		Watch: WatchConfig{
			Interval: watchInterval,
		},
		Notification: raw.Notification,
	}

	if cfg.Eval.Enabled && cfg.Eval.Provider == "openai" && cfg.Eval.BaseURL == "" {
		cfg.Eval.BaseURL = defaultOpenAIBaseURL
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadProfile reads the candidate profile JSON document. The content stays
// opaque; the evaluator embeds it verbatim in each request.
func LoadProfile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read candidate profile: %w", err)
	}
	var profile map[string]any
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("parse candidate profile %s: %w", path, err)
	}
	return profile, nil
}

func validate(cfg *Config) error {
	if cfg.Source.AppID == "" || cfg.Source.AppKey == "" {
		return fmt.Errorf("source.app_id and source.app_key are required (set ADZUNA_APP_ID / ADZUNA_APP_KEY)")
	}
	if cfg.Source.Query == "" {
		return fmt.Errorf("source.query is required")
	}
	if cfg.Source.ResultsPerPage < 1 || cfg.Source.ResultsPerPage > 50 {
		return fmt.Errorf("source.results_per_page must be between 1 and 50, got %d", cfg.Source.ResultsPerPage)
	}

	switch cfg.Store.Backend {
	case "sheets":
		if cfg.Store.SpreadsheetID == "" {
			return fmt.Errorf("store.spreadsheet_id is required when backend is \"sheets\"")
		}
		if cfg.Store.CredentialsFile == "" {
			return fmt.Errorf("store.credentials_file is required when backend is \"sheets\"")
		}
	case "sqlite":
	default:
		return fmt.Errorf("store.backend must be \"sheets\" or \"sqlite\", got %q", cfg.Store.Backend)
	}

	if cfg.Eval.Enabled {
		if cfg.Eval.APIKey == "" {
			return fmt.Errorf("evaluation.api_key is required when evaluation.enabled is true")
		}
		if cfg.Eval.Model == "" {
			return fmt.Errorf("evaluation.model is required when evaluation.enabled is true")
		}
		if cfg.Eval.Provider != "openai" && cfg.Eval.Provider != "gemini" {
			return fmt.Errorf("evaluation.provider must be \"openai\" or \"gemini\", got %q", cfg.Eval.Provider)
		}
		if cfg.Eval.ProfilePath == "" {
			return fmt.Errorf("evaluation.profile_path is required when evaluation.enabled is true")
		}
	}

	if cfg.Contacts.Threshold < 0 || cfg.Contacts.Threshold > 100 {
		return fmt.Errorf("contacts.threshold must be between 0 and 100, got %d", cfg.Contacts.Threshold)
	}

	if cfg.Retry.MaxAttempts < 1 {
		return fmt.Errorf("retry.max_attempts must be at least 1, got %d", cfg.Retry.MaxAttempts)
	}

	if cfg.Notification.Type == "slack" {
		if cfg.Notification.WebhookURL == "" {
			return fmt.Errorf("notification.webhook_url is required when type is \"slack\"")
		}
		if len(cfg.Notification.WebhookURL) < len("https://hooks.slack.com/") ||
			cfg.Notification.WebhookURL[:len("https://hooks.slack.com/")] != "https://hooks.slack.com/" {
			return fmt.Errorf("notification.webhook_url must start with https://hooks.slack.com/")
		}
	}

	if cfg.Watch.Interval <= 0 {
		return fmt.Errorf("watch.interval must be positive, got %v", cfg.Watch.Interval)
	}

	return nil
}

func duration(raw string, fallback time.Duration, field string) (time.Duration, error) {
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s %q: %w", field, raw, err)
	}
	return d, nil
}

func stringOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func intOr(v, fallback int) int {
	if v == 0 {
		return fallback
	}
	return v
}
