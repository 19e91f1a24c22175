// Package notifier reports run outcomes.
package notifier

import (
	"log/slog"

	"github.com/mhalder/jobsift/internal/pipeline"
)

// Notifier reports the outcome of one pipeline run.
type Notifier interface {
	Notify(result *pipeline.Result) error
}

// Ensure LogNotifier implements Notifier.
var _ Notifier = (*LogNotifier)(nil)

// LogNotifier writes the run summary and each appended row to the logger.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier returns a notifier that logs via slog.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify logs the counts and one line per appended row. Returns nil (stdout
// logging does not fail).
func (n *LogNotifier) Notify(result *pipeline.Result) error {
	n.logger.Info("run summary",
		"fetched", result.Fetched,
		"fresh", result.Fresh,
		"appended", result.Appended,
	)
	for _, r := range result.Rows {
		args := []any{"company", r.Company, "title", r.Title, "url", r.URL}
		if r.FitScore != "" {
			args = append(args, "fit_score", r.FitScore)
		}
		if r.Contact != "" {
			args = append(args, "contact", r.Contact)
		}
		n.logger.Info("new job", args...)
	}
	return nil
}
