// Package scheduler runs the pipeline repeatedly in watch mode.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/mhalder/jobsift/internal/notifier"
	"github.com/mhalder/jobsift/internal/pipeline"
)

// Scheduler owns the watch loop: one immediate run, then one per interval.
type Scheduler struct {
	pipe     *pipeline.Pipeline
	notify   notifier.Notifier
	interval time.Duration
	logger   *slog.Logger
}

// NewScheduler creates a scheduler for the given pipeline and interval.
func NewScheduler(pipe *pipeline.Pipeline, notify notifier.Notifier, interval time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		pipe:     pipe,
		notify:   notify,
		interval: interval,
		logger:   logger,
	}
}

// Run starts the loop. A failed run is logged and the loop continues; the
// next tick starts from a fresh processed-id read, so nothing is lost.
// Returns nil when ctx is cancelled (graceful shutdown).
func (s *Scheduler) Run(ctx context.Context) error {
	s.logger.Info("starting watch loop", "interval", s.interval.String())

	s.runOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("shutting down watch loop")
			return nil
		case <-time.After(s.interval):
			s.runOnce(ctx)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	result, err := s.pipe.Run(ctx, false)
	if err != nil {
		s.logger.Error("run failed", "error", err)
		return
	}
	if err := s.notify.Notify(result); err != nil {
		s.logger.Error("notification failed", "error", err)
	}
}
