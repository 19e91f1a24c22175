package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mhalder/jobsift/internal/model"
)

// Policy bounds the retry loop for one logical call.
type Policy struct {
	MaxAttempts int           // total attempts including the first
	BaseDelay   time.Duration // delay before the first retry, doubled each retry
	MaxDelay    time.Duration // backoff ceiling
	Timeout     time.Duration // per-attempt deadline; zero means no deadline
}

// DefaultPolicy matches the tolerance profile shared by the posting source
// and the record store: 20s per attempt, backoff 1s doubling to a 16s
// ceiling, at most 5 attempts.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts: 5,
		BaseDelay:   1 * time.Second,
		MaxDelay:    16 * time.Second,
		Timeout:     20 * time.Second,
	}
}

// Do runs fn, retrying transport-level failures with exponential backoff.
// Malformed-content failures and context cancellation are returned as-is on
// the first occurrence. When every attempt fails with a retryable error the
// final error is wrapped in *model.TransportError.
func Do[T any](ctx context.Context, p Policy, logger *slog.Logger, op string, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		result, err := attemptOnce(ctx, p.Timeout, fn)
		if err == nil {
			return result, nil
		}
		if !isRetryable(err) {
			return zero, err
		}
		lastErr = err

		if attempt == attempts {
			break
		}

		delay := backoffDelay(p, attempt, err)
		logger.Warn("retrying after transient error",
			"op", op,
			"attempt", attempt,
			"max_attempts", attempts,
			"delay", delay,
			"error", err,
		)

		select {
		case <-ctx.Done():
			return zero, fmt.Errorf("%s: retry cancelled: %w", op, ctx.Err())
		case <-time.After(delay):
		}
	}

	return zero, &model.TransportError{Op: op, Attempts: attempts, Err: lastErr}
}

func attemptOnce[T any](ctx context.Context, timeout time.Duration, fn func(ctx context.Context) (T, error)) (T, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return fn(ctx)
}

// backoffDelay computes baseDelay * 2^(attempt-1), capped at MaxDelay.
// A Retry-After carried by the error takes precedence.
func backoffDelay(p Policy, attempt int, err error) time.Duration {
	var httpErr *model.HTTPError
	if errors.As(err, &httpErr) && httpErr.RetryAfter > 0 {
		return httpErr.RetryAfter
	}

	delay := p.BaseDelay
	for i := 1; i < attempt; i++ {
		delay *= 2
		if delay >= p.MaxDelay {
			return p.MaxDelay
		}
	}
	return delay
}

// PermanentError marks an error that must not be retried regardless of kind.
type PermanentError struct {
	Err error
}

func (e *PermanentError) Error() string { return e.Err.Error() }
func (e *PermanentError) Unwrap() error { return e.Err }

// Permanent wraps err so Do returns it on the first occurrence.
func Permanent(err error) error {
	return &PermanentError{Err: err}
}

// isRetryable returns true for transport-level failures (connection errors,
// timeouts, non-2xx status). Malformed content and cancellation never retry.
func isRetryable(err error) bool {
	if err == nil {
		return false
	}

	// The parent context went away; a retry cannot help.
	if errors.Is(err, context.Canceled) {
		return false
	}

	var malformed *model.MalformedResponseError
	if errors.As(err, &malformed) {
		return false
	}

	var permanent *PermanentError
	if errors.As(err, &permanent) {
		return false
	}

	// Any non-2xx status counts as transport-level.
	var httpErr *model.HTTPError
	if errors.As(err, &httpErr) {
		return true
	}

	// Network, DNS, per-attempt deadline.
	return true
}
