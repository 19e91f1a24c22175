// Package ratelimit paces calls to an upstream backend.
package ratelimit

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Pacer enforces a minimum interval between consecutive calls. The invariant
// is spacing between calls, not throughput, so the underlying limiter runs
// with a burst of one token.
type Pacer struct {
	limiter *rate.Limiter
}

// NewPacer creates a pacer with the given minimum gap between calls.
// A non-positive interval disables pacing.
func NewPacer(minInterval time.Duration) *Pacer {
	if minInterval <= 0 {
		return &Pacer{limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	return &Pacer{limiter: rate.NewLimiter(rate.Every(minInterval), 1)}
}

// Wait blocks until the next call is allowed, or the context is cancelled.
func (p *Pacer) Wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}
