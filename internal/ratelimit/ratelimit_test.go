package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestPacer_EnforcesMinimumInterval(t *testing.T) {
	p := NewPacer(20 * time.Millisecond)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := p.Wait(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	// First call is free; the next two each wait the interval.
	if elapsed := time.Since(start); elapsed < 40*time.Millisecond {
		t.Fatalf("expected at least 40ms of pacing, elapsed %v", elapsed)
	}
}

func TestPacer_ZeroIntervalDoesNotBlock(t *testing.T) {
	p := NewPacer(0)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 100; i++ {
		if err := p.Wait(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Fatalf("expected no pacing, elapsed %v", elapsed)
	}
}

func TestPacer_WaitHonorsCancellation(t *testing.T) {
	p := NewPacer(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())

	if err := p.Wait(ctx); err != nil {
		t.Fatalf("unexpected error on first wait: %v", err)
	}

	cancel()
	if err := p.Wait(ctx); err == nil {
		t.Fatal("expected error after cancellation, got nil")
	}
}
