package retry

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/mhalder/jobsift/internal/model"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fastPolicy() Policy {
	return Policy{
		MaxAttempts: 5,
		BaseDelay:   2 * time.Millisecond,
		MaxDelay:    32 * time.Millisecond,
	}
}

func TestDo_SucceedsOnFirstAttempt(t *testing.T) {
	calls := 0
	got, err := Do(context.Background(), fastPolicy(), discardLogger(), "fetch", func(_ context.Context) (string, error) {
		calls++
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "ok" {
		t.Fatalf("unexpected result: %q", got)
	}
	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
}

func TestDo_RetriesThenSucceeds(t *testing.T) {
	calls := 0
	got, err := Do(context.Background(), fastPolicy(), discardLogger(), "fetch", func(_ context.Context) (int, error) {
		calls++
		if calls < 3 {
			return 0, &model.HTTPError{StatusCode: 503, Err: errors.New("service unavailable")}
		}
		return 42, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 42 {
		t.Fatalf("unexpected result: %d", got)
	}
	if calls != 3 {
		t.Fatalf("expected 3 calls, got %d", calls)
	}
}

func TestDo_ExhaustsAttempts(t *testing.T) {
	calls := 0
	start := time.Now()
	_, err := Do(context.Background(), fastPolicy(), discardLogger(), "fetch", func(_ context.Context) (int, error) {
		calls++
		return 0, &model.HTTPError{StatusCode: 500, Err: errors.New("internal error")}
	})
	elapsed := time.Since(start)

	if err == nil {
		t.Fatal("expected error after exhausting attempts, got nil")
	}
	var transportErr *model.TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("expected TransportError, got %v", err)
	}
	if transportErr.Attempts != 5 {
		t.Fatalf("expected 5 attempts recorded, got %d", transportErr.Attempts)
	}
	if calls != 5 {
		t.Fatalf("expected 5 calls, got %d", calls)
	}
	// Backoff sum for 4 retries: 2 + 4 + 8 + 16 = 30ms.
	if min := 30 * time.Millisecond; elapsed < min {
		t.Fatalf("expected at least %v of backoff, elapsed %v", min, elapsed)
	}
	var httpErr *model.HTTPError
	if !errors.As(err, &httpErr) || httpErr.StatusCode != 500 {
		t.Fatalf("expected wrapped HTTPError 500, got %v", err)
	}
}

func TestDo_MalformedResponseNotRetried(t *testing.T) {
	calls := 0
	_, err := Do(context.Background(), fastPolicy(), discardLogger(), "fetch", func(_ context.Context) (int, error) {
		calls++
		return 0, &model.MalformedResponseError{Op: "fetch", Err: errors.New("bad json")}
	})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	var malformed *model.MalformedResponseError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedResponseError, got %v", err)
	}
	var transportErr *model.TransportError
	if errors.As(err, &transportErr) {
		t.Fatalf("malformed response must not be wrapped in TransportError, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected 1 call (no retry), got %d", calls)
	}
}

func TestDo_PermanentErrorNotRetried(t *testing.T) {
	calls := 0
	sentinel := errors.New("tab does not exist")
	_, err := Do(context.Background(), fastPolicy(), discardLogger(), "read", func(_ context.Context) (int, error) {
		calls++
		return 0, Permanent(sentinel)
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected wrapped sentinel, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected 1 call (no retry), got %d", calls)
	}
}

func TestDo_RetryAfterTakesPrecedence(t *testing.T) {
	p := Policy{MaxAttempts: 2, BaseDelay: time.Millisecond, MaxDelay: time.Millisecond}
	start := time.Now()
	calls := 0
	_, err := Do(context.Background(), p, discardLogger(), "fetch", func(_ context.Context) (int, error) {
		calls++
		if calls == 1 {
			return 0, &model.HTTPError{StatusCode: 429, RetryAfter: 25 * time.Millisecond, Err: errors.New("rate limited")}
		}
		return 1, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 25*time.Millisecond {
		t.Fatalf("expected Retry-After delay to be honored, elapsed %v", elapsed)
	}
}

func TestDo_RespectsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	p := Policy{MaxAttempts: 3, BaseDelay: time.Second, MaxDelay: time.Second}
	_, err := Do(ctx, p, discardLogger(), "fetch", func(_ context.Context) (int, error) {
		calls++
		return 0, &model.HTTPError{StatusCode: 500, Err: errors.New("internal error")}
	})
	if err == nil {
		t.Fatal("expected error from cancellation, got nil")
	}
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	// First call happens, then the backoff wait observes cancellation.
	if calls != 1 {
		t.Fatalf("expected 1 call before cancellation, got %d", calls)
	}
}

func TestBackoffDelay_CapsAtMaxDelay(t *testing.T) {
	p := Policy{BaseDelay: time.Second, MaxDelay: 16 * time.Second}
	cases := []struct {
		attempt int
		want    time.Duration
	}{
		{1, time.Second},
		{2, 2 * time.Second},
		{3, 4 * time.Second},
		{4, 8 * time.Second},
		{5, 16 * time.Second},
		{6, 16 * time.Second},
	}
	for _, tc := range cases {
		if got := backoffDelay(p, tc.attempt, errors.New("x")); got != tc.want {
			t.Errorf("attempt %d: expected %v, got %v", tc.attempt, tc.want, got)
		}
	}
}
