// internal/bridge/backoff_test.go
package bridge

import (
	"testing"
	"time"
)

func TestNextBackoffDelay_ZeroInitialMeansImmediateRetry(t *testing.T) {
	cfg := BackoffConfig{}
	for attempt := 1; attempt <= 5; attempt++ {
		if d := NextBackoffDelay(cfg, attempt); d != 0 {
			t.Fatalf("attempt %d: got=%v want=0", attempt, d)
		}
	}
}

func TestNextBackoffDelay_Growth(t *testing.T) {
	cfg := BackoffConfig{
		Initial:    100 * time.Millisecond,
		Max:        1 * time.Second,
		Multiplier: 2.0,
	}

	cases := []struct {
		attempt int
		want    time.Duration
	}{
		{1, 100 * time.Millisecond},
		{2, 200 * time.Millisecond},
		{3, 400 * time.Millisecond},
		{4, 800 * time.Millisecond},
		{5, 1 * time.Second}, // capped
		{9, 1 * time.Second},
	}

	for _, c := range cases {
		if got := NextBackoffDelay(cfg, c.attempt); got != c.want {
			t.Fatalf("attempt %d: got=%v want=%v", c.attempt, got, c.want)
		}
	}
}

func TestNextBackoffDelay_HighAttemptNeverGoesNegative(t *testing.T) {
	// No Max configured: the exponent alone must not wrap the delay
	// negative and turn a configured backoff into an immediate retry.
	cfg := BackoffConfig{
		Initial:    1 * time.Second,
		Multiplier: 2.0,
	}

	for _, attempt := range []int{63, 64, 100, 200, 1 << 16} {
		got := NextBackoffDelay(cfg, attempt)
		if got <= 0 {
			t.Fatalf("attempt %d: got=%v, want a positive delay", attempt, got)
		}
	}
}

func TestNextBackoffDelay_MultiplierFloor(t *testing.T) {
	cfg := BackoffConfig{
		Initial:    50 * time.Millisecond,
		Multiplier: 0.1, // clamped to 1.0
	}

	if got := NextBackoffDelay(cfg, 4); got != 50*time.Millisecond {
		t.Fatalf("got=%v want=%v", got, 50*time.Millisecond)
	}
}
