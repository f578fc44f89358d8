// internal/bridge/backoff.go
package bridge

import (
	"math"
	"time"
)

// BackoffConfig controls the delay between reconnect cycles.
// A zero Initial reproduces the source behavior: immediate retry,
// no bound on attempts.
type BackoffConfig struct {
	Initial    time.Duration
	Max        time.Duration
	Multiplier float64
}

// NextBackoffDelay returns the retry delay for attempt N (1-based).
func NextBackoffDelay(cfg BackoffConfig, attempt int) time.Duration {
	if cfg.Initial <= 0 {
		return 0
	}
	if attempt <= 1 {
		return cfg.Initial
	}
	if cfg.Multiplier < 1.0 {
		cfg.Multiplier = 1.0
	}

	delay := float64(cfg.Initial) * math.Pow(cfg.Multiplier, float64(attempt-1))
	if cfg.Max > 0 && delay > float64(cfg.Max) {
		delay = float64(cfg.Max)
	}

	// Without a Max the exponent can push the product past the
	// Duration range; a wrapped negative delay would read as
	// "no delay" and collapse the configured backoff.
	if delay >= math.MaxInt64 {
		return time.Duration(math.MaxInt64)
	}

	return time.Duration(delay)
}
