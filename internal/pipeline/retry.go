package pipeline

import (
	"context"
	"errors"
	"log"
	"math"
	"time"
)

// RetryConfig defines how a remote source fetch is retried.
type RetryConfig struct {
	MaxAttempts       int           `json:"max_attempts"`
	InitialDelay      time.Duration `json:"initial_delay"`
	MaxDelay          time.Duration `json:"max_delay"`
	BackoffMultiplier float64       `json:"backoff_multiplier"`
}

// DefaultRetryConfig is used by HTTPSource when no config is set.
var DefaultRetryConfig = RetryConfig{
	MaxAttempts:       3,
	InitialDelay:      500 * time.Millisecond,
	MaxDelay:          5 * time.Second,
	BackoffMultiplier: 2.0,
}

// permanentError stops retrying.
type permanentError struct{ err error }

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

func permanent(err error) error { return &permanentError{err: err} }

// retry calls op until it succeeds, returns a permanent error, attempts run
// out or ctx ends. The last error is returned unwrapped.
func retry(ctx context.Context, cfg RetryConfig, name string, op func() error) error {
	if cfg.MaxAttempts <= 0 {
		cfg = DefaultRetryConfig
	}

	var err error
	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		if err = op(); err == nil {
			return nil
		}
		var perm *permanentError
		if errors.As(err, &perm) {
			return perm.err
		}
		if attempt == cfg.MaxAttempts {
			break
		}

		delay := backoff(cfg, attempt)
		log.Printf("🔄 Fetch of %s failed (attempt %d/%d): %v. Retrying in %v", name, attempt, cfg.MaxAttempts, err, delay)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
	return err
}

// backoff is the exponential delay after the given attempt, capped at MaxDelay.
func backoff(cfg RetryConfig, attempt int) time.Duration {
	multiplier := cfg.BackoffMultiplier
	if multiplier < 1 {
		multiplier = 1
	}
	delay := time.Duration(float64(cfg.InitialDelay) * math.Pow(multiplier, float64(attempt-1)))
	if cfg.MaxDelay > 0 && delay > cfg.MaxDelay {
		delay = cfg.MaxDelay
	}
	return delay
}
