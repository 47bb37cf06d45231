package errors

import (
	"context"
	"math"
	"math/rand/v2"
	"net/http"
	"time"
)

// Retry defaults for idempotent network reads.
const (
	DefaultMaxRetries = 2
	DefaultBaseDelay  = 500 * time.Millisecond
	DefaultMaxDelay   = 5 * time.Second
	DefaultJitter     = 0.4
)

// RetryConfig holds configuration for retry behavior. A zero MaxRetries
// means a single attempt.
type RetryConfig struct {
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration
	Jitter     float64 // 0.0 to 1.0
}

// DefaultRetryConfig returns the retry settings used for weather lookups.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries: DefaultMaxRetries,
		BaseDelay:  DefaultBaseDelay,
		MaxDelay:   DefaultMaxDelay,
		Jitter:     DefaultJitter,
	}
}

// IsRetryable reports whether err is a network failure worth another
// attempt: a transport error, HTTP 429 or any 5xx response.
func IsRetryable(err error) bool {
	if !IsNetworkFailure(err) {
		return false
	}
	status := Classify("", err).StatusCode
	return status == 0 || status == http.StatusTooManyRequests || status >= 500
}

// RetryWithResult calls fn until it succeeds, fails with a non-retryable
// error, or cfg.MaxRetries extra attempts have been made. Backoff between
// attempts is exponential with jitter and stops early when ctx is done.
func RetryWithResult[T any](ctx context.Context, cfg RetryConfig, fn func() (T, error)) (T, error) {
	var result T
	var lastErr error

	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			if lastErr != nil {
				return result, lastErr
			}
			return result, Wrap(err, "cancelled before request")
		}

		var err error
		result, err = fn()
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !IsRetryable(lastErr) || attempt == cfg.MaxRetries {
			return result, lastErr
		}

		select {
		case <-ctx.Done():
			return result, lastErr
		case <-time.After(CalculateBackoff(cfg.BaseDelay, cfg.MaxDelay, attempt, cfg.Jitter)):
		}
	}

	return result, lastErr
}

// CalculateBackoff returns min(base*2^attempt, max) scaled by a random
// factor in [1-jitter/2, 1+jitter/2].
func CalculateBackoff(base, max time.Duration, attempt int, jitter float64) time.Duration {
	delay := float64(base) * math.Pow(2, float64(attempt))
	if delay > float64(max) {
		delay = float64(max)
	}
	return time.Duration(delay * (1.0 - jitter/2 + jitter*rand.Float64()))
}
