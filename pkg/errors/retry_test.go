package errors

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastRetry(n int) RetryConfig {
	return RetryConfig{MaxRetries: n, BaseDelay: time.Millisecond, MaxDelay: time.Millisecond}
}

func TestIsRetryable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"transport error", NewNetworkError("weather", "request failed", New("connection refused")), true},
		{"server error", NewNetworkErrorWithStatus("weather", http.StatusBadGateway, "Bad Gateway"), true},
		{"rate limited", NewNetworkErrorWithStatus("weather", http.StatusTooManyRequests, "Too Many Requests"), true},
		{"not found", NewNetworkErrorWithStatus("weather", http.StatusNotFound, "Not Found"), false},
		{"io failure", NewIOError("weather", "disk full", nil), false},
		{"wrapped server error", Wrap(NewNetworkErrorWithStatus("weather", 503, "Service Unavailable"), "lookup"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, IsRetryable(tt.err))
		})
	}
}

func TestRetryWithResult(t *testing.T) {
	t.Parallel()

	t.Run("succeeds after transient failures", func(t *testing.T) {
		t.Parallel()

		calls := 0
		got, err := RetryWithResult(context.Background(), fastRetry(3), func() (string, error) {
			calls++
			if calls < 3 {
				return "", NewNetworkErrorWithStatus("weather", 502, "Bad Gateway")
			}
			return "sunny", nil
		})
		require.NoError(t, err)
		assert.Equal(t, "sunny", got)
		assert.Equal(t, 3, calls)
	})

	t.Run("stops on non-retryable error", func(t *testing.T) {
		t.Parallel()

		calls := 0
		_, err := RetryWithResult(context.Background(), fastRetry(3), func() (string, error) {
			calls++
			return "", NewNetworkErrorWithStatus("weather", 404, "Not Found")
		})
		require.Error(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("gives up after max retries", func(t *testing.T) {
		t.Parallel()

		calls := 0
		_, err := RetryWithResult(context.Background(), fastRetry(2), func() (int, error) {
			calls++
			return 0, NewNetworkError("weather", "request failed", nil)
		})
		require.Error(t, err)
		assert.True(t, IsNetworkFailure(err))
		assert.Equal(t, 3, calls)
	})

	t.Run("zero config makes one attempt", func(t *testing.T) {
		t.Parallel()

		calls := 0
		_, err := RetryWithResult(context.Background(), RetryConfig{}, func() (int, error) {
			calls++
			return 0, NewNetworkError("weather", "request failed", nil)
		})
		require.Error(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		calls := 0
		_, err := RetryWithResult(ctx, fastRetry(3), func() (int, error) {
			calls++
			return 1, nil
		})
		require.Error(t, err)
		assert.Zero(t, calls)
	})
}

func TestCalculateBackoff(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 400*time.Millisecond, CalculateBackoff(100*time.Millisecond, time.Second, 2, 0))
	assert.Equal(t, time.Second, CalculateBackoff(100*time.Millisecond, time.Second, 10, 0))

	d := CalculateBackoff(time.Second, time.Minute, 0, 0.4)
	assert.GreaterOrEqual(t, d, 800*time.Millisecond)
	assert.LessOrEqual(t, d, 1200*time.Millisecond)
}
