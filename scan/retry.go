package scan

import (
	"context"
	"log/slog"
	"time"
)

// DefaultRetryDelays returns the pauses between attempts of a retried
// lookup: two retries, one second apart.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 1 * time.Second}
}

// RetryWithDelays calls fn until it succeeds, returns an error retryable
// rejects, or len(delays)+1 attempts have been made. Each retry waits for
// the next delay. The last error is returned.
func RetryWithDelays[T any](ctx context.Context, delays []time.Duration, retryable func(error) bool, fn func(context.Context) (T, error), logger *slog.Logger) (T, error) {
	maxAttempts := len(delays) + 1 // 1 initial + N retries

	var zero T
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		v, err := fn(ctx)
		if err == nil {
			return v, nil
		}
		lastErr = err

		if retryable != nil && !retryable(err) {
			break
		}
		if attempt >= maxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		default:
		}

		if logger != nil {
			logger.Debug("retry", "attempt", attempt+2, "err", err)
		}

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return zero, lastErr
}
