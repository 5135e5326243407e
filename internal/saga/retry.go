package saga

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sethvargo/go-retry"
)

// RetryPolicy bounds how often a mutation that lost an optimistic race is re-run.
type RetryPolicy struct {
	MaxAttempts uint64
	Base        time.Duration
}

var DefaultRetryPolicy = RetryPolicy{MaxAttempts: 3, Base: 20 * time.Millisecond}

// Retry runs fn and re-runs it with exponential backoff while it fails with
// one of the conflict errors. Any other error is returned at once.
func Retry[T any](ctx context.Context, p RetryPolicy, fn func(ctx context.Context) (T, error), conflicts ...error) (T, error) {
	attempts := max(p.MaxAttempts, 1)

	base := p.Base
	if base <= 0 {
		base = DefaultRetryPolicy.Base
	}

	b := retry.WithMaxRetries(attempts-1, retry.NewExponential(base))

	attempt := 0

	return retry.DoValue(ctx, b, func(ctx context.Context) (T, error) {
		attempt++

		v, err := fn(ctx)
		if err == nil {
			return v, nil
		}

		for _, c := range conflicts {
			if errors.Is(err, c) {
				slog.Warn("version conflict, retrying", "attempt", attempt, "error", err)
				return v, retry.RetryableError(err)
			}
		}

		return v, err
	})
}
