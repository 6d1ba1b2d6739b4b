package advisor

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Default retry settings.
const (
	DefaultMaxAttempts = 3
	DefaultBaseDelay   = time.Second
)

// RetryPolicy bounds how often an operation is attempted. After failed
// attempt n (1-based) it waits 2^n * BaseDelay before trying again.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
}

// DefaultRetryPolicy returns three attempts with 2s and 4s waits.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: DefaultMaxAttempts, BaseDelay: DefaultBaseDelay}
}

// Delay returns the wait after the given failed attempt.
func (p RetryPolicy) Delay(attempt int) time.Duration {
	return p.BaseDelay << attempt
}

// RetryNotify is called after each failed attempt that will be retried.
type RetryNotify func(attempt int, err error, wait time.Duration)

// Do runs op until it succeeds, the attempt budget is spent, or ctx ends.
// It returns the last error from op, or ctx.Err() when ctx ends first.
func (p RetryPolicy) Do(
	ctx context.Context,
	op func(ctx context.Context, attempt int) error,
	notify RetryNotify,
) error {
	maxAttempts := max(p.MaxAttempts, 1)

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = p.Delay(1)
	bo.Multiplier = 2
	bo.RandomizationFactor = 0
	bo.MaxInterval = p.Delay(maxAttempts)
	bo.MaxElapsedTime = 0

	b := backoff.WithContext(backoff.WithMaxRetries(bo, uint64(maxAttempts-1)), ctx)

	attempt := 0
	operation := func() error {
		attempt++
		err := op(ctx, attempt)
		if err != nil && ctx.Err() != nil {
			return backoff.Permanent(ctx.Err())
		}
		return err
	}

	var onRetry backoff.Notify
	if notify != nil {
		onRetry = func(err error, wait time.Duration) {
			notify(attempt, err, wait)
		}
	}

	err := backoff.RetryNotify(operation, b, onRetry)
	if err != nil && ctx.Err() != nil && !errors.Is(err, ctx.Err()) {
		return ctx.Err()
	}
	return err
}
