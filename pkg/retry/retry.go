// Package retry runs an operation under a bounded, constant-delay retry policy.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
)

const (
	DefaultMaxAttempts = 3
	DefaultDelay       = time.Second
)

// ErrMaxRetries is matched by every ExhaustedError.
var ErrMaxRetries = errors.New("max retries reached")

// Policy bounds how many times an operation runs and how long to wait
// between runs.
type Policy struct {
	MaxAttempts int
	Delay       time.Duration

	// OnRetry is called after a failed attempt when another one will follow.
	OnRetry func(attempt, maxAttempts int, err error, wait time.Duration)
}

// DefaultPolicy returns three attempts spaced one second apart.
func DefaultPolicy() Policy {
	return Policy{MaxAttempts: DefaultMaxAttempts, Delay: DefaultDelay}
}

// ExhaustedError reports that every attempt failed.
type ExhaustedError struct {
	Attempts int
	Err      error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("max retries reached after %d attempts: %v", e.Attempts, e.Err)
}

func (e *ExhaustedError) Unwrap() []error {
	return []error{ErrMaxRetries, e.Err}
}

// Stats describes one Do call.
type Stats struct {
	Attempts int
}

// Do runs op until it succeeds or MaxAttempts runs have failed. Attempts are
// separated by Delay; a cancelled context stops the wait and returns the
// context error.
func Do[T any](ctx context.Context, p Policy, op func(ctx context.Context, attempt int) (T, error)) (T, Stats, error) {
	maxAttempts := p.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	delay := p.Delay
	if delay < 0 {
		delay = 0
	}

	var stats Stats
	operation := func() (T, error) {
		stats.Attempts++
		return op(ctx, stats.Attempts)
	}

	notify := func(err error, wait time.Duration) {
		if p.OnRetry != nil {
			p.OnRetry(stats.Attempts, maxAttempts, err, wait)
		}
	}

	res, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewConstantBackOff(delay)),
		backoff.WithMaxTries(uint(maxAttempts)),
		backoff.WithMaxElapsedTime(0),
		backoff.WithNotify(notify),
	)
	if err == nil {
		return res, stats, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return res, stats, ctxErr
	}
	return res, stats, &ExhaustedError{Attempts: stats.Attempts, Err: err}
}
