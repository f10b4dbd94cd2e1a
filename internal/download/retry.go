package download

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"
)

// RetryPolicy controls how transient failures are retried.
type RetryPolicy struct {
	// MaxRetries is the number of additional attempts after the first one.
	MaxRetries int

	// BaseDelay is the wait before the first retry; each further retry
	// doubles it.
	BaseDelay time.Duration

	// Jitter adds up to a quarter of the delay on top of each wait, so
	// parallel runs do not hammer the service in lockstep.
	Jitter bool
}

// DefaultRetryPolicy retries three times starting at one second.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxRetries: 3, BaseDelay: time.Second, Jitter: true}
}

// RetryError reports that an operation kept failing transiently until the
// policy gave up. It wraps the error of the final attempt.
type RetryError struct {
	Attempts int
	Err      error
}

func (e *RetryError) Error() string {
	return fmt.Sprintf("gave up after %d attempts: %v", e.Attempts, e.Err)
}

func (e *RetryError) Unwrap() error { return e.Err }

// Executor runs operations under a RetryPolicy.
type Executor struct {
	policy  RetryPolicy
	onRetry func(attempt int, delay time.Duration, err error)
}

// NewExecutor creates an Executor. onRetry, if non-nil, is called before
// each backoff wait with the number of the attempt that just failed.
func NewExecutor(policy RetryPolicy, onRetry func(attempt int, delay time.Duration, err error)) *Executor {
	return &Executor{policy: policy, onRetry: onRetry}
}

// Do runs op, retrying transient failures with exponential backoff.
// Permanent failures propagate immediately. When every attempt fails
// transiently the result is a *RetryError wrapping the last error.
func (e *Executor) Do(ctx context.Context, op func() error) error {
	attempts := e.policy.MaxRetries + 1
	if attempts < 1 {
		attempts = 1
	}
	delay := e.policy.BaseDelay

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		err = op()
		if err == nil {
			return nil
		}
		if !IsTransient(err) {
			return err
		}
		if attempt == attempts {
			break
		}

		wait := delay
		if e.policy.Jitter {
			wait += time.Duration(rand.Int64N(int64(delay)/4 + 1))
		}
		if e.onRetry != nil {
			e.onRetry(attempt, wait, err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
		delay *= 2
	}

	return &RetryError{Attempts: attempts, Err: err}
}
