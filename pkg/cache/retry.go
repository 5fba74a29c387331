package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNetwork is returned when a remote backend cannot be reached.
var ErrNetwork = errors.New("cache backend unreachable")

// RetryableError marks a failure as transient. Only errors wrapped this way
// are retried by [Backoff.Retry].
type RetryableError struct{ Err error }

// Retryable marks err as transient. A nil err stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether any error in err's chain is a RetryableError.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// Backoff is a retry policy for dialing remote backends.
type Backoff struct {
	Attempts int           // total calls, including the first
	Delay    time.Duration // wait after the first failure
	MaxDelay time.Duration // cap on the doubled wait; zero means no cap
}

// ConnectBackoff is used when opening Redis and MongoDB connections.
var ConnectBackoff = Backoff{Attempts: 3, Delay: 500 * time.Millisecond, MaxDelay: 2 * time.Second}

// Retry calls fn until it succeeds, returns a non-retryable error, or the
// attempts run out. The last error is returned when attempts are exhausted.
func (b Backoff) Retry(ctx context.Context, fn func() error) error {
	attempts := max(b.Attempts, 1)
	delay := b.Delay

	var err error
	for i := range attempts {
		if err = fn(); err == nil || !IsRetryable(err) {
			return err
		}
		if i == attempts-1 {
			break
		}
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		delay = b.next(delay)
	}
	return err
}

func (b Backoff) next(d time.Duration) time.Duration {
	d *= 2
	if b.MaxDelay > 0 && d > b.MaxDelay {
		return b.MaxDelay
	}
	return d
}

// RetryWithBackoff is shorthand for an uncapped [Backoff].
func RetryWithBackoff(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	return Backoff{Attempts: attempts, Delay: delay}.Retry(ctx, fn)
}
