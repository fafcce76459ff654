// Package retry implements the retry policy (linear or exponential backoff
// with jitter) for network calls, per spec §5 and §7. In this SDK its
// caller is the did:webvh log fetcher; the other adapters do not retry.
package retry

import (
	"context"
	"math/rand"
	"time"

	"github.com/originals-sdk/sdk/errors"
	"github.com/originals-sdk/sdk/ulogger"
)

// Do runs fn, retrying on error according to opts until RetryCount attempts
// are exhausted (or forever if InfiniteRetry is set), or ctx is canceled.
// The final error is returned wrapped, with the original retryability
// preserved when fn's error is itself a *errors.Error.
func Do(ctx context.Context, logger ulogger.Logger, fn func(ctx context.Context) error, opts ...Options) error {
	o := NewSetOptions(opts...)

	var lastErr error

	backoff := o.BackoffDurationType

	for attempt := 1; o.InfiniteRetry || attempt <= o.RetryCount; attempt++ {
		if err := ctx.Err(); err != nil {
			return errors.NewNetworkError(false, "retry canceled: %v", err)
		}

		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}

		if logger != nil {
			logger.Warnf("%sattempt %d failed: %v", o.Message, attempt, lastErr)
		}

		wait := nextBackoff(o, backoff, attempt)
		select {
		case <-ctx.Done():
			return errors.NewNetworkError(false, "retry canceled: %v", ctx.Err())
		case <-time.After(wait):
		}

		if o.ExponentialBackoff {
			backoff = time.Duration(float64(backoff) * o.BackoffFactor)
			if backoff > o.MaxBackoff {
				backoff = o.MaxBackoff
			}
		} else {
			backoff = o.BackoffDurationType * time.Duration(o.BackoffMultiplier*attempt)
		}
	}

	retryable := true
	var fnErr *errors.Error
	if errors.As(lastErr, &fnErr) {
		retryable = fnErr.Retryable
	}
	return errors.NewNetworkError(retryable, "exhausted retries: %v", lastErr)
}

func nextBackoff(o *SetOptions, base time.Duration, attempt int) time.Duration {
	jitter := time.Duration(rand.Int63n(int64(base/4 + 1)))
	wait := base + jitter

	if o.MaxBackoff > 0 && wait > o.MaxBackoff {
		wait = o.MaxBackoff
	}

	return wait
}
