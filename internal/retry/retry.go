// Package retry decides whether and when a failed upstream call is retried.
// Backoff is exponential with a cap; only errors the taxonomy marks
// retryable are ever re-attempted.
package retry

import (
	"context"
	"math"
	"time"

	"github.com/jump-sdk/parkhub-batch/internal/domain/apperror"
)

// Policy defines retry behavior for a single asynchronous operation.
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// DefaultPolicy provides sensible defaults.
var DefaultPolicy = Policy{
	MaxAttempts: 3,
	BaseDelay:   1 * time.Second,
	MaxDelay:    30 * time.Second,
}

// Decision is the outcome of a retry check.
type Decision struct {
	Retry bool
	Delay time.Duration
}

// OnRetry observes a scheduled retry before its delay elapses. It is for
// logging and UI feedback only and must not influence whether the retry
// proceeds.
type OnRetry func(err *apperror.Error, attempt int, delay time.Duration)

// ShouldRetry reports whether the classified error may be re-attempted after
// attempt completed tries, and with what delay. Non-retryable errors and
// exhausted attempts always stop.
func (p Policy) ShouldRetry(err *apperror.Error, attempt int) Decision {
	if err == nil || !err.Retryable {
		return Decision{}
	}
	if attempt >= p.MaxAttempts {
		return Decision{}
	}
	if err.Kind == apperror.KindNetwork && err.RetryCount >= p.MaxAttempts {
		return Decision{}
	}
	return Decision{Retry: true, Delay: p.backoff(attempt)}
}

func (p Policy) backoff(attempt int) time.Duration {
	delay := float64(p.BaseDelay) * math.Pow(2, float64(attempt))
	if delay > float64(p.MaxDelay) {
		delay = float64(p.MaxDelay)
	}
	return time.Duration(delay)
}

// Do runs op until it succeeds, the policy gives up, or ctx is cancelled.
// The final classified error is surfaced unchanged. Network errors carry
// their retry count across attempts of the same logical failure; for other
// retryable kinds the loop's attempt counter is the only bookkeeping.
func (p Policy) Do(ctx context.Context, op func(context.Context) error, onRetry OnRetry) error {
	networkRetries := 0
	for attempt := 0; ; attempt++ {
		err := op(ctx)
		if err == nil {
			return nil
		}

		classified := apperror.Classify(err)
		if classified.Kind == apperror.KindNetwork {
			// Fresh transport failures restart at zero; carry the count of
			// the logical operation across attempts.
			classified.RetryCount = networkRetries
		}
		d := p.ShouldRetry(classified, attempt)
		if !d.Retry {
			return classified
		}

		if classified.Kind == apperror.KindNetwork {
			networkRetries++
			classified.RetryCount = networkRetries
		}
		if onRetry != nil {
			onRetry(classified, attempt, d.Delay)
		}

		select {
		case <-ctx.Done():
			return apperror.Classify(ctx.Err())
		case <-time.After(d.Delay):
		}
	}
}
