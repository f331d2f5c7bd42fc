package llm

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"
)

// retryProvider retries rate limits and outages with jittered exponential
// backoff. A response that fails the schema gets exactly one more try.
type retryProvider struct {
	next Provider
	cfg  RetryConfig
}

// WithRetry wraps p with the retry policy in cfg.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &retryProvider{next: p, cfg: cfg}
}

func (r *retryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	retriedInvalid := false

	for attempt := 1; ; attempt++ {
		resp, err := r.next.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}

		switch retryClass(err) {
		case retryNever:
			return nil, err
		case retryOnce:
			if retriedInvalid {
				return nil, err
			}
			retriedInvalid = true
		}
		if attempt >= r.cfg.MaxAttempts {
			return nil, err
		}

		t := time.NewTimer(r.wait(attempt, err))
		select {
		case <-ctx.Done():
			t.Stop()
			return nil, ctx.Err()
		case <-t.C:
		}
	}
}

func (r *retryProvider) ModelID() string {
	return r.next.ModelID()
}

type retryKind int

const (
	retryNever retryKind = iota
	retryOnce
	retryAlways
)

func retryClass(err error) retryKind {
	var (
		rateLimit   *ErrRateLimit
		unavailable *ErrProviderUnavailable
		invalid     *ErrInvalidResponse
	)
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return retryNever
	case errors.As(err, &rateLimit), errors.As(err, &unavailable):
		return retryAlways
	case errors.As(err, &invalid):
		return retryOnce
	default:
		return retryNever
	}
}

// wait returns the delay before the next attempt. A server-provided
// Retry-After wins over the computed backoff.
func (r *retryProvider) wait(attempt int, err error) time.Duration {
	var rateLimit *ErrRateLimit
	if errors.As(err, &rateLimit) && rateLimit.RetryAfter > 0 {
		return rateLimit.RetryAfter
	}

	d := float64(r.cfg.InitialWait)
	for range attempt - 1 {
		d *= r.cfg.Multiplier
	}
	d = min(d, float64(r.cfg.MaxWait))

	// ±20% jitter
	d *= 0.8 + 0.4*rand.Float64()
	return time.Duration(d)
}
