package llm

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"
)

// RetryConfig configures backoff between attempts.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// delay is the un-jittered wait after the given zero-based attempt.
func (c RetryConfig) delay(attempt int) time.Duration {
	d := float64(c.InitialWait)
	for range attempt {
		d *= c.Multiplier
		if d >= float64(c.MaxWait) {
			return c.MaxWait
		}
	}
	return min(time.Duration(d), c.MaxWait)
}

// RetryProvider retries failed requests with exponential backoff. It
// never retries truncated output or a cancelled context, and retries an
// invalid response only once.
type RetryProvider struct {
	inner  Provider
	config RetryConfig

	jitter func() float64 // in [-1, 1)
	sleep  func(context.Context, time.Duration) error
}

// WithRetry wraps p.
func WithRetry(p Provider, cfg RetryConfig) *RetryProvider {
	return &RetryProvider{
		inner:  p,
		config: cfg,
		jitter: func() float64 { return 2*rand.Float64() - 1 },
		sleep:  sleepCtx,
	}
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	attempts := max(r.config.MaxAttempts, 1)
	invalidSeen := false

	var err error
	for attempt := range attempts {
		var resp *Response
		if resp, err = r.inner.Generate(ctx, req); err == nil {
			return resp, nil
		}

		if errors.Is(err, ErrInvalidResponse) {
			if invalidSeen {
				return nil, err
			}
			invalidSeen = true
		}
		if !retryable(err) || attempt == attempts-1 {
			return nil, err
		}
		if serr := r.sleep(ctx, r.wait(attempt, err)); serr != nil {
			return nil, serr
		}
	}
	return nil, err
}

func (r *RetryProvider) ModelID() string {
	return r.inner.ModelID()
}

func retryable(err error) bool {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return false
	case errors.Is(err, ErrTruncated):
		return false
	}
	return true
}

// wait honours a server Retry-After, otherwise backs off with ±20% jitter.
func (r *RetryProvider) wait(attempt int, err error) time.Duration {
	var e *Error
	if errors.As(err, &e) && e.RetryAfter > 0 {
		return e.RetryAfter
	}
	d := r.config.delay(attempt)
	return max(d+time.Duration(float64(d)*0.2*r.jitter()), 0)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
