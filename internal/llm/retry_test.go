package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testRetry = RetryConfig{
	MaxAttempts: 3,
	InitialWait: 100 * time.Millisecond,
	MaxWait:     time.Second,
	Multiplier:  2,
}

// instantRetry wraps inner without jitter, recording waits instead of
// sleeping.
func instantRetry(inner Provider, cfg RetryConfig) (*RetryProvider, *[]time.Duration) {
	var waits []time.Duration
	r := WithRetry(inner, cfg)
	r.jitter = func() float64 { return 0 }
	r.sleep = func(ctx context.Context, d time.Duration) error {
		waits = append(waits, d)
		return ctx.Err()
	}
	return r, &waits
}

func down() MockResponse {
	return MockResponse{Err: &Error{Kind: KindUnavailable, Err: errors.New("down")}}
}

func TestRetryFirstAttempt(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})
	r, waits := instantRetry(mock, testRetry)

	_, err := r.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, 1, mock.CallCount())
	assert.Empty(t, *waits)
}

func TestRetryBacksOffThenSucceeds(t *testing.T) {
	mock := NewMockProvider(down(), down(), MockResponse{Content: json.RawMessage(`{}`)})
	r, waits := instantRetry(mock, testRetry)

	_, err := r.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, 3, mock.CallCount())
	assert.Equal(t, []time.Duration{100 * time.Millisecond, 200 * time.Millisecond}, *waits)
}

func TestRetryGivesUp(t *testing.T) {
	mock := NewMockProvider(down(), down(), down(), MockResponse{Content: json.RawMessage(`{}`)})
	r, _ := instantRetry(mock, testRetry)

	_, err := r.Generate(context.Background(), Request{})
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, 3, mock.CallCount())
}

func TestRetrySkipsTruncated(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: &Error{Kind: KindTruncated}})
	r, _ := instantRetry(mock, testRetry)

	_, err := r.Generate(context.Background(), Request{})
	assert.ErrorIs(t, err, ErrTruncated)
	assert.Equal(t, 1, mock.CallCount())
}

func TestRetryInvalidResponseOnce(t *testing.T) {
	bad := MockResponse{Err: invalidResponse(json.RawMessage(`bad`), "bad")}
	mock := NewMockProvider(bad, bad, MockResponse{Content: json.RawMessage(`{}`)})
	r, _ := instantRetry(mock, testRetry)

	_, err := r.Generate(context.Background(), Request{})
	assert.ErrorIs(t, err, ErrInvalidResponse)
	assert.Equal(t, 2, mock.CallCount())
}

func TestRetryHonoursRetryAfter(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &Error{Kind: KindRateLimited, RetryAfter: 3 * time.Second}},
		MockResponse{Content: json.RawMessage(`{}`)},
	)
	r, waits := instantRetry(mock, testRetry)

	_, err := r.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, []time.Duration{3 * time.Second}, *waits)
}

func TestRetryStopsOnCancel(t *testing.T) {
	mock := NewMockProvider(down(), down())
	r, _ := instantRetry(mock, testRetry)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := r.Generate(ctx, Request{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, mock.CallCount())
}

func TestRetryZeroAttemptsStillTriesOnce(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})
	r, _ := instantRetry(mock, RetryConfig{})

	_, err := r.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, "mock", r.ModelID())
}

func TestRetryDelayCapped(t *testing.T) {
	assert.Equal(t, 100*time.Millisecond, testRetry.delay(0))
	assert.Equal(t, 400*time.Millisecond, testRetry.delay(2))
	assert.Equal(t, time.Second, testRetry.delay(10))
}

func TestSleepCtx(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, sleepCtx(ctx, time.Hour), context.Canceled)
	assert.NoError(t, sleepCtx(context.Background(), time.Millisecond))
}
