package ai

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test errors - defined at package level per linting rules.
var (
	errRateLimitExceeded  = errors.New("rate limit exceeded")
	errHTTP429            = errors.New("HTTP 429: too many requests")
	errHTTP503            = errors.New("HTTP 503: service unavailable")
	errRequestTimeout     = errors.New("request timeout")
	errDeadlineExceeded   = errors.New("context deadline exceeded")
	errConnectionRefused  = errors.New("connection refused")
	errServerOverloaded   = errors.New("server overloaded")
	errInvalidAPIKey      = errors.New("invalid API key")
	errHTTP400            = errors.New("HTTP 400: bad request")
	errUnknown            = errors.New("something went wrong")
	errRateLimitUpper     = errors.New("RATE LIMIT")
	errServiceUnavailable = errors.New("service unavailable")
)

func newFastRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxAttempts:  3,
		InitialDelay: 10 * time.Millisecond,
		MaxDelay:     100 * time.Millisecond,
		Multiplier:   2.0,
	}
}

func TestDefaultRetryConfig(t *testing.T) {
	cfg := DefaultRetryConfig()

	require.NotNil(t, cfg)
	assert.Equal(t, 3, cfg.MaxAttempts)
	assert.Equal(t, 1*time.Second, cfg.InitialDelay)
	assert.Equal(t, 10*time.Second, cfg.MaxDelay)
	assert.InEpsilon(t, 2.0, cfg.Multiplier, 0.001)
}

func TestRetryConfigFromConfig(t *testing.T) {
	aiCfg := &Config{
		RetryMaxAttempts:  5,
		RetryInitialDelay: 500 * time.Millisecond,
		RetryMaxDelay:     30 * time.Second,
	}

	cfg := RetryConfigFromConfig(aiCfg)

	require.NotNil(t, cfg)
	assert.Equal(t, 5, cfg.MaxAttempts)
	assert.Equal(t, 500*time.Millisecond, cfg.InitialDelay)
	assert.Equal(t, 30*time.Second, cfg.MaxDelay)
	assert.InEpsilon(t, 2.0, cfg.Multiplier, 0.001)
}

func TestGenerateWithRetry_SuccessFirstAttempt(t *testing.T) {
	ctx := context.Background()
	logger := logrus.NewEntry(logrus.New())

	var callCount int32
	generator := func(_ context.Context) (*GenerateResponse, error) {
		atomic.AddInt32(&callCount, 1)
		return &GenerateResponse{Content: "success"}, nil
	}

	resp, err := GenerateWithRetry(ctx, newFastRetryConfig(), logger, generator)

	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, "success", resp.Content)
	assert.Equal(t, int32(1), atomic.LoadInt32(&callCount), "should only call once on success")
}

func TestGenerateWithRetry_SuccessAfterRetry(t *testing.T) {
	ctx := context.Background()
	logger := logrus.NewEntry(logrus.New())

	var callCount int32
	generator := func(_ context.Context) (*GenerateResponse, error) {
		count := atomic.AddInt32(&callCount, 1)
		if count < 2 {
			return nil, errRateLimitExceeded // retryable
		}
		return &GenerateResponse{Content: "success"}, nil
	}

	resp, err := GenerateWithRetry(ctx, newFastRetryConfig(), logger, generator)

	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, "success", resp.Content)
	assert.Equal(t, int32(2), atomic.LoadInt32(&callCount))
}

func TestGenerateWithRetry_NonRetryableFailsImmediately(t *testing.T) {
	ctx := context.Background()
	logger := logrus.NewEntry(logrus.New())

	var callCount int32
	generator := func(_ context.Context) (*GenerateResponse, error) {
		atomic.AddInt32(&callCount, 1)
		return nil, errInvalidAPIKey
	}

	resp, err := GenerateWithRetry(ctx, newFastRetryConfig(), logger, generator)

	require.Error(t, err)
	assert.Nil(t, resp)
	require.ErrorIs(t, err, errInvalidAPIKey)
	assert.Equal(t, int32(1), atomic.LoadInt32(&callCount), "non-retryable error should not retry")
}

func TestGenerateWithRetry_ExhaustsAttempts(t *testing.T) {
	ctx := context.Background()
	logger := logrus.NewEntry(logrus.New())

	var callCount int32
	generator := func(_ context.Context) (*GenerateResponse, error) {
		atomic.AddInt32(&callCount, 1)
		return nil, errRateLimitExceeded
	}

	resp, err := GenerateWithRetry(ctx, newFastRetryConfig(), logger, generator)

	require.Error(t, err)
	assert.Nil(t, resp)
	require.ErrorIs(t, err, errRateLimitExceeded)
	assert.Contains(t, err.Error(), "after 3 attempts")
	assert.Equal(t, int32(3), atomic.LoadInt32(&callCount))
}

func TestGenerateWithRetry_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	logger := logrus.NewEntry(logrus.New())

	var callCount int32
	generator := func(_ context.Context) (*GenerateResponse, error) {
		if atomic.AddInt32(&callCount, 1) == 1 {
			cancel()
		}
		return nil, errRateLimitExceeded
	}

	resp, err := GenerateWithRetry(ctx, newFastRetryConfig(), logger, generator)

	require.Error(t, err)
	assert.Nil(t, resp)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int32(1), atomic.LoadInt32(&callCount))
}

func TestGenerateWithRetry_NilLogger(t *testing.T) {
	ctx := context.Background()

	resp, err := GenerateWithRetry(ctx, newFastRetryConfig(), nil, func(_ context.Context) (*GenerateResponse, error) {
		return &GenerateResponse{Content: "ok"}, nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Content)
}

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		retryable bool
	}{
		{"nil error", nil, false},
		{"rate limit", errRateLimitExceeded, true},
		{"HTTP 429", errHTTP429, true},
		{"HTTP 503", errHTTP503, true},
		{"service unavailable", errServiceUnavailable, true},
		{"timeout", errRequestTimeout, true},
		{"deadline exceeded", errDeadlineExceeded, true},
		{"connection refused", errConnectionRefused, true},
		{"overloaded", errServerOverloaded, true},
		{"case insensitive", errRateLimitUpper, true},
		{"invalid API key", errInvalidAPIKey, false},
		{"HTTP 400", errHTTP400, false},
		{"unknown error", errUnknown, false},
		{"generation timeout sentinel", ErrGenerationTimeout, true},
		{"wrapped rate limit error", RateLimitError("google", "30s"), true},
		{"empty response sentinel", ErrEmptyResponse, false},
		{"missing API key sentinel", ErrAPIKeyMissing, false},
		{"canceled context", context.Canceled, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.retryable, IsRetryableError(tt.err))
		})
	}
}
