package ai

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// RetryConfig bounds how persistently a failed provider call is retried.
// Commit message generation is interactive, so attempts and delays stay
// small enough that the user is never left staring at a stuck command.
type RetryConfig struct {
	// MaxAttempts is the maximum number of attempts (default: 3).
	MaxAttempts int

	// InitialDelay is the delay before the first retry (default: 1s).
	InitialDelay time.Duration

	// MaxDelay caps the backoff growth (default: 10s).
	MaxDelay time.Duration

	// Multiplier grows the delay between attempts (default: 2.0).
	Multiplier float64
}

// DefaultRetryConfig returns sensible defaults for retry behavior.
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxAttempts:  3,
		InitialDelay: 1 * time.Second,
		MaxDelay:     10 * time.Second,
		Multiplier:   2.0,
	}
}

// RetryConfigFromConfig creates retry config from AI config.
func RetryConfigFromConfig(cfg *Config) *RetryConfig {
	return &RetryConfig{
		MaxAttempts:  cfg.RetryMaxAttempts,
		InitialDelay: cfg.RetryInitialDelay,
		MaxDelay:     cfg.RetryMaxDelay,
		Multiplier:   2.0,
	}
}

// nextDelay grows the backoff delay, clamped at MaxDelay.
func (c *RetryConfig) nextDelay(current time.Duration) time.Duration {
	next := time.Duration(float64(current) * c.Multiplier)
	if next > c.MaxDelay {
		return c.MaxDelay
	}
	return next
}

// GenerateWithRetry runs generate until it succeeds, fails permanently, or
// the attempt budget is spent. Only transient provider failures are retried;
// a bad API key or an empty response fails on the spot.
func GenerateWithRetry(
	ctx context.Context,
	cfg *RetryConfig,
	logger *logrus.Entry,
	generate func(context.Context) (*GenerateResponse, error),
) (*GenerateResponse, error) {
	delay := cfg.InitialDelay
	var lastErr error

	for attempt := 1; ; attempt++ {
		resp, err := generate(ctx)
		if err == nil {
			if attempt > 1 && logger != nil {
				logger.WithField("attempt", attempt).Info("Provider call succeeded after retry")
			}
			return resp, nil
		}

		lastErr = err
		if !IsRetryableError(err) {
			if logger != nil {
				logger.WithError(err).Debug("Provider error is permanent, not retrying")
			}
			return nil, err
		}

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		if attempt >= cfg.MaxAttempts {
			break
		}

		if logger != nil {
			logger.WithFields(logrus.Fields{
				"attempt":     attempt,
				"maxAttempts": cfg.MaxAttempts,
				"delay":       delay.String(),
				"error":       err.Error(),
			}).Warn("Transient provider error, retrying")
		}

		if err := sleepContext(ctx, delay); err != nil {
			return nil, err
		}
		delay = cfg.nextDelay(delay)
	}

	return nil, fmt.Errorf("AI generation failed after %d attempts: %w",
		cfg.MaxAttempts, lastErr)
}

// sleepContext waits for d unless the context ends first.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// transientMarkers name the provider failures worth another attempt: rate
// limiting, upstream 5xx responses, and flaky networking. Providers report
// these as free text, so matching is by substring.
//
//nolint:gochecknoglobals // fixed lookup table
var transientMarkers = []string{
	"rate limit",
	"too many requests",
	"429",
	"500",
	"502",
	"503",
	"service unavailable",
	"internal server error",
	"overloaded",
	"capacity",
	"timeout",
	"deadline exceeded",
	"connection",
	"network",
	"temporary",
	"eof",
}

// IsRetryableError classifies a generation failure as transient or
// permanent. Typed errors from this package are classified directly;
// anything else falls back to substring matching on the provider's message.
func IsRetryableError(err error) bool {
	if err == nil {
		return false
	}

	switch {
	case errors.Is(err, context.Canceled):
		return false
	case errors.Is(err, ErrGenerationTimeout), errors.Is(err, context.DeadlineExceeded):
		return true
	case errors.Is(err, ErrAPIKeyMissing), errors.Is(err, ErrUnsupportedProvider),
		errors.Is(err, ErrEmptyResponse), errors.Is(err, ErrEmptyInput):
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, marker := range transientMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
