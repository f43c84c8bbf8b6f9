package client

import (
	"context"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// DefaultTimeout bounds each individual attempt.
const DefaultTimeout = 30 * time.Second

// RetryConfig controls retries of transient failures.
type RetryConfig struct {
	// MaxRetries is the number of retries after the first attempt.
	MaxRetries int

	// InitialInterval is the wait before the first retry.
	InitialInterval time.Duration

	// Multiplier is applied to the wait on each retry.
	Multiplier float64

	// MaxInterval caps a single wait.
	MaxInterval time.Duration
}

// DefaultRetryConfig returns three retries with exponential backoff.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:      3,
		InitialInterval: 100 * time.Millisecond,
		Multiplier:      2.0,
		MaxInterval:     5 * time.Second,
	}
}

// backOff builds the retry schedule for one logical call.
func (r RetryConfig) backOff(ctx context.Context) backoff.BackOff {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = r.InitialInterval
	exp.Multiplier = r.Multiplier
	exp.MaxInterval = r.MaxInterval
	exp.RandomizationFactor = 0.25
	exp.MaxElapsedTime = 0 // bounded by MaxRetries instead
	exp.Reset()

	retries := r.MaxRetries
	if retries < 0 {
		retries = 0
	}
	return backoff.WithContext(backoff.WithMaxRetries(exp, uint64(retries)), ctx)
}

// retryableStatus reports whether a response status is worth retrying.
// Other 4xx responses are semantic failures and surface immediately.
func retryableStatus(code int) bool {
	switch code {
	case http.StatusRequestTimeout, http.StatusTooManyRequests:
		return true
	}
	return code >= 500
}
