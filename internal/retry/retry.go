package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/amishk599/jobfit/internal/ai"
	"github.com/amishk599/jobfit/internal/model"
)

// RetryEmbedder is a decorator that retries transient failures with
// exponential backoff and jitter before delegating to the wrapped Embedder.
type RetryEmbedder struct {
	inner      ai.Embedder
	maxRetries int
	baseDelay  time.Duration
	logger     *slog.Logger
}

var _ ai.Embedder = (*RetryEmbedder)(nil)

// NewRetryEmbedder wraps an Embedder with retry logic.
// maxRetries is the number of additional attempts after the first failure (default: 2).
// baseDelay is the delay before the first retry (default: 2s), doubled on each subsequent retry.
func NewRetryEmbedder(inner ai.Embedder, maxRetries int, baseDelay time.Duration, logger *slog.Logger) *RetryEmbedder {
	return &RetryEmbedder{
		inner:      inner,
		maxRetries: maxRetries,
		baseDelay:  baseDelay,
		logger:     logger,
	}
}

// Embed attempts to embed text, retrying on transient errors.
func (e *RetryEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	vec, err := e.inner.Embed(ctx, text)
	if err == nil {
		return vec, nil
	}

	if !isRetryable(err) {
		return nil, err
	}

	var lastErr error = err
	for attempt := 1; attempt <= e.maxRetries; attempt++ {
		delay := e.backoffDelay(attempt, lastErr)

		e.logger.Warn("retrying after transient error",
			"provider", e.inner.Name(),
			"attempt", attempt,
			"max_retries", e.maxRetries,
			"delay", delay,
			"error", lastErr,
		)

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("retry cancelled: %w", ctx.Err())
		case <-time.After(delay):
		}

		vec, err = e.inner.Embed(ctx, text)
		if err == nil {
			return vec, nil
		}

		if !isRetryable(err) {
			return nil, err
		}
		lastErr = err
	}

	return nil, lastErr
}

// Name reports the wrapped provider's name.
func (e *RetryEmbedder) Name() string {
	return e.inner.Name()
}

// backoffDelay computes the delay for a given attempt with ±30% jitter.
// If the error includes a Retry-After duration (HTTP 429), that takes precedence.
func (e *RetryEmbedder) backoffDelay(attempt int, err error) time.Duration {
	var httpErr *model.HTTPError
	if errors.As(err, &httpErr) && httpErr.RetryAfter > 0 {
		return httpErr.RetryAfter
	}

	// Exponential: baseDelay * 2^(attempt-1)
	delay := e.baseDelay
	for i := 1; i < attempt; i++ {
		delay *= 2
	}

	// Apply ±30% jitter
	jitter := float64(delay) * 0.3
	delay = time.Duration(float64(delay) + (rand.Float64()*2-1)*jitter)

	return delay
}

// isRetryable returns true if the error represents a transient failure worth retrying.
func isRetryable(err error) bool {
	if err == nil {
		return false
	}

	// Context cancellation — never retry.
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	// Dimension mismatches are config errors; retrying cannot fix them.
	var dimErr *model.DimensionError
	if errors.As(err, &dimErr) {
		return false
	}

	var httpErr *model.HTTPError
	if errors.As(err, &httpErr) {
		// 429 Too Many Requests — retryable.
		if httpErr.StatusCode == 429 {
			return true
		}
		// 5xx — retryable.
		if httpErr.StatusCode >= 500 {
			return true
		}
		// 4xx (not 429) — not retryable.
		return false
	}

	// Non-HTTP errors (network, DNS, etc.) — retryable.
	return true
}
