package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/amishk599/jobfit/internal/ai"
)

// ProviderRateLimiter enforces a minimum delay between requests to the same
// embedding provider.
type ProviderRateLimiter struct {
	mu       sync.Mutex
	lastCall map[string]time.Time // key: provider name
	minDelay time.Duration        // delay between requests to same provider
}

// NewProviderRateLimiter creates a rate limiter that enforces minDelay between
// consecutive requests to the same provider.
func NewProviderRateLimiter(minDelay time.Duration) *ProviderRateLimiter {
	return &ProviderRateLimiter{
		lastCall: make(map[string]time.Time),
		minDelay: minDelay,
	}
}

// Wait blocks until enough time has passed since the last request to the given provider.
// Returns an error if the context is cancelled while waiting.
func (r *ProviderRateLimiter) Wait(ctx context.Context, provider string) error {
	r.mu.Lock()
	last, ok := r.lastCall[provider]
	now := time.Now()

	if !ok {
		// First request for this provider — no wait needed.
		r.lastCall[provider] = now
		r.mu.Unlock()
		return nil
	}

	elapsed := now.Sub(last)
	if elapsed >= r.minDelay {
		// Enough time has passed — proceed immediately.
		r.lastCall[provider] = now
		r.mu.Unlock()
		return nil
	}

	// Need to wait for the remainder.
	remaining := r.minDelay - elapsed
	r.mu.Unlock()

	select {
	case <-ctx.Done():
		return fmt.Errorf("rate limiter wait for %s: %w", provider, ctx.Err())
	case <-time.After(remaining):
	}

	// Record the actual time after waiting.
	r.mu.Lock()
	r.lastCall[provider] = time.Now()
	r.mu.Unlock()

	return nil
}

// RateLimitedEmbedder is a decorator that enforces provider-level rate
// limiting before delegating to the wrapped Embedder.
type RateLimitedEmbedder struct {
	inner   ai.Embedder
	limiter *ProviderRateLimiter
}

var _ ai.Embedder = (*RateLimitedEmbedder)(nil)

// NewRateLimitedEmbedder wraps an Embedder with provider-level rate limiting.
// All embedders targeting the same provider should share the same limiter instance.
func NewRateLimitedEmbedder(inner ai.Embedder, limiter *ProviderRateLimiter) *RateLimitedEmbedder {
	return &RateLimitedEmbedder{
		inner:   inner,
		limiter: limiter,
	}
}

// Embed waits for the rate limiter to allow a request, then delegates to
// the wrapped embedder.
func (e *RateLimitedEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	if err := e.limiter.Wait(ctx, e.inner.Name()); err != nil {
		return nil, err
	}
	return e.inner.Embed(ctx, text)
}

// Name reports the wrapped provider's name.
func (e *RateLimitedEmbedder) Name() string {
	return e.inner.Name()
}
