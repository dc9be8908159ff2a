package ai

import "context"

// Embedder converts text into a dense vector. Implementations call a hosted
// embedding API (Gemini, any OpenAI-compatible endpoint) or generate
// deterministic pseudo-vectors for offline runs.
type Embedder interface {
	// Embed returns the embedding for text. The returned vector always has
	// the dimension the embedder was configured with.
	Embed(ctx context.Context, text string) ([]float64, error)
	// Name identifies the backing provider, used for logging and rate-limit keys.
	Name() string
}

// LLMProvider sends a prompt to an LLM and returns the raw text response.
// Used only by the LLM entity extractor; not exported to the rest of the system.
type LLMProvider interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
