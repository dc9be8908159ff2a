package ai

import (
	"context"
	"hash/fnv"
	"io"
	"math"
)

// NopEmbedder generates deterministic pseudo-vectors without any network
// calls. Equal text always yields equal vectors, so the pipeline and its
// tests can run end-to-end offline. The vectors carry no semantic meaning.
type NopEmbedder struct {
	dimension int
}

// NewNopEmbedder returns a NopEmbedder producing vectors of the given dimension.
func NewNopEmbedder(dimension int) *NopEmbedder {
	if dimension <= 0 {
		dimension = 8
	}
	return &NopEmbedder{dimension: dimension}
}

// Embed derives a vector from an FNV hash of text, expanded with an LCG.
func (n *NopEmbedder) Embed(_ context.Context, text string) ([]float64, error) {
	h := fnv.New64a()
	io.WriteString(h, text)
	seed := h.Sum64()

	vec := make([]float64, n.dimension)
	for i := range vec {
		seed = seed*6364136223846793005 + 1442695040888963407
		vec[i] = float64(int64(seed)) / math.MaxInt64
	}
	return vec, nil
}

func (n *NopEmbedder) Name() string { return "nop" }
