package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/amishk599/jobfit/internal/model"
)

// GeminiEmbedder embeds text through the Gemini embedding API.
type GeminiEmbedder struct {
	client    *genai.Client
	model     string
	dimension int
}

// NewGeminiEmbedder creates an embedder backed by the Gemini API.
// dimension requests a fixed output dimensionality; 0 uses the model default.
func NewGeminiEmbedder(ctx context.Context, apiKey, model string, dimension int) (*GeminiEmbedder, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &GeminiEmbedder{client: client, model: model, dimension: dimension}, nil
}

// Embed returns the embedding vector for text.
func (g *GeminiEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	var cfg *genai.EmbedContentConfig
	if g.dimension > 0 {
		cfg = &genai.EmbedContentConfig{
			OutputDimensionality: genai.Ptr(int32(g.dimension)),
		}
	}

	resp, err := g.client.Models.EmbedContent(ctx, g.model, genai.Text(text), cfg)
	if err != nil {
		return nil, fmt.Errorf("embed content: %w", err)
	}

	if len(resp.Embeddings) == 0 || len(resp.Embeddings[0].Values) == 0 {
		return nil, errors.New("gemini api returned empty embedding")
	}

	values := resp.Embeddings[0].Values
	if g.dimension > 0 && len(values) != g.dimension {
		return nil, &model.DimensionError{Want: g.dimension, Got: len(values)}
	}

	vec := make([]float64, len(values))
	for i, v := range values {
		vec[i] = float64(v)
	}
	return vec, nil
}

func (g *GeminiEmbedder) Name() string { return "gemini" }

// GeminiProvider implements LLMProvider against the Gemini API.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

// NewGeminiProvider creates an LLM provider backed by the Gemini API.
func NewGeminiProvider(ctx context.Context, apiKey, model string) (*GeminiProvider, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &GeminiProvider{client: client, model: model}, nil
}

// Complete sends prompt to Gemini and returns the concatenated text response.
// The model is asked for JSON output since every prompt in this system
// requests structured data.
func (g *GeminiProvider) Complete(ctx context.Context, prompt string) (string, error) {
	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil || part.Text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(part.Text)
		}
	}

	out := strings.TrimSpace(builder.String())
	if out == "" {
		return "", errors.New("gemini api returned empty response")
	}
	return out, nil
}
