package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/amishk599/jobfit/internal/model"
)

func makeTestServer(t *testing.T, statusCode int, body any) (*httptest.Server, *http.Client) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		if err := json.NewEncoder(w).Encode(body); err != nil {
			t.Errorf("encode response: %v", err)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, srv.Client()
}

func embeddingBody(vec []float64) map[string]any {
	return map[string]any{
		"data": []map[string]any{
			{"object": "embedding", "embedding": vec, "index": 0},
		},
		"usage": map[string]int{"prompt_tokens": 4, "total_tokens": 4},
	}
}

func TestEmbed_Success(t *testing.T) {
	srv, client := makeTestServer(t, http.StatusOK, embeddingBody([]float64{0.1, 0.2, 0.3}))

	emb := NewOpenAIEmbedder(srv.URL, "test-key", "test-model", 3, client)
	got, err := emb.Embed(context.Background(), "senior backend engineer")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []float64{0.1, 0.2, 0.3}
	if len(got) != len(want) {
		t.Fatalf("got %d values, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("vec[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestEmbed_SendsModelAndDimensions(t *testing.T) {
	var gotReq embeddingRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(embeddingBody([]float64{1, 0}))
	}))
	defer srv.Close()

	emb := NewOpenAIEmbedder(srv.URL, "key", "text-embedding-3-small", 2, srv.Client())
	_, _ = emb.Embed(context.Background(), "some text")

	if gotReq.Model != "text-embedding-3-small" {
		t.Errorf("model = %q, want text-embedding-3-small", gotReq.Model)
	}
	if gotReq.Dimensions != 2 {
		t.Errorf("dimensions = %d, want 2", gotReq.Dimensions)
	}
	if gotReq.Input != "some text" {
		t.Errorf("input = %q, want the embedded text", gotReq.Input)
	}
}

func TestEmbed_SetsAuthHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(embeddingBody([]float64{1}))
	}))
	defer srv.Close()

	emb := NewOpenAIEmbedder(srv.URL, "my-secret-key", "test-model", 1, srv.Client())
	_, _ = emb.Embed(context.Background(), "hello")

	if gotAuth != "Bearer my-secret-key" {
		t.Errorf("Authorization header = %q, want %q", gotAuth, "Bearer my-secret-key")
	}
}

func TestEmbed_RateLimitedCarriesRetryAfter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "7")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	emb := NewOpenAIEmbedder(srv.URL, "key", "test-model", 2, srv.Client())
	_, err := emb.Embed(context.Background(), "hello")
	if err == nil {
		t.Fatal("expected error on 429 response")
	}

	var httpErr *model.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *model.HTTPError, got %T", err)
	}
	if httpErr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("StatusCode = %d, want 429", httpErr.StatusCode)
	}
	if httpErr.RetryAfter != 7*time.Second {
		t.Errorf("RetryAfter = %v, want 7s", httpErr.RetryAfter)
	}
}

func TestEmbed_DimensionMismatch(t *testing.T) {
	srv, client := makeTestServer(t, http.StatusOK, embeddingBody([]float64{0.1, 0.2, 0.3}))

	emb := NewOpenAIEmbedder(srv.URL, "key", "test-model", 5, client)
	_, err := emb.Embed(context.Background(), "hello")

	var dimErr *model.DimensionError
	if !errors.As(err, &dimErr) {
		t.Fatalf("expected *model.DimensionError, got %v", err)
	}
	if dimErr.Want != 5 || dimErr.Got != 3 {
		t.Errorf("DimensionError = %d vs %d, want 5 vs 3", dimErr.Want, dimErr.Got)
	}
}

func TestEmbed_NoData(t *testing.T) {
	srv, client := makeTestServer(t, http.StatusOK, map[string]any{"data": []any{}})

	emb := NewOpenAIEmbedder(srv.URL, "key", "test-model", 2, client)
	_, err := emb.Embed(context.Background(), "hello")
	if err == nil {
		t.Fatal("expected error when no vector is returned")
	}
}

func TestComplete_Success(t *testing.T) {
	resp := chatResponse{
		Choices: []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		}{
			{Message: struct {
				Content string `json:"content"`
			}{Content: `{"entities":{}}`}},
		},
	}
	srv, client := makeTestServer(t, http.StatusOK, resp)

	provider := NewOpenAIProvider(srv.URL, "test-key", "test-model", client)
	got, err := provider.Complete(context.Background(), "extract entities")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != `{"entities":{}}` {
		t.Errorf("got %q, want json string", got)
	}
}

func TestComplete_HTTPError(t *testing.T) {
	srv, client := makeTestServer(t, http.StatusInternalServerError, map[string]string{"error": "server error"})

	provider := NewOpenAIProvider(srv.URL, "test-key", "test-model", client)
	_, err := provider.Complete(context.Background(), "extract entities")
	if err == nil {
		t.Fatal("expected error on 5xx response")
	}

	var httpErr *model.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *model.HTTPError, got %T", err)
	}
	if httpErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("StatusCode = %d, want 500", httpErr.StatusCode)
	}
}

func TestComplete_EmptyChoices(t *testing.T) {
	resp := chatResponse{Choices: nil}
	srv, client := makeTestServer(t, http.StatusOK, resp)

	provider := NewOpenAIProvider(srv.URL, "test-key", "test-model", client)
	_, err := provider.Complete(context.Background(), "extract entities")
	if err == nil {
		t.Fatal("expected error when LLM returns no choices")
	}
}

func TestComplete_SendsJSONMode(t *testing.T) {
	var gotReq chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		resp := chatResponse{
			Choices: []struct {
				Message struct {
					Content string `json:"content"`
				} `json:"message"`
			}{
				{Message: struct {
					Content string `json:"content"`
				}{Content: "{}"}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	provider := NewOpenAIProvider(srv.URL, "key", "gpt-4o-mini", srv.Client())
	_, _ = provider.Complete(context.Background(), "extract entities")

	if gotReq.ResponseFormat.Type != "json_object" {
		t.Errorf("response_format.type = %q, want json_object", gotReq.ResponseFormat.Type)
	}
	if gotReq.Temperature != 0 {
		t.Errorf("temperature = %d, want 0", gotReq.Temperature)
	}
}

func TestParseRetryAfter(t *testing.T) {
	tests := []struct {
		value string
		want  time.Duration
	}{
		{"", 0},
		{"120", 120 * time.Second},
		{"0", 0},
		{"not-a-number", 0},
	}
	for _, tt := range tests {
		if got := parseRetryAfter(tt.value); got != tt.want {
			t.Errorf("parseRetryAfter(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}
