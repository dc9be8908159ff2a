package extract

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"reflect"
	"strings"
	"testing"
)

type mockProvider struct {
	response string
	err      error
	prompt   string
}

func (m *mockProvider) Complete(_ context.Context, prompt string) (string, error) {
	m.prompt = prompt
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLLMExtractorParsesResponse(t *testing.T) {
	provider := &mockProvider{
		response: "```json\n" +
			`{"entities": {"ORG": ["Acme Corp"], "PRODUCT": ["Snowflake", "Snowflake"], "MONEY": ["$90k"]}, "action_verbs": ["build", "analyze", "build"]}` +
			"\n```",
	}
	e := NewLLMExtractor(provider, discardLogger())

	entities, verbs, err := e.Extract(context.Background(), "posting text here")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(provider.prompt, "posting text here") {
		t.Error("prompt should embed the posting text")
	}
	if got, want := entities["ORG"], []string{"Acme Corp"}; !reflect.DeepEqual(got, want) {
		t.Errorf("ORG: expected %v, got %v", want, got)
	}
	if got, want := entities["PRODUCT"], []string{"Snowflake"}; !reflect.DeepEqual(got, want) {
		t.Errorf("PRODUCT: expected deduplicated %v, got %v", want, got)
	}
	if _, ok := entities["MONEY"]; ok {
		t.Error("unknown labels should be dropped")
	}
	if want := []string{"analyze", "build"}; !reflect.DeepEqual(verbs, want) {
		t.Errorf("expected verbs %v, got %v", want, verbs)
	}
}

func TestLLMExtractorProviderErrorDegrades(t *testing.T) {
	e := NewLLMExtractor(&mockProvider{err: errors.New("rate limited")}, discardLogger())

	entities, verbs, err := e.Extract(context.Background(), "text")
	if err != nil {
		t.Fatalf("provider errors should not propagate, got %v", err)
	}
	if len(entities) != 0 || len(verbs) != 0 {
		t.Errorf("expected empty results, got %v / %v", entities, verbs)
	}
}

func TestLLMExtractorMalformedResponseDegrades(t *testing.T) {
	e := NewLLMExtractor(&mockProvider{response: "sorry, I cannot help with that"}, discardLogger())

	entities, verbs, err := e.Extract(context.Background(), "text")
	if err != nil {
		t.Fatalf("malformed responses should not propagate, got %v", err)
	}
	if len(entities) != 0 || len(verbs) != 0 {
		t.Errorf("expected empty results, got %v / %v", entities, verbs)
	}
}

func TestStripFences(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"{\"a\":1}", `{"a":1}`},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n{\"a\":1}\n```", `{"a":1}`},
		{"  {\"a\":1}  ", `{"a":1}`},
	}
	for _, tc := range cases {
		if got := stripFences(tc.in); got != tc.want {
			t.Errorf("stripFences(%q): expected %q, got %q", tc.in, tc.want, got)
		}
	}
}
