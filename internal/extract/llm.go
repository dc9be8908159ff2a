package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"text/template"

	"github.com/amishk599/jobfit/internal/ai"
)

// entityLabels are the labels kept from a model response; anything else the
// model volunteers is dropped.
var entityLabels = []string{"ORG", "PRODUCT", "GPE", "PERSON"}

// LLMExtractor asks a language model for entities and verbs. Provider
// failures and malformed responses degrade to empty results with a warning,
// so one flaky completion never fails a posting.
type LLMExtractor struct {
	provider ai.LLMProvider
	tmpl     *template.Template
	logger   *slog.Logger
}

var _ Extractor = (*LLMExtractor)(nil)

// NewLLMExtractor returns an extractor backed by provider.
func NewLLMExtractor(provider ai.LLMProvider, logger *slog.Logger) *LLMExtractor {
	return &LLMExtractor{
		provider: provider,
		tmpl:     NERTemplate,
		logger:   logger,
	}
}

func (e *LLMExtractor) Extract(ctx context.Context, text string) (map[string][]string, []string, error) {
	var promptBuf bytes.Buffer
	if err := e.tmpl.Execute(&promptBuf, struct{ Text string }{Text: text}); err != nil {
		return nil, nil, fmt.Errorf("render prompt: %w", err)
	}

	raw, err := e.provider.Complete(ctx, promptBuf.String())
	if err != nil {
		e.logger.Warn("entity extraction failed", "error", err)
		return map[string][]string{}, []string{}, nil
	}

	entities, verbs, err := parseExtraction(raw)
	if err != nil {
		e.logger.Warn("entity extraction returned malformed JSON", "error", err)
		return map[string][]string{}, []string{}, nil
	}
	return entities, verbs, nil
}

func (e *LLMExtractor) Name() string { return "llm" }

// rawExtraction is the JSON shape requested by prompts/ner.md.
type rawExtraction struct {
	Entities map[string][]string `json:"entities"`
	Verbs    []string            `json:"action_verbs"`
}

// parseExtraction deserializes a model response, tolerating markdown fences
// some models wrap around JSON, and normalizes the result: known labels
// only, sorted, deduplicated, empty entries dropped.
func parseExtraction(raw string) (map[string][]string, []string, error) {
	var re rawExtraction
	if err := json.Unmarshal([]byte(stripFences(raw)), &re); err != nil {
		return nil, nil, fmt.Errorf("unmarshal extraction JSON: %w", err)
	}

	entities := make(map[string][]string)
	for _, label := range entityLabels {
		cleaned := dedupeSorted(re.Entities[label])
		if len(cleaned) > 0 {
			entities[label] = cleaned
		}
	}
	return entities, dedupeSorted(re.Verbs), nil
}

func dedupeSorted(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	var out []string
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// stripFences removes a wrapping markdown code fence, if present.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	if i := strings.LastIndex(s, "```"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
