package config

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	path := writeConfig(t, `
db:
  path: /tmp/test.db
data:
  raw_dir: /tmp/raw
  export_dir: /tmp/out
resume:
  path: /tmp/resume.json
  version: v2
ingest:
  default_source: linkedin
  title_keywords: [data, analyst]
  title_exclude_keywords: [senior]
embedding:
  provider: openai
  model: text-embedding-3-small
  api_key: sk-test
  dimension: 1536
  timeout: 45s
  max_retries: 3
  retry_base_delay: 1s
  min_request_delay: 500ms
extraction:
  provider: llm
  model: gpt-4o-mini
scoring:
  resume_matches_top_n: 7
  fit_threshold: 0.65
  use_weighted_composite: true
  weights:
    overall_similarity: 0.5
    required_match: 0.2
    responsibility_alignment: 0.2
    bonus_match: 0.1
export:
  summary_csv: false
  detailed_json: false
notification:
  type: slack
  webhook_url: https://hooks.slack.com/services/T0/B0/x
  top_n: 5
pipeline:
  workers: 8
parsing:
  qualification_headers: [what we expect]
  tech_keywords: [python, rust]
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.DB.Path != "/tmp/test.db" {
		t.Errorf("DB.Path = %q", cfg.DB.Path)
	}
	if cfg.Data.RawDir != "/tmp/raw" || cfg.Data.ExportDir != "/tmp/out" {
		t.Errorf("Data = %+v", cfg.Data)
	}
	if cfg.Resume.Path != "/tmp/resume.json" || cfg.Resume.Version != "v2" {
		t.Errorf("Resume = %+v", cfg.Resume)
	}
	if cfg.Ingest.DefaultSource != "linkedin" {
		t.Errorf("DefaultSource = %q", cfg.Ingest.DefaultSource)
	}
	if len(cfg.Ingest.TitleKeywords) != 2 || len(cfg.Ingest.TitleExcludeKeywords) != 1 {
		t.Errorf("Ingest keywords = %+v", cfg.Ingest)
	}

	e := cfg.Embedding
	if e.Provider != "openai" || e.Model != "text-embedding-3-small" || e.APIKey != "sk-test" {
		t.Errorf("Embedding = %+v", e)
	}
	if e.BaseURL != "https://api.openai.com/v1" {
		t.Errorf("BaseURL = %q, want openai default", e.BaseURL)
	}
	if e.Dimension != 1536 {
		t.Errorf("Dimension = %d", e.Dimension)
	}
	if e.Timeout != 45*time.Second || e.RetryBaseDelay != time.Second || e.MinRequestDelay != 500*time.Millisecond {
		t.Errorf("durations = %v %v %v", e.Timeout, e.RetryBaseDelay, e.MinRequestDelay)
	}
	if e.MaxRetries != 3 {
		t.Errorf("MaxRetries = %d", e.MaxRetries)
	}

	if cfg.Extraction.Provider != "llm" || cfg.Extraction.Model != "gpt-4o-mini" {
		t.Errorf("Extraction = %+v", cfg.Extraction)
	}

	sc := cfg.Scoring
	if sc.ResumeMatchesTopN != 7 || sc.FitThreshold != 0.65 || !sc.UseWeightedComposite {
		t.Errorf("Scoring = %+v", sc)
	}
	if sc.Weights.OverallSimilarity != 0.5 || sc.Weights.BonusMatch != 0.1 {
		t.Errorf("Weights = %+v", sc.Weights)
	}

	if cfg.Export.SummaryCSV || cfg.Export.DetailedJSON {
		t.Errorf("Export toggles should be off: %+v", cfg.Export)
	}

	if cfg.Notification.Type != "slack" || cfg.Notification.TopN != 5 {
		t.Errorf("Notification = %+v", cfg.Notification)
	}
	if cfg.Pipeline.Workers != 8 {
		t.Errorf("Workers = %d", cfg.Pipeline.Workers)
	}
	if len(cfg.Parsing.QualificationHeaders) != 1 || len(cfg.Parsing.TechKeywords) != 2 {
		t.Errorf("Parsing = %+v", cfg.Parsing)
	}
}

func TestLoad_Defaults(t *testing.T) {
	// The nop provider needs no api_key, so a near-empty config is valid.
	path := writeConfig(t, `
embedding:
  provider: nop
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.DB.Path != "jobfit.db" {
		t.Errorf("DB.Path = %q", cfg.DB.Path)
	}
	if cfg.Data.RawDir != "data/raw" || cfg.Data.ExportDir != "data/results" {
		t.Errorf("Data = %+v", cfg.Data)
	}
	if cfg.Resume.Path != "data/resume/resume.json" || cfg.Resume.Version != "my-resume-v1" {
		t.Errorf("Resume = %+v", cfg.Resume)
	}
	if cfg.Ingest.DefaultSource != "manual" {
		t.Errorf("DefaultSource = %q", cfg.Ingest.DefaultSource)
	}

	e := cfg.Embedding
	if e.Model != "gemini-embedding-001" || e.Dimension != 768 {
		t.Errorf("Embedding = %+v", e)
	}
	if e.Timeout != 30*time.Second || e.MaxRetries != 2 {
		t.Errorf("Timeout/MaxRetries = %v/%d", e.Timeout, e.MaxRetries)
	}
	if e.RetryBaseDelay != 2*time.Second || e.MinRequestDelay != 200*time.Millisecond {
		t.Errorf("delays = %v/%v", e.RetryBaseDelay, e.MinRequestDelay)
	}

	if cfg.Extraction.Provider != "keyword" || cfg.Extraction.Model != "gemini-2.0-flash" {
		t.Errorf("Extraction = %+v", cfg.Extraction)
	}
	if cfg.Scoring.ResumeMatchesTopN != 5 || cfg.Scoring.FitThreshold != 0.70 {
		t.Errorf("Scoring = %+v", cfg.Scoring)
	}
	if cfg.Scoring.UseWeightedComposite {
		t.Error("UseWeightedComposite should default off")
	}
	if sum := cfg.Scoring.Weights.Sum(); math.Abs(sum-1.0) > 1e-9 {
		t.Errorf("default weights sum = %v", sum)
	}
	if !cfg.Export.SummaryCSV || !cfg.Export.DetailedJSON {
		t.Errorf("Export toggles should default on: %+v", cfg.Export)
	}
	if cfg.Notification.Type != "log" || cfg.Notification.TopN != 3 {
		t.Errorf("Notification = %+v", cfg.Notification)
	}
	if cfg.Pipeline.Workers != 4 {
		t.Errorf("Workers = %d", cfg.Pipeline.Workers)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "db: [unclosed")
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for invalid yaml")
	}
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("JOBFIT_TEST_API_KEY", "sk-from-env")
	path := writeConfig(t, `
embedding:
  provider: openai
  api_key: ${JOBFIT_TEST_API_KEY}
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Embedding.APIKey != "sk-from-env" {
		t.Errorf("APIKey = %q, want value from env", cfg.Embedding.APIKey)
	}
}

func TestLoad_InvalidDuration(t *testing.T) {
	path := writeConfig(t, `
embedding:
  provider: nop
  timeout: banana
`)
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "embedding.timeout") {
		t.Errorf("err = %v, want embedding.timeout parse failure", err)
	}
}

func TestLoad_ValidationFailures(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "gemini without api key",
			yaml: "embedding:\n  provider: gemini\n",
			want: "api_key",
		},
		{
			name: "unknown embedding provider",
			yaml: "embedding:\n  provider: bedrock\n",
			want: "embedding.provider",
		},
		{
			name: "unknown extraction provider",
			yaml: "embedding:\n  provider: nop\nextraction:\n  provider: regex\n",
			want: "extraction.provider",
		},
		{
			name: "fit threshold out of range",
			yaml: "embedding:\n  provider: nop\nscoring:\n  fit_threshold: 1.5\n",
			want: "fit_threshold",
		},
		{
			name: "weights do not sum to one",
			yaml: "embedding:\n  provider: nop\nscoring:\n  use_weighted_composite: true\n  weights:\n    overall_similarity: 0.9\n    required_match: 0.9\n",
			want: "weights",
		},
		{
			name: "slack without webhook",
			yaml: "embedding:\n  provider: nop\nnotification:\n  type: slack\n",
			want: "webhook_url",
		},
		{
			name: "non-slack webhook host",
			yaml: "embedding:\n  provider: nop\nnotification:\n  type: slack\n  webhook_url: https://example.com/hook\n",
			want: "hooks.slack.com",
		},
		{
			name: "negative workers",
			yaml: "embedding:\n  provider: nop\npipeline:\n  workers: -1\n",
			want: "pipeline.workers",
		},
		{
			name: "negative dimension",
			yaml: "embedding:\n  provider: nop\n  dimension: -5\n",
			want: "embedding.dimension",
		},
		{
			name: "negative notify top n",
			yaml: "embedding:\n  provider: nop\nnotification:\n  top_n: -2\n",
			want: "notification.top_n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.yaml)
			_, err := Load(path)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("JOBFIT_CONFIG", "")
	if got := DefaultPath(); got != "config.yaml" {
		t.Errorf("DefaultPath = %q", got)
	}

	t.Setenv("JOBFIT_CONFIG", "/etc/jobfit/config.yaml")
	if got := DefaultPath(); got != "/etc/jobfit/config.yaml" {
		t.Errorf("DefaultPath = %q", got)
	}
}

func TestDefaultWeights_SumToOne(t *testing.T) {
	if sum := DefaultWeights().Sum(); math.Abs(sum-1.0) > 1e-9 {
		t.Errorf("DefaultWeights().Sum() = %v, want 1.0", sum)
	}
}
