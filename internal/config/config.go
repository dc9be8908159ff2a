package config

import (
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration for jobfit.
type Config struct {
	DB           DBConfig
	Data         DataConfig
	Resume       ResumeConfig
	Ingest       IngestConfig
	Embedding    EmbeddingConfig
	Extraction   ExtractionConfig
	Scoring      ScoringConfig
	Export       ExportConfig
	Notification NotificationConfig
	Pipeline     PipelineConfig
	Parsing      ParsingConfig
}

// DBConfig locates the SQLite database file.
type DBConfig struct {
	Path string `yaml:"path"`
}

// DataConfig holds the data directories.
type DataConfig struct {
	RawDir    string `yaml:"raw_dir"`    // ingest reads *.json from here
	ExportDir string `yaml:"export_dir"` // exports are written here
}

// ResumeConfig locates the resume document and names its version.
type ResumeConfig struct {
	Path    string `yaml:"path"`
	Version string `yaml:"version"` // tags embeddings and rankings
}

// IngestConfig controls raw-file ingestion.
type IngestConfig struct {
	DefaultSource        string   `yaml:"default_source"` // source tag when a record carries none
	TitleKeywords        []string `yaml:"title_keywords"`
	TitleExcludeKeywords []string `yaml:"title_exclude_keywords"`
}

// EmbeddingConfig selects and tunes the embedding provider.
type EmbeddingConfig struct {
	Provider        string        // "gemini", "openai", or "nop"
	Model           string
	APIKey          string        // expanded from env var by Load
	BaseURL         string        // openai provider only
	Dimension       int           // expected vector dimension
	Timeout         time.Duration // per-request timeout
	MaxRetries      int
	RetryBaseDelay  time.Duration
	MinRequestDelay time.Duration
}

// ExtractionConfig selects the entity/verb extractor.
type ExtractionConfig struct {
	Provider string `yaml:"provider"` // "keyword" or "llm"
	Model    string `yaml:"model"`    // llm provider only
}

// ScoreWeights are the composite-score signal weights. Only consulted when
// Scoring.UseWeightedComposite is set.
type ScoreWeights struct {
	OverallSimilarity       float64 `yaml:"overall_similarity"`
	RequiredMatch           float64 `yaml:"required_match"`
	ResponsibilityAlignment float64 `yaml:"responsibility_alignment"`
	BonusMatch              float64 `yaml:"bonus_match"`
}

// Sum returns the total of all four weights.
func (w ScoreWeights) Sum() float64 {
	return w.OverallSimilarity + w.RequiredMatch + w.ResponsibilityAlignment + w.BonusMatch
}

// DefaultWeights returns the stock composite weights.
func DefaultWeights() ScoreWeights {
	return ScoreWeights{
		OverallSimilarity:       0.40,
		RequiredMatch:           0.30,
		ResponsibilityAlignment: 0.20,
		BonusMatch:              0.10,
	}
}

// ScoringConfig tunes ranking.
type ScoringConfig struct {
	ResumeMatchesTopN    int     // best resume matches kept per job
	FitThreshold         float64 // composite score considered a good fit
	UseWeightedComposite bool
	Weights              ScoreWeights
}

// ExportConfig toggles the export files.
type ExportConfig struct {
	SummaryCSV   bool
	DetailedJSON bool
}

// NotificationConfig controls which notifier is used and its settings.
type NotificationConfig struct {
	Type       string `yaml:"type"`        // "log" or "slack"
	WebhookURL string `yaml:"webhook_url"` // required if type is "slack"
	TopN       int    `yaml:"top_n"`       // jobs listed in the run summary
}

// PipelineConfig tunes stage execution.
type PipelineConfig struct {
	Workers int `yaml:"workers"`
}

// ParsingConfig optionally overrides the stock keyword tables. Empty slices
// mean the defaults apply.
type ParsingConfig struct {
	QualificationHeaders  []string `yaml:"qualification_headers"`
	ResponsibilityHeaders []string `yaml:"responsibility_headers"`
	TechKeywords          []string `yaml:"tech_keywords"`
}

const (
	defaultDBPath             = "jobfit.db"
	defaultRawDir             = "data/raw"
	defaultExportDir          = "data/results"
	defaultResumePath         = "data/resume/resume.json"
	defaultResumeVersion      = "my-resume-v1"
	defaultSource             = "manual"
	defaultEmbeddingProvider  = "gemini"
	defaultEmbeddingModel     = "gemini-embedding-001"
	defaultOpenAIBaseURL      = "https://api.openai.com/v1"
	defaultDimension          = 768
	defaultExtractionProvider = "keyword"
	defaultExtractionModel    = "gemini-2.0-flash"
	defaultResumeMatchesTopN  = 5
	defaultFitThreshold       = 0.70
	defaultNotifyTopN         = 3
	defaultWorkers            = 4
)

// rawConfig is used for YAML unmarshaling (snake_case fields, durations as
// strings, pointers where absent must be told apart from zero).
type rawConfig struct {
	DB           DBConfig           `yaml:"db"`
	Data         DataConfig         `yaml:"data"`
	Resume       ResumeConfig       `yaml:"resume"`
	Ingest       IngestConfig       `yaml:"ingest"`
	Embedding    rawEmbeddingConfig `yaml:"embedding"`
	Extraction   ExtractionConfig   `yaml:"extraction"`
	Scoring      rawScoringConfig   `yaml:"scoring"`
	Export       rawExportConfig    `yaml:"export"`
	Notification NotificationConfig `yaml:"notification"`
	Pipeline     PipelineConfig     `yaml:"pipeline"`
	Parsing      ParsingConfig      `yaml:"parsing"`
}

type rawEmbeddingConfig struct {
	Provider        string `yaml:"provider"`
	Model           string `yaml:"model"`
	APIKey          string `yaml:"api_key"`
	BaseURL         string `yaml:"base_url"`
	Dimension       int    `yaml:"dimension"`
	Timeout         string `yaml:"timeout"`
	MaxRetries      *int   `yaml:"max_retries"`
	RetryBaseDelay  string `yaml:"retry_base_delay"`
	MinRequestDelay string `yaml:"min_request_delay"`
}

type rawScoringConfig struct {
	ResumeMatchesTopN    int           `yaml:"resume_matches_top_n"`
	FitThreshold         *float64      `yaml:"fit_threshold"`
	UseWeightedComposite bool          `yaml:"use_weighted_composite"`
	Weights              *ScoreWeights `yaml:"weights"`
}

type rawExportConfig struct {
	SummaryCSV   *bool `yaml:"summary_csv"`
	DetailedJSON *bool `yaml:"detailed_json"`
}

// Load reads and parses the YAML config file at path, applies defaults,
// validates, and returns Config. A missing file is an error; use
// DefaultPath for the conventional location.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Expand environment variables
	expanded := os.ExpandEnv(string(data))

	var raw rawConfig
	if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	timeout := 30 * time.Second
	if raw.Embedding.Timeout != "" {
		timeout, err = time.ParseDuration(raw.Embedding.Timeout)
		if err != nil {
			return nil, fmt.Errorf("parse embedding.timeout %q: %w", raw.Embedding.Timeout, err)
		}
	}

	retryBaseDelay := 2 * time.Second
	if raw.Embedding.RetryBaseDelay != "" {
		retryBaseDelay, err = time.ParseDuration(raw.Embedding.RetryBaseDelay)
		if err != nil {
			return nil, fmt.Errorf("parse embedding.retry_base_delay %q: %w", raw.Embedding.RetryBaseDelay, err)
		}
	}

	minRequestDelay := 200 * time.Millisecond
	if raw.Embedding.MinRequestDelay != "" {
		minRequestDelay, err = time.ParseDuration(raw.Embedding.MinRequestDelay)
		if err != nil {
			return nil, fmt.Errorf("parse embedding.min_request_delay %q: %w", raw.Embedding.MinRequestDelay, err)
		}
	}

	maxRetries := 2
	if raw.Embedding.MaxRetries != nil {
		maxRetries = *raw.Embedding.MaxRetries
	}

	baseURL := raw.Embedding.BaseURL
	if baseURL == "" && stringOr(raw.Embedding.Provider, defaultEmbeddingProvider) == "openai" {
		baseURL = defaultOpenAIBaseURL
	}

	weights := DefaultWeights()
	if raw.Scoring.Weights != nil {
		weights = *raw.Scoring.Weights
	}

	fitThreshold := float64(defaultFitThreshold)
	if raw.Scoring.FitThreshold != nil {
		fitThreshold = *raw.Scoring.FitThreshold
	}

	cfg := &Config{
		DB: DBConfig{
			Path: stringOr(raw.DB.Path, defaultDBPath),
		},
		Data: DataConfig{
			RawDir:    stringOr(raw.Data.RawDir, defaultRawDir),
			ExportDir: stringOr(raw.Data.ExportDir, defaultExportDir),
		},
		Resume: ResumeConfig{
			Path:    stringOr(raw.Resume.Path, defaultResumePath),
			Version: stringOr(raw.Resume.Version, defaultResumeVersion),
		},
		Ingest: IngestConfig{
			DefaultSource:        stringOr(raw.Ingest.DefaultSource, defaultSource),
			TitleKeywords:        raw.Ingest.TitleKeywords,
			TitleExcludeKeywords: raw.Ingest.TitleExcludeKeywords,
		},
		Embedding: EmbeddingConfig{
			Provider:        stringOr(raw.Embedding.Provider, defaultEmbeddingProvider),
			Model:           stringOr(raw.Embedding.Model, defaultEmbeddingModel),
			APIKey:          raw.Embedding.APIKey,
			BaseURL:         baseURL,
			Dimension:       intOr(raw.Embedding.Dimension, defaultDimension),
			Timeout:         timeout,
			MaxRetries:      maxRetries,
			RetryBaseDelay:  retryBaseDelay,
			MinRequestDelay: minRequestDelay,
		},
		Extraction: ExtractionConfig{
			Provider: stringOr(raw.Extraction.Provider, defaultExtractionProvider),
			Model:    stringOr(raw.Extraction.Model, defaultExtractionModel),
		},
		Scoring: ScoringConfig{
			ResumeMatchesTopN:    intOr(raw.Scoring.ResumeMatchesTopN, defaultResumeMatchesTopN),
			FitThreshold:         fitThreshold,
			UseWeightedComposite: raw.Scoring.UseWeightedComposite,
			Weights:              weights,
		},
		Export: ExportConfig{
			SummaryCSV:   boolOr(raw.Export.SummaryCSV, true),
			DetailedJSON: boolOr(raw.Export.DetailedJSON, true),
		},
		Notification: NotificationConfig{
			Type:       stringOr(raw.Notification.Type, "log"),
			WebhookURL: raw.Notification.WebhookURL,
			TopN:       intOr(raw.Notification.TopN, defaultNotifyTopN),
		},
		Pipeline: PipelineConfig{
			Workers: intOr(raw.Pipeline.Workers, defaultWorkers),
		},
		Parsing: raw.Parsing,
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// DefaultPath returns the config path to use: the JOBFIT_CONFIG environment
// variable when set, otherwise ./config.yaml.
func DefaultPath() string {
	if p := os.Getenv("JOBFIT_CONFIG"); p != "" {
		return p
	}
	return "config.yaml"
}

func validate(cfg *Config) error {
	if cfg.DB.Path == "" {
		return fmt.Errorf("db.path must not be empty")
	}
	if cfg.Data.RawDir == "" {
		return fmt.Errorf("data.raw_dir must not be empty")
	}
	if cfg.Resume.Path == "" {
		return fmt.Errorf("resume.path must not be empty")
	}

	switch cfg.Embedding.Provider {
	case "gemini", "openai":
		if cfg.Embedding.APIKey == "" {
			return fmt.Errorf("embedding.api_key is required for provider %q", cfg.Embedding.Provider)
		}
	case "nop":
	default:
		return fmt.Errorf("embedding.provider must be gemini, openai, or nop, got %q", cfg.Embedding.Provider)
	}
	if cfg.Embedding.Dimension <= 0 {
		return fmt.Errorf("embedding.dimension must be positive, got %d", cfg.Embedding.Dimension)
	}
	if cfg.Embedding.Timeout <= 0 {
		return fmt.Errorf("embedding.timeout must be positive, got %v", cfg.Embedding.Timeout)
	}
	if cfg.Embedding.MaxRetries < 0 {
		return fmt.Errorf("embedding.max_retries must not be negative, got %d", cfg.Embedding.MaxRetries)
	}

	switch cfg.Extraction.Provider {
	case "keyword", "llm":
	default:
		return fmt.Errorf("extraction.provider must be keyword or llm, got %q", cfg.Extraction.Provider)
	}

	if cfg.Scoring.ResumeMatchesTopN < 1 {
		return fmt.Errorf("scoring.resume_matches_top_n must be at least 1, got %d", cfg.Scoring.ResumeMatchesTopN)
	}
	if cfg.Scoring.FitThreshold < 0 || cfg.Scoring.FitThreshold > 1 {
		return fmt.Errorf("scoring.fit_threshold must be within [0, 1], got %v", cfg.Scoring.FitThreshold)
	}
	if cfg.Scoring.UseWeightedComposite {
		if sum := cfg.Scoring.Weights.Sum(); math.Abs(sum-1.0) > 0.01 {
			return fmt.Errorf("scoring.weights must sum to 1.0, got %.3f", sum)
		}
	}

	switch cfg.Notification.Type {
	case "log":
	case "slack":
		if cfg.Notification.WebhookURL == "" {
			return fmt.Errorf("notification.webhook_url is required when type is \"slack\"")
		}
		if !strings.HasPrefix(cfg.Notification.WebhookURL, "https://hooks.slack.com/") {
			return fmt.Errorf("notification.webhook_url must start with https://hooks.slack.com/")
		}
	default:
		return fmt.Errorf("notification.type must be log or slack, got %q", cfg.Notification.Type)
	}
	if cfg.Notification.TopN < 1 {
		return fmt.Errorf("notification.top_n must be at least 1, got %d", cfg.Notification.TopN)
	}

	if cfg.Pipeline.Workers < 1 {
		return fmt.Errorf("pipeline.workers must be at least 1, got %d", cfg.Pipeline.Workers)
	}

	return nil
}

func stringOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func intOr(v, fallback int) int {
	if v == 0 {
		return fallback
	}
	return v
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}
