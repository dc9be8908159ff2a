package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/amishk599/jobfit/internal/ai"
	"github.com/amishk599/jobfit/internal/config"
	"github.com/amishk599/jobfit/internal/extract"
	"github.com/amishk599/jobfit/internal/model"
	"github.com/amishk599/jobfit/internal/notifier"
	"github.com/amishk599/jobfit/internal/ratelimit"
	"github.com/amishk599/jobfit/internal/retry"
	"github.com/amishk599/jobfit/internal/store"
	"github.com/spf13/cobra"
)

var (
	cfgPath string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "jobfit",
	Short: "Job-posting parser and resume-fit ranker",
	Long:  "JobFit parses free-text job postings into structured sections and ranks them by semantic fit against your resume.",
	// Default to `pipeline` so that `jobfit` with no args runs the full flow.
	RunE: runPipeline,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: JOBFIT_CONFIG env var or ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// loadConfig resolves the config path and parses it.
// Priority: explicit path arg > JOBFIT_CONFIG env var > "./config.yaml"
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		path = config.DefaultPath()
	}
	return config.Load(path)
}

func setupLogger(dbg bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if dbg {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
}

func openStore(cfg *config.Config, logger *slog.Logger) (*store.SQLiteStore, error) {
	s, err := store.NewSQLiteStore(cfg.DB.Path)
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", cfg.DB.Path, err)
	}
	logger.Debug("store opened", "path", cfg.DB.Path)
	return s, nil
}

// buildEmbedder constructs the configured embedding provider, wrapped with
// retry and the per-provider rate limiter.
func buildEmbedder(ctx context.Context, cfg *config.Config, httpClient *http.Client, logger *slog.Logger) (ai.Embedder, error) {
	var inner ai.Embedder
	switch cfg.Embedding.Provider {
	case "gemini":
		e, err := ai.NewGeminiEmbedder(ctx, cfg.Embedding.APIKey, cfg.Embedding.Model, cfg.Embedding.Dimension)
		if err != nil {
			return nil, fmt.Errorf("gemini embedder: %w", err)
		}
		inner = e
	case "openai":
		inner = ai.NewOpenAIEmbedder(cfg.Embedding.BaseURL, cfg.Embedding.APIKey, cfg.Embedding.Model, cfg.Embedding.Dimension, httpClient)
	case "nop":
		inner = ai.NewNopEmbedder(cfg.Embedding.Dimension)
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", cfg.Embedding.Provider)
	}
	logger.Info("using embedding provider", "provider", inner.Name(), "model", cfg.Embedding.Model, "dimension", cfg.Embedding.Dimension)

	retried := retry.NewRetryEmbedder(inner, cfg.Embedding.MaxRetries, cfg.Embedding.RetryBaseDelay, logger)
	limiter := ratelimit.NewProviderRateLimiter(cfg.Embedding.MinRequestDelay)
	return ratelimit.NewRateLimitedEmbedder(retried, limiter), nil
}

// buildExtractor constructs the configured entity extractor. The llm
// extractor shares the embedding provider's credentials.
func buildExtractor(ctx context.Context, cfg *config.Config, httpClient *http.Client, logger *slog.Logger) (extract.Extractor, error) {
	switch cfg.Extraction.Provider {
	case "llm":
		var provider ai.LLMProvider
		switch cfg.Embedding.Provider {
		case "gemini":
			p, err := ai.NewGeminiProvider(ctx, cfg.Embedding.APIKey, cfg.Extraction.Model)
			if err != nil {
				return nil, fmt.Errorf("gemini provider: %w", err)
			}
			provider = p
		case "openai":
			provider = ai.NewOpenAIProvider(cfg.Embedding.BaseURL, cfg.Embedding.APIKey, cfg.Extraction.Model, httpClient)
		default:
			return nil, fmt.Errorf("llm extraction needs a gemini or openai provider, got %q", cfg.Embedding.Provider)
		}
		logger.Info("using llm extractor", "model", cfg.Extraction.Model)
		return extract.NewLLMExtractor(provider, logger), nil
	default:
		return extract.NewKeywordExtractor(), nil
	}
}

func buildNotifier(cfg *config.Config, httpClient *http.Client, logger *slog.Logger) model.Notifier {
	switch cfg.Notification.Type {
	case "slack":
		logger.Info("using slack notifier")
		return notifier.NewSlackNotifier(cfg.Notification.WebhookURL, httpClient, logger)
	default:
		return notifier.NewLogNotifier(logger)
	}
}
