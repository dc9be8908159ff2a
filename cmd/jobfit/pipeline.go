package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/amishk599/jobfit/internal/ai"
	"github.com/amishk599/jobfit/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	skipIngest    bool
	skipParse     bool
	skipVectorize bool
	quick         bool
)

var pipelineCmd = &cobra.Command{
	Use:   "pipeline",
	Short: "Run the full pipeline: ingest, parse, vectorize, rank",
	Long:  "Runs every stage in order. Skipped stages leave the stored data as-is; rank always runs.",
	RunE:  runPipeline,
}

func init() {
	pipelineCmd.Flags().BoolVar(&skipIngest, "skip-ingest", false, "skip the ingest stage")
	pipelineCmd.Flags().BoolVar(&skipParse, "skip-parse", false, "skip the parse stage")
	pipelineCmd.Flags().BoolVar(&skipVectorize, "skip-vectorize", false, "skip the vectorize stage")
	pipelineCmd.Flags().BoolVar(&quick, "quick", false, "skip ingest, parse and vectorize; re-rank stored data")
	rootCmd.AddCommand(pipelineCmd)
}

func runPipeline(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	s, err := openStore(cfg, logger)
	if err != nil {
		logger.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer s.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	httpClient := &http.Client{Timeout: cfg.Embedding.Timeout}

	opts := pipeline.Options{
		SkipIngest:    skipIngest,
		SkipParse:     skipParse,
		SkipVectorize: skipVectorize,
		Quick:         quick,
	}

	// The embedder is only needed when the vectorize stage will run.
	var embedder ai.Embedder
	if !opts.SkipVectorize && !opts.Quick {
		embedder, err = buildEmbedder(ctx, cfg, httpClient, logger)
		if err != nil {
			logger.Error("failed to build embedder", "error", err)
			os.Exit(1)
		}
	}

	extractor, err := buildExtractor(ctx, cfg, httpClient, logger)
	if err != nil {
		logger.Error("failed to build extractor", "error", err)
		os.Exit(1)
	}
	n := buildNotifier(cfg, httpClient, logger)

	p := pipeline.New(cfg, s, embedder, extractor, n, logger)
	if _, err := p.Run(ctx, opts); err != nil {
		logger.Error("pipeline failed", "error", err)
		os.Exit(1)
	}
	return nil
}
