package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/amishk599/jobfit/internal/pipeline"
	"github.com/spf13/cobra"
)

var vectorizeCmd = &cobra.Command{
	Use:   "vectorize",
	Short: "Embed parsed postings and the resume",
	Long:  "Generates embeddings for every parsed posting's sections and for the resume document, replacing any previous vectors.",
	RunE:  runVectorize,
}

func init() {
	rootCmd.AddCommand(vectorizeCmd)
}

func runVectorize(cmd *cobra.Command, args []string) error {
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
	embedder, err := buildEmbedder(ctx, cfg, httpClient, logger)
	if err != nil {
		logger.Error("failed to build embedder", "error", err)
		os.Exit(1)
	}

	p := pipeline.New(cfg, s, embedder, nil, nil, logger)
	vectorized, failed, err := p.Vectorize(ctx)
	if err != nil {
		logger.Error("vectorize failed", "error", err)
		os.Exit(1)
	}

	logger.Info("vectorize complete", "jobs", vectorized, "failed", failed)
	return nil
}
