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

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse staged postings into structured sections",
	Long:  "Cleans and sections every unprocessed staged posting, extracts skills, entities and verbs, and stores the parsed rows.",
	RunE:  runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
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
	extractor, err := buildExtractor(ctx, cfg, httpClient, logger)
	if err != nil {
		logger.Error("failed to build extractor", "error", err)
		os.Exit(1)
	}

	p := pipeline.New(cfg, s, nil, extractor, nil, logger)
	parsed, failed, err := p.Parse(ctx)
	if err != nil {
		logger.Error("parse failed", "error", err)
		os.Exit(1)
	}

	logger.Info("parse complete", "parsed", parsed, "failed", failed)
	return nil
}
