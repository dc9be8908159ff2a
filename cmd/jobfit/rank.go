package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/amishk599/jobfit/internal/pipeline"
	"github.com/spf13/cobra"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Score and rank stored postings against the resume",
	Long:  "Re-ranks everything parsed and vectorized so far, stores the rankings, writes the configured exports, and prints the top matches.",
	RunE:  runRank,
}

func init() {
	rootCmd.AddCommand(rankCmd)
}

func runRank(cmd *cobra.Command, args []string) error {
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
	n := buildNotifier(cfg, httpClient, logger)

	p := pipeline.New(cfg, s, nil, extractor, n, logger)
	if _, err := p.Run(ctx, pipeline.Options{Quick: true}); err != nil {
		logger.Error("rank failed", "error", err)
		os.Exit(1)
	}

	scores, err := s.Rankings(cfg.Resume.Version)
	if err != nil {
		logger.Error("failed to load rankings", "error", err)
		os.Exit(1)
	}

	limit := 10
	if limit > len(scores) {
		limit = len(scores)
	}

	fmt.Printf("\nTop %d matches for resume %s\n\n", limit, cfg.Resume.Version)
	fmt.Printf("%-5s %-10s %-25s %-35s %s\n", "Rank", "Score", "Company", "Title", "Skills")
	fmt.Println(strings.Repeat("─", 95))
	for _, sc := range scores[:limit] {
		fmt.Printf("%-5d %-10.4f %-25s %-35s %d hit / %d gap\n",
			sc.Rank, sc.CompositeScore, truncate(sc.Company, 25), truncate(sc.Title, 35), sc.MatchCount(), sc.GapCount())
	}
	fmt.Println()
	return nil
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}
