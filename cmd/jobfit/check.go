package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/amishk599/jobfit/internal/resume"
	"github.com/spf13/cobra"
)

var probe bool

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the configuration and environment",
	Long:  "Loads the config, opens the store, loads the resume, and reports what it finds. With --probe, sends one test embedding through the configured provider.",
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&probe, "probe", false, "embed one short string through the configured provider")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("config check failed", "error", err)
		os.Exit(1)
	}
	fmt.Printf("config            ok (embedding: %s, extraction: %s, notifier: %s)\n",
		cfg.Embedding.Provider, cfg.Extraction.Provider, cfg.Notification.Type)

	s, err := openStore(cfg, logger)
	if err != nil {
		logger.Error("store check failed", "error", err)
		os.Exit(1)
	}
	defer s.Close()

	counts, err := s.JobCounts()
	if err != nil {
		logger.Error("store check failed", "error", err)
		os.Exit(1)
	}
	fmt.Printf("store             ok (%s: %d staged, %d parsed)\n", cfg.DB.Path, counts.Total, counts.Processed)

	versions, err := s.ResumeVersions()
	if err != nil {
		logger.Error("store check failed", "error", err)
		os.Exit(1)
	}
	fmt.Printf("rankings          %d resume version(s)\n", len(versions))

	doc, err := resume.Load(cfg.Resume.Path)
	if err != nil {
		logger.Error("resume check failed", "error", err)
		os.Exit(1)
	}
	items := 0
	for _, sec := range doc.Sections {
		items += len(sec.Items)
	}
	fmt.Printf("resume            ok (%s: %d sections, %d items)\n", cfg.Resume.Path, len(doc.Sections), items)

	if probe {
		ctx := context.Background()
		httpClient := &http.Client{Timeout: cfg.Embedding.Timeout}
		embedder, err := buildEmbedder(ctx, cfg, httpClient, logger)
		if err != nil {
			logger.Error("embedder check failed", "error", err)
			os.Exit(1)
		}
		vec, err := embedder.Embed(ctx, "embedding connectivity probe")
		if err != nil {
			logger.Error("embedding probe failed", "error", err)
			os.Exit(1)
		}
		fmt.Printf("embedding probe   ok (%s, %d dimensions)\n", embedder.Name(), len(vec))
	}

	fmt.Println("\nAll checks passed.")
	return nil
}
