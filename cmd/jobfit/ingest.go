package main

import (
	"os"

	"github.com/amishk599/jobfit/internal/model"
	"github.com/amishk599/jobfit/internal/pipeline"
	"github.com/amishk599/jobfit/internal/store"
	"github.com/spf13/cobra"
)

var ingestDryRun bool

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Stage raw job postings from the data directory",
	Long:  "Reads every *.json file in data.raw_dir, applies the title filter, and stages new postings. Duplicates are skipped.",
	RunE:  runIngest,
}

func init() {
	ingestCmd.Flags().BoolVar(&ingestDryRun, "dry-run", false, "report what would be staged without writing")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// In dry-run mode, use a NopStore so nothing is persisted. Every new
	// record counts as inserted; dedup against existing rows is skipped.
	var s model.Store
	if ingestDryRun {
		logger.Info("dry-run mode enabled, nothing will be staged")
		s = store.NewNopStore()
	} else {
		sqlStore, err := openStore(cfg, logger)
		if err != nil {
			logger.Error("failed to open store", "error", err)
			os.Exit(1)
		}
		defer sqlStore.Close()
		s = sqlStore
	}

	p := pipeline.New(cfg, s, nil, nil, nil, logger)
	stats, err := p.Ingest()
	if err != nil {
		logger.Error("ingest failed", "error", err)
		os.Exit(1)
	}

	logger.Info("ingest complete",
		"batch_id", stats.BatchID,
		"files", stats.Files,
		"inserted", stats.Inserted,
		"duplicates", stats.Duplicates,
		"filtered", stats.Filtered,
		"errors", stats.Errors,
	)
	return nil
}
