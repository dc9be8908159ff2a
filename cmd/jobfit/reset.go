package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	resetResults bool
	resetAll     bool
	resetYes     bool
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear stored pipeline data",
	Long:  "With --results, clears rankings and granular scores. With --all, additionally clears embeddings and staged/parsed postings.",
	RunE:  runReset,
}

func init() {
	resetCmd.Flags().BoolVar(&resetResults, "results", false, "clear rankings and granular scores")
	resetCmd.Flags().BoolVar(&resetAll, "all", false, "clear everything: rankings, embeddings, staged and parsed postings")
	resetCmd.Flags().BoolVar(&resetYes, "yes", false, "skip the confirmation prompt")
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	if !resetResults && !resetAll {
		return fmt.Errorf("nothing to reset: pass --results or --all")
	}

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	what := "rankings and granular scores"
	if resetAll {
		what = "ALL stored data: rankings, embeddings, staged and parsed postings"
	}

	if !resetYes {
		fmt.Printf("This will delete %s from %s. Type y to continue: ", what, cfg.DB.Path)
		line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		if strings.TrimSpace(strings.ToLower(line)) != "y" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	s, err := openStore(cfg, logger)
	if err != nil {
		logger.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer s.Close()

	if resetAll {
		if err := s.ClearAll(); err != nil {
			logger.Error("reset failed", "error", err)
			os.Exit(1)
		}
		logger.Info("cleared all stored data", "path", cfg.DB.Path)
		return nil
	}

	if err := s.ClearResults(); err != nil {
		logger.Error("reset failed", "error", err)
		os.Exit(1)
	}
	logger.Info("cleared rankings and granular scores", "path", cfg.DB.Path)
	return nil
}
