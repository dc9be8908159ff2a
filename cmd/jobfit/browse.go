package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/amishk599/jobfit/internal/browse"
	"github.com/amishk599/jobfit/internal/store"
	"github.com/spf13/cobra"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse rankings interactively (TUI)",
	Long:  "Shows the resume-version picker when more than one version has rankings, then launches the split-pane rankings browser.",
	RunE:  runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Browse runs a TUI; log output interleaved with bubbletea rendering
	// corrupts the display, so the store gets a discard logger.
	silentLogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s, err := openStore(cfg, silentLogger)
	if err != nil {
		logger.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer s.Close()

	versions, err := s.ResumeVersions()
	if err != nil {
		logger.Error("failed to list resume versions", "error", err)
		os.Exit(1)
	}
	if len(versions) == 0 {
		fmt.Println("No rankings stored yet. Run `jobfit pipeline` first.")
		return nil
	}

	for {
		version := versions[0]
		if len(versions) > 1 {
			choice, err := browse.RunVersionPicker(versions)
			if err != nil {
				fmt.Printf("Picker error: %v\n", err)
				return nil
			}
			if choice < 0 {
				return nil
			}
			version = versions[choice]
		}

		data, err := browse.RunLoader(version, func() (browse.Data, error) {
			return loadBrowseData(s, version)
		})
		if err != nil {
			fmt.Printf("Error loading rankings: %v\n", err)
			return nil
		}

		wantQuit, err := browse.RunBrowseTUI(data, cfg.Scoring.FitThreshold)
		if err != nil {
			fmt.Printf("TUI error: %v\n", err)
		}
		if wantQuit || len(versions) == 1 {
			return nil
		}
		// else: loop → back to picker
	}
}

// loadBrowseData reads everything the TUI renders: the ranked scores plus
// per-job summary excerpts from the parsed rows.
func loadBrowseData(s *store.SQLiteStore, version string) (browse.Data, error) {
	scores, err := s.Rankings(version)
	if err != nil {
		return browse.Data{}, err
	}

	jobs, err := s.ParsedJobs()
	if err != nil {
		return browse.Data{}, err
	}
	summaries := make(map[int64]string, len(jobs))
	for _, j := range jobs {
		if j.Summary != "" {
			summaries[j.JobID] = j.Summary
		}
	}

	return browse.Data{
		Version:   version,
		Scores:    scores,
		Summaries: summaries,
	}, nil
}
