// Package export writes ranking results to timestamped CSV and JSON files.
package export

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/amishk599/jobfit/internal/model"
)

// timestampLayout names export files; the JSON export_date field carries
// the same stamp.
const timestampLayout = "20060102_150405"

// dateLayout formats date_posted in the CSV.
const dateLayout = "2006-01-02"

// csvHeader is the summary CSV column order.
var csvHeader = []string{
	"rank", "composite_score", "company", "job_title", "location",
	"overall_similarity", "skill_match_count", "skill_gap_count",
	"job_url", "date_posted",
}

// Exporter writes ranking exports into one directory, creating it on
// first use.
type Exporter struct {
	dir    string
	logger *slog.Logger
}

// New creates an Exporter targeting dir.
func New(dir string, logger *slog.Logger) *Exporter {
	return &Exporter{dir: dir, logger: logger}
}

// WriteCSV writes the summary CSV and returns its path. Scores are written
// in the order given; callers pass them ranked.
func (e *Exporter) WriteCSV(scores []model.JobScore) (string, error) {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export dir: %w", err)
	}

	path := filepath.Join(e.dir, fmt.Sprintf("job_rankings_%s.csv", time.Now().Format(timestampLayout)))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating csv export: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return "", fmt.Errorf("writing csv header: %w", err)
	}
	for _, s := range scores {
		row := []string{
			strconv.Itoa(s.Rank),
			formatScore(s.CompositeScore),
			s.Company,
			s.Title,
			s.Location,
			formatScore(s.OverallSimilarity),
			strconv.Itoa(s.MatchCount()),
			strconv.Itoa(s.GapCount()),
			s.URL,
			s.DatePosted.Format(dateLayout),
		}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("writing csv row for job %d: %w", s.JobID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flushing csv export: %w", err)
	}

	e.logger.Info("exported summary csv", "file", filepath.Base(path), "jobs", len(scores))
	return path, nil
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
