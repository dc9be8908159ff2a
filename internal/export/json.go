package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/amishk599/jobfit/internal/model"
)

// detailedExport is the JSON export envelope.
type detailedExport struct {
	ExportDate    string           `json:"export_date"`
	ResumeVersion string           `json:"resume_version"`
	Jobs          []model.JobScore `json:"jobs"`
}

// WriteJSON writes the detailed JSON export, every per-job field included,
// and returns its path.
func (e *Exporter) WriteJSON(resumeVersion string, scores []model.JobScore) (string, error) {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export dir: %w", err)
	}

	if scores == nil {
		scores = []model.JobScore{}
	}
	stamp := time.Now().Format(timestampLayout)
	envelope := detailedExport{
		ExportDate:    stamp,
		ResumeVersion: resumeVersion,
		Jobs:          scores,
	}

	data, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding json export: %w", err)
	}

	path := filepath.Join(e.dir, fmt.Sprintf("job_rankings_detailed_%s.json", stamp))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing json export: %w", err)
	}

	e.logger.Info("exported detailed json", "file", filepath.Base(path), "jobs", len(scores))
	return path, nil
}
