package notifier

import (
	"context"
	"log/slog"

	"github.com/amishk599/jobfit/internal/model"
)

// Ensure LogNotifier implements model.Notifier.
var _ model.Notifier = (*LogNotifier)(nil)

// LogNotifier writes the run summary to the given logger as structured
// messages. Always available; the default notifier.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier returns a notifier that logs run summaries via slog.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// NotifyRun logs one summary line plus one line per top job.
// Returns nil (stdout logging does not fail).
func (n *LogNotifier) NotifyRun(ctx context.Context, summary model.RunSummary) error {
	n.logger.Info("run finished",
		"resume_version", summary.ResumeVersion,
		"ingested", summary.Ingested,
		"duplicates", summary.Duplicates,
		"parsed", summary.Parsed,
		"vectorized", summary.Vectorized,
		"ranked", summary.Ranked,
		"failed", summary.Failed,
		"duration", summary.Duration,
	)
	for _, job := range summary.TopJobs {
		n.logger.Info("top match",
			"rank", job.Rank,
			"score", job.CompositeScore,
			"company", job.Company,
			"title", job.Title,
			"url", job.URL,
		)
	}
	return nil
}

// Name identifies this notifier in config and logs.
func (n *LogNotifier) Name() string { return "log" }
