package vectorize

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/amishk599/jobfit/internal/ai"
	"github.com/amishk599/jobfit/internal/model"
	"github.com/amishk599/jobfit/internal/resume"
)

// snippetLen caps the reference text stored alongside each vector. The
// vector itself is always computed on the untruncated text.
const snippetLen = 500

// summaryMinLen is the substance threshold below which a job summary gets
// no embedding of its own.
const summaryMinLen = 50

// Vectorizer turns parsed jobs and the resume document into stored
// embedding records.
type Vectorizer struct {
	store    model.Store
	embedder ai.Embedder
	logger   *slog.Logger
}

// New creates a Vectorizer wired with its dependencies. The embedder should
// already carry its retry and rate-limit wrapping.
func New(store model.Store, embedder ai.Embedder, logger *slog.Logger) *Vectorizer {
	return &Vectorizer{
		store:    store,
		embedder: embedder,
		logger:   logger,
	}
}

// Stats reports one vectorize run.
type Stats struct {
	Jobs          int
	JobRecords    int
	ResumeRecords int
	Failed        int
}

type sectionText struct {
	name string
	text string
}

// jobSections assembles the embeddable texts for one job, in storage order.
// A section with no source text yields no entry.
func jobSections(job model.ParsedJob) []sectionText {
	var sections []sectionText

	if job.CleanDescription != "" {
		sections = append(sections, sectionText{model.SectionFullDescription, job.CleanDescription})
	}

	var qualTexts []string
	for _, q := range job.Required {
		qualTexts = append(qualTexts, q.Text)
	}
	for _, q := range job.Bonus {
		qualTexts = append(qualTexts, q.Text)
	}
	if combined := strings.Join(qualTexts, " "); combined != "" {
		sections = append(sections, sectionText{model.SectionQualifications, combined})
	}

	var respTexts []string
	for _, r := range job.Responsibilities {
		respTexts = append(respTexts, r.Activity)
	}
	if combined := strings.Join(respTexts, " "); combined != "" {
		sections = append(sections, sectionText{model.SectionResponsibilities, combined})
	}

	if len(strings.TrimSpace(job.Summary)) > summaryMinLen {
		sections = append(sections, sectionText{model.SectionSummary, job.Summary})
	}

	return sections
}

// EmbedJob generates and stores the section embeddings for one parsed job,
// replacing whatever the job had before. It returns how many records were
// written.
func (v *Vectorizer) EmbedJob(ctx context.Context, job model.ParsedJob) (int, error) {
	sections := jobSections(job)

	records := make([]model.Embedding, 0, len(sections))
	for _, sec := range sections {
		vector, err := v.embedder.Embed(ctx, sec.text)
		if err != nil {
			return 0, fmt.Errorf("embedding %s for job %d: %w", sec.name, job.JobID, err)
		}
		records = append(records, model.Embedding{
			OwnerType: model.OwnerJob,
			OwnerID:   strconv.FormatInt(job.JobID, 10),
			Section:   sec.name,
			Text:      snippet(sec.text),
			Vector:    vector,
		})
	}

	if err := v.store.ReplaceJobEmbeddings(job.JobID, records); err != nil {
		return 0, fmt.Errorf("storing embeddings for job %d: %w", job.JobID, err)
	}

	v.logger.Debug("vectorized job",
		"job_id", job.JobID,
		"company", job.Company,
		"records", len(records),
	)
	return len(records), nil
}

// EmbedResume generates and stores one embedding per flattened resume item
// under the given version, replacing that version's previous records. The
// flattening puts the overall_resume record first.
func (v *Vectorizer) EmbedResume(ctx context.Context, doc *resume.Document, version string) (int, error) {
	items := doc.Flatten()

	records := make([]model.Embedding, 0, len(items))
	for _, item := range items {
		vector, err := v.embedder.Embed(ctx, item.Text)
		if err != nil {
			return 0, fmt.Errorf("embedding resume section %s: %w", item.Section, err)
		}
		records = append(records, model.Embedding{
			OwnerType:     model.OwnerResume,
			OwnerID:       item.Section,
			Section:       item.Section,
			Subsection:    item.Subsection,
			ContentType:   item.ContentType,
			Text:          snippet(item.Text),
			Vector:        vector,
			ResumeVersion: version,
		})
	}

	if err := v.store.ReplaceResumeEmbeddings(version, records); err != nil {
		return 0, fmt.Errorf("storing resume embeddings: %w", err)
	}

	v.logger.Debug("vectorized resume", "version", version, "records", len(records))
	return len(records), nil
}

// Run vectorizes every parsed job and then the resume document. A job whose
// embeddings fail is logged and skipped; it will score with zero similarity
// until re-vectorized. A resume embedding failure is fatal since ranking
// cannot proceed without the overall_resume vector.
func (v *Vectorizer) Run(ctx context.Context, doc *resume.Document, version string) (Stats, error) {
	jobs, err := v.store.ParsedJobs()
	if err != nil {
		return Stats{}, fmt.Errorf("loading parsed jobs: %w", err)
	}

	var stats Stats
	for _, job := range jobs {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		n, err := v.EmbedJob(ctx, job)
		if err != nil {
			if ctx.Err() != nil {
				return stats, ctx.Err()
			}
			v.logger.Error("vectorizing job failed", "job_id", job.JobID, "error", err)
			stats.Failed++
			continue
		}
		if n > 0 {
			stats.Jobs++
		}
		stats.JobRecords += n
	}

	v.logger.Info("vectorized jobs",
		"provider", v.embedder.Name(),
		"jobs", stats.Jobs,
		"records", stats.JobRecords,
		"failed", stats.Failed,
	)

	n, err := v.EmbedResume(ctx, doc, version)
	if err != nil {
		return stats, err
	}
	stats.ResumeRecords = n

	v.logger.Info("vectorized resume", "version", version, "records", n)
	return stats, nil
}

// snippet truncates the stored reference text without splitting a rune.
func snippet(text string) string {
	if len(text) <= snippetLen {
		return text
	}
	cut := snippetLen
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}
