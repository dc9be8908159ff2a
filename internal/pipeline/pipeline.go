// Package pipeline orchestrates the ingest, parse, vectorize and rank
// stages behind a single Run call. Each stage is also runnable on its own
// through the CLI; this package is where they compose.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/amishk599/jobfit/internal/ai"
	"github.com/amishk599/jobfit/internal/classify"
	"github.com/amishk599/jobfit/internal/config"
	"github.com/amishk599/jobfit/internal/export"
	"github.com/amishk599/jobfit/internal/extract"
	"github.com/amishk599/jobfit/internal/ingest"
	"github.com/amishk599/jobfit/internal/model"
	"github.com/amishk599/jobfit/internal/parse"
	"github.com/amishk599/jobfit/internal/rank"
	"github.com/amishk599/jobfit/internal/resume"
	"github.com/amishk599/jobfit/internal/vectorize"
)

// resumeSkillSection is the resume section the resume-side skill set is
// scanned from.
const resumeSkillSection = "TechnicalSkills"

// Options select which stages a run executes. Rank always runs.
type Options struct {
	SkipIngest    bool
	SkipParse     bool
	SkipVectorize bool
	// Quick skips ingest, parse and vectorize, re-ranking what is stored.
	Quick bool
}

// Pipeline wires the stages with their shared dependencies.
type Pipeline struct {
	cfg       *config.Config
	store     model.Store
	embedder  ai.Embedder // nil is allowed when vectorize is skipped
	extractor extract.Extractor
	notifier  model.Notifier
	logger    *slog.Logger

	headers  parse.Headers
	keywords classify.Keywords
	vocab    extract.Vocab
	domains  []extract.Domain
}

// New creates a Pipeline. Keyword tables come from the config's parsing
// overrides, falling back to the stock tables.
func New(
	cfg *config.Config,
	store model.Store,
	embedder ai.Embedder,
	extractor extract.Extractor,
	notifier model.Notifier,
	logger *slog.Logger,
) *Pipeline {
	headers := parse.DefaultHeaders()
	if len(cfg.Parsing.QualificationHeaders) > 0 {
		headers.Qualifications = cfg.Parsing.QualificationHeaders
	}
	if len(cfg.Parsing.ResponsibilityHeaders) > 0 {
		headers.Responsibilities = cfg.Parsing.ResponsibilityHeaders
	}

	vocab := extract.DefaultVocab()
	if len(cfg.Parsing.TechKeywords) > 0 {
		vocab = extract.NewVocab(cfg.Parsing.TechKeywords)
	}

	return &Pipeline{
		cfg:       cfg,
		store:     store,
		embedder:  embedder,
		extractor: extractor,
		notifier:  notifier,
		logger:    logger,
		headers:   headers,
		keywords:  classify.Defaults(),
		vocab:     vocab,
		domains:   extract.DefaultDomains(),
	}
}

// Run executes the selected stages in order and returns the run summary.
// Stage-level failures abort the run; per-job failures inside a stage are
// logged, counted, and skipped.
func (p *Pipeline) Run(ctx context.Context, opts Options) (model.RunSummary, error) {
	start := time.Now()
	if opts.Quick {
		opts.SkipIngest = true
		opts.SkipParse = true
		opts.SkipVectorize = true
	}

	doc, err := p.checkPrereqs(opts)
	if err != nil {
		return model.RunSummary{}, err
	}

	summary := model.RunSummary{ResumeVersion: p.cfg.Resume.Version}

	if opts.SkipIngest {
		p.logSkipped("ingest")
	} else {
		stats, err := p.Ingest()
		if err != nil {
			return summary, fmt.Errorf("ingest stage: %w", err)
		}
		summary.Ingested = stats.Inserted
		summary.Duplicates = stats.Duplicates
		summary.Failed += stats.Errors
	}

	if opts.SkipParse {
		p.logSkipped("parse")
	} else {
		if err := p.parseStage(ctx, &summary); err != nil {
			return summary, err
		}
	}

	if opts.SkipVectorize {
		p.logSkipped("vectorize")
	} else {
		if err := p.vectorizeStage(ctx, doc, &summary); err != nil {
			return summary, err
		}
	}

	ranked, failed, err := p.rankStage(ctx, doc)
	if err != nil {
		return summary, err
	}
	summary.Ranked = len(ranked)
	summary.Failed += failed

	topN := p.cfg.Notification.TopN
	if topN > len(ranked) {
		topN = len(ranked)
	}
	summary.TopJobs = ranked[:topN]
	summary.Duration = time.Since(start)
	summary.FinishedAt = time.Now()

	if err := p.notifier.NotifyRun(ctx, summary); err != nil {
		p.logger.Error("notification failed", "notifier", p.notifier.Name(), "error", err)
	}

	p.logger.Info("pipeline run complete",
		"ingested", summary.Ingested,
		"parsed", summary.Parsed,
		"vectorized", summary.Vectorized,
		"ranked", summary.Ranked,
		"failed", summary.Failed,
		"duration", summary.Duration.Round(time.Millisecond),
	)
	return summary, nil
}

// Ingest runs only the ingest stage.
func (p *Pipeline) Ingest() (ingest.Stats, error) {
	info, err := os.Stat(p.cfg.Data.RawDir)
	if err != nil {
		return ingest.Stats{}, fmt.Errorf("raw data dir: %w", err)
	}
	if !info.IsDir() {
		return ingest.Stats{}, fmt.Errorf("raw data dir %s is not a directory", p.cfg.Data.RawDir)
	}

	filter := ingest.NewTitleFilter(p.cfg.Ingest.TitleKeywords, p.cfg.Ingest.TitleExcludeKeywords)
	ing := ingest.New(p.store, filter, p.cfg.Ingest.DefaultSource, p.logger)
	return ing.IngestDir(p.cfg.Data.RawDir)
}

// Parse runs only the parse stage.
func (p *Pipeline) Parse(ctx context.Context) (parsed, failed int, err error) {
	var summary model.RunSummary
	if err := p.parseStage(ctx, &summary); err != nil {
		return summary.Parsed, summary.Failed, err
	}
	return summary.Parsed, summary.Failed, nil
}

// Vectorize runs only the vectorize stage, jobs then resume.
func (p *Pipeline) Vectorize(ctx context.Context) (vectorized, failed int, err error) {
	if p.embedder == nil {
		return 0, 0, fmt.Errorf("no embedder configured; cannot vectorize")
	}
	doc, err := resume.Load(p.cfg.Resume.Path)
	if err != nil {
		return 0, 0, fmt.Errorf("loading resume: %w", err)
	}

	var summary model.RunSummary
	if err := p.vectorizeStage(ctx, doc, &summary); err != nil {
		return summary.Vectorized, summary.Failed, err
	}
	return summary.Vectorized, summary.Failed, nil
}

// checkPrereqs verifies everything the selected stages will need before any
// work starts, and loads the resume document used by vectorize and rank.
func (p *Pipeline) checkPrereqs(opts Options) (*resume.Document, error) {
	if _, err := p.store.JobCounts(); err != nil {
		return nil, fmt.Errorf("store not reachable: %w", err)
	}

	doc, err := resume.Load(p.cfg.Resume.Path)
	if err != nil {
		return nil, fmt.Errorf("loading resume: %w", err)
	}

	if !opts.SkipIngest {
		info, err := os.Stat(p.cfg.Data.RawDir)
		if err != nil {
			return nil, fmt.Errorf("raw data dir: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("raw data dir %s is not a directory", p.cfg.Data.RawDir)
		}
	}

	if !opts.SkipVectorize && p.embedder == nil {
		return nil, fmt.Errorf("no embedder configured; cannot vectorize")
	}

	return doc, nil
}

// parseStage parses every unprocessed staged job over the worker pool.
func (p *Pipeline) parseStage(ctx context.Context, summary *model.RunSummary) error {
	jobs, err := p.store.UnprocessedJobs()
	if err != nil {
		return fmt.Errorf("parse stage: %w", err)
	}

	errs := runWorkers(ctx, p.cfg.Pipeline.Workers, len(jobs), func(i int) error {
		return p.parseJob(ctx, jobs[i])
	})
	if err := ctx.Err(); err != nil {
		return err
	}

	for i, err := range errs {
		if err != nil {
			p.logger.Error("parse failed", "job_id", jobs[i].ID, "error", err)
			summary.Failed++
			continue
		}
		summary.Parsed++
	}

	p.logger.Info("parse stage complete", "parsed", summary.Parsed, "failed", summary.Failed)
	return nil
}

// parseJob cleans, sections, and enriches one staged job, then persists the
// result and marks the job processed.
func (p *Pipeline) parseJob(ctx context.Context, job model.Job) error {
	clean := parse.Clean(job.Description)
	res := parse.Parse(clean, p.headers, p.keywords)

	entities, verbs, err := p.extractor.Extract(ctx, clean)
	if err != nil {
		return fmt.Errorf("extracting entities: %w", err)
	}

	parsed := model.ParsedJob{
		JobID:            job.ID,
		Title:            job.Title,
		Company:          job.Company,
		Location:         job.Location,
		CleanDescription: clean,
		Required:         res.Required,
		Bonus:            res.Bonus,
		Responsibilities: res.Responsibilities,
		Summary:          res.Summary,
		Skills:           extract.MergeTechEntities(p.vocab.Skills(clean), entities),
		Entities:         entities,
		ActionVerbs:      verbs,
		DomainTags:       extract.DomainTags(clean, p.domains),
		URL:              job.URL,
		DatePosted:       job.DatePosted,
	}

	if _, err := p.store.SaveParsedJob(parsed); err != nil {
		return fmt.Errorf("saving parsed job: %w", err)
	}
	if err := p.store.MarkProcessed(job.ID); err != nil {
		return fmt.Errorf("marking processed: %w", err)
	}
	return nil
}

// vectorizeStage embeds every parsed job over the worker pool, then the
// resume. The workers share the embedder and, through it, its rate limiter.
func (p *Pipeline) vectorizeStage(ctx context.Context, doc *resume.Document, summary *model.RunSummary) error {
	vec := vectorize.New(p.store, p.embedder, p.logger)

	jobs, err := p.store.ParsedJobs()
	if err != nil {
		return fmt.Errorf("vectorize stage: %w", err)
	}

	errs := runWorkers(ctx, p.cfg.Pipeline.Workers, len(jobs), func(i int) error {
		_, err := vec.EmbedJob(ctx, jobs[i])
		return err
	})
	if err := ctx.Err(); err != nil {
		return err
	}

	for i, err := range errs {
		if err != nil {
			p.logger.Error("vectorize failed", "job_id", jobs[i].JobID, "error", err)
			summary.Failed++
			continue
		}
		summary.Vectorized++
	}

	if _, err := vec.EmbedResume(ctx, doc, p.cfg.Resume.Version); err != nil {
		return fmt.Errorf("vectorize stage: %w", err)
	}

	p.logger.Info("vectorize stage complete", "jobs", summary.Vectorized)
	return nil
}

// rankStage scores every parsed job against the resume version, stores the
// rankings, and writes the configured exports. Returns the ranked scores
// and how many jobs failed to score.
func (p *Pipeline) rankStage(ctx context.Context, doc *resume.Document) ([]model.JobScore, int, error) {
	version := p.cfg.Resume.Version

	resumeEmbs, err := p.store.ResumeEmbeddings(version)
	if err != nil {
		return nil, 0, fmt.Errorf("rank stage: loading resume embeddings: %w", err)
	}

	scorer, err := rank.NewScorer(resumeEmbs, rank.ResumeSkills(doc.SectionText(resumeSkillSection)), rank.Options{
		TopN:        p.cfg.Scoring.ResumeMatchesTopN,
		UseWeighted: p.cfg.Scoring.UseWeightedComposite,
		Weights: rank.Weights{
			OverallSimilarity:       p.cfg.Scoring.Weights.OverallSimilarity,
			RequiredMatch:           p.cfg.Scoring.Weights.RequiredMatch,
			ResponsibilityAlignment: p.cfg.Scoring.Weights.ResponsibilityAlignment,
			BonusMatch:              p.cfg.Scoring.Weights.BonusMatch,
		},
	})
	if err != nil {
		return nil, 0, fmt.Errorf("rank stage: %w", err)
	}

	jobs, err := p.store.ParsedJobs()
	if err != nil {
		return nil, 0, fmt.Errorf("rank stage: loading parsed jobs: %w", err)
	}
	skillsByJob, err := p.store.JobSkills()
	if err != nil {
		return nil, 0, fmt.Errorf("rank stage: loading job skills: %w", err)
	}
	jobEmbs, err := p.store.JobEmbeddings()
	if err != nil {
		return nil, 0, fmt.Errorf("rank stage: loading job embeddings: %w", err)
	}
	vectors := rank.GroupJobVectors(jobEmbs)

	for i := range jobs {
		jobs[i].Skills = skillsByJob[jobs[i].JobID]
	}

	scores := make([]model.JobScore, len(jobs))
	errs := runWorkers(ctx, p.cfg.Pipeline.Workers, len(jobs), func(i int) error {
		s, err := scorer.Score(jobs[i], vectors[jobs[i].JobID])
		if err != nil {
			return err
		}
		scores[i] = s
		return nil
	})
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	kept := make([]model.JobScore, 0, len(scores))
	failed := 0
	for i, err := range errs {
		if err != nil {
			p.logger.Error("scoring failed", "job_id", jobs[i].JobID, "error", err)
			failed++
			continue
		}
		kept = append(kept, scores[i])
	}

	ranked := rank.Rank(kept)

	if err := p.store.ReplaceRankings(version, ranked); err != nil {
		return nil, 0, fmt.Errorf("rank stage: storing rankings: %w", err)
	}
	p.logger.Info("rankings stored", "version", version, "jobs", len(ranked), "failed", failed)

	if p.cfg.Export.SummaryCSV || p.cfg.Export.DetailedJSON {
		exp := export.New(p.cfg.Data.ExportDir, p.logger)
		if p.cfg.Export.SummaryCSV {
			if _, err := exp.WriteCSV(ranked); err != nil {
				return nil, 0, fmt.Errorf("rank stage: %w", err)
			}
		}
		if p.cfg.Export.DetailedJSON {
			if _, err := exp.WriteJSON(version, ranked); err != nil {
				return nil, 0, fmt.Errorf("rank stage: %w", err)
			}
		}
	}

	return ranked, failed, nil
}

// logSkipped records current store counts for a stage the run is skipping.
func (p *Pipeline) logSkipped(stage string) {
	counts, err := p.store.JobCounts()
	if err != nil {
		p.logger.Warn("skipping stage", "stage", stage, "error", err)
		return
	}
	p.logger.Info("skipping stage",
		"stage", stage,
		"total_jobs", counts.Total,
		"processed", counts.Processed,
		"unprocessed", counts.Unprocessed,
	)
}
