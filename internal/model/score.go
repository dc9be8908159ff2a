package model

import (
	"context"
	"time"
)

// ResumeMatch is one resume content item with its similarity to a job.
type ResumeMatch struct {
	Section     string  `json:"section"`
	Subsection  string  `json:"subsection,omitempty"`
	ContentType string  `json:"content_type"`
	Text        string  `json:"text"`
	Similarity  float64 `json:"similarity"`
}

// JobScore is the full scoring result for one job against one resume version.
// Recomputed on every scoring run; the next run for the same resume version
// supersedes it entirely.
type JobScore struct {
	JobID      int64     `json:"job_id"`
	Company    string    `json:"company"`
	Title      string    `json:"job_title"`
	Location   string    `json:"location"`
	URL        string    `json:"job_url"`
	DatePosted time.Time `json:"date_posted"`

	OverallSimilarity float64 `json:"overall_similarity"`
	// SectionSimilarities maps job section label to its similarity against
	// the overall resume vector. Absent sections are absent keys.
	SectionSimilarities map[string]float64 `json:"section_similarities,omitempty"`
	SkillMatchRatio     float64            `json:"skill_match_ratio"`
	MatchedSkills       []string           `json:"matched_skills"`
	MissingSkills       []string           `json:"missing_skills"`
	BestMatches         []ResumeMatch      `json:"best_resume_matches"`
	CompositeScore      float64            `json:"composite_score"`
	Rank                int                `json:"rank"`
}

// MatchCount returns the number of matched skills.
func (s JobScore) MatchCount() int { return len(s.MatchedSkills) }

// GapCount returns the number of missing skills.
func (s JobScore) GapCount() int { return len(s.MissingSkills) }

// RunSummary describes one pipeline run, for logging and notifications.
type RunSummary struct {
	ResumeVersion string
	Ingested      int
	Duplicates    int
	Parsed        int
	Vectorized    int
	Ranked        int
	Failed        int
	TopJobs       []JobScore
	Duration      time.Duration
	FinishedAt    time.Time
}

// Notifier announces a finished run.
type Notifier interface {
	NotifyRun(ctx context.Context, summary RunSummary) error
	Name() string
}
