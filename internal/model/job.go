package model

import "time"

// Job is a raw posting as ingested, before any parsing.
type Job struct {
	ID          int64     // store-assigned identifier
	BatchID     string    // ingest run this row arrived in
	Title       string    // job title
	Company     string    // company name
	Location    string    // location string, may be empty
	Description string    // raw description text, required
	URL         string    // posting link
	DatePosted  time.Time // date precision; zero means unknown
	SalaryRange string
	JobType     string
	Source      string // where the JSON came from (jobspy, manual, ...)
	IngestedAt  time.Time
}

// Skill type values for Qualification.SkillType.
const (
	SkillHard = "Hard"
	SkillSoft = "Soft"
)

// Qualification is one requirement bullet. Whether it is required or bonus is
// carried by which ParsedJob slice it lives in.
type Qualification struct {
	Text      string `json:"text"`
	SkillType string `json:"skill_type"` // Hard or Soft
}

// Ownership level values, strongest first.
const (
	OwnershipManage  = "manage"
	OwnershipLead    = "lead"
	OwnershipSupport = "support"
	OwnershipAssist  = "assist"
)

// Frequency values.
const (
	FrequencyDaily     = "daily"
	FrequencyWeekly    = "weekly"
	FrequencyRegularly = "regularly"
	FrequencyAdHoc     = "ad-hoc"
)

// Responsibility is one duty bullet with its classification tags.
type Responsibility struct {
	Activity       string `json:"activity"`
	OwnershipLevel string `json:"ownership_level"`
	Frequency      string `json:"frequency"`
	ActivityType   string `json:"activity_type"` // domain label, "General" if none matched
}

// ParsedJob is the structured form of one Job. Created once per job;
// re-parsing replaces the row, it never mutates in place.
type ParsedJob struct {
	JobID            int64
	Title            string
	Company          string
	Location         string
	CleanDescription string
	Required         []Qualification
	Bonus            []Qualification
	Responsibilities []Responsibility
	// Summary holds every character of CleanDescription not attributed to a
	// located section span. Summary plus the spans partition the clean text.
	Summary     string
	Skills      []string
	Entities    map[string][]string
	ActionVerbs []string
	DomainTags  []string
	URL         string
	DatePosted  time.Time
}

// Embedding owner types.
const (
	OwnerJob    = "job"
	OwnerResume = "resume"
)

// Resume content types, matching how the resume document is flattened.
const (
	ContentFullResume = "full_resume"
	ContentParagraph  = "content"
	ContentSubsection = "subsection"
	ContentBullet     = "bullet"
)

// Job embedding section labels. Resume rows use the resume section name
// instead, with "overall_resume" for the whole-document vector.
const (
	SectionFullDescription  = "full_description"
	SectionQualifications   = "qualifications"
	SectionResponsibilities = "responsibilities"
	SectionSummary          = "summary"
	SectionOverallResume    = "overall_resume"
)

// ResumeItem is one flattened unit of the resume document, the granularity at
// which resume embeddings are generated.
type ResumeItem struct {
	Section     string
	Subsection  string // empty for content items
	ContentType string // full_resume, content, subsection, or bullet
	Text        string
}

// Embedding is one stored vector with its provenance. Text is a reference
// snippet truncated to 500 characters; the vector was computed on the full
// source text.
type Embedding struct {
	OwnerType     string // job or resume
	OwnerID       string // job id as string, or section key for resume rows
	Section       string
	Subsection    string
	ContentType   string // resume rows only
	Text          string
	Vector        []float64
	ResumeVersion string // resume rows only
}
