package model

// JobCounts reports how many staged jobs exist and how many are parsed.
type JobCounts struct {
	Total       int
	Processed   int
	Unprocessed int
}

// Store is the persistence boundary: staged raw jobs, parsed jobs,
// embeddings, and rankings.
type Store interface {
	// InsertJob stages a raw job. When a row with the same
	// (company, title, date posted) already exists it returns
	// (existing id, false) and inserts nothing.
	InsertJob(job Job) (int64, bool, error)
	HasJob(company, title string, datePosted string) (bool, error)
	UnprocessedJobs() ([]Job, error)
	MarkProcessed(jobID int64) error
	JobCounts() (JobCounts, error)

	// SaveParsedJob inserts the parsed row. A second save for the same job
	// id is a no-op returning false, matching the replace-by-reset model.
	SaveParsedJob(parsed ParsedJob) (bool, error)
	ParsedJobs() ([]ParsedJob, error)
	// JobSkills returns extracted skills keyed by job id, so scoring can
	// avoid loading full parse rows.
	JobSkills() (map[int64][]string, error)

	// ReplaceJobEmbeddings deletes the job's previous vectors and writes
	// the new set in one transaction. ReplaceResumeEmbeddings does the same
	// keyed by resume version.
	ReplaceJobEmbeddings(jobID int64, embeddings []Embedding) error
	ReplaceResumeEmbeddings(resumeVersion string, embeddings []Embedding) error
	JobEmbeddings() ([]Embedding, error)
	ResumeEmbeddings(resumeVersion string) ([]Embedding, error)
	// ResumeVersions lists resume versions that have stored rankings.
	ResumeVersions() ([]string, error)

	// ReplaceRankings atomically supersedes all ranking and granular rows
	// for the resume version.
	ReplaceRankings(resumeVersion string, scores []JobScore) error
	Rankings(resumeVersion string) ([]JobScore, error)

	// ClearResults drops rankings and granular scores. ClearAll also drops
	// embeddings and staged jobs.
	ClearResults() error
	ClearAll() error

	Close() error
}
