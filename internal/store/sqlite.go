// Package store persists staged jobs, parse results, embeddings and
// rankings in a single SQLite file.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/amishk599/jobfit/internal/model"
)

const dateLayout = "2006-01-02"

// SQLiteStore implements model.Store on one SQLite database. The staging_
// and results_ table prefixes separate raw/parsed input from scoring output.
type SQLiteStore struct {
	db *sql.DB
}

var _ model.Store = (*SQLiteStore)(nil)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS staging_raw_jobs (
		job_id          INTEGER PRIMARY KEY AUTOINCREMENT,
		batch_id        TEXT,
		job_title       TEXT,
		company         TEXT,
		location        TEXT,
		job_description TEXT NOT NULL,
		job_url         TEXT,
		date_posted     DATE,
		salary_range    TEXT,
		job_type        TEXT,
		source          TEXT,
		is_processed    INTEGER DEFAULT 0,
		date_ingested   DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS staging_clean_jobs (
		job_id                  INTEGER PRIMARY KEY,
		job_title               TEXT,
		company                 TEXT,
		location                TEXT,
		description_clean       TEXT,
		qualifications_required TEXT,
		qualifications_bonus    TEXT,
		responsibilities        TEXT,
		summary                 TEXT,
		extracted_skills        TEXT,
		entities                TEXT,
		action_verbs            TEXT,
		domain_tags             TEXT,
		job_url                 TEXT,
		date_posted             DATE,
		processed_at            DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS embeddings (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		owner_type     TEXT,
		owner_id       TEXT,
		section        TEXT,
		subsection     TEXT,
		content_type   TEXT,
		text           TEXT,
		vector         TEXT,
		dim            INTEGER,
		resume_version TEXT,
		created_at     DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS results_rankings (
		id                 INTEGER PRIMARY KEY AUTOINCREMENT,
		job_id             INTEGER,
		resume_version     TEXT,
		rank               INTEGER,
		composite_score    REAL,
		overall_similarity REAL,
		skill_match_ratio  REAL,
		matched_skills     TEXT,
		missing_skills     TEXT,
		skill_match_count  INTEGER,
		skill_gap_count    INTEGER,
		best_matches       TEXT,
		scored_at          DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS results_granular_scores (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		job_id         INTEGER,
		resume_version TEXT,
		section        TEXT,
		similarity     REAL
	)`,
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath and ensures
// all tables exist.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// One connection: SQLite rejects concurrent writers, and pipeline
	// workers write from several goroutines.
	db.SetMaxOpenConns(1)

	// Verify the connection is alive.
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite db: %w", err)
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("creating tables: %w", err)
		}
	}

	return &SQLiteStore{db: db}, nil
}

// InsertJob stages a raw job. Dedup key is (company, title, date posted); a
// duplicate returns the existing row id with inserted=false.
func (s *SQLiteStore) InsertJob(job model.Job) (int64, bool, error) {
	date := job.DatePosted.Format(dateLayout)

	var existingID int64
	err := s.db.QueryRow(
		"SELECT job_id FROM staging_raw_jobs WHERE company = ? AND job_title = ? AND date_posted = ?",
		job.Company, job.Title, date,
	).Scan(&existingID)
	if err == nil {
		return existingID, false, nil
	}
	if err != sql.ErrNoRows {
		return 0, false, fmt.Errorf("checking for duplicate job: %w", err)
	}

	res, err := s.db.Exec(
		`INSERT INTO staging_raw_jobs
		 (batch_id, job_title, company, location, job_description, job_url,
		  date_posted, salary_range, job_type, source)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		job.BatchID, job.Title, job.Company, job.Location, job.Description,
		job.URL, date, job.SalaryRange, job.JobType, job.Source,
	)
	if err != nil {
		return 0, false, fmt.Errorf("inserting job %q: %w", job.Title, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, false, fmt.Errorf("reading inserted job id: %w", err)
	}
	return id, true, nil
}

// HasJob reports whether a staged row with the dedup key exists.
// datePosted uses the 2006-01-02 layout.
func (s *SQLiteStore) HasJob(company, title, datePosted string) (bool, error) {
	var exists int
	err := s.db.QueryRow(
		"SELECT 1 FROM staging_raw_jobs WHERE company = ? AND job_title = ? AND date_posted = ?",
		company, title, datePosted,
	).Scan(&exists)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking job existence: %w", err)
	}
	return true, nil
}

// UnprocessedJobs returns staged jobs not yet parsed, oldest first.
func (s *SQLiteStore) UnprocessedJobs() ([]model.Job, error) {
	rows, err := s.db.Query(
		`SELECT job_id, batch_id, job_title, company, location, job_description,
		        job_url, date_posted, salary_range, job_type, source, date_ingested
		 FROM staging_raw_jobs WHERE is_processed = 0 ORDER BY job_id`)
	if err != nil {
		return nil, fmt.Errorf("querying unprocessed jobs: %w", err)
	}
	defer rows.Close()

	var jobs []model.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

func scanJob(rows *sql.Rows) (model.Job, error) {
	var (
		job                      model.Job
		batchID, location, url   sql.NullString
		salary, jobType, source  sql.NullString
		datePosted, dateIngested sql.NullString
	)
	err := rows.Scan(&job.ID, &batchID, &job.Title, &job.Company, &location,
		&job.Description, &url, &datePosted, &salary, &jobType, &source, &dateIngested)
	if err != nil {
		return model.Job{}, fmt.Errorf("scanning job row: %w", err)
	}
	job.BatchID = batchID.String
	job.Location = location.String
	job.URL = url.String
	job.SalaryRange = salary.String
	job.JobType = jobType.String
	job.Source = source.String
	job.DatePosted = parseStoredDate(datePosted.String)
	job.IngestedAt = parseStoredTime(dateIngested.String)
	return job, nil
}

// MarkProcessed flags a staged job as parsed.
func (s *SQLiteStore) MarkProcessed(jobID int64) error {
	_, err := s.db.Exec("UPDATE staging_raw_jobs SET is_processed = 1 WHERE job_id = ?", jobID)
	if err != nil {
		return fmt.Errorf("marking job %d processed: %w", jobID, err)
	}
	return nil
}

// JobCounts reports staged totals.
func (s *SQLiteStore) JobCounts() (model.JobCounts, error) {
	var counts model.JobCounts
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN is_processed = 1 THEN 1 ELSE 0 END), 0)
		 FROM staging_raw_jobs`,
	).Scan(&counts.Total, &counts.Processed)
	if err != nil {
		return counts, fmt.Errorf("counting jobs: %w", err)
	}
	counts.Unprocessed = counts.Total - counts.Processed
	return counts, nil
}

// SaveParsedJob inserts a parse result. Saving the same job id twice is a
// no-op returning false.
func (s *SQLiteStore) SaveParsedJob(parsed model.ParsedJob) (bool, error) {
	required, err := json.Marshal(parsed.Required)
	if err != nil {
		return false, fmt.Errorf("encoding required qualifications: %w", err)
	}
	bonus, err := json.Marshal(parsed.Bonus)
	if err != nil {
		return false, fmt.Errorf("encoding bonus qualifications: %w", err)
	}
	responsibilities, err := json.Marshal(parsed.Responsibilities)
	if err != nil {
		return false, fmt.Errorf("encoding responsibilities: %w", err)
	}
	skills, err := json.Marshal(parsed.Skills)
	if err != nil {
		return false, fmt.Errorf("encoding skills: %w", err)
	}
	entities, err := json.Marshal(parsed.Entities)
	if err != nil {
		return false, fmt.Errorf("encoding entities: %w", err)
	}
	verbs, err := json.Marshal(parsed.ActionVerbs)
	if err != nil {
		return false, fmt.Errorf("encoding action verbs: %w", err)
	}
	tags, err := json.Marshal(parsed.DomainTags)
	if err != nil {
		return false, fmt.Errorf("encoding domain tags: %w", err)
	}

	res, err := s.db.Exec(
		`INSERT OR IGNORE INTO staging_clean_jobs
		 (job_id, job_title, company, location, description_clean,
		  qualifications_required, qualifications_bonus, responsibilities,
		  summary, extracted_skills, entities, action_verbs, domain_tags,
		  job_url, date_posted)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		parsed.JobID, parsed.Title, parsed.Company, parsed.Location,
		parsed.CleanDescription, string(required), string(bonus),
		string(responsibilities), parsed.Summary, string(skills),
		string(entities), string(verbs), string(tags),
		parsed.URL, parsed.DatePosted.Format(dateLayout),
	)
	if err != nil {
		return false, fmt.Errorf("saving parsed job %d: %w", parsed.JobID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("reading affected rows: %w", err)
	}
	return affected > 0, nil
}

// ParsedJobs returns every parsed job, oldest first.
func (s *SQLiteStore) ParsedJobs() ([]model.ParsedJob, error) {
	rows, err := s.db.Query(
		`SELECT job_id, job_title, company, location, description_clean,
		        qualifications_required, qualifications_bonus, responsibilities,
		        summary, extracted_skills, entities, action_verbs, domain_tags,
		        job_url, date_posted
		 FROM staging_clean_jobs ORDER BY job_id`)
	if err != nil {
		return nil, fmt.Errorf("querying parsed jobs: %w", err)
	}
	defer rows.Close()

	var parsed []model.ParsedJob
	for rows.Next() {
		var (
			p                        model.ParsedJob
			location, summary        sql.NullString
			clean, url, datePosted   sql.NullString
			required, bonus          sql.NullString
			responsibilities, skills sql.NullString
			entities, verbs, tags    sql.NullString
		)
		err := rows.Scan(&p.JobID, &p.Title, &p.Company, &location, &clean,
			&required, &bonus, &responsibilities, &summary, &skills,
			&entities, &verbs, &tags, &url, &datePosted)
		if err != nil {
			return nil, fmt.Errorf("scanning parsed job row: %w", err)
		}
		p.Location = location.String
		p.CleanDescription = clean.String
		p.Summary = summary.String
		p.URL = url.String
		p.DatePosted = parseStoredDate(datePosted.String)

		if err := decodeJSON(required.String, &p.Required); err != nil {
			return nil, fmt.Errorf("decoding required for job %d: %w", p.JobID, err)
		}
		if err := decodeJSON(bonus.String, &p.Bonus); err != nil {
			return nil, fmt.Errorf("decoding bonus for job %d: %w", p.JobID, err)
		}
		if err := decodeJSON(responsibilities.String, &p.Responsibilities); err != nil {
			return nil, fmt.Errorf("decoding responsibilities for job %d: %w", p.JobID, err)
		}
		if err := decodeJSON(skills.String, &p.Skills); err != nil {
			return nil, fmt.Errorf("decoding skills for job %d: %w", p.JobID, err)
		}
		if err := decodeJSON(entities.String, &p.Entities); err != nil {
			return nil, fmt.Errorf("decoding entities for job %d: %w", p.JobID, err)
		}
		if err := decodeJSON(verbs.String, &p.ActionVerbs); err != nil {
			return nil, fmt.Errorf("decoding action verbs for job %d: %w", p.JobID, err)
		}
		if err := decodeJSON(tags.String, &p.DomainTags); err != nil {
			return nil, fmt.Errorf("decoding domain tags for job %d: %w", p.JobID, err)
		}
		parsed = append(parsed, p)
	}
	return parsed, rows.Err()
}

// JobSkills returns extracted skills keyed by job id.
func (s *SQLiteStore) JobSkills() (map[int64][]string, error) {
	rows, err := s.db.Query("SELECT job_id, extracted_skills FROM staging_clean_jobs")
	if err != nil {
		return nil, fmt.Errorf("querying job skills: %w", err)
	}
	defer rows.Close()

	skills := make(map[int64][]string)
	for rows.Next() {
		var (
			jobID int64
			raw   sql.NullString
		)
		if err := rows.Scan(&jobID, &raw); err != nil {
			return nil, fmt.Errorf("scanning job skills row: %w", err)
		}
		var list []string
		if err := decodeJSON(raw.String, &list); err != nil {
			return nil, fmt.Errorf("decoding skills for job %d: %w", jobID, err)
		}
		skills[jobID] = list
	}
	return skills, rows.Err()
}

// ReplaceJobEmbeddings supersedes a job's stored vectors in one transaction.
func (s *SQLiteStore) ReplaceJobEmbeddings(jobID int64, embeddings []model.Embedding) error {
	return s.replaceEmbeddings(
		"DELETE FROM embeddings WHERE owner_type = ? AND owner_id = ?",
		[]any{model.OwnerJob, fmt.Sprint(jobID)},
		embeddings,
	)
}

// ReplaceResumeEmbeddings supersedes a resume version's stored vectors in one
// transaction.
func (s *SQLiteStore) ReplaceResumeEmbeddings(resumeVersion string, embeddings []model.Embedding) error {
	return s.replaceEmbeddings(
		"DELETE FROM embeddings WHERE owner_type = ? AND resume_version = ?",
		[]any{model.OwnerResume, resumeVersion},
		embeddings,
	)
}

func (s *SQLiteStore) replaceEmbeddings(deleteStmt string, deleteArgs []any, embeddings []model.Embedding) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning embeddings transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(deleteStmt, deleteArgs...); err != nil {
		return fmt.Errorf("deleting previous embeddings: %w", err)
	}

	for _, emb := range embeddings {
		vector, err := json.Marshal(emb.Vector)
		if err != nil {
			return fmt.Errorf("encoding vector: %w", err)
		}
		_, err = tx.Exec(
			`INSERT INTO embeddings
			 (owner_type, owner_id, section, subsection, content_type, text,
			  vector, dim, resume_version)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			emb.OwnerType, emb.OwnerID, emb.Section, emb.Subsection,
			emb.ContentType, emb.Text, string(vector), len(emb.Vector),
			emb.ResumeVersion,
		)
		if err != nil {
			return fmt.Errorf("inserting embedding: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing embeddings: %w", err)
	}
	return nil
}

// JobEmbeddings returns every job-owned embedding, insertion order.
func (s *SQLiteStore) JobEmbeddings() ([]model.Embedding, error) {
	return s.queryEmbeddings(
		"WHERE owner_type = ?", model.OwnerJob)
}

// ResumeEmbeddings returns embeddings for one resume version, insertion order.
func (s *SQLiteStore) ResumeEmbeddings(resumeVersion string) ([]model.Embedding, error) {
	return s.queryEmbeddings(
		"WHERE owner_type = ? AND resume_version = ?", model.OwnerResume, resumeVersion)
}

func (s *SQLiteStore) queryEmbeddings(where string, args ...any) ([]model.Embedding, error) {
	rows, err := s.db.Query(
		`SELECT owner_type, owner_id, section, subsection, content_type, text,
		        vector, resume_version
		 FROM embeddings `+where+` ORDER BY id`, args...)
	if err != nil {
		return nil, fmt.Errorf("querying embeddings: %w", err)
	}
	defer rows.Close()

	var embeddings []model.Embedding
	for rows.Next() {
		var (
			emb              model.Embedding
			subsection, text sql.NullString
			vector, version  sql.NullString
			contentType      sql.NullString
		)
		err := rows.Scan(&emb.OwnerType, &emb.OwnerID, &emb.Section,
			&subsection, &contentType, &text, &vector, &version)
		if err != nil {
			return nil, fmt.Errorf("scanning embedding row: %w", err)
		}
		emb.Subsection = subsection.String
		emb.ContentType = contentType.String
		emb.Text = text.String
		emb.ResumeVersion = version.String
		if err := decodeJSON(vector.String, &emb.Vector); err != nil {
			return nil, fmt.Errorf("decoding vector for %s/%s: %w", emb.OwnerType, emb.OwnerID, err)
		}
		embeddings = append(embeddings, emb)
	}
	return embeddings, rows.Err()
}

// ResumeVersions lists resume versions that have stored rankings, sorted.
func (s *SQLiteStore) ResumeVersions() ([]string, error) {
	rows, err := s.db.Query(
		"SELECT DISTINCT resume_version FROM results_rankings ORDER BY resume_version")
	if err != nil {
		return nil, fmt.Errorf("querying resume versions: %w", err)
	}
	defer rows.Close()

	var versions []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scanning resume version: %w", err)
		}
		versions = append(versions, v)
	}
	return versions, rows.Err()
}

// ReplaceRankings supersedes all ranking and granular-score rows for the
// resume version in a single transaction.
func (s *SQLiteStore) ReplaceRankings(resumeVersion string, scores []model.JobScore) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning rankings transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM results_rankings WHERE resume_version = ?", resumeVersion); err != nil {
		return fmt.Errorf("deleting previous rankings: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM results_granular_scores WHERE resume_version = ?", resumeVersion); err != nil {
		return fmt.Errorf("deleting previous granular scores: %w", err)
	}

	for _, score := range scores {
		matched, err := json.Marshal(score.MatchedSkills)
		if err != nil {
			return fmt.Errorf("encoding matched skills: %w", err)
		}
		missing, err := json.Marshal(score.MissingSkills)
		if err != nil {
			return fmt.Errorf("encoding missing skills: %w", err)
		}
		best, err := json.Marshal(score.BestMatches)
		if err != nil {
			return fmt.Errorf("encoding best matches: %w", err)
		}

		_, err = tx.Exec(
			`INSERT INTO results_rankings
			 (job_id, resume_version, rank, composite_score, overall_similarity,
			  skill_match_ratio, matched_skills, missing_skills,
			  skill_match_count, skill_gap_count, best_matches)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			score.JobID, resumeVersion, score.Rank, score.CompositeScore,
			score.OverallSimilarity, score.SkillMatchRatio, string(matched),
			string(missing), score.MatchCount(), score.GapCount(), string(best),
		)
		if err != nil {
			return fmt.Errorf("inserting ranking for job %d: %w", score.JobID, err)
		}

		for section, similarity := range score.SectionSimilarities {
			_, err = tx.Exec(
				`INSERT INTO results_granular_scores
				 (job_id, resume_version, section, similarity)
				 VALUES (?, ?, ?, ?)`,
				score.JobID, resumeVersion, section, similarity,
			)
			if err != nil {
				return fmt.Errorf("inserting granular score for job %d: %w", score.JobID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing rankings: %w", err)
	}
	return nil
}

// Rankings returns stored rankings for a resume version, best rank first,
// joined with staged job metadata and granular section scores.
func (s *SQLiteStore) Rankings(resumeVersion string) ([]model.JobScore, error) {
	rows, err := s.db.Query(
		`SELECT r.job_id, r.rank, r.composite_score, r.overall_similarity,
		        r.skill_match_ratio, r.matched_skills, r.missing_skills,
		        r.best_matches,
		        j.job_title, j.company, j.location, j.job_url, j.date_posted
		 FROM results_rankings r
		 LEFT JOIN staging_raw_jobs j ON j.job_id = r.job_id
		 WHERE r.resume_version = ?
		 ORDER BY r.rank`, resumeVersion)
	if err != nil {
		return nil, fmt.Errorf("querying rankings: %w", err)
	}
	defer rows.Close()

	var scores []model.JobScore
	for rows.Next() {
		var (
			score                    model.JobScore
			matched, missing, best   sql.NullString
			title, company, location sql.NullString
			url, datePosted          sql.NullString
		)
		err := rows.Scan(&score.JobID, &score.Rank, &score.CompositeScore,
			&score.OverallSimilarity, &score.SkillMatchRatio, &matched,
			&missing, &best, &title, &company, &location, &url, &datePosted)
		if err != nil {
			return nil, fmt.Errorf("scanning ranking row: %w", err)
		}
		score.Title = title.String
		score.Company = company.String
		score.Location = location.String
		score.URL = url.String
		score.DatePosted = parseStoredDate(datePosted.String)
		if err := decodeJSON(matched.String, &score.MatchedSkills); err != nil {
			return nil, fmt.Errorf("decoding matched skills for job %d: %w", score.JobID, err)
		}
		if err := decodeJSON(missing.String, &score.MissingSkills); err != nil {
			return nil, fmt.Errorf("decoding missing skills for job %d: %w", score.JobID, err)
		}
		if err := decodeJSON(best.String, &score.BestMatches); err != nil {
			return nil, fmt.Errorf("decoding best matches for job %d: %w", score.JobID, err)
		}
		scores = append(scores, score)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := s.attachGranularScores(resumeVersion, scores); err != nil {
		return nil, err
	}
	return scores, nil
}

func (s *SQLiteStore) attachGranularScores(resumeVersion string, scores []model.JobScore) error {
	rows, err := s.db.Query(
		`SELECT job_id, section, similarity FROM results_granular_scores
		 WHERE resume_version = ?`, resumeVersion)
	if err != nil {
		return fmt.Errorf("querying granular scores: %w", err)
	}
	defer rows.Close()

	granular := make(map[int64]map[string]float64)
	for rows.Next() {
		var (
			jobID      int64
			section    string
			similarity float64
		)
		if err := rows.Scan(&jobID, &section, &similarity); err != nil {
			return fmt.Errorf("scanning granular score row: %w", err)
		}
		if granular[jobID] == nil {
			granular[jobID] = make(map[string]float64)
		}
		granular[jobID][section] = similarity
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for i := range scores {
		if sections, ok := granular[scores[i].JobID]; ok {
			scores[i].SectionSimilarities = sections
		}
	}
	return nil
}

// ClearResults drops all rankings and granular scores.
func (s *SQLiteStore) ClearResults() error {
	for _, table := range []string{"results_rankings", "results_granular_scores"} {
		if _, err := s.db.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}
	return nil
}

// ClearAll drops everything: staged jobs, parse results, embeddings and
// rankings.
func (s *SQLiteStore) ClearAll() error {
	tables := []string{
		"results_granular_scores", "results_rankings",
		"embeddings", "staging_clean_jobs", "staging_raw_jobs",
	}
	for _, table := range tables {
		if _, err := s.db.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}
	return nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// decodeJSON unmarshals a stored JSON column, treating empty as absent.
func decodeJSON(raw string, dst any) error {
	if raw == "" {
		return nil
	}
	return json.Unmarshal([]byte(raw), dst)
}

func parseStoredDate(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	// The driver returns DATE-declared columns as time.Time, which
	// database/sql renders as RFC 3339 when scanned into a string.
	for _, layout := range []string{dateLayout, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}

func parseStoredTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{"2006-01-02 15:04:05", time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}
