// Package ingest loads raw job postings from JSON files into staging.
package ingest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/amishk599/jobfit/internal/model"
)

// Stats summarizes one ingest run.
type Stats struct {
	BatchID    string
	Files      int
	Inserted   int
	Duplicates int
	Filtered   int
	Errors     int
}

// Ingester reads posting files, normalizes their fields and stages them.
type Ingester struct {
	store         model.Store
	filter        *TitleFilter
	defaultSource string
	logger        *slog.Logger
}

// New returns an Ingester writing to store. filter may be nil to accept
// every title.
func New(store model.Store, filter *TitleFilter, defaultSource string, logger *slog.Logger) *Ingester {
	return &Ingester{
		store:         store,
		filter:        filter,
		defaultSource: defaultSource,
		logger:        logger,
	}
}

// IngestDir processes every *.json file in dir. Bad records are logged and
// counted, never abort the run. All rows inserted by one call share a batch id.
func (i *Ingester) IngestDir(dir string) (Stats, error) {
	stats := Stats{BatchID: uuid.NewString()}

	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return stats, fmt.Errorf("list raw dir %s: %w", dir, err)
	}
	sort.Strings(paths)

	if len(paths) == 0 {
		i.logger.Warn("no JSON files found", "dir", dir)
		return stats, nil
	}

	i.logger.Info("starting ingest", "batch_id", stats.BatchID, "files", len(paths))

	for _, path := range paths {
		stats.Files++
		i.ingestFile(path, &stats)
	}

	i.logger.Info("ingest complete",
		"batch_id", stats.BatchID,
		"inserted", stats.Inserted,
		"duplicates", stats.Duplicates,
		"filtered", stats.Filtered,
		"errors", stats.Errors,
	)
	return stats, nil
}

func (i *Ingester) ingestFile(path string, stats *Stats) {
	data, err := os.ReadFile(path)
	if err != nil {
		i.logger.Error("read file failed", "file", path, "error", err)
		stats.Errors++
		return
	}

	records, err := decodeRecords(data)
	if err != nil {
		i.logger.Error("invalid JSON", "file", filepath.Base(path), "error", err)
		stats.Errors++
		return
	}

	for idx, record := range records {
		job, err := i.normalize(record)
		if err != nil {
			i.logger.Warn("skipping record",
				"file", filepath.Base(path), "record", idx+1, "error", err)
			stats.Errors++
			continue
		}

		if i.filter != nil && !i.filter.Match(job.Title) {
			stats.Filtered++
			continue
		}

		job.BatchID = stats.BatchID
		_, inserted, err := i.store.InsertJob(job)
		if err != nil {
			i.logger.Error("insert failed",
				"file", filepath.Base(path), "title", job.Title, "error", err)
			stats.Errors++
			continue
		}
		if inserted {
			stats.Inserted++
		} else {
			stats.Duplicates++
		}
	}
}

// decodeRecords accepts either a single posting object or an array of them.
func decodeRecords(data []byte) ([]map[string]any, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var records []map[string]any
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, fmt.Errorf("decode posting array: %w", err)
		}
		return records, nil
	}

	var record map[string]any
	if err := json.Unmarshal(trimmed, &record); err != nil {
		return nil, fmt.Errorf("decode posting object: %w", err)
	}
	return []map[string]any{record}, nil
}

// normalize maps the field-name variations different sources use onto a Job.
func (i *Ingester) normalize(record map[string]any) (model.Job, error) {
	job := model.Job{
		Title:       firstString(record, "job_title", "title", "position"),
		Company:     firstString(record, "company", "company_name"),
		Location:    firstString(record, "location", "job_location"),
		Description: firstString(record, "job_description", "description", "job_details"),
		URL:         firstString(record, "job_url", "url", "link"),
		SalaryRange: firstString(record, "salary_range", "salary"),
		JobType:     firstString(record, "job_type", "employment_type"),
		Source:      firstString(record, "source"),
	}

	if job.Title == "" {
		job.Title = "Unknown Title"
	}
	if job.Company == "" {
		job.Company = "Unknown Company"
	}
	if job.Source == "" {
		job.Source = i.defaultSource
	}

	if job.Description == "" {
		return model.Job{}, fmt.Errorf("%q: %w", job.Title, model.ErrEmptyDescription)
	}

	job.DatePosted = parseDatePosted(firstValue(record, "date_posted", "posted_date"), i.logger)

	return job, nil
}

// parseDatePosted interprets the posting date. JSON numbers are Unix
// milliseconds, strings are ISO-8601 with or without a time component.
// Anything unparseable falls back to today rather than dropping the record.
func parseDatePosted(v any, logger *slog.Logger) time.Time {
	switch d := v.(type) {
	case float64:
		return truncateToDay(time.UnixMilli(int64(d)))
	case string:
		for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
			if t, err := time.Parse(layout, d); err == nil {
				return truncateToDay(t)
			}
		}
		logger.Warn("could not parse posting date, using today", "value", d)
	}
	return truncateToDay(time.Now())
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// firstString returns the first non-empty string value among keys.
func firstString(record map[string]any, keys ...string) string {
	for _, key := range keys {
		if s, ok := record[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// firstValue returns the first present non-nil value among keys.
func firstValue(record map[string]any, keys ...string) any {
	for _, key := range keys {
		if v, ok := record[key]; ok && v != nil {
			return v
		}
	}
	return nil
}
