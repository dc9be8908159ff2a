package store

import "github.com/amishk599/jobfit/internal/model"

// NopStore is a no-op store used in dry-run mode. Writes are discarded and
// reads return empty results.
type NopStore struct{}

var _ model.Store = (*NopStore)(nil)

func NewNopStore() *NopStore { return &NopStore{} }

func (s *NopStore) InsertJob(model.Job) (int64, bool, error)            { return 0, true, nil }
func (s *NopStore) HasJob(string, string, string) (bool, error)         { return false, nil }
func (s *NopStore) UnprocessedJobs() ([]model.Job, error)               { return nil, nil }
func (s *NopStore) MarkProcessed(int64) error                           { return nil }
func (s *NopStore) JobCounts() (model.JobCounts, error)                 { return model.JobCounts{}, nil }
func (s *NopStore) SaveParsedJob(model.ParsedJob) (bool, error)         { return true, nil }
func (s *NopStore) ParsedJobs() ([]model.ParsedJob, error)              { return nil, nil }
func (s *NopStore) JobSkills() (map[int64][]string, error)              { return nil, nil }
func (s *NopStore) ReplaceJobEmbeddings(int64, []model.Embedding) error { return nil }
func (s *NopStore) ReplaceResumeEmbeddings(string, []model.Embedding) error {
	return nil
}
func (s *NopStore) JobEmbeddings() ([]model.Embedding, error)          { return nil, nil }
func (s *NopStore) ResumeEmbeddings(string) ([]model.Embedding, error) { return nil, nil }
func (s *NopStore) ResumeVersions() ([]string, error)                  { return nil, nil }
func (s *NopStore) ReplaceRankings(string, []model.JobScore) error     { return nil }
func (s *NopStore) Rankings(string) ([]model.JobScore, error)          { return nil, nil }
func (s *NopStore) ClearResults() error                                { return nil }
func (s *NopStore) ClearAll() error                                    { return nil }
func (s *NopStore) Close() error                                       { return nil }
