package rank

import (
	"fmt"
	"strconv"

	"github.com/amishk599/jobfit/internal/model"
)

// Weights are the composite-score signal weights, used only in weighted mode.
type Weights struct {
	OverallSimilarity       float64
	RequiredMatch           float64
	ResponsibilityAlignment float64
	BonusMatch              float64
}

// Options configure a Scorer.
type Options struct {
	// TopN is how many best resume matches to keep per job.
	TopN int
	// UseWeighted switches the composite score from plain overall
	// similarity to the weighted combination.
	UseWeighted bool
	Weights     Weights
}

// Scorer computes JobScores for parsed jobs against one resume version.
type Scorer struct {
	resumeEmbeddings []model.Embedding
	overallResume    []float64
	resumeSkills     []string
	opts             Options
}

// NewScorer prepares scoring against a resume version's embeddings. The
// overall_resume record must be present; without it no similarity is
// meaningful.
func NewScorer(resumeEmbeddings []model.Embedding, resumeSkills []string, opts Options) (*Scorer, error) {
	var overall []float64
	for _, emb := range resumeEmbeddings {
		if emb.Section == model.SectionOverallResume {
			overall = emb.Vector
			break
		}
	}
	if len(overall) == 0 {
		return nil, fmt.Errorf("resume embeddings missing the overall_resume record; run vectorize first")
	}
	if opts.TopN <= 0 {
		opts.TopN = 5
	}

	return &Scorer{
		resumeEmbeddings: resumeEmbeddings,
		overallResume:    overall,
		resumeSkills:     resumeSkills,
		opts:             opts,
	}, nil
}

// ResumeSkillList returns the resume-side skills the scorer matches against.
func (s *Scorer) ResumeSkillList() []string {
	return s.resumeSkills
}

// Score computes the full score for one job. vectors maps job section to
// its embedding. A job with no full_description vector still scores, with
// zero similarity and no best matches.
func (s *Scorer) Score(job model.ParsedJob, vectors map[string][]float64) (model.JobScore, error) {
	score := model.JobScore{
		JobID:      job.JobID,
		Company:    job.Company,
		Title:      job.Title,
		Location:   job.Location,
		URL:        job.URL,
		DatePosted: job.DatePosted,
	}

	fullVec, hasFull := vectors[model.SectionFullDescription]
	if hasFull {
		overall, err := Cosine(fullVec, s.overallResume)
		if err != nil {
			return model.JobScore{}, fmt.Errorf("overall similarity for job %d: %w", job.JobID, err)
		}
		score.OverallSimilarity = overall

		matches, err := BestMatches(fullVec, s.resumeEmbeddings, s.opts.TopN)
		if err != nil {
			return model.JobScore{}, fmt.Errorf("best matches for job %d: %w", job.JobID, err)
		}
		score.BestMatches = matches
	} else {
		score.BestMatches = []model.ResumeMatch{}
	}

	if len(vectors) > 0 {
		score.SectionSimilarities = make(map[string]float64, len(vectors))
		for section, vec := range vectors {
			sim, err := Cosine(vec, s.overallResume)
			if err != nil {
				return model.JobScore{}, fmt.Errorf("section %s similarity for job %d: %w", section, job.JobID, err)
			}
			score.SectionSimilarities[section] = sim
		}
	}

	score.MatchedSkills, score.MissingSkills, score.SkillMatchRatio = MatchSkills(job.Skills, s.resumeSkills)

	score.CompositeScore = s.composite(score)
	return score, nil
}

// composite collapses the scoring signals into one number. The default is
// overall similarity alone; weighted mode blends in skill match and section
// alignment.
func (s *Scorer) composite(score model.JobScore) float64 {
	if !s.opts.UseWeighted {
		return score.OverallSimilarity
	}

	w := s.opts.Weights
	return w.OverallSimilarity*score.OverallSimilarity +
		w.RequiredMatch*score.SkillMatchRatio +
		w.ResponsibilityAlignment*score.SectionSimilarities[model.SectionResponsibilities] +
		w.BonusMatch*score.SectionSimilarities[model.SectionQualifications]
}

// GroupJobVectors indexes job embeddings by job id and section.
func GroupJobVectors(embeddings []model.Embedding) map[int64]map[string][]float64 {
	grouped := make(map[int64]map[string][]float64)
	for _, emb := range embeddings {
		if emb.OwnerType != model.OwnerJob {
			continue
		}
		jobID, err := strconv.ParseInt(emb.OwnerID, 10, 64)
		if err != nil {
			continue
		}
		if grouped[jobID] == nil {
			grouped[jobID] = make(map[string][]float64)
		}
		grouped[jobID][emb.Section] = emb.Vector
	}
	return grouped
}
