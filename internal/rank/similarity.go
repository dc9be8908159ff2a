// Package rank scores parsed jobs against a resume version and orders them.
package rank

import (
	"fmt"
	"math"
	"sort"

	"github.com/amishk599/jobfit/internal/model"
)

// Cosine returns the cosine similarity of a and b, clamped to [0, 1].
// Vectors of different lengths are a hard error; they are never truncated
// or padded. A zero-norm vector scores 0.
func Cosine(a, b []float64) (float64, error) {
	if len(a) == 0 || len(b) == 0 {
		return 0, fmt.Errorf("cosine similarity of empty vector")
	}
	if len(a) != len(b) {
		return 0, &model.DimensionError{Want: len(a), Got: len(b)}
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0, nil
	}

	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))

	// Floating-point overshoot above 1 is capped; negative similarity is
	// floored, there is no anti-match notion in scoring.
	return math.Max(0, math.Min(1, sim)), nil
}

// BestMatches scores jobVec against every resume embedding record, the
// overall_resume record included, and returns the topN best. Ties keep the
// original record order.
func BestMatches(jobVec []float64, resumeEmbeddings []model.Embedding, topN int) ([]model.ResumeMatch, error) {
	matches := make([]model.ResumeMatch, 0, len(resumeEmbeddings))
	for _, emb := range resumeEmbeddings {
		sim, err := Cosine(jobVec, emb.Vector)
		if err != nil {
			return nil, fmt.Errorf("matching against %s/%s: %w", emb.Section, emb.ContentType, err)
		}
		matches = append(matches, model.ResumeMatch{
			Section:     emb.Section,
			Subsection:  emb.Subsection,
			ContentType: emb.ContentType,
			Text:        emb.Text,
			Similarity:  sim,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})

	if topN > 0 && len(matches) > topN {
		matches = matches[:topN]
	}
	return matches, nil
}
