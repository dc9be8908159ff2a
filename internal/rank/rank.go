package rank

import (
	"sort"

	"github.com/amishk599/jobfit/internal/model"
)

// Rank orders scores by composite score descending and assigns dense
// 1-based ranks. The sort is stable, so equal scores keep their input
// order. The slice is sorted in place and returned.
func Rank(scores []model.JobScore) []model.JobScore {
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].CompositeScore > scores[j].CompositeScore
	})
	for i := range scores {
		scores[i].Rank = i + 1
	}
	return scores
}
