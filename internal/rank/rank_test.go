package rank

import (
	"testing"

	"github.com/amishk599/jobfit/internal/model"
)

func TestRank_OrdersAndAssigns(t *testing.T) {
	scores := []model.JobScore{
		{JobID: 1, CompositeScore: 0.2},
		{JobID: 2, CompositeScore: 0.9},
		{JobID: 3, CompositeScore: 0.5},
	}

	ranked := Rank(scores)

	wantOrder := []int64{2, 3, 1}
	for i, id := range wantOrder {
		if ranked[i].JobID != id {
			t.Errorf("position %d = job %d, want job %d", i, ranked[i].JobID, id)
		}
		if ranked[i].Rank != i+1 {
			t.Errorf("job %d rank = %d, want %d", ranked[i].JobID, ranked[i].Rank, i+1)
		}
	}
}

func TestRank_TiesKeepInputOrder(t *testing.T) {
	scores := []model.JobScore{
		{JobID: 10, CompositeScore: 0.9},
		{JobID: 11, CompositeScore: 0.9},
		{JobID: 12, CompositeScore: 0.7},
	}

	ranked := Rank(scores)

	// Equal scores stay in input order and still get sequential ranks.
	if ranked[0].JobID != 10 || ranked[1].JobID != 11 || ranked[2].JobID != 12 {
		t.Errorf("order = [%d %d %d], want [10 11 12]",
			ranked[0].JobID, ranked[1].JobID, ranked[2].JobID)
	}
	for i := range ranked {
		if ranked[i].Rank != i+1 {
			t.Errorf("rank[%d] = %d, want %d", i, ranked[i].Rank, i+1)
		}
	}
}

func TestRank_Empty(t *testing.T) {
	if got := Rank(nil); len(got) != 0 {
		t.Errorf("Rank(nil) = %v, want empty", got)
	}
}
