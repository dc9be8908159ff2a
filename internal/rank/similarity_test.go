package rank

import (
	"errors"
	"math"
	"testing"

	"github.com/amishk599/jobfit/internal/model"
)

func TestCosine_IdenticalVectors(t *testing.T) {
	sim, err := Cosine([]float64{0.5, 0.3, 0.2}, []float64{0.5, 0.3, 0.2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(sim-1.0) > 1e-9 {
		t.Errorf("similarity of identical vectors = %v, want 1.0", sim)
	}
}

func TestCosine_OrthogonalVectors(t *testing.T) {
	sim, err := Cosine([]float64{1, 0}, []float64{0, 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sim != 0 {
		t.Errorf("similarity of orthogonal vectors = %v, want 0", sim)
	}
}

func TestCosine_NegativeClampedToZero(t *testing.T) {
	sim, err := Cosine([]float64{1, 0}, []float64{-1, 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sim != 0 {
		t.Errorf("opposite vectors = %v, want clamp to 0", sim)
	}
}

func TestCosine_Resultrange(t *testing.T) {
	vectors := [][]float64{
		{1, 2, 3}, {3, 2, 1}, {-1, 4, 0.5}, {0.001, 1000, 2},
	}
	for _, a := range vectors {
		for _, b := range vectors {
			sim, err := Cosine(a, b)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if sim < 0 || sim > 1 {
				t.Errorf("Cosine(%v, %v) = %v, outside [0, 1]", a, b, sim)
			}
		}
	}
}

func TestCosine_DimensionMismatch(t *testing.T) {
	_, err := Cosine([]float64{1, 2, 3}, []float64{1, 2})
	var dimErr *model.DimensionError
	if !errors.As(err, &dimErr) {
		t.Fatalf("expected DimensionError, got %v", err)
	}
	if dimErr.Want != 3 || dimErr.Got != 2 {
		t.Errorf("DimensionError = %d vs %d, want 3 vs 2", dimErr.Want, dimErr.Got)
	}
}

func TestCosine_EmptyVector(t *testing.T) {
	if _, err := Cosine(nil, []float64{1}); err == nil {
		t.Error("expected error for empty first vector")
	}
	if _, err := Cosine([]float64{1}, nil); err == nil {
		t.Error("expected error for empty second vector")
	}
}

func TestCosine_ZeroNorm(t *testing.T) {
	sim, err := Cosine([]float64{0, 0}, []float64{1, 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sim != 0 {
		t.Errorf("zero-norm similarity = %v, want 0", sim)
	}
}

func resumeEmb(section, contentType, text string, vec []float64) model.Embedding {
	return model.Embedding{
		OwnerType:     model.OwnerResume,
		OwnerID:       section,
		Section:       section,
		ContentType:   contentType,
		Text:          text,
		Vector:        vec,
		ResumeVersion: "v1",
	}
}

func TestBestMatches_OrderAndCut(t *testing.T) {
	jobVec := []float64{1, 0}
	embs := []model.Embedding{
		resumeEmb(model.SectionOverallResume, model.ContentFullResume, "overall", []float64{1, 0.5}),
		resumeEmb("Experience", model.ContentBullet, "far", []float64{0, 1}),
		resumeEmb("Experience", model.ContentBullet, "exact", []float64{2, 0}),
		resumeEmb("Projects", model.ContentSubsection, "close", []float64{1, 0.2}),
	}

	matches, err := BestMatches(jobVec, embs, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 3 {
		t.Fatalf("got %d matches, want 3", len(matches))
	}
	if matches[0].Text != "exact" {
		t.Errorf("best match = %q, want exact", matches[0].Text)
	}
	if matches[1].Text != "close" {
		t.Errorf("second match = %q, want close", matches[1].Text)
	}
	// The overall_resume record competes like any other.
	if matches[2].Text != "overall" {
		t.Errorf("third match = %q, want overall", matches[2].Text)
	}
}

func TestBestMatches_StableTies(t *testing.T) {
	jobVec := []float64{1, 0}
	embs := []model.Embedding{
		resumeEmb("A", model.ContentBullet, "first", []float64{1, 0}),
		resumeEmb("B", model.ContentBullet, "second", []float64{1, 0}),
		resumeEmb("C", model.ContentBullet, "third", []float64{1, 0}),
	}

	matches, err := BestMatches(jobVec, embs, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"first", "second", "third"}
	for i, w := range want {
		if matches[i].Text != w {
			t.Errorf("matches[%d] = %q, want %q (ties keep input order)", i, matches[i].Text, w)
		}
	}
}

func TestBestMatches_PropagatesDimensionError(t *testing.T) {
	embs := []model.Embedding{
		resumeEmb("A", model.ContentBullet, "bad", []float64{1, 0, 0}),
	}
	_, err := BestMatches([]float64{1, 0}, embs, 5)
	var dimErr *model.DimensionError
	if !errors.As(err, &dimErr) {
		t.Fatalf("expected DimensionError, got %v", err)
	}
}
