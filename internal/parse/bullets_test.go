package parse

import (
	"reflect"
	"strings"
	"testing"
)

func TestExtractBulletsMarkers(t *testing.T) {
	text := "• First\n- Second\n* Third\n1. Fourth\n2) Fifth\na. Sixth\nb) Seventh"
	want := []string{"First", "Second", "Third", "Fourth", "Fifth", "Sixth", "Seventh"}

	got := ExtractBullets(text)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestExtractBulletsContinuation(t *testing.T) {
	text := "- Build pipelines\nacross multiple teams\n- Next item"
	want := []string{"Build pipelines across multiple teams", "Next item"}

	got := ExtractBullets(text)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestExtractBulletsHeaderClosesBullet(t *testing.T) {
	text := "- 3+ years SQL\nPreferred:\n- AWS cert"
	want := []string{"3+ years SQL", "AWS cert"}

	got := ExtractBullets(text)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestExtractBulletsLeadInBelongsToNoBullet(t *testing.T) {
	text := "We are hiring because\nthe team is growing\n- Only bullet"
	want := []string{"Only bullet"}

	got := ExtractBullets(text)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestExtractBulletsRoundTrip(t *testing.T) {
	want := []string{"First thing", "Second thing", "Third thing"}
	text := "- " + strings.Join(want, "\n- ")

	got := ExtractBullets(text)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestExtractBulletsNoneFound(t *testing.T) {
	got := ExtractBullets("Plain paragraph text\nwith no markers at all")
	if len(got) != 0 {
		t.Errorf("expected no bullets, got %v", got)
	}
}

func TestExtractBulletItemsContext(t *testing.T) {
	text := "Qualifications:\n- SQL experience\nNice to have:\n- Terraform"
	items := extractBulletItems(text)

	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].text != "SQL experience" || items[0].context != "Qualifications:" {
		t.Errorf("unexpected first item %+v", items[0])
	}
	if items[1].text != "Terraform" || items[1].context != "Nice to have:" {
		t.Errorf("unexpected second item %+v", items[1])
	}
}
