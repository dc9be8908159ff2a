package classify

import (
	"testing"

	"github.com/amishk599/jobfit/internal/model"
)

func TestResponsibilityDefaults(t *testing.T) {
	kw := Defaults()

	r := Responsibility("Attend quarterly planning sessions", kw)
	if r.OwnershipLevel != model.OwnershipLead {
		t.Errorf("expected ownership %q, got %q", model.OwnershipLead, r.OwnershipLevel)
	}
	if r.Frequency != model.FrequencyRegularly {
		t.Errorf("expected frequency %q, got %q", model.FrequencyRegularly, r.Frequency)
	}
	if r.ActivityType != "General" {
		t.Errorf("expected activity type General, got %q", r.ActivityType)
	}
}

func TestResponsibilityFirstGroupWins(t *testing.T) {
	kw := Defaults()

	// "manage" sits in an earlier group than "develop".
	r := Responsibility("Manage and develop the analytics roadmap", kw)
	if r.OwnershipLevel != model.OwnershipManage {
		t.Errorf("expected ownership %q, got %q", model.OwnershipManage, r.OwnershipLevel)
	}

	// Without the manage cue the second group matches.
	r = Responsibility("Develop and support internal tooling", kw)
	if r.OwnershipLevel != model.OwnershipLead {
		t.Errorf("expected ownership %q, got %q", model.OwnershipLead, r.OwnershipLevel)
	}
}

func TestResponsibilityFrequency(t *testing.T) {
	kw := Defaults()

	cases := []struct {
		text string
		want string
	}{
		{"Handle day-to-day reporting requests", model.FrequencyDaily},
		// "regularly" is listed under the daily group, not the regularly one.
		{"Regularly sync with stakeholders", model.FrequencyDaily},
		{"Produce weekly status updates", model.FrequencyWeekly},
		{"Often pair with the platform team", model.FrequencyRegularly},
		{"Run ad-hoc deep dives as needed", model.FrequencyAdHoc},
	}
	for _, tc := range cases {
		r := Responsibility(tc.text, kw)
		if r.Frequency != tc.want {
			t.Errorf("%q: expected frequency %q, got %q", tc.text, tc.want, r.Frequency)
		}
	}
}

func TestResponsibilityActivityType(t *testing.T) {
	kw := Defaults()

	cases := []struct {
		text string
		want string
	}{
		{"Build ETL pipelines in Airflow", "Data Engineering"},
		{"Maintain Tableau dashboards for finance", "Data Visualization"},
		{"Analyze churn trends and surface insights", "Analytics"},
		{"Train machine learning models for forecasting", "Data Science"},
		{"Tune slow database queries", "Database Management"},
		{"Enforce GDPR compliance on customer data", "Data Governance"},
	}
	for _, tc := range cases {
		r := Responsibility(tc.text, kw)
		if r.ActivityType != tc.want {
			t.Errorf("%q: expected activity type %q, got %q", tc.text, tc.want, r.ActivityType)
		}
	}
}

func TestResponsibilityKeepsActivityText(t *testing.T) {
	kw := Defaults()

	r := Responsibility("  Own the metrics layer  ", kw)
	if r.Activity != "Own the metrics layer" {
		t.Errorf("expected trimmed activity, got %q", r.Activity)
	}
}
