package classify

import (
	"strings"

	"github.com/amishk599/jobfit/internal/model"
)

// Classification values for qualifications.
const (
	Required = "required"
	Bonus    = "bonus"
)

// Group is one labelled keyword set inside an ordered first-match-wins list.
type Group struct {
	Label    string
	Keywords []string
}

// Keywords holds every table the classifiers consult. Callers treat a
// Keywords value as immutable; tests copy Defaults() and override fields.
type Keywords struct {
	BonusCues    []string
	RequiredCues []string
	SoftSkills   []string
	Ownership    []Group // checked in order, first match wins
	Frequency    []Group
	Activity     []Group
}

// Defaults returns the stock keyword tables.
func Defaults() Keywords {
	return Keywords{
		BonusCues: []string{
			"preferred", "nice to have", "bonus", "plus", "asset", "ideal",
		},
		RequiredCues: []string{
			"required", "must have", "must", "essential", "mandatory",
		},
		SoftSkills: []string{
			"communication", "leadership", "teamwork", "collaboration",
			"problem solving", "critical thinking", "analytical",
			"detail-oriented", "organized", "self-motivated",
			"interpersonal", "presentation", "written", "verbal",
		},
		Ownership: []Group{
			{Label: model.OwnershipManage, Keywords: []string{"manage", "lead", "drive", "own", "direct", "oversee"}},
			{Label: model.OwnershipLead, Keywords: []string{"develop", "build", "create", "design", "implement", "establish"}},
			{Label: model.OwnershipSupport, Keywords: []string{"support", "assist", "help", "contribute", "collaborate"}},
			{Label: model.OwnershipAssist, Keywords: []string{"maintain", "monitor", "review", "participate"}},
		},
		Frequency: []Group{
			{Label: model.FrequencyDaily, Keywords: []string{"daily", "day-to-day", "regularly", "routine", "ongoing"}},
			{Label: model.FrequencyWeekly, Keywords: []string{"weekly", "bi-weekly", "biweekly"}},
			{Label: model.FrequencyRegularly, Keywords: []string{"frequently", "often", "continuous"}},
			{Label: model.FrequencyAdHoc, Keywords: []string{"ad-hoc", "as needed", "occasional", "periodic", "from time to time"}},
		},
		Activity: []Group{
			{Label: "Data Engineering", Keywords: []string{"pipeline", "etl", "elt", "ingest", "data warehouse", "data lake", "spark", "airflow"}},
			{Label: "Data Visualization", Keywords: []string{"dashboard", "visualization", "power bi", "tableau", "report", "visual"}},
			{Label: "Analytics", Keywords: []string{"analysis", "analyze", "metric", "kpi", "insight", "trend", "statistical"}},
			{Label: "Data Science", Keywords: []string{"machine learning", "model", "algorithm", "prediction", "ml", "ai"}},
			{Label: "Database Management", Keywords: []string{"database", "sql", "query", "optimization", "schema", "index"}},
			{Label: "Data Governance", Keywords: []string{"quality", "governance", "compliance", "security", "privacy", "gdpr"}},
		},
	}
}

// containsAny reports whether lowered contains any of the keywords as a
// substring. Keywords are assumed lowercase.
func containsAny(lowered string, keywords []string) bool {
	for _, kw := range keywords {
		if kw != "" && strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}
