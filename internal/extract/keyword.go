package extract

import (
	"context"
	"sort"
	"strings"
)

// Extractor produces named entities and action verbs from free text.
type Extractor interface {
	Extract(ctx context.Context, text string) (entities map[string][]string, verbs []string, err error)
	Name() string
}

// KeywordExtractor is the default extractor: a curated gazetteer for
// entities and a lexicon scan for action verbs. Deterministic, offline, and
// deliberately narrow; postings mentioning tools outside the gazetteer
// simply yield fewer entities.
type KeywordExtractor struct {
	gazetteer map[string][]string
	verbs     []string
}

var _ Extractor = (*KeywordExtractor)(nil)

// NewKeywordExtractor returns an extractor loaded with the stock gazetteer
// and action-verb lexicon.
func NewKeywordExtractor() *KeywordExtractor {
	return &KeywordExtractor{
		gazetteer: map[string][]string{
			"ORG": {
				"Microsoft", "Google", "Amazon", "Oracle", "Salesforce",
				"Databricks", "Snowflake", "SAP", "IBM", "Deloitte",
				"Accenture", "Meta", "Netflix", "LinkedIn",
			},
			"PRODUCT": {
				"Power BI", "Tableau", "Excel", "Looker", "Qlik",
				"Azure", "AWS", "BigQuery", "Redshift", "Spark",
				"Airflow", "Kafka", "dbt", "SQL Server", "PostgreSQL",
				"MySQL", "Jira", "GitHub",
			},
			"GPE": {
				"United States", "Canada", "United Kingdom", "Germany",
				"India", "Australia", "New York", "San Francisco",
				"Seattle", "Chicago", "Boston", "Austin", "Toronto",
				"London", "Bangalore",
			},
		},
		verbs: []string{
			"analyze", "automate", "build", "collaborate", "communicate",
			"create", "define", "deliver", "design", "develop", "document",
			"drive", "establish", "implement", "improve", "lead", "maintain",
			"manage", "monitor", "optimize", "own", "partner", "present",
			"report", "review", "support", "translate", "troubleshoot",
		},
	}
}

// Extract scans text for gazetteer entities and lexicon verbs. Matching is
// case-insensitive substring containment; results are sorted per label, and
// labels without hits are omitted from the map.
func (e *KeywordExtractor) Extract(_ context.Context, text string) (map[string][]string, []string, error) {
	lowered := strings.ToLower(text)

	entities := make(map[string][]string)
	for label, names := range e.gazetteer {
		var found []string
		for _, name := range names {
			if strings.Contains(lowered, strings.ToLower(name)) {
				found = append(found, name)
			}
		}
		if len(found) > 0 {
			sort.Strings(found)
			entities[label] = found
		}
	}

	var verbs []string
	for _, v := range e.verbs {
		if strings.Contains(lowered, v) {
			verbs = append(verbs, v)
		}
	}
	sort.Strings(verbs)
	return entities, verbs, nil
}

func (e *KeywordExtractor) Name() string { return "keyword" }
