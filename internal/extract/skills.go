package extract

import (
	"regexp"
	"sort"
	"strings"
)

// Vocab is a technology vocabulary compiled for case-insensitive scanning.
type Vocab struct {
	terms []vocabTerm
}

type vocabTerm struct {
	lower string
	re    *regexp.Regexp
}

// NewVocab compiles a vocabulary from terms. Term order does not matter;
// results are sorted.
func NewVocab(terms []string) Vocab {
	v := Vocab{terms: make([]vocabTerm, 0, len(terms))}
	for _, t := range terms {
		v.terms = append(v.terms, vocabTerm{
			lower: strings.ToLower(t),
			re:    regexp.MustCompile(`(?i)` + regexp.QuoteMeta(t)),
		})
	}
	return v
}

// DefaultVocab returns the stock technology vocabulary.
func DefaultVocab() Vocab {
	return NewVocab([]string{
		"python", "sql", "r", "java", "javascript", "c#", "c++",
		"power bi", "tableau", "excel", "looker", "qlik",
		"azure", "aws", "gcp", "cloud",
		"spark", "hadoop", "kafka", "airflow",
		"pandas", "numpy", "scikit-learn", "tensorflow", "pytorch",
		"git", "docker", "kubernetes",
		"etl", "elt", "api", "rest",
		"machine learning", "deep learning", "nlp", "ai",
		"statistics", "mathematics", "modeling",
	})
}

// Skills returns every vocabulary term found in text, cased as it first
// appears there, sorted and deduplicated. Matching is substring containment,
// so short terms hit aggressively.
func (v Vocab) Skills(text string) []string {
	lowered := strings.ToLower(text)
	seen := make(map[string]struct{})
	var skills []string
	for _, t := range v.terms {
		if !strings.Contains(lowered, t.lower) {
			continue
		}
		m := t.re.FindString(text)
		if m == "" {
			continue
		}
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		skills = append(skills, m)
	}
	sort.Strings(skills)
	return skills
}

// Domain is one labelled keyword group in the ordered domain-tag table.
type Domain struct {
	Label    string
	Keywords []string
}

// DefaultDomains returns the stock domain-tag table.
func DefaultDomains() []Domain {
	return []Domain{
		{Label: "Data Engineering", Keywords: []string{"pipeline", "etl", "elt", "ingest", "data warehouse", "data lake", "spark", "airflow"}},
		{Label: "Data Visualization", Keywords: []string{"dashboard", "visualization", "power bi", "tableau", "report", "visual", "bi"}},
		{Label: "Analytics", Keywords: []string{"analysis", "analyze", "metric", "kpi", "insight", "trend", "statistical"}},
		{Label: "Data Science", Keywords: []string{"machine learning", "model", "algorithm", "prediction", "ml", "ai", "deep learning"}},
		{Label: "Database Management", Keywords: []string{"database", "sql", "query", "optimization", "schema", "index", "rdbms"}},
		{Label: "Data Governance", Keywords: []string{"quality", "governance", "compliance", "security", "privacy", "gdpr"}},
		{Label: "Cloud Computing", Keywords: []string{"azure", "aws", "gcp", "cloud", "saas", "paas", "iaas"}},
		{Label: "Business Intelligence", Keywords: []string{"bi", "business intelligence", "reporting", "power bi", "tableau", "looker"}},
	}
}

// DomainTags returns the labels of every domain with at least one keyword
// hit in text, sorted and deduplicated.
func DomainTags(text string, domains []Domain) []string {
	lowered := strings.ToLower(text)
	seen := make(map[string]struct{}, len(domains))
	var tags []string
	for _, d := range domains {
		for _, kw := range d.Keywords {
			if kw != "" && strings.Contains(lowered, kw) {
				if _, ok := seen[d.Label]; !ok {
					seen[d.Label] = struct{}{}
					tags = append(tags, d.Label)
				}
				break
			}
		}
	}
	sort.Strings(tags)
	return tags
}

// techEntityMarkers flag entity surface forms that are really technologies.
var techEntityMarkers = []string{"sql", "python", "azure", "aws", "bi"}

// MergeTechEntities folds technology-looking entity names (for example
// "Microsoft Azure" tagged as an ORG) into the skill list. Returns a sorted,
// deduplicated copy; the inputs are not modified.
func MergeTechEntities(skills []string, entities map[string][]string) []string {
	seen := make(map[string]struct{}, len(skills))
	merged := make([]string, 0, len(skills))
	for _, s := range skills {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		merged = append(merged, s)
	}
	for _, label := range []string{"ORG", "PRODUCT", "GPE"} {
		for _, ent := range entities[label] {
			lowered := strings.ToLower(ent)
			for _, marker := range techEntityMarkers {
				if strings.Contains(lowered, marker) {
					if _, ok := seen[ent]; !ok {
						seen[ent] = struct{}{}
						merged = append(merged, ent)
					}
					break
				}
			}
		}
	}
	sort.Strings(merged)
	return merged
}
