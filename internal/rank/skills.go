package rank

import "strings"

// resumeVocabulary is the fixed skill set scanned for on the resume side.
// Deliberately narrower than the job-side extraction vocabulary: these are
// the skills a match or gap is reported on.
var resumeVocabulary = []string{
	"python", "sql", "r", "java", "javascript", "c#",
	"power bi", "tableau", "excel", "looker",
	"azure", "aws", "gcp",
	"spark", "hadoop", "airflow",
	"pandas", "numpy", "scikit-learn",
	"git", "docker", "kubernetes",
	"machine learning", "deep learning", "nlp",
	"etl", "api", "rest",
}

// ResumeSkills returns the vocabulary entries present as substrings in the
// resume's technical-skills text. Empty input yields no skills.
func ResumeSkills(technicalSkillsText string) []string {
	if technicalSkillsText == "" {
		return nil
	}
	text := strings.ToLower(technicalSkillsText)

	var found []string
	for _, skill := range resumeVocabulary {
		if strings.Contains(text, skill) {
			found = append(found, skill)
		}
	}
	return found
}

// MatchSkills splits jobSkills into matched and missing against the resume
// set. Membership is case-insensitive exact; output preserves job-skill
// order and casing. Ratio is |matched| / |jobSkills|, 0 when there are no
// job skills to match.
func MatchSkills(jobSkills, resumeSkills []string) (matched, missing []string, ratio float64) {
	resumeSet := make(map[string]bool, len(resumeSkills))
	for _, skill := range resumeSkills {
		resumeSet[strings.ToLower(skill)] = true
	}

	matched = []string{}
	missing = []string{}
	for _, skill := range jobSkills {
		if resumeSet[strings.ToLower(skill)] {
			matched = append(matched, skill)
		} else {
			missing = append(missing, skill)
		}
	}

	if len(jobSkills) == 0 {
		return matched, missing, 0
	}
	return matched, missing, float64(len(matched)) / float64(len(jobSkills))
}
