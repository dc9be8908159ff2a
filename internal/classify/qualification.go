package classify

import (
	"strings"

	"github.com/amishk599/jobfit/internal/model"
)

// Qualification classifies one requirement bullet and reports which class it
// belongs to. text is the bullet itself; context is surrounding section text
// (typically the first couple hundred characters of the span the bullet came
// from), consulted with the same cue tables so a bare bullet under a
// "Nice to have" heading still lands in bonus. Bonus cues are checked before
// required cues, and a bullet with no cue at all defaults to required.
func Qualification(text, context string, kw Keywords) (model.Qualification, string) {
	q := model.Qualification{
		Text:      strings.TrimSpace(text),
		SkillType: skillType(text, kw),
	}
	lowered := strings.ToLower(text)
	loweredCtx := strings.ToLower(context)

	switch {
	case containsAny(lowered, kw.BonusCues) || containsAny(loweredCtx, kw.BonusCues):
		return q, Bonus
	case containsAny(lowered, kw.RequiredCues) || containsAny(loweredCtx, kw.RequiredCues):
		return q, Required
	default:
		return q, Required
	}
}

func skillType(text string, kw Keywords) string {
	if containsAny(strings.ToLower(text), kw.SoftSkills) {
		return model.SkillSoft
	}
	return model.SkillHard
}
