package classify

import (
	"strings"

	"github.com/amishk599/jobfit/internal/model"
)

// Responsibility tags one duty bullet with ownership level, frequency and
// activity domain. Each table is walked in order and the first group with a
// keyword hit wins, so "manage" outranks "develop" when a bullet carries both.
func Responsibility(text string, kw Keywords) model.Responsibility {
	lowered := strings.ToLower(text)
	return model.Responsibility{
		Activity:       strings.TrimSpace(text),
		OwnershipLevel: firstGroup(lowered, kw.Ownership, model.OwnershipLead),
		Frequency:      firstGroup(lowered, kw.Frequency, model.FrequencyRegularly),
		ActivityType:   firstGroup(lowered, kw.Activity, "General"),
	}
}

// firstGroup returns the label of the first group containing a match, or
// fallback when none do.
func firstGroup(lowered string, groups []Group, fallback string) string {
	for _, g := range groups {
		if containsAny(lowered, g.Keywords) {
			return g.Label
		}
	}
	return fallback
}
