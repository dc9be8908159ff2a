package parse

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/amishk599/jobfit/internal/classify"
	"github.com/amishk599/jobfit/internal/model"
)

// contextLimit caps how much surrounding text is handed to the
// qualification classifier alongside each bullet.
const contextLimit = 200

// Result holds the structured sections parsed out of one cleaned
// description. Summary carries every character the located spans do not;
// together they cover the input exactly once.
type Result struct {
	Required         []model.Qualification
	Bonus            []model.Qualification
	Responsibilities []model.Responsibility
	Summary          string
}

// Parse turns a cleaned description into its structured sections. The
// qualification and responsibility spans are located, bulletized, and
// classified; everything outside them is joined left to right, with blank
// lines between the pieces, into Summary. With no located sections the
// whole text becomes Summary.
func Parse(text string, h Headers, kw classify.Keywords) Result {
	var res Result
	spans := DetectSections(text, h)

	if sp, ok := spans[model.SectionQualifications]; ok {
		for _, it := range extractBulletItems(text[sp.Start:sp.End]) {
			q, class := classify.Qualification(it.text, clip(it.context, contextLimit), kw)
			if class == classify.Bonus {
				res.Bonus = append(res.Bonus, q)
			} else {
				res.Required = append(res.Required, q)
			}
		}
	}
	if sp, ok := spans[model.SectionResponsibilities]; ok {
		for _, b := range ExtractBullets(text[sp.Start:sp.End]) {
			res.Responsibilities = append(res.Responsibilities, classify.Responsibility(b, kw))
		}
	}

	res.Summary = summaryText(text, spans)
	return res
}

// summaryText concatenates every region of text not covered by a span,
// walking the spans in position order so no region is counted twice.
func summaryText(text string, spans map[string]Span) string {
	ordered := make([]Span, 0, len(spans))
	for _, sp := range spans {
		ordered = append(ordered, sp)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Start < ordered[j].Start })

	var parts []string
	last := 0
	for _, sp := range ordered {
		if sp.Start > last {
			parts = append(parts, text[last:sp.Start])
		}
		if sp.End > last {
			last = sp.End
		}
	}
	if last < len(text) {
		parts = append(parts, text[last:])
	}
	return strings.TrimSpace(strings.Join(parts, "\n\n"))
}

// clip truncates s to at most n bytes without splitting a rune.
func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
