package parse

import (
	"strings"

	"github.com/amishk599/jobfit/internal/model"
)

// Headers are the keyword sets a line is tested against to open a section.
// All entries are lowercase; matching is case-insensitive substring
// containment on the trimmed line.
type Headers struct {
	Qualifications   []string
	Responsibilities []string
}

// DefaultHeaders returns the stock section header keywords.
func DefaultHeaders() Headers {
	return Headers{
		Qualifications: []string{
			"requirements", "qualifications", "required qualifications",
			"must have", "required skills", "minimum qualifications",
			"what you need", "what we need", "you have",
		},
		Responsibilities: []string{
			"responsibilities", "you will", "duties", "day-to-day",
			"what you'll do", "the role", "your role", "daily tasks",
		},
	}
}

// Span is a half-open byte range [Start, End) into the scanned text.
type Span struct {
	Start int
	End   int
}

// DetectSections scans text line by line and locates the qualification and
// responsibility sections. A line opens a section when its lowercased,
// trimmed form is at least three characters long and contains one of that
// section's header keywords; only the first matching line per section kind
// counts. Each span runs from its header line to the start of the next
// located section, or to the end of text. A line is tested against the
// qualification keywords first, so it can open at most one section kind.
// The returned map is empty when no header matches.
func DetectSections(text string, h Headers) map[string]Span {
	lines := strings.Split(text, "\n")

	type hit struct {
		kind string
		line int
	}
	var found []hit
	seen := make(map[string]bool, 2)
	record := func(kind, lower string, keywords []string, line int) bool {
		for _, kw := range keywords {
			if kw != "" && strings.Contains(lower, kw) {
				if !seen[kind] {
					seen[kind] = true
					found = append(found, hit{kind: kind, line: line})
				}
				return true
			}
		}
		return false
	}

	for idx, line := range lines {
		lower := strings.ToLower(strings.TrimSpace(line))
		if len(lower) < 3 {
			continue
		}
		if record(model.SectionQualifications, lower, h.Qualifications, idx) {
			continue
		}
		record(model.SectionResponsibilities, lower, h.Responsibilities, idx)
	}
	if len(found) == 0 {
		return map[string]Span{}
	}

	// Byte offset of each line start.
	offsets := make([]int, len(lines))
	pos := 0
	for i, line := range lines {
		offsets[i] = pos
		pos += len(line) + 1
	}

	spans := make(map[string]Span, len(found))
	for i, f := range found {
		end := len(text)
		if i+1 < len(found) {
			end = offsets[found[i+1].line]
		}
		spans[f.kind] = Span{Start: offsets[f.line], End: end}
	}
	return spans
}
