package parse

import (
	"regexp"
	"strings"
)

var bulletMarkers = []*regexp.Regexp{
	regexp.MustCompile(`^\s*[•\-\*]\s+(.+)$`),     // • - *
	regexp.MustCompile(`^\s*\d+[\.\)]\s+(.+)$`),   // 1. 1)
	regexp.MustCompile(`^\s*[a-z][\.\)]\s+(.+)$`), // a. a)
}

// bulletItem is one extracted bullet plus the header or lead-in text that
// most recently preceded it within the span.
type bulletItem struct {
	text    string
	context string
}

// ExtractBullets segments a text span into discrete bullet strings, in
// order. A line opens a bullet when it starts with a symbol, numeric, or
// lettered marker followed by whitespace. A header line, one ending with a
// colon, closes any open bullet. Any other non-empty line following an open
// bullet is a continuation and is space-joined onto it; lines before the
// first bullet belong to no bullet. Returns an empty slice when no markers
// are found.
func ExtractBullets(text string) []string {
	items := extractBulletItems(text)
	bullets := make([]string, len(items))
	for i, it := range items {
		bullets[i] = it.text
	}
	return bullets
}

func extractBulletItems(text string) []bulletItem {
	var (
		items   []bulletItem
		current string
		context string
		open    bool
	)
	flush := func() {
		if open {
			items = append(items, bulletItem{
				text:    strings.TrimSpace(current),
				context: context,
			})
			open = false
		}
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		matched := false
		for _, marker := range bulletMarkers {
			if m := marker.FindStringSubmatch(line); m != nil {
				flush()
				current = m[1]
				open = true
				matched = true
				break
			}
		}
		if matched {
			continue
		}

		switch {
		case strings.HasSuffix(line, ":"):
			// Sub-header such as "Preferred:"; closes the open bullet and
			// becomes the context for the bullets that follow.
			flush()
			context = line
		case open:
			current += " " + line
		default:
			// Lead-in text before the first bullet.
			if context != "" {
				context += " "
			}
			context += line
		}
	}
	flush()
	return items
}
