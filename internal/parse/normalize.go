package parse

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var (
	newlineRuns = regexp.MustCompile(`\n{3,}`)
	spaceRuns   = regexp.MustCompile(` {2,}`)
)

// StripHTML removes markup from text and returns the concatenated text
// content, with script and style subtrees discarded and entities decoded.
// Plain text passes through unchanged.
func StripHTML(text string) string {
	if text == "" {
		return ""
	}
	doc, err := html.Parse(strings.NewReader(text))
	if err != nil {
		return text
	}
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return b.String()
}

// NormalizeWhitespace collapses runs of three or more newlines to exactly
// two, runs of two or more spaces to one, trims each line, and strips
// leading and trailing whitespace from the whole text.
func NormalizeWhitespace(text string) string {
	if text == "" {
		return ""
	}
	text = newlineRuns.ReplaceAllString(text, "\n\n")
	text = spaceRuns.ReplaceAllString(text, " ")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// Clean runs the full cleanup pipeline: markup removal, then whitespace
// normalization. Empty input yields an empty string.
func Clean(text string) string {
	return NormalizeWhitespace(StripHTML(text))
}
