package ingest

import "strings"

// TitleFilter keeps postings whose title contains any include keyword and
// none of the exclude keywords. Matching is case-insensitive substring.
// An empty include list is treated as "match all".
type TitleFilter struct {
	include []string
	exclude []string
}

// NewTitleFilter returns a filter over job titles.
func NewTitleFilter(include, exclude []string) *TitleFilter {
	return &TitleFilter{
		include: include,
		exclude: exclude,
	}
}

// Match returns true if the title passes the include list and avoids the
// exclude list. Empty include passes all; exclude always wins.
func (f *TitleFilter) Match(title string) bool {
	titleLower := strings.ToLower(title)

	for _, kw := range f.exclude {
		if strings.Contains(titleLower, strings.ToLower(kw)) {
			return false
		}
	}

	if len(f.include) > 0 {
		matched := false
		for _, kw := range f.include {
			if strings.Contains(titleLower, strings.ToLower(kw)) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	return true
}
