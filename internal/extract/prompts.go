package extract

import (
	_ "embed"
	"text/template"
)

//go:embed prompts/ner.md
var nerPromptRaw string

// NERTemplate is the parsed entity-extraction prompt. Parsed once at package
// init; reused on every Extract call.
var NERTemplate = template.Must(template.New("ner").Parse(nerPromptRaw))
