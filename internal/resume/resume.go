// Package resume loads the candidate resume document that job postings are
// scored against.
package resume

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/amishk599/jobfit/internal/model"
)

// Item is one entry in a resume section. Items carry either standalone
// Content or a Subsection header with bullets.
type Item struct {
	Content    string   `json:"Content,omitempty"`
	Subsection string   `json:"Subsection,omitempty"`
	Bullet     []string `json:"Bullet,omitempty"`
}

// Section is a named group of items, in document order.
type Section struct {
	Name  string
	Items []Item
}

// Document is a parsed resume. Section order matches the source file, which
// keeps flattening stable across runs.
type Document struct {
	Sections []Section
}

// Load reads and parses the resume file at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read resume file: %w", err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse resume %s: %w", path, err)
	}
	return doc, nil
}

// Parse decodes a resume document. The top level must be a JSON object
// mapping section names to item arrays; sections holding anything other
// than an item array are skipped. Sections are walked at token level
// because plain map decoding would lose their order.
func Parse(data []byte) (*Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("decode resume: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("resume document must be a JSON object")
	}

	doc := &Document{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("decode resume: %w", err)
		}
		name, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("resume document: unexpected key token %v", keyTok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("decode section %q: %w", name, err)
		}

		var items []Item
		if err := json.Unmarshal(raw, &items); err != nil {
			continue
		}
		doc.Sections = append(doc.Sections, Section{Name: name, Items: items})
	}

	return doc, nil
}

// Flatten expands the document into embedding units: one full_resume record
// covering everything, then per-item records in document order. Items with
// only Content become a single content record; items with a Subsection
// become one subsection record (header and bullets joined) plus one bullet
// record per bullet.
func (d *Document) Flatten() []model.ResumeItem {
	items := []model.ResumeItem{{
		Section:     model.SectionOverallResume,
		ContentType: model.ContentFullResume,
		Text:        d.OverallText(),
	}}

	for _, sec := range d.Sections {
		for _, it := range sec.Items {
			if it.Content != "" && it.Subsection == "" {
				items = append(items, model.ResumeItem{
					Section:     sec.Name,
					ContentType: model.ContentParagraph,
					Text:        it.Content,
				})
			}
			if it.Subsection != "" {
				parts := make([]string, 0, 1+len(it.Bullet))
				parts = append(parts, it.Subsection)
				parts = append(parts, it.Bullet...)
				items = append(items, model.ResumeItem{
					Section:     sec.Name,
					Subsection:  it.Subsection,
					ContentType: model.ContentSubsection,
					Text:        strings.Join(parts, " "),
				})
				for _, b := range it.Bullet {
					items = append(items, model.ResumeItem{
						Section:     sec.Name,
						Subsection:  it.Subsection,
						ContentType: model.ContentBullet,
						Text:        b,
					})
				}
			}
		}
	}
	return items
}

// OverallText joins every content, subsection header and bullet in document
// order. This is the text behind the overall_resume embedding.
func (d *Document) OverallText() string {
	var parts []string
	for _, sec := range d.Sections {
		for _, it := range sec.Items {
			if it.Content != "" {
				parts = append(parts, it.Content)
			}
			if it.Subsection != "" {
				parts = append(parts, it.Subsection)
			}
			parts = append(parts, it.Bullet...)
		}
	}
	return strings.Join(parts, " ")
}

// SectionText returns the space-joined text of one named section, empty if
// the section is absent. Used for resume-side skill scanning.
func (d *Document) SectionText(name string) string {
	for _, sec := range d.Sections {
		if sec.Name != name {
			continue
		}
		var parts []string
		for _, it := range sec.Items {
			if it.Content != "" {
				parts = append(parts, it.Content)
			}
			if it.Subsection != "" {
				parts = append(parts, it.Subsection)
			}
			parts = append(parts, it.Bullet...)
		}
		return strings.Join(parts, " ")
	}
	return ""
}
