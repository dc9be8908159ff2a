package parse

import (
	"strings"
	"testing"
)

func TestStripHTMLRemovesMarkup(t *testing.T) {
	in := `<html><body><h1>Data Analyst</h1><script>track()</script>` +
		`<p>Build &amp; ship dashboards</p><style>p{color:red}</style></body></html>`

	got := StripHTML(in)
	if !strings.Contains(got, "Data Analyst") {
		t.Errorf("expected heading text to survive, got %q", got)
	}
	if !strings.Contains(got, "Build & ship dashboards") {
		t.Errorf("expected entity-decoded text, got %q", got)
	}
	if strings.Contains(got, "track()") {
		t.Errorf("script content should be discarded, got %q", got)
	}
	if strings.Contains(got, "color:red") {
		t.Errorf("style content should be discarded, got %q", got)
	}
	if strings.Contains(got, "<") {
		t.Errorf("expected no leftover markup, got %q", got)
	}
}

func TestStripHTMLPlainTextPassesThrough(t *testing.T) {
	in := "line one\nline two"
	if got := StripHTML(in); got != in {
		t.Errorf("expected %q, got %q", in, got)
	}
}

func TestStripHTMLEmpty(t *testing.T) {
	if got := StripHTML(""); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestNormalizeWhitespace(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"newline runs collapse to two", "a\n\n\n\n\nb", "a\n\nb"},
		{"space runs collapse to one", "a  b     c", "a b c"},
		{"lines are trimmed", "  padded  \n\tindented\t", "padded\nindented"},
		{"outer blank lines removed", "\n\nmiddle\n\n", "middle"},
		{"empty input", "", ""},
	}
	for _, tc := range cases {
		if got := NormalizeWhitespace(tc.in); got != tc.want {
			t.Errorf("%s: expected %q, got %q", tc.name, tc.want, got)
		}
	}
}

func TestClean(t *testing.T) {
	in := "<div><p>Senior  Analyst</p></div>\n\n\n\nRemote   friendly"
	want := "Senior Analyst\n\nRemote friendly"
	if got := Clean(in); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
