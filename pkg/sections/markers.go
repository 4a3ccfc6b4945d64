package sections

import (
	"regexp"
	"strings"
)

// DefaultIndent precedes the end marker after a replacement. It matches the
// indentation of the markers in the site markup.
const DefaultIndent = "                "

// BeginMarker returns the opening comment for id.
func BeginMarker(id string) string {
	return "<!-- BEGIN: " + id + " -->"
}

// EndMarker returns the closing comment for id.
func EndMarker(id string) string {
	return "<!-- END: " + id + " -->"
}

func sectionPattern(id string) *regexp.Regexp {
	return regexp.MustCompile(`(?s)` + regexp.QuoteMeta(BeginMarker(id)) + `.*?` + regexp.QuoteMeta(EndMarker(id)))
}

// Splice replaces the first region for id in html with content. The second
// return value is false when no begin/end pair exists, in which case html is
// returned unchanged. Content is inserted literally.
func Splice(html, id, content, indent string) (string, bool) {
	loc := sectionPattern(id).FindStringIndex(html)
	if loc == nil {
		return html, false
	}

	var b strings.Builder
	b.Grow(len(html) - (loc[1] - loc[0]) + len(content) + len(indent) + 64)
	b.WriteString(html[:loc[0]])
	b.WriteString(BeginMarker(id))
	b.WriteByte('\n')
	b.WriteString(content)
	b.WriteByte('\n')
	b.WriteString(indent)
	b.WriteString(EndMarker(id))
	b.WriteString(html[loc[1]:])
	return b.String(), true
}
