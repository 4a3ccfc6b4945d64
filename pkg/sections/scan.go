package sections

import (
	"fmt"
	"io"
	"regexp"
)

var beginPattern = regexp.MustCompile(`<!-- BEGIN: (.+?) -->`)

// Scan lists, in document order, the section ids of r that Splice would
// update: a BEGIN comment followed by the matching END comment. Markers are
// matched on the raw text, so comments inside <script>, <noscript>, <title>
// and other raw-text elements count. Ids are reported once.
func Scan(r io.Reader) ([]string, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("sections: scan: %w", err)
	}
	page := string(raw)

	seen := map[string]bool{}
	var ids []string
	for _, m := range beginPattern.FindAllStringSubmatch(page, -1) {
		id := m[1]
		if seen[id] {
			continue
		}
		seen[id] = true
		if Locate(page, id) {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// Locate reports whether html holds a region for id that Splice would
// replace.
func Locate(html, id string) bool {
	return sectionPattern(id).MatchString(html)
}
