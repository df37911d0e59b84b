// ABOUTME: Parsing of generated lesson text
// ABOUTME: Extracts title/content from model output and dedupes citations
package lesson

import (
	"regexp"
	"strings"
)

// DefaultTitle is used when the model output has no TITLE line
const DefaultTitle = "Educational Lesson"

var (
	titleRe   = regexp.MustCompile(`(?i)TITLE:[ \t]*(.*)`)
	contentRe = regexp.MustCompile(`(?is)CONTENT:\s*(.*)`)
)

// ParseGenerated splits model output formatted as
//
//	TITLE: ...
//	CONTENT: ...
//
// Missing markers fall back to DefaultTitle and the whole text.
func ParseGenerated(text string) (title, content string) {
	title = DefaultTitle
	if m := titleRe.FindStringSubmatch(text); m != nil {
		title = strings.TrimSpace(m[1])
	}

	content = text
	if m := contentRe.FindStringSubmatch(text); m != nil {
		content = strings.TrimSpace(m[1])
	}

	return title, content
}

// DedupeSources keeps the first source per URI, drops sources without a
// URI and fills empty titles with the URI.
func DedupeSources(sources []Source) []Source {
	seen := make(map[string]bool, len(sources))
	out := make([]Source, 0, len(sources))
	for _, s := range sources {
		if s.URI == "" || seen[s.URI] {
			continue
		}
		seen[s.URI] = true
		if s.Title == "" {
			s.Title = s.URI
		}
		out = append(out, s)
	}
	return out
}
