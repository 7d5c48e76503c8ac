package tags

import (
	"regexp"
	"strings"
)

// Matcher finds known tags inside article text using whole-word matching.
type Matcher struct {
	patterns map[string]*regexp.Regexp
	ordered  []string
}

// wordBoundary is a non-word rune. regexp's \b only understands ASCII, so
// boundaries around Cyrillic tags have to be spelled out with Unicode
// classes.
const wordBoundary = `[^\p{L}\p{N}_]`

// NewMatcher compiles word-boundary patterns for the tags. Unless
// keepTrailing is set, tags are matched with trailing punctuation stripped,
// so "OpenAI," in the tag list still matches "OpenAI" in text. The match is
// case-insensitive unless caseSensitive is set.
func NewMatcher(tags []string, caseSensitive, keepTrailing bool) *Matcher {
	m := &Matcher{patterns: make(map[string]*regexp.Regexp, len(tags))}

	for _, tag := range tags {
		needle := tag
		if !keepTrailing {
			needle = stripTrailing(tag)
		}

		if needle == "" {
			continue
		}

		expr := `(?:^|` + wordBoundary + `)` + regexp.QuoteMeta(needle) + `(?:$|` + wordBoundary + `)`
		if !caseSensitive {
			expr = `(?i)` + expr
		}

		pattern, err := regexp.Compile(expr)
		if err != nil {
			continue
		}

		if _, dup := m.patterns[tag]; dup {
			continue
		}

		m.patterns[tag] = pattern
		m.ordered = append(m.ordered, tag)
	}

	return m
}

// FindMatching returns the tags present in the text, in tag list order.
func (m *Matcher) FindMatching(text string) []string {
	var found []string

	for _, tag := range m.ordered {
		if m.patterns[tag].MatchString(text) {
			found = append(found, tag)
		}
	}

	return found
}

// FirstParagraph returns the first non-empty, non-heading paragraph of a
// markdown body.
func FirstParagraph(body string) string {
	for _, block := range strings.Split(body, "\n\n") {
		block = strings.TrimSpace(block)

		if block == "" || strings.HasPrefix(block, "#") || strings.HasPrefix(block, "![") {
			continue
		}

		return block
	}

	return ""
}
