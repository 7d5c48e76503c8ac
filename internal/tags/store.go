// Package tags maintains the known tag list and matches tags against
// article text.
package tags

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"unicode"
)

const filePerm = 0o644

// LoadTags reads one tag per line, skipping blanks and # comments.
func LoadTags(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tags file: %w", err)
	}

	var tags []string

	seen := make(map[string]struct{})

	for _, line := range strings.Split(string(data), "\n") {
		tag := strings.TrimSpace(line)
		if tag == "" || strings.HasPrefix(tag, "#") {
			continue
		}

		if _, dup := seen[tag]; dup {
			continue
		}

		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}

	return tags, nil
}

// SaveTags writes tags one per line, sorted.
func SaveTags(path string, tags []string) error {
	sorted := make([]string, len(tags))
	copy(sorted, tags)
	sort.Strings(sorted)

	content := strings.Join(sorted, "\n")
	if content != "" {
		content += "\n"
	}

	if err := os.WriteFile(path, []byte(content), filePerm); err != nil {
		return fmt.Errorf("failed to write tags file: %w", err)
	}

	return nil
}

// Merge returns base extended with the extras it lacks, preserving base
// order and appending new tags sorted.
func Merge(base, extras []string) []string {
	seen := make(map[string]struct{}, len(base))
	for _, t := range base {
		seen[t] = struct{}{}
	}

	var added []string

	for _, t := range extras {
		if _, ok := seen[t]; ok {
			continue
		}

		seen[t] = struct{}{}
		added = append(added, t)
	}

	sort.Strings(added)

	return append(append([]string{}, base...), added...)
}

// DetectTrailing reports tags carrying trailing punctuation, which usually
// means a copy-paste artifact in the source database.
func DetectTrailing(tags []string) []string {
	var suspicious []string

	for _, tag := range tags {
		if tag != stripTrailing(tag) {
			suspicious = append(suspicious, tag)
		}
	}

	return suspicious
}

// stripTrailing removes trailing characters that are neither letters nor
// digits.
func stripTrailing(tag string) string {
	return strings.TrimRightFunc(tag, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
