package scraper

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

var urlPattern = regexp.MustCompile(`https?://[^\s<>"{}|\\^` + "`" + `\[\]]+`)

// ReadURLList loads article URLs from a text file. Lines may carry arbitrary
// prose around the URL; everything matching an http(s) URL is picked up.
// Lines starting with # are skipped. Order is preserved, duplicates dropped.
func ReadURLList(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read URL file: %w", err)
	}

	return ExtractURLs(string(data)), nil
}

// ExtractURLs pulls unique http(s) URLs out of free-form text.
func ExtractURLs(text string) []string {
	var urls []string

	seen := make(map[string]struct{})

	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}

		for _, u := range urlPattern.FindAllString(line, -1) {
			u = strings.TrimRight(u, ".,;:!?)'\"")

			if _, ok := seen[u]; ok {
				continue
			}

			seen[u] = struct{}{}
			urls = append(urls, u)
		}
	}

	return urls
}
