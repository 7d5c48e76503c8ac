package markdown

import (
	"regexp"
	"strings"
)

const separator = "---"

var (
	imageLinkPattern = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	imageTagPattern  = regexp.MustCompile(`(?i)<img[^>]*>`)
	excessBlankLines = regexp.MustCompile(`\n{3,}`)
)

// Document is a parsed view of a rendered article file.
type Document struct {
	Title     string
	Date      string
	SourceURL string
	Body      string
}

// ParseDocument reads the metadata header and body out of a rendered
// document. Missing fields come back empty.
func ParseDocument(content string) Document {
	var doc Document

	header := content

	if _, body, found := cutSeparator(content); found {
		doc.Body = strings.TrimSpace(body)
		header, _, _ = cutSeparator(content)
	}

	for _, line := range strings.Split(header, "\n") {
		line = strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(line, "# ") && doc.Title == "":
			doc.Title = strings.TrimSpace(strings.TrimPrefix(line, "# "))
		case strings.HasPrefix(line, "**Published:**"):
			doc.Date = strings.TrimSpace(strings.TrimPrefix(line, "**Published:**"))
		case strings.HasPrefix(line, "**Source:**"):
			doc.SourceURL = strings.TrimSpace(strings.TrimPrefix(line, "**Source:**"))
		}
	}

	return doc
}

// cutSeparator splits a document at the first horizontal rule standing on
// its own line.
func cutSeparator(content string) (string, string, bool) {
	lines := strings.Split(content, "\n")

	for i, line := range lines {
		if strings.TrimSpace(line) == separator {
			return strings.Join(lines[:i], "\n"), strings.Join(lines[i+1:], "\n"), true
		}
	}

	return content, "", false
}

// ReplaceTitle swaps the first level-one heading for the given title. If the
// document has no heading, one is inserted at the top.
func ReplaceTitle(content, title string) string {
	lines := strings.Split(content, "\n")

	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "# ") {
			lines[i] = "# " + title

			return strings.Join(lines, "\n")
		}
	}

	return "# " + title + "\n\n" + content
}

// Body returns everything after the metadata separator, trimmed.
func Body(content string) string {
	if _, body, found := cutSeparator(content); found {
		return strings.TrimSpace(body)
	}

	return strings.TrimSpace(content)
}

// StripImages removes markdown image links and raw img tags, collapsing the
// blank space left behind.
func StripImages(content string) string {
	content = imageLinkPattern.ReplaceAllString(content, "")
	content = imageTagPattern.ReplaceAllString(content, "")

	return strings.TrimSpace(excessBlankLines.ReplaceAllString(content, "\n\n"))
}

// HasCompanies reports whether the document already carries a companies
// metadata line.
func HasCompanies(content string) bool {
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "**Companies:**") {
			return true
		}
	}

	return false
}

// InsertCompanies adds a companies line to the metadata header, after the
// source line when present, otherwise before the separator.
func InsertCompanies(content string, companies []string) string {
	if len(companies) == 0 {
		return content
	}

	entry := "**Companies:** " + strings.Join(companies, ", ")
	lines := strings.Split(content, "\n")

	insertAt := -1

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "**Source:**") {
			insertAt = i + 1

			break
		}

		if trimmed == separator {
			insertAt = i

			break
		}
	}

	if insertAt < 0 {
		return content + "\n\n" + entry + "\n"
	}

	out := make([]string, 0, len(lines)+2)
	out = append(out, lines[:insertAt]...)
	out = append(out, "", entry)
	out = append(out, lines[insertAt:]...)

	return strings.Join(out, "\n")
}
