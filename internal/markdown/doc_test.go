package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const sampleDoc = `# Old Title

**Published:** 15.03.2024

**Source:** https://example.com/post

---

First paragraph.

![chart](https://example.com/a.png)

Second paragraph.
`

func TestParseDocument(t *testing.T) {
	doc := ParseDocument(sampleDoc)

	assert.Equal(t, "Old Title", doc.Title)
	assert.Equal(t, "15.03.2024", doc.Date)
	assert.Equal(t, "https://example.com/post", doc.SourceURL)
	assert.True(t, strings.HasPrefix(doc.Body, "First paragraph."))
	assert.True(t, strings.HasSuffix(doc.Body, "Second paragraph."))
}

func TestParseDocumentWithoutSeparator(t *testing.T) {
	doc := ParseDocument("# Only Title\n\nsome text")

	assert.Equal(t, "Only Title", doc.Title)
	assert.Empty(t, doc.Body)
}

func TestReplaceTitle(t *testing.T) {
	got := ReplaceTitle(sampleDoc, "New Title")

	assert.Contains(t, got, "# New Title")
	assert.NotContains(t, got, "# Old Title")
	// Everything else stays put.
	assert.Contains(t, got, "**Source:** https://example.com/post")
}

func TestReplaceTitleInsertsWhenMissing(t *testing.T) {
	got := ReplaceTitle("no heading here", "Inserted")

	assert.True(t, strings.HasPrefix(got, "# Inserted\n"))
	assert.Contains(t, got, "no heading here")
}

func TestBody(t *testing.T) {
	body := Body(sampleDoc)

	assert.True(t, strings.HasPrefix(body, "First paragraph."))
	assert.NotContains(t, body, "**Source:**")
}

func TestStripImages(t *testing.T) {
	got := StripImages("text before\n\n![alt](https://x.com/a.png)\n\n<img src=\"b.png\">\n\ntext after")

	assert.Equal(t, "text before\n\ntext after", got)
}

func TestInsertCompanies(t *testing.T) {
	got := InsertCompanies(sampleDoc, []string{"OpenAI", "Anthropic"})

	assert.Contains(t, got, "**Companies:** OpenAI, Anthropic")
	assert.True(t, HasCompanies(got))

	// The line lands in the header, before the separator.
	sepIdx := strings.Index(got, "\n---\n")
	companiesIdx := strings.Index(got, "**Companies:**")
	assert.Less(t, companiesIdx, sepIdx)
}

func TestInsertCompaniesNoop(t *testing.T) {
	assert.Equal(t, sampleDoc, InsertCompanies(sampleDoc, nil))
}
