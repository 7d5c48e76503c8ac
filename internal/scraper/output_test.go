package scraper

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsdesk/internal/models"
)

func successfulArticle(url, title string) *models.Article {
	a := models.NewArticle(url, models.SiteGeneric)
	a.Title = title
	a.Date = "15.03.2024"
	a.Text = "Body text."
	a.Content = []models.ContentItem{models.TextItem("Body text.")}
	a.Status = models.StatusSuccess

	return a
}

func TestWriterWriteAll(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "md")
	jsonPath := filepath.Join(dir, "articles.json")

	w := NewWriter(outDir, jsonPath, testLogger())
	require.NoError(t, w.Reset())

	articles := []*models.Article{
		successfulArticle("https://example.com/a", "First: Article?"),
		models.NewArticle("https://example.com/b", models.SiteGeneric).Failed(assert.AnError),
		successfulArticle("https://example.com/c", "Second Article"),
	}

	written, err := w.WriteAll(articles)
	require.NoError(t, err)
	assert.Equal(t, 2, written)

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	// Failed article keeps its batch position in the numbering.
	assert.Equal(t, "001_First_Article.md", entries[0].Name())
	assert.Equal(t, "003_Second_Article.md", entries[1].Name())

	content, err := os.ReadFile(filepath.Join(outDir, entries[0].Name()))
	require.NoError(t, err)
	assert.Contains(t, string(content), "# First: Article?")
	assert.Contains(t, string(content), "**Source:** https://example.com/a")

	data, err := os.ReadFile(jsonPath)
	require.NoError(t, err)

	var decoded []*models.Article
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 3)
	assert.Equal(t, models.StatusError, decoded[1].Status)
}

func TestWriterResetClearsPreviousRun(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "md")
	jsonPath := filepath.Join(dir, "articles.json")

	require.NoError(t, os.MkdirAll(outDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(outDir, "001_Old.md"), []byte("old"), 0o644))
	require.NoError(t, os.WriteFile(jsonPath, []byte("[]"), 0o644))

	w := NewWriter(outDir, jsonPath, testLogger())
	require.NoError(t, w.Reset())

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	_, err = os.Stat(jsonPath)
	assert.True(t, os.IsNotExist(err))
}
