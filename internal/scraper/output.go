package scraper

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"newsdesk/internal/logger"
	"newsdesk/internal/markdown"
	"newsdesk/internal/models"
	"newsdesk/pkg/textutil"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644

	filenameTitleLimit = 50
)

// Writer persists scraped articles as numbered markdown files plus a JSON
// snapshot of the whole batch.
type Writer struct {
	outputDir string
	jsonPath  string
	log       *logger.Logger
}

// NewWriter creates a writer for the given output locations.
func NewWriter(outputDir, jsonPath string, log *logger.Logger) *Writer {
	return &Writer{outputDir: outputDir, jsonPath: jsonPath, log: log}
}

// Reset clears previous run output so numbering starts fresh.
func (w *Writer) Reset() error {
	if err := os.RemoveAll(w.outputDir); err != nil {
		return fmt.Errorf("failed to clear output dir: %w", err)
	}

	if err := os.MkdirAll(w.outputDir, dirPerm); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}

	if err := os.Remove(w.jsonPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove JSON snapshot: %w", err)
	}

	return nil
}

// WriteAll writes markdown for every successful article and the JSON
// snapshot for the batch. Returns the number of markdown files written.
func (w *Writer) WriteAll(articles []*models.Article) (int, error) {
	written := 0

	for i, article := range articles {
		if article.Status != models.StatusSuccess {
			continue
		}

		path, err := w.WriteMarkdown(i+1, article)
		if err != nil {
			return written, err
		}

		w.log.Info("saved", "file", path)

		written++
	}

	if err := w.WriteJSON(articles); err != nil {
		return written, err
	}

	return written, nil
}

// WriteMarkdown renders one article to NNN_Title.md under the output dir.
// Articles without a real title fall back to a URL-derived name.
func (w *Writer) WriteMarkdown(index int, article *models.Article) (string, error) {
	stem := article.Title
	if stem == "" || stem == "Untitled" {
		stem = article.URL
	}

	name := fmt.Sprintf("%03d_%s.md", index, textutil.SanitizeFilename(stem, filenameTitleLimit))
	path := filepath.Join(w.outputDir, name)

	if err := os.WriteFile(path, []byte(markdown.Render(article)), filePerm); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}

	return path, nil
}

// WriteJSON dumps the full batch, failures included, to the snapshot path.
func (w *Writer) WriteJSON(articles []*models.Article) error {
	data, err := json.MarshalIndent(articles, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal articles: %w", err)
	}

	if err := os.WriteFile(w.jsonPath, data, filePerm); err != nil {
		return fmt.Errorf("failed to write JSON snapshot: %w", err)
	}

	return nil
}
