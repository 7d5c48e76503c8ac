package notion

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"newsdesk/internal/logger"
	"newsdesk/internal/markdown"
	"newsdesk/internal/models"
)

// Importer pushes rendered article files into a Notion database.
type Importer struct {
	client Client
	log    *logger.Logger
}

// NewImporter creates an importer over the given client.
func NewImporter(client Client, log *logger.Logger) *Importer {
	return &Importer{client: client, log: log}
}

// ImportResult summarizes one import run.
type ImportResult struct {
	Imported []string
	Skipped  []string
	Failed   map[string]error
}

// ImportDirectory imports every markdown file in dir into the database.
// Metadata from the scrape snapshot at jsonPath, when present, fills in
// fields the rendered file lacks. Files without a usable title are skipped,
// and one failed file does not stop the rest.
func (im *Importer) ImportDirectory(ctx context.Context, dir, jsonPath, databaseID string) (*ImportResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read import dir: %w", err)
	}

	snapshot := loadSnapshot(jsonPath)
	result := &ImportResult{Failed: make(map[string]error)}

	var names []string

	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".md") {
			names = append(names, entry.Name())
		}
	}

	sort.Strings(names)

	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			result.Failed[name] = err

			continue
		}

		doc := markdown.ParseDocument(string(data))
		mergeSnapshot(&doc, snapshot, name)

		if doc.Title == "" || doc.Title == "Untitled" {
			im.log.Warn("skipping file without title", "file", name)
			result.Skipped = append(result.Skipped, name)

			continue
		}

		if err := im.importDocument(ctx, databaseID, doc); err != nil {
			im.log.Error("import failed", "file", name, "error", err)
			result.Failed[name] = err

			continue
		}

		im.log.Info("imported", "file", name, "title", doc.Title)
		result.Imported = append(result.Imported, name)
	}

	return result, nil
}

func (im *Importer) importDocument(ctx context.Context, databaseID string, doc markdown.Document) error {
	properties := map[string]Property{
		"Name": TitleProperty(doc.Title),
	}

	if doc.SourceURL != "" {
		properties["URL"] = URLProperty(doc.SourceURL)
	}

	if iso := toISODate(doc.Date); iso != "" {
		properties["Published"] = DateProperty(iso)
	}

	req := &CreatePageRequest{
		Parent:     Parent{DatabaseID: databaseID},
		Properties: properties,
		Children:   MarkdownToBlocks(markdown.FormatTables(doc.Body)),
	}

	if _, err := im.client.CreatePage(ctx, req); err != nil {
		return err
	}

	return nil
}

// loadSnapshot reads the scrape snapshot, keyed by batch index and by URL.
// A missing or unreadable snapshot is not an error.
func loadSnapshot(jsonPath string) map[string]*models.Article {
	byKey := make(map[string]*models.Article)

	if jsonPath == "" {
		return byKey
	}

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return byKey
	}

	var articles []*models.Article
	if err := json.Unmarshal(data, &articles); err != nil {
		return byKey
	}

	for i, a := range articles {
		byKey[fmt.Sprintf("%03d", i+1)] = a

		if a.URL != "" {
			byKey[a.URL] = a
		}
	}

	return byKey
}

// mergeSnapshot fills empty document fields from the snapshot record that
// matches the file's numeric prefix or its source URL.
func mergeSnapshot(doc *markdown.Document, snapshot map[string]*models.Article, filename string) {
	var record *models.Article

	if idx, _, found := strings.Cut(filename, "_"); found {
		if _, err := strconv.Atoi(idx); err == nil {
			record = snapshot[idx]
		}
	}

	if record == nil && doc.SourceURL != "" {
		record = snapshot[doc.SourceURL]
	}

	if record == nil {
		return
	}

	if doc.Date == "" {
		doc.Date = record.Date
	}

	if doc.SourceURL == "" {
		doc.SourceURL = record.URL
	}
}

// toISODate converts a DD.MM.YYYY date to YYYY-MM-DD. Other formats come
// back empty.
func toISODate(date string) string {
	t, err := time.Parse("02.01.2006", strings.TrimSpace(date))
	if err != nil {
		return ""
	}

	return t.Format("2006-01-02")
}
