package llm

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"newsdesk/internal/logger"
	"newsdesk/internal/markdown"
	"newsdesk/pkg/textutil"
)

// DefaultPrompt instructs the model when no prompt file is configured.
const DefaultPrompt = `You rewrite news article titles. Given the text of an article, produce a single concise, informative title that captures its main point. Reply with the title only, without quotes or any commentary.`

const (
	filePerm = 0o644

	// Bodies are truncated before sending so a long article does not blow
	// the prompt budget.
	maxBodyRunes = 6000
)

// Retitler rewrites the titles of rendered article files.
type Retitler struct {
	client Client
	prompt string
	log    *logger.Logger
}

// NewRetitler creates a retitler using the given prompt. An empty prompt
// falls back to DefaultPrompt.
func NewRetitler(client Client, prompt string, log *logger.Logger) *Retitler {
	if strings.TrimSpace(prompt) == "" {
		prompt = DefaultPrompt
	}

	return &Retitler{client: client, prompt: prompt, log: log}
}

// LoadPrompt reads the prompt file, returning empty when path is empty.
func LoadPrompt(path string) (string, error) {
	if path == "" {
		return "", nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read prompt file: %w", err)
	}

	return string(data), nil
}

// Change records one rewritten title.
type Change struct {
	File     string
	OldTitle string
	NewTitle string
}

// Report summarizes a retitle run.
type Report struct {
	Changes []Change
	Skipped []string
	Failed  map[string]error
}

// ProcessDirectory rewrites the title of every markdown file in dir, in
// place. Files with an empty body are skipped, and a failure on one file
// does not stop the rest.
func (r *Retitler) ProcessDirectory(ctx context.Context, dir string) (*Report, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read dir: %w", err)
	}

	report := &Report{Failed: make(map[string]error)}

	var names []string

	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".md") {
			names = append(names, entry.Name())
		}
	}

	sort.Strings(names)

	for _, name := range names {
		change, err := r.processFile(ctx, filepath.Join(dir, name))
		if err != nil {
			r.log.Error("retitle failed", "file", name, "error", err)
			report.Failed[name] = err

			continue
		}

		if change == nil {
			report.Skipped = append(report.Skipped, name)

			continue
		}

		change.File = name
		report.Changes = append(report.Changes, *change)

		r.log.Info("retitled", "file", name, "title", change.NewTitle)
	}

	return report, nil
}

func (r *Retitler) processFile(ctx context.Context, path string) (*Change, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	content := string(data)
	body := markdown.StripImages(markdown.Body(content))

	if body == "" {
		return nil, nil
	}

	title, err := r.client.ChatCompletion(ctx, r.prompt, textutil.Truncate(body, maxBodyRunes))
	if err != nil {
		return nil, err
	}

	title = cleanTitle(title)
	if title == "" {
		return nil, ErrEmptyResponse
	}

	oldTitle := markdown.ParseDocument(content).Title

	updated := markdown.ReplaceTitle(content, title)
	if err := os.WriteFile(path, []byte(updated), filePerm); err != nil {
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	return &Change{OldTitle: oldTitle, NewTitle: title}, nil
}

// cleanTitle normalizes a model reply to a single unquoted line.
func cleanTitle(s string) string {
	s = strings.TrimSpace(s)

	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}

	s = strings.Trim(s, `"'`)
	s = strings.TrimPrefix(s, "# ")

	return strings.TrimSpace(s)
}
