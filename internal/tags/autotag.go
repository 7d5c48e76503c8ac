package tags

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"newsdesk/internal/logger"
	"newsdesk/internal/markdown"
)

// Scope controls how much of an article the matcher looks at.
type Scope string

const (
	// ScopeFull matches against the whole body.
	ScopeFull Scope = "full"
	// ScopeFirstParagraph matches against the first paragraph only.
	ScopeFirstParagraph Scope = "first-paragraph"
	// ScopeTitle matches against the title only.
	ScopeTitle Scope = "title"
)

// Autotagger annotates rendered article files with the known tags found in
// their text.
type Autotagger struct {
	matcher *Matcher
	scope   Scope
	dryRun  bool
	log     *logger.Logger
}

// NewAutotagger creates an autotagger. In dry-run mode files are inspected
// but never rewritten.
func NewAutotagger(matcher *Matcher, scope Scope, dryRun bool, log *logger.Logger) *Autotagger {
	return &Autotagger{matcher: matcher, scope: scope, dryRun: dryRun, log: log}
}

// FileTags records the tags found for one file.
type FileTags struct {
	File string
	Tags []string
}

// TagDirectory scans every markdown file in dir and inserts a companies
// line listing the matched tags. Files already carrying one are left
// alone.
func (a *Autotagger) TagDirectory(dir string) ([]FileTags, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read dir: %w", err)
	}

	var names []string

	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".md") {
			names = append(names, entry.Name())
		}
	}

	sort.Strings(names)

	var results []FileTags

	for _, name := range names {
		found, err := a.tagFile(filepath.Join(dir, name))
		if err != nil {
			a.log.Error("tagging failed", "file", name, "error", err)

			continue
		}

		if found == nil {
			continue
		}

		results = append(results, FileTags{File: name, Tags: found})
	}

	return results, nil
}

func (a *Autotagger) tagFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	content := string(data)
	if markdown.HasCompanies(content) {
		return nil, nil
	}

	found := a.matcher.FindMatching(a.scopeText(content))
	if len(found) == 0 {
		return nil, nil
	}

	a.log.Info("matched", "file", filepath.Base(path), "tags", strings.Join(found, ", "), "dry_run", a.dryRun)

	if a.dryRun {
		return found, nil
	}

	updated := markdown.InsertCompanies(content, found)
	if err := os.WriteFile(path, []byte(updated), filePerm); err != nil {
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	return found, nil
}

// scopeText selects the text region to match against. The title always
// participates except in title-only mode, where it is the whole region.
func (a *Autotagger) scopeText(content string) string {
	title := markdown.ParseDocument(content).Title

	switch a.scope {
	case ScopeTitle:
		return title
	case ScopeFirstParagraph:
		return title + "\n" + FirstParagraph(markdown.Body(content))
	default:
		return title + "\n" + markdown.StripImages(markdown.Body(content))
	}
}
