// Package main provides the tags command-line tool for collecting tags from
// Notion and auto-tagging markdown articles.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"newsdesk/internal/config"
	"newsdesk/internal/logger"
	"newsdesk/internal/notion"
	"newsdesk/internal/tags"
)

func main() {
	configFile := flag.String("config", "", "Path to YAML configuration file")
	collect := flag.Bool("collect", false, "Collect tags from the Notion database into the tags file")
	apply := flag.Bool("apply", false, "Tag markdown files using the tags file")
	dir := flag.String("dir", "", "Markdown directory to tag (overrides config)")
	dryRun := flag.Bool("dry-run", false, "Report matches without rewriting files")
	flag.Parse()

	if !*collect && !*apply {
		fmt.Fprintln(os.Stderr, "❌ Pass -collect, -apply, or both")
		flag.PrintDefaults()
		os.Exit(1)
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if *dir != "" {
		cfg.Scraper.OutputDir = *dir
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	if *collect {
		if err := runCollect(cfg, log); err != nil {
			log.Error("tag collection failed", "error", err)
			os.Exit(1)
		}
	}

	if *apply {
		if err := runApply(cfg, *dryRun, log); err != nil {
			log.Error("tagging failed", "error", err)
			os.Exit(1)
		}
	}
}

func runCollect(cfg *config.Config, log *logger.Logger) error {
	if err := cfg.RequireNotion(); err != nil {
		return err
	}

	databaseID, err := notion.ExtractDatabaseID(cfg.Notion.DatabaseID)
	if err != nil {
		return err
	}

	ctx := context.Background()
	source := notion.NewTagSource(notion.NewClient(cfg.Notion, log), log)

	property, err := source.FindMultiSelectProperty(ctx, databaseID, cfg.Notion.TagProperty)
	if err != nil {
		return err
	}

	collected, err := source.CollectTags(ctx, databaseID, property)
	if err != nil {
		return err
	}

	existing, err := tags.LoadTags(cfg.Tags.TagsFile)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}

		existing = nil
	}

	merged := tags.Merge(existing, collected)
	if err := tags.SaveTags(cfg.Tags.TagsFile, merged); err != nil {
		return err
	}

	fmt.Printf("✅ Collected %d tags from %q, %d total in %s\n",
		len(collected), property, len(merged), cfg.Tags.TagsFile)

	if suspicious := tags.DetectTrailing(merged); len(suspicious) > 0 {
		fmt.Printf("⚠️  Tags with trailing punctuation: %v\n", suspicious)
	}

	return nil
}

func runApply(cfg *config.Config, dryRun bool, log *logger.Logger) error {
	known, err := tags.LoadTags(cfg.Tags.TagsFile)
	if err != nil {
		return err
	}

	if len(known) == 0 {
		return fmt.Errorf("tags file %s is empty", cfg.Tags.TagsFile)
	}

	matcher := tags.NewMatcher(known, cfg.Tags.CaseSensitive, cfg.Tags.KeepTrailing)
	tagger := tags.NewAutotagger(matcher, tags.Scope(cfg.Tags.Scope), dryRun, log)

	results, err := tagger.TagDirectory(cfg.Scraper.OutputDir)
	if err != nil {
		return err
	}

	for _, r := range results {
		fmt.Printf("  %s: %v\n", r.File, r.Tags)
	}

	verb := "tagged"
	if dryRun {
		verb = "matched (dry run)"
	}

	fmt.Printf("✨ %d files %s\n", len(results), verb)

	return nil
}
