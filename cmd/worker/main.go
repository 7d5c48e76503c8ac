// Package main provides the unified worker command that chains scraping,
// title rewriting, and Notion import into one pipeline run.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"newsdesk/internal/config"
	"newsdesk/internal/llm"
	"newsdesk/internal/logger"
	"newsdesk/internal/models"
	"newsdesk/internal/notion"
	"newsdesk/internal/scraper"
)

func main() {
	configFile := flag.String("config", "", "Path to YAML configuration file")
	urlFile := flag.String("urls", "", "Path to URL list file (overrides config)")
	skipRetitle := flag.Bool("skip-retitle", false, "Skip the title rewriting phase")
	skipImport := flag.Bool("skip-import", false, "Skip the Notion import phase")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if *urlFile != "" {
		cfg.Scraper.URLFile = *urlFile
	}

	if !*skipRetitle {
		if err := cfg.RequireLLM(); err != nil {
			fmt.Fprintf(os.Stderr, "❌ %v (or pass -skip-retitle)\n", err)
			os.Exit(1)
		}
	}

	if !*skipImport {
		if err := cfg.RequireNotion(); err != nil {
			fmt.Fprintf(os.Stderr, "❌ %v (or pass -skip-import)\n", err)
			os.Exit(1)
		}
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	ctx := context.Background()
	startTime := time.Now()

	fmt.Println("🚀 Starting newsdesk pipeline")

	// Phase 1: Scraping
	// -----------------
	fmt.Println("Phase 1: Scraping...")

	urls, err := scraper.ReadURLList(cfg.Scraper.URLFile)
	if err != nil {
		log.Error("failed to read URL list", "error", err)
		os.Exit(1)
	}

	if len(urls) == 0 {
		log.Error("no URLs to scrape", "file", cfg.Scraper.URLFile)
		os.Exit(1)
	}

	articles := scraper.New(cfg.Scraper, log).ScrapeBatch(ctx, urls)

	writer := scraper.NewWriter(cfg.Scraper.OutputDir, cfg.Scraper.JSONPath, log)
	if err := writer.Reset(); err != nil {
		log.Error("failed to prepare output", "error", err)
		os.Exit(1)
	}

	written, err := writer.WriteAll(articles)
	if err != nil {
		log.Error("failed to write output", "error", err)
		os.Exit(1)
	}

	failed := 0

	for _, a := range articles {
		if a.Status != models.StatusSuccess {
			failed++
		}
	}

	fmt.Printf("✅ Scraped %d/%d articles in %v\n", written, len(urls), time.Since(startTime).Round(time.Millisecond))

	if written == 0 {
		log.Error("nothing scraped, stopping")
		os.Exit(1)
	}

	// Phase 2: Title rewriting
	// ------------------------
	retitled := 0

	if !*skipRetitle {
		fmt.Println("Phase 2: Title rewriting...")

		prompt, err := llm.LoadPrompt(cfg.LLM.PromptFile)
		if err != nil {
			log.Error("failed to load prompt", "error", err)
			os.Exit(1)
		}

		retitler := llm.NewRetitler(llm.NewClient(cfg.LLM, log), prompt, log)

		report, err := retitler.ProcessDirectory(ctx, cfg.Scraper.OutputDir)
		if err != nil {
			log.Error("retitle failed", "error", err)
			os.Exit(1)
		}

		retitled = len(report.Changes)

		fmt.Printf("✅ Rewrote %d titles, %d failed\n", retitled, len(report.Failed))
	}

	// Phase 3: Notion import
	// ----------------------
	imported := 0

	if !*skipImport {
		fmt.Println("Phase 3: Notion import...")

		databaseID, err := notion.ExtractDatabaseID(cfg.Notion.DatabaseID)
		if err != nil {
			log.Error("invalid database", "error", err)
			os.Exit(1)
		}

		importer := notion.NewImporter(notion.NewClient(cfg.Notion, log), log)

		result, err := importer.ImportDirectory(ctx, cfg.Scraper.OutputDir, cfg.Scraper.JSONPath, databaseID)
		if err != nil {
			log.Error("import failed", "error", err)
			os.Exit(1)
		}

		imported = len(result.Imported)

		fmt.Printf("✅ Imported %d pages, %d skipped, %d failed\n",
			imported, len(result.Skipped), len(result.Failed))
	}

	// Final report
	// ------------
	fmt.Println("\n------------------------------------------------")
	fmt.Println("📊 Summary Report")
	fmt.Println("------------------------------------------------")
	fmt.Printf("URLs processed:  %d\n", len(urls))
	fmt.Printf("Articles saved:  %d (%d failed)\n", written, failed)
	fmt.Printf("Titles rewritten: %d\n", retitled)
	fmt.Printf("Pages imported:  %d\n", imported)
	fmt.Printf("Total duration:  %v\n", time.Since(startTime).Round(time.Millisecond))
	fmt.Println("------------------------------------------------")
	fmt.Println("✨ Pipeline complete!")
}
