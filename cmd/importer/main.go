// Package main provides the importer command-line tool for pushing markdown
// articles into a Notion database.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"newsdesk/internal/config"
	"newsdesk/internal/logger"
	"newsdesk/internal/notion"
)

func main() {
	configFile := flag.String("config", "", "Path to YAML configuration file")
	dir := flag.String("dir", "", "Markdown directory to import (overrides config)")
	database := flag.String("database", "", "Target database ID or URL (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if *dir != "" {
		cfg.Scraper.OutputDir = *dir
	}

	if *database != "" {
		cfg.Notion.DatabaseID = *database
	}

	if err := cfg.RequireNotion(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v (set NOTION_TOKEN and NOTION_DATABASE_ID)\n", err)
		os.Exit(1)
	}

	databaseID, err := notion.ExtractDatabaseID(cfg.Notion.DatabaseID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	fmt.Printf("🚀 Importing %s into database %s\n", cfg.Scraper.OutputDir, databaseID)

	importer := notion.NewImporter(notion.NewClient(cfg.Notion, log), log)

	result, err := importer.ImportDirectory(context.Background(), cfg.Scraper.OutputDir, cfg.Scraper.JSONPath, databaseID)
	if err != nil {
		log.Error("import failed", "error", err)
		os.Exit(1)
	}

	fmt.Printf("✨ Done: %d imported, %d skipped, %d failed\n",
		len(result.Imported), len(result.Skipped), len(result.Failed))

	if len(result.Failed) > 0 {
		for name, ferr := range result.Failed {
			fmt.Printf("⚠️  %s: %v\n", name, ferr)
		}

		os.Exit(1)
	}
}
