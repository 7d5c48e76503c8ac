// Package main provides the digest command-line tool for creating the
// weekly digest page and filling its draft from collected news.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"newsdesk/internal/config"
	"newsdesk/internal/logger"
	"newsdesk/internal/notion"
)

func main() {
	configFile := flag.String("config", "", "Path to YAML configuration file")
	year := flag.Int("year", 0, "ISO year (defaults to current week)")
	week := flag.Int("week", 0, "ISO week number (defaults to current week)")
	parentPage := flag.String("parent", "", "Parent page ID for the digest (overrides config blog database)")
	newsDB := flag.String("news", "", "News database ID or URL (overrides config)")
	skipDraft := flag.Bool("skip-draft", false, "Create the page without filling the draft")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if *newsDB != "" {
		cfg.Notion.NewsDatabaseID = *newsDB
	}

	if cfg.Notion.Token == "" {
		fmt.Fprintln(os.Stderr, "❌ notion.token is required (set NOTION_TOKEN)")
		os.Exit(1)
	}

	y, w := *year, *week
	if y == 0 || w == 0 {
		y, w = time.Now().ISOWeek()
	}

	parent, err := resolveParent(*parentPage, cfg.Notion.BlogDatabaseID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	ctx := context.Background()

	digest := notion.NewDigest(notion.NewClient(cfg.Notion, log), log)

	fmt.Printf("🚀 Creating %q\n", notion.WeekTitle(y, w))

	page, err := digest.CreateWeekPage(ctx, parent, y, w)
	if err != nil {
		log.Error("failed to create digest page", "error", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Page created: %s\n", page.URL)

	if *skipDraft {
		return
	}

	if cfg.Notion.NewsDatabaseID == "" {
		fmt.Println("⚠️  No news database configured, draft left empty")

		return
	}

	newsID, err := notion.ExtractDatabaseID(cfg.Notion.NewsDatabaseID)
	if err != nil {
		log.Error("invalid news database", "error", err)
		os.Exit(1)
	}

	from, to := notion.WeekRange(y, w)

	records, err := digest.FetchNewsRecords(ctx, newsID, from, to)
	if err != nil {
		log.Error("failed to fetch news", "error", err)
		os.Exit(1)
	}

	if err := digest.AppendDraft(ctx, page.ID, records); err != nil {
		log.Error("failed to fill draft", "error", err)
		os.Exit(1)
	}

	fmt.Printf("✨ Done: %d news records in the draft (%s to %s)\n",
		len(records), from.Format("2006-01-02"), to.Format("2006-01-02"))
}

// resolveParent picks the digest parent: an explicit page ID wins over the
// configured blog database.
func resolveParent(pageID, blogDatabase string) (notion.Parent, error) {
	if pageID != "" {
		return notion.Parent{PageID: pageID}, nil
	}

	if blogDatabase == "" {
		return notion.Parent{}, fmt.Errorf("no digest parent: pass -parent or set notion.blog_database_id")
	}

	id, err := notion.ExtractDatabaseID(blogDatabase)
	if err != nil {
		return notion.Parent{}, err
	}

	return notion.Parent{DatabaseID: id}, nil
}
