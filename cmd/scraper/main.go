// Package main provides the scraper command-line tool for turning article
// URLs into markdown files.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"newsdesk/internal/config"
	"newsdesk/internal/logger"
	"newsdesk/internal/models"
	"newsdesk/internal/scraper"
)

func main() {
	configFile := flag.String("config", "", "Path to YAML configuration file")
	urlFile := flag.String("urls", "", "Path to URL list file (overrides config)")
	singleURL := flag.String("url", "", "Scrape a single URL instead of the list")
	outputDir := flag.String("output", "", "Markdown output directory (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if *urlFile != "" {
		cfg.Scraper.URLFile = *urlFile
	}

	if *outputDir != "" {
		cfg.Scraper.OutputDir = *outputDir
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	var urls []string

	if *singleURL != "" {
		urls = []string{*singleURL}
	} else {
		urls, err = scraper.ReadURLList(cfg.Scraper.URLFile)
		if err != nil {
			log.Error("failed to read URL list", "error", err)
			os.Exit(1)
		}
	}

	if len(urls) == 0 {
		log.Error("no URLs to scrape", "file", cfg.Scraper.URLFile)
		os.Exit(1)
	}

	fmt.Printf("🚀 Scraping %d articles (concurrency %d)\n", len(urls), cfg.Scraper.Concurrency)

	s := scraper.New(cfg.Scraper, log)
	articles := s.ScrapeBatch(context.Background(), urls)

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

			fmt.Printf("⚠️  %s: %s\n", a.URL, a.Error)
		}
	}

	fmt.Printf("✨ Done: %d saved to %s, %d failed, snapshot at %s\n",
		written, cfg.Scraper.OutputDir, failed, cfg.Scraper.JSONPath)

	if written == 0 {
		os.Exit(1)
	}
}
