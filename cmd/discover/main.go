// Package main provides the discover command-line tool for collecting fresh
// article URLs from RSS feeds.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"newsdesk/internal/config"
	"newsdesk/internal/feeds"
	"newsdesk/internal/logger"
)

func main() {
	configFile := flag.String("config", "", "Path to YAML configuration file")
	feedList := flag.String("feeds", "", "Comma-separated feed URLs (overrides config)")
	urlFile := flag.String("urls", "", "URL list file to merge into (overrides config)")
	printOnly := flag.Bool("print", false, "Print discovered URLs instead of merging")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if *feedList != "" {
		cfg.Feeds.URLs = strings.Split(*feedList, ",")
	}

	if *urlFile != "" {
		cfg.Scraper.URLFile = *urlFile
	}

	if len(cfg.Feeds.URLs) == 0 {
		fmt.Fprintln(os.Stderr, "❌ No feeds configured: set feeds.urls or pass -feeds")
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	fmt.Printf("🚀 Checking %d feeds\n", len(cfg.Feeds.URLs))

	discoverer := feeds.NewDiscoverer(log)

	links, err := discoverer.Discover(context.Background(), cfg.Feeds.URLs)
	if err != nil {
		log.Error("discovery failed", "error", err)
		os.Exit(1)
	}

	if *printOnly {
		for _, link := range links {
			fmt.Println(link)
		}

		return
	}

	added, err := feeds.MergeURLFile(cfg.Scraper.URLFile, links)
	if err != nil {
		log.Error("failed to merge URL file", "error", err)
		os.Exit(1)
	}

	fmt.Printf("✨ Discovered %d links, %d new in %s\n", len(links), added, cfg.Scraper.URLFile)
}
