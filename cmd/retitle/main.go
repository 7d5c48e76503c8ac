// Package main provides the retitle command-line tool for rewriting article
// titles with an LLM.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"newsdesk/internal/config"
	"newsdesk/internal/llm"
	"newsdesk/internal/logger"
)

func main() {
	configFile := flag.String("config", "", "Path to YAML configuration file")
	dir := flag.String("dir", "", "Markdown directory to process (overrides config)")
	promptFile := flag.String("prompt", "", "System prompt file (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if *dir != "" {
		cfg.Scraper.OutputDir = *dir
	}

	if *promptFile != "" {
		cfg.LLM.PromptFile = *promptFile
	}

	if err := cfg.RequireLLM(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v (set DEEPSEEK_API_KEY)\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	prompt, err := llm.LoadPrompt(cfg.LLM.PromptFile)
	if err != nil {
		log.Error("failed to load prompt", "error", err)
		os.Exit(1)
	}

	fmt.Printf("🚀 Rewriting titles in %s (model %s)\n", cfg.Scraper.OutputDir, cfg.LLM.Model)

	retitler := llm.NewRetitler(llm.NewClient(cfg.LLM, log), prompt, log)

	report, err := retitler.ProcessDirectory(context.Background(), cfg.Scraper.OutputDir)
	if err != nil {
		log.Error("retitle failed", "error", err)
		os.Exit(1)
	}

	for _, change := range report.Changes {
		fmt.Printf("  %s\n    %q -> %q\n", change.File, change.OldTitle, change.NewTitle)
	}

	fmt.Printf("✨ Done: %d rewritten, %d skipped, %d failed\n",
		len(report.Changes), len(report.Skipped), len(report.Failed))

	if len(report.Failed) > 0 {
		for name, ferr := range report.Failed {
			fmt.Printf("⚠️  %s: %v\n", name, ferr)
		}

		os.Exit(1)
	}
}
