// Package config provides configuration management for the newsdesk tools.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/cenkalti/backoff/v4"
	"gopkg.in/yaml.v3"
)

// Configuration validation errors.
var (
	ErrInvalidConcurrency       = errors.New("scraper.concurrency must be between 1 and 50")
	ErrInvalidMaxAttempts       = errors.New("retry.max_attempts must be at least 1")
	ErrInvalidInitialDelay      = errors.New("retry.initial_delay_ms must be non-negative")
	ErrInvalidBackoffMultiplier = errors.New("retry.backoff_multiplier must be >= 1.0")
	ErrInvalidTimeout           = errors.New("retry.timeout_sec must be at least 1")
	ErrInvalidDelayRange        = errors.New("scraper.min_delay_ms cannot exceed scraper.max_delay_ms")
	ErrMissingOutputDir         = errors.New("scraper.output_dir is required")
	ErrMissingNotionToken       = errors.New("notion.token is required (or NOTION_TOKEN env)")
	ErrMissingNotionDatabase    = errors.New("notion.database_id is required (or NOTION_DATABASE_ID env)")
	ErrMissingLLMKey            = errors.New("llm.api_key is required (or DEEPSEEK_API_KEY env)")
	ErrInvalidLogLevel          = errors.New("logging.level must be one of: debug, info, warn, error")
	ErrInvalidLogFormat         = errors.New("logging.format must be 'text' or 'json'")
	ErrInvalidTagScope          = errors.New("tags.scope must be one of: full, first-paragraph, title")
)

// Config represents the complete newsdesk configuration.
type Config struct {
	Scraper ScraperConfig `yaml:"scraper"`
	Notion  NotionConfig  `yaml:"notion"`
	LLM     LLMConfig     `yaml:"llm"`
	Tags    TagsConfig    `yaml:"tags"`
	Feeds   FeedsConfig   `yaml:"feeds"`
	Logging LoggingConfig `yaml:"logging"`
}

// ScraperConfig contains article-scraper settings.
type ScraperConfig struct {
	OutputDir   string      `yaml:"output_dir"`
	JSONPath    string      `yaml:"json_path"`
	URLFile     string      `yaml:"url_file"`
	Retry       RetryPolicy `yaml:"retry"`
	Concurrency int         `yaml:"concurrency"`
	MinDelayMs  int         `yaml:"min_delay_ms"`
	MaxDelayMs  int         `yaml:"max_delay_ms"`
	MaxBodyKb   int         `yaml:"max_body_kb"`
}

// RetryPolicy defines HTTP retry behavior.
type RetryPolicy struct {
	MaxAttempts       int     `yaml:"max_attempts"`
	InitialDelayMs    int     `yaml:"initial_delay_ms"`
	MaxDelayMs        int     `yaml:"max_delay_ms"`
	BackoffMultiplier float64 `yaml:"backoff_multiplier"`
	TimeoutSec        int     `yaml:"timeout_sec"`
}

// Timeout returns the per-request timeout duration.
func (rp *RetryPolicy) Timeout() time.Duration {
	return time.Duration(rp.TimeoutSec) * time.Second
}

// Backoff builds the exponential backoff schedule for one fetch.
func (rp *RetryPolicy) Backoff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = time.Duration(rp.InitialDelayMs) * time.Millisecond
	b.MaxInterval = time.Duration(rp.MaxDelayMs) * time.Millisecond
	b.Multiplier = rp.BackoffMultiplier

	// MaxAttempts counts the initial try, backoff counts retries only.
	return backoff.WithMaxRetries(b, uint64(rp.MaxAttempts-1))
}

// NotionConfig contains Notion API settings. The token is never stored in the
// YAML file in practice; it falls back to the NOTION_TOKEN environment variable.
type NotionConfig struct {
	Token          string `yaml:"token"`
	DatabaseID     string `yaml:"database_id"`
	BlogDatabaseID string `yaml:"blog_database_id"`
	NewsDatabaseID string `yaml:"news_database_id"`
	TagProperty    string `yaml:"tag_property"`
	Version        string `yaml:"version"`
}

// LLMConfig contains chat-completion API settings for title rewriting.
type LLMConfig struct {
	BaseURL    string `yaml:"base_url"`
	Model      string `yaml:"model"`
	APIKey     string `yaml:"api_key"`
	PromptFile string `yaml:"prompt_file"`
}

// TagsConfig controls tag auto-filling.
type TagsConfig struct {
	TagsFile      string `yaml:"tags_file"`
	Scope         string `yaml:"scope"`
	CaseSensitive bool   `yaml:"case_sensitive"`
	KeepTrailing  bool   `yaml:"keep_trailing"`
}

// FeedsConfig lists RSS/Atom feeds used to discover article URLs.
type FeedsConfig struct {
	URLs []string `yaml:"urls"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the built-in configuration used when no file is given.
func Default() *Config {
	return &Config{
		Scraper: ScraperConfig{
			OutputDir:   "articles_markdown",
			JSONPath:    "parsed_articles.json",
			URLFile:     "urls.txt",
			Concurrency: 10,
			MinDelayMs:  100,
			MaxDelayMs:  500,
			MaxBodyKb:   4096,
			Retry: RetryPolicy{
				MaxAttempts:       3,
				InitialDelayMs:    500,
				MaxDelayMs:        30000,
				BackoffMultiplier: 2.0,
				TimeoutSec:        15,
			},
		},
		Notion: NotionConfig{
			Version:     "2022-06-28",
			TagProperty: "",
		},
		LLM: LLMConfig{
			BaseURL: "https://api.deepseek.com",
			Model:   "deepseek-chat",
		},
		Tags: TagsConfig{
			TagsFile: "tags.txt",
			Scope:    "full",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads configuration from a YAML file on top of the defaults, then
// applies environment overrides for secrets. An empty path loads defaults
// and environment only.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// applyEnv fills secrets and IDs from the environment when unset in YAML.
func (c *Config) applyEnv() {
	if c.Notion.Token == "" {
		c.Notion.Token = os.Getenv("NOTION_TOKEN")
	}

	if c.Notion.DatabaseID == "" {
		c.Notion.DatabaseID = os.Getenv("NOTION_DATABASE_ID")
	}

	if c.LLM.APIKey == "" {
		c.LLM.APIKey = os.Getenv("DEEPSEEK_API_KEY")
	}
}

// Validate checks the scraper and logging sections. Notion and LLM credentials
// are validated by the commands that need them, so that scraping works without
// any tokens configured.
func (c *Config) Validate() error {
	if c.Scraper.Concurrency < 1 || c.Scraper.Concurrency > 50 {
		return ErrInvalidConcurrency
	}

	if c.Scraper.MinDelayMs > c.Scraper.MaxDelayMs {
		return ErrInvalidDelayRange
	}

	if c.Scraper.OutputDir == "" {
		return ErrMissingOutputDir
	}

	rp := &c.Scraper.Retry
	if rp.MaxAttempts < 1 {
		return ErrInvalidMaxAttempts
	}

	if rp.InitialDelayMs < 0 {
		return ErrInvalidInitialDelay
	}

	if rp.BackoffMultiplier < 1.0 {
		return ErrInvalidBackoffMultiplier
	}

	if rp.TimeoutSec < 1 {
		return ErrInvalidTimeout
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return ErrInvalidLogLevel
	}

	if c.Logging.Format != "text" && c.Logging.Format != "json" {
		return ErrInvalidLogFormat
	}

	validScopes := map[string]bool{"full": true, "first-paragraph": true, "title": true}
	if !validScopes[c.Tags.Scope] {
		return ErrInvalidTagScope
	}

	return nil
}

// RequireNotion validates the Notion section for commands that talk to the API.
func (c *Config) RequireNotion() error {
	if c.Notion.Token == "" {
		return ErrMissingNotionToken
	}

	if c.Notion.DatabaseID == "" {
		return ErrMissingNotionDatabase
	}

	return nil
}

// RequireLLM validates the LLM section for the retitle command.
func (c *Config) RequireLLM() error {
	if c.LLM.APIKey == "" {
		return ErrMissingLLMKey
	}

	return nil
}

// String returns a short description of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Concurrency: %d, MaxAttempts: %d, Output: %s}",
		c.Scraper.Concurrency,
		c.Scraper.Retry.MaxAttempts,
		c.Scraper.OutputDir,
	)
}
