// Package scraper fetches article pages and turns them into article records
// through the per-site extractors.
package scraper

import (
	"bytes"
	"context"
	"fmt"
	"math/rand"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"

	"newsdesk/internal/config"
	"newsdesk/internal/logger"
	"newsdesk/internal/models"
	"newsdesk/internal/scraper/sites"
)

// PlaceholderTitle is used when a page yields no title at all.
const PlaceholderTitle = "Untitled"

// Scraper coordinates fetching and extraction for batches of article URLs.
type Scraper struct {
	fetcher     *Fetcher
	log         *logger.Logger
	minDelay    time.Duration
	maxDelay    time.Duration
	concurrency int
}

// New creates a scraper from the config.
func New(cfg config.ScraperConfig, log *logger.Logger) *Scraper {
	return &Scraper{
		fetcher:     NewFetcher(cfg, log),
		log:         log,
		minDelay:    time.Duration(cfg.MinDelayMs) * time.Millisecond,
		maxDelay:    time.Duration(cfg.MaxDelayMs) * time.Millisecond,
		concurrency: cfg.Concurrency,
	}
}

// ScrapeArticle fetches and extracts one URL. Failures are reported inside
// the returned record, never as an error: a bad URL must not abort a batch.
func (s *Scraper) ScrapeArticle(ctx context.Context, rawURL string) *models.Article {
	site := sites.Detect(rawURL)
	article := models.NewArticle(rawURL, site)

	s.log.Info("processing", "url", rawURL, "site", site)

	body, err := s.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		s.log.Error("fetch failed", "url", rawURL, "error", err)

		return article.Failed(err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		s.log.Error("parse failed", "url", rawURL, "error", err)

		return article.Failed(fmt.Errorf("failed to parse HTML: %w", err))
	}

	base, err := url.Parse(rawURL)
	if err != nil {
		base = nil
	}

	result := sites.For(site).Extract(doc, base)

	article.Title = result.Title
	if article.Title == "" {
		article.Title = PlaceholderTitle
	}

	article.Date = result.Date
	article.Content = result.Content
	article.Text = flattenText(result.Content)
	article.Images = collectImages(result.Content)
	article.Status = models.StatusSuccess

	return article
}

// ScrapeBatch processes URLs concurrently through a bounded pool, preserving
// input order in the result slice.
func (s *Scraper) ScrapeBatch(ctx context.Context, urls []string) []*models.Article {
	results := make([]*models.Article, len(urls))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, u := range urls {
		i, u := i, u
		g.Go(func() error {
			s.jitter(gctx)

			results[i] = s.ScrapeArticle(gctx, u)

			return nil
		})
	}

	// Workers never return errors; failures live in the records.
	_ = g.Wait()

	for i, u := range urls {
		if results[i] == nil {
			results[i] = models.NewArticle(u, models.SiteGeneric).Failed(ctx.Err())
		}
	}

	return results
}

// jitter sleeps a random interval before a request to spread the pool's
// traffic out.
func (s *Scraper) jitter(ctx context.Context) {
	if s.maxDelay <= 0 {
		return
	}

	delay := s.minDelay
	if span := s.maxDelay - s.minDelay; span > 0 {
		delay += time.Duration(rand.Int63n(int64(span)))
	}

	select {
	case <-time.After(delay):
	case <-ctx.Done():
	}
}

// flattenText joins paragraph and list content into the flat text form.
func flattenText(items []models.ContentItem) string {
	var blocks []string

	for _, item := range items {
		switch item.Type {
		case models.ContentText:
			blocks = append(blocks, item.Text)
		case models.ContentList:
			blocks = append(blocks, item.Items...)
		case models.ContentImage:
		}
	}

	return strings.Join(blocks, "\n\n")
}

// collectImages gathers the image items into the flat image list.
func collectImages(items []models.ContentItem) []models.Image {
	images := []models.Image{}

	for _, item := range items {
		if item.Type == models.ContentImage {
			images = append(images, models.Image{URL: item.URL, Alt: item.Alt})
		}
	}

	return images
}
