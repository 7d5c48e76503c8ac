// Package models defines data structures shared by the scraper, importer and
// digest tooling.
package models

import (
	"time"

	"github.com/google/uuid"
)

// SiteType identifies which per-site extractor produced an article.
type SiteType string

// Known site types.
const (
	SiteVCRU       SiteType = "vcru"
	SiteTechCrunch SiteType = "techcrunch"
	SiteHabr       SiteType = "habr"
	SiteCrunchbase SiteType = "crunchbase"
	SiteInfoQ      SiteType = "infoq"
	SiteGeneric    SiteType = "generic"
)

// Status reports the outcome of scraping a single URL.
type Status string

// Scrape statuses.
const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Image is an image reference extracted from an article body.
type Image struct {
	URL string `json:"url"`
	Alt string `json:"alt"`
}

// Article is one scraped article record. Date uses the DD.MM.YYYY format;
// Content preserves the original document order of text, list and image nodes.
type Article struct {
	ScrapedAt time.Time     `json:"scraped_at"`
	ID        string        `json:"id"`
	URL       string        `json:"url"`
	SiteType  SiteType      `json:"site_type"`
	Title     string        `json:"title"`
	Date      string        `json:"date,omitempty"`
	Text      string        `json:"text"`
	Error     string        `json:"error,omitempty"`
	Images    []Image       `json:"images"`
	Content   []ContentItem `json:"structured_content,omitempty"`
	Status    Status        `json:"status"`
}

// NewArticle creates an article record for the given URL with a fresh ID.
func NewArticle(url string, site SiteType) *Article {
	return &Article{
		ID:        uuid.NewString(),
		URL:       url,
		SiteType:  site,
		Images:    []Image{},
		ScrapedAt: time.Now().UTC(),
	}
}

// Failed marks the article as a scrape failure carrying the given error.
func (a *Article) Failed(err error) *Article {
	a.Status = StatusError
	if err != nil {
		a.Error = err.Error()
	}

	return a
}

// NewsRecord is one row of the news database used when assembling a digest.
type NewsRecord struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Date string `json:"date"`
}
