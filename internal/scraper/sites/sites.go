// Package sites contains the per-site article extractors. Each extractor maps
// a parsed HTML document to a title, publication date and ordered content
// items for one known site layout.
package sites

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"newsdesk/internal/models"
)

// Extractor maps a parsed document to structured article content.
type Extractor interface {
	Type() models.SiteType
	Extract(doc *goquery.Document, base *url.URL) Result
}

// Result holds the output of one extraction. Content preserves the order of
// text, list and image nodes as they appear in the document.
type Result struct {
	Title   string
	Date    string
	Content []models.ContentItem
}

// Detect maps a URL to its site type by host.
func Detect(rawURL string) models.SiteType {
	u, err := url.Parse(rawURL)
	if err != nil {
		return models.SiteGeneric
	}

	host := strings.ToLower(u.Hostname())

	switch {
	case strings.Contains(host, "vc.ru"):
		return models.SiteVCRU
	case strings.Contains(host, "techcrunch.com"):
		return models.SiteTechCrunch
	case strings.Contains(host, "habr.com"):
		return models.SiteHabr
	case strings.Contains(host, "crunchbase.com"):
		return models.SiteCrunchbase
	case strings.Contains(host, "infoq.com"):
		return models.SiteInfoQ
	default:
		return models.SiteGeneric
	}
}

// For returns the extractor for the given site type.
func For(site models.SiteType) Extractor {
	switch site {
	case models.SiteVCRU:
		return vcru{}
	case models.SiteTechCrunch:
		return techcrunch{}
	case models.SiteHabr:
		return habr{}
	case models.SiteCrunchbase:
		return crunchbase{}
	case models.SiteInfoQ:
		return infoq{}
	default:
		return generic{}
	}
}
