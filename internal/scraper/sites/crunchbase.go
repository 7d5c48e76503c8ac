package sites

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"newsdesk/internal/models"
)

// crunchbase extracts articles from news.crunchbase.com (Herald theme).
// Ad blocks and newsletter signup forms are embedded in the entry content.
type crunchbase struct{}

func (crunchbase) Type() models.SiteType { return models.SiteCrunchbase }

func (crunchbase) Extract(doc *goquery.Document, base *url.URL) Result {
	var r Result

	r.Title = strings.TrimSpace(doc.Find("h1.entry-title").First().Text())

	if date := strings.TrimSpace(doc.Find("span.updated").First().Text()); date != "" {
		r.Date = NormalizeDate(date)
	}

	content := doc.Find("div.herald-entry-content").First()
	content.Find("div.herald-ad, script, style, form").Remove()

	c := newCollector(base)

	content.Find("p, img").Each(func(_ int, s *goquery.Selection) {
		if s.Is("p") {
			c.addAdjacentText(selectionText(s), 10)

			return
		}

		c.addImage(s)
	})

	r.Content = c.items

	return r
}
