package sites

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"newsdesk/internal/models"
)

// Containers tried in order when extracting the body of an unknown site.
const genericContentSelectors = "article, main, [role='article'], .article-content, .post-content, .entry-content"

// generic is the fallback extractor for unknown sites: first heading or page
// title, first time element, and the first recognizable content container.
type generic struct{}

func (generic) Type() models.SiteType { return models.SiteGeneric }

func (generic) Extract(doc *goquery.Document, base *url.URL) Result {
	var r Result

	for _, tag := range []string{"h1", "title"} {
		if t := strings.TrimSpace(doc.Find(tag).First().Text()); t != "" {
			r.Title = t

			break
		}
	}

	if dt, ok := doc.Find("time[datetime]").First().Attr("datetime"); ok {
		r.Date = NormalizeDate(dt)
	}

	content := doc.Find(genericContentSelectors).First()
	if content.Length() == 0 {
		return r
	}

	content.Find("script, style").Remove()

	c := newCollector(base)

	content.Find("p, img").Each(func(_ int, s *goquery.Selection) {
		if s.Is("p") {
			c.addText(selectionText(s), 0)

			return
		}

		c.addImage(s)
	})

	r.Content = c.items

	return r
}
