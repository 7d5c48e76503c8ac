package sites

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"newsdesk/internal/models"
)

// habr extracts articles from habr.com. Paragraphs sit directly under div
// containers in the post body; repeated mobile/desktop markup makes adjacent
// duplicate paragraphs common.
type habr struct{}

func (habr) Type() models.SiteType { return models.SiteHabr }

func (habr) Extract(doc *goquery.Document, base *url.URL) Result {
	var r Result

	title := doc.Find("h1.tm-title").First()
	if title.Length() > 0 {
		if span := title.Find("span").First(); span.Length() > 0 {
			r.Title = strings.TrimSpace(span.Text())
		} else {
			r.Title = strings.TrimSpace(title.Text())
		}
	}

	if dt, ok := doc.Find("span.tm-article-datetime-published time[datetime]").First().Attr("datetime"); ok {
		r.Date = NormalizeDate(dt)
	}

	c := newCollector(base)

	content := doc.Find("div#post-content-body").First()
	content.Find("p, img").Each(func(_ int, s *goquery.Selection) {
		if s.Is("p") {
			// Only top-level paragraphs; quotes and list items carry their
			// own paragraph wrappers.
			if s.Parent().Is("div") {
				c.addAdjacentText(selectionText(s), 5)
			}

			return
		}

		c.addImage(s)
	})

	r.Content = c.items

	return r
}
