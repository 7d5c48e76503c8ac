package sites

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"newsdesk/internal/models"
)

// techcrunch extracts articles from techcrunch.com (WordPress block layout).
// The featured image precedes the body; ad units are interleaved with the
// entry content and must be skipped.
type techcrunch struct{}

func (techcrunch) Type() models.SiteType { return models.SiteTechCrunch }

func (techcrunch) Extract(doc *goquery.Document, base *url.URL) Result {
	var r Result

	r.Title = strings.TrimSpace(doc.Find("h1.wp-block-post-title").First().Text())

	if dt, ok := doc.Find("div.wp-block-post-date time[datetime]").First().Attr("datetime"); ok {
		r.Date = NormalizeDate(dt)
	}

	c := newCollector(base)
	addFeaturedImage(c, doc)

	content := doc.Find("div.entry-content").First()
	content.Find("p, picture, img").Each(func(_ int, s *goquery.Selection) {
		if insideAd(s) {
			return
		}

		switch {
		case s.Is("p"):
			c.addTextUnique(selectionText(s), 10)
		case s.Is("picture"):
			img := s.Find("img").First()
			if img.Length() > 0 {
				c.addImage(img)
			}
		default:
			// Images nested in a picture were already handled above.
			if s.Closest("picture").Length() == 0 {
				c.addImage(s)
			}
		}
	})

	r.Content = c.items

	return r
}

// addFeaturedImage prepends the post's featured image when present. Resized
// srcset variants are skipped in favor of the original upload.
func addFeaturedImage(c *collector, doc *goquery.Document) {
	figure := doc.Find("figure.wp-block-post-featured-image").First()
	if figure.Length() == 0 {
		return
	}

	img := figure.Find("img").First()
	if img.Length() == 0 {
		return
	}

	src, _ := img.Attr("src")

	src = strings.TrimSpace(src)
	if src == "" {
		if srcset, ok := img.Attr("srcset"); ok {
			src = pickUnresized(srcset)
		}
	}

	if src == "" {
		return
	}

	c.addImageURL(src, captionAlt(img))
}

// pickUnresized returns the first srcset URL without resize parameters,
// falling back to the first entry.
func pickUnresized(srcset string) string {
	first := ""

	for _, part := range strings.Split(srcset, ",") {
		fields := strings.Fields(part)
		if len(fields) == 0 {
			continue
		}

		if first == "" {
			first = fields[0]
		}

		if !strings.Contains(fields[0], "resize") {
			return fields[0]
		}
	}

	return first
}
