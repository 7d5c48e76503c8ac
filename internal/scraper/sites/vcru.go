package sites

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"newsdesk/internal/models"
)

// vcru extracts articles from vc.ru. The body is a sequence of
// figure.block-wrapper elements, each wrapping a text block, a bullet list or
// a media block.
type vcru struct{}

func (vcru) Type() models.SiteType { return models.SiteVCRU }

func (vcru) Extract(doc *goquery.Document, base *url.URL) Result {
	var r Result

	// The editorial icon inside the title markup is decoration, not title text.
	title := doc.Find("h1[class*='content-title']").First()
	if title.Length() > 0 {
		clean := title.Clone()
		clean.Find("span.content-title__editorial-icon, svg, use").Remove()
		r.Title = selectionText(clean)
	}

	if dt, ok := doc.Find("time[datetime]").First().Attr("datetime"); ok {
		r.Date = NormalizeDate(dt)
	}

	c := newCollector(base)

	doc.Find("article.content__blocks figure.block-wrapper").Each(func(_ int, wrapper *goquery.Selection) {
		wrapper.Find("div.block-text p").Each(func(_ int, p *goquery.Selection) {
			c.addText(selectionText(p), 0)
		})

		var items []string

		wrapper.Find("ul.block-list li").Each(func(_ int, li *goquery.Selection) {
			if text := selectionText(li); text != "" {
				items = append(items, text)
			}
		})
		c.addList(items)

		wrapper.Find("div.block-media").Each(func(_ int, media *goquery.Selection) {
			caption := strings.TrimSpace(media.Find("div.media-title").First().Text())
			media.Find("img").Each(func(_ int, img *goquery.Selection) {
				c.addImageAlt(img, caption)
			})
		})
	})

	r.Content = c.items

	return r
}
