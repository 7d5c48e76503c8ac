package sites

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"newsdesk/internal/models"
	"newsdesk/pkg/textutil"
)

// infoq extracts articles from www.infoq.com. Paragraphs may carry inline
// images, which have to be split out while keeping the surrounding text in
// reading order.
type infoq struct{}

func (infoq) Type() models.SiteType { return models.SiteInfoQ }

func (infoq) Extract(doc *goquery.Document, base *url.URL) Result {
	var r Result

	title := doc.Find("h1.article__title").First()
	if title.Length() == 0 {
		title = doc.Find("h1").First()
	}

	r.Title = strings.TrimSpace(title.Text())
	r.Date = NormalizeDate(readTimeDate(doc.Find("p.article__readTime").First()))

	content := doc.Find("div.article__data").First()
	content.Find("script, style").Remove()
	content.Find("div[class*='ad']").Remove()

	c := newCollector(base)

	content.Children().Each(func(_ int, child *goquery.Selection) {
		switch {
		case child.Is("p"):
			extractMixedParagraph(c, content, child)
		case child.Is("img"):
			c.addImage(child)
		case child.Is("figure"), child.Is("div"):
			child.Find("img").Each(func(_ int, img *goquery.Selection) {
				c.addImage(img)
			})
		}
	})

	r.Content = c.items

	return r
}

// readTimeDate returns the date text of the read-time paragraph, which runs
// up to the dot separator span ("Jan 22, 2026 <span class="dot">·</span> 5 min").
func readTimeDate(p *goquery.Selection) string {
	if p.Length() == 0 {
		return ""
	}

	var sb strings.Builder

	for n := p.Nodes[0].FirstChild; n != nil; n = n.NextSibling {
		if n.Type == html.ElementNode && n.Data == "span" && nodeHasClass(n, "dot") {
			break
		}

		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
	}

	return textutil.NormalizeWhitespace(sb.String())
}

// extractMixedParagraph walks a paragraph's child nodes in order, emitting
// text runs and inline images as separate content items.
func extractMixedParagraph(c *collector, root, p *goquery.Selection) {
	var parts []string

	flush := func() {
		text := textutil.NormalizeWhitespace(strings.Join(parts, " "))
		parts = nil

		c.addTextUnique(text, 10)
	}

	for n := p.Nodes[0].FirstChild; n != nil; n = n.NextSibling {
		if n.Type == html.ElementNode && n.Data == "img" {
			flush()
			c.addImage(root.FindNodes(n))

			continue
		}

		var sb strings.Builder

		appendTextNodes(&sb, n)

		if part := strings.TrimSpace(sb.String()); part != "" {
			parts = append(parts, part)
		}
	}

	flush()
}

// nodeHasClass reports whether an element node carries the given class.
func nodeHasClass(n *html.Node, class string) bool {
	for _, attr := range n.Attr {
		if attr.Key != "class" {
			continue
		}

		for _, c := range strings.Fields(attr.Val) {
			if c == class {
				return true
			}
		}
	}

	return false
}
