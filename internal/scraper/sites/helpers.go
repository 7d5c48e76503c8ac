package sites

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"newsdesk/internal/models"
	"newsdesk/pkg/textutil"
)

// Lazy-loading attributes checked in order when resolving an image source.
var imageSrcAttrs = []string{"src", "data-src", "data-lazy-src", "data-original", "data-lazy-loaded"}

// selectionText extracts the visible text of a selection with single spaces
// between text nodes. Sites frequently split sentences across inline links,
// so plain node concatenation would glue words together.
func selectionText(s *goquery.Selection) string {
	var sb strings.Builder

	for _, n := range s.Nodes {
		appendTextNodes(&sb, n)
	}

	return textutil.NormalizeWhitespace(sb.String())
}

func appendTextNodes(sb *strings.Builder, n *html.Node) {
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
		sb.WriteByte(' ')

		return
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		appendTextNodes(sb, c)
	}
}

// imageSrc resolves the source URL of an img element, falling back through
// the lazy-loading attributes and finally the first srcset entry.
func imageSrc(img *goquery.Selection) string {
	for _, attr := range imageSrcAttrs {
		if v, ok := img.Attr(attr); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}

	if srcset, ok := img.Attr("srcset"); ok {
		return firstSrcsetURL(srcset)
	}

	return ""
}

// firstSrcsetURL returns the first URL of a srcset attribute.
func firstSrcsetURL(srcset string) string {
	for _, part := range strings.Split(srcset, ",") {
		fields := strings.Fields(part)
		if len(fields) > 0 {
			return fields[0]
		}
	}

	return ""
}

// pictureSrc resolves the image URL for an img that may sit inside a
// <picture> element carrying the real source on a <source srcset>.
func pictureSrc(img *goquery.Selection) string {
	if src := imageSrc(img); src != "" {
		return src
	}

	picture := img.Closest("picture")
	if picture.Length() == 0 {
		return ""
	}

	source := picture.Find("source").First()
	if source.Length() == 0 {
		return ""
	}

	if srcset, ok := source.Attr("srcset"); ok && srcset != "" {
		return firstSrcsetURL(srcset)
	}

	if src, ok := source.Attr("src"); ok {
		return strings.TrimSpace(src)
	}

	return ""
}

// absoluteURL resolves src against the page URL. Protocol-relative sources
// default to https. Inline data: URIs are rejected.
func absoluteURL(src string, base *url.URL) string {
	if src == "" || strings.HasPrefix(src, "data:") {
		return ""
	}

	if strings.HasPrefix(src, "//") {
		return "https:" + src
	}

	ref, err := url.Parse(src)
	if err != nil {
		return ""
	}

	if ref.IsAbs() || base == nil {
		return ref.String()
	}

	return base.ResolveReference(ref).String()
}

// captionAlt prefers the figcaption of the image's enclosing figure or div
// over the alt attribute.
func captionAlt(img *goquery.Selection) string {
	alt, _ := img.Attr("alt")

	parent := img.Closest("figure, div")
	if parent.Length() > 0 {
		if caption := strings.TrimSpace(parent.Find("figcaption").First().Text()); caption != "" {
			return caption
		}
	}

	return alt
}

// collector accumulates ordered content items, deduplicating image URLs and
// optionally text blocks.
type collector struct {
	base     *url.URL
	seenImgs map[string]bool
	seenText map[string]bool
	items    []models.ContentItem
}

func newCollector(base *url.URL) *collector {
	return &collector{
		base:     base,
		seenImgs: make(map[string]bool),
		seenText: make(map[string]bool),
	}
}

// addText appends a paragraph when it survives normalization and the minimum
// rune count.
func (c *collector) addText(text string, minRunes int) {
	text = textutil.NormalizeWhitespace(text)
	if text == "" || utf8.RuneCountInString(text) <= minRunes {
		return
	}

	c.items = append(c.items, models.TextItem(text))
}

// addTextUnique is addText with duplicate suppression keyed on the first 100
// runes, for layouts where walking nested containers can revisit a paragraph.
func (c *collector) addTextUnique(text string, minRunes int) {
	text = textutil.NormalizeWhitespace(text)
	if text == "" || utf8.RuneCountInString(text) <= minRunes {
		return
	}

	key := text
	if runes := []rune(text); len(runes) > 100 {
		key = string(runes[:100])
	}

	if c.seenText[key] {
		return
	}

	c.seenText[key] = true
	c.items = append(c.items, models.TextItem(text))
}

// addAdjacentText appends a paragraph unless it repeats the immediately
// preceding text item.
func (c *collector) addAdjacentText(text string, minRunes int) {
	text = textutil.NormalizeWhitespace(text)
	if text == "" || utf8.RuneCountInString(text) <= minRunes {
		return
	}

	if n := len(c.items); n > 0 {
		last := c.items[n-1]
		if last.Type == models.ContentText && last.Text == text {
			return
		}
	}

	c.items = append(c.items, models.TextItem(text))
}

func (c *collector) addList(items []string) {
	if len(items) > 0 {
		c.items = append(c.items, models.ListItem(items))
	}
}

// addImage resolves and appends an image element, preferring figcaption text
// for the alt.
func (c *collector) addImage(img *goquery.Selection) {
	c.addImageURL(pictureSrc(img), captionAlt(img))
}

// addImageAlt is addImage with an explicit alt override when non-empty.
func (c *collector) addImageAlt(img *goquery.Selection, alt string) {
	if alt == "" {
		alt, _ = img.Attr("alt")
	}

	c.addImageURL(pictureSrc(img), alt)
}

func (c *collector) addImageURL(src, alt string) {
	resolved := absoluteURL(src, c.base)
	if resolved == "" || c.seenImgs[resolved] {
		return
	}

	c.seenImgs[resolved] = true
	c.items = append(c.items, models.ImageItem(resolved, alt))
}

// insideAd reports whether the selection has an ancestor whose class mentions
// an ad unit.
func insideAd(s *goquery.Selection) bool {
	return s.ParentsFiltered("[class*='ad-unit']").Length() > 0
}
