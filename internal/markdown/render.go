// Package markdown renders article records to markdown documents and edits
// already rendered documents in place.
package markdown

import (
	"fmt"
	"strings"

	"newsdesk/internal/models"
)

// Render produces the full markdown document for an article: title heading,
// metadata lines, a separator, and the body.
func Render(article *models.Article) string {
	var sb strings.Builder

	title := article.Title
	if title == "" {
		title = "Untitled"
	}

	sb.WriteString("# " + title + "\n\n")

	if article.Date != "" {
		sb.WriteString("**Published:** " + article.Date + "\n\n")
	}

	sb.WriteString("**Source:** " + article.URL + "\n\n")
	sb.WriteString("---\n\n")
	sb.WriteString(RenderBody(article))

	return sb.String()
}

// RenderBody renders the article content in reading order. Records without
// structured content fall back to the flat text and trailing image list.
func RenderBody(article *models.Article) string {
	if len(article.Content) > 0 {
		return renderContent(article.Content)
	}

	var blocks []string

	if article.Text != "" {
		blocks = append(blocks, article.Text)
	}

	for _, img := range article.Images {
		blocks = append(blocks, renderImage(img.URL, img.Alt))
	}

	return strings.Join(blocks, "\n\n") + "\n"
}

func renderContent(items []models.ContentItem) string {
	var blocks []string

	for _, item := range items {
		switch item.Type {
		case models.ContentText:
			blocks = append(blocks, item.Text)
		case models.ContentList:
			var sb strings.Builder
			for i, entry := range item.Items {
				if i > 0 {
					sb.WriteString("\n")
				}

				sb.WriteString("- " + entry)
			}

			blocks = append(blocks, sb.String())
		case models.ContentImage:
			blocks = append(blocks, renderImage(item.URL, item.Alt))
		}
	}

	return strings.Join(blocks, "\n\n") + "\n"
}

func renderImage(url, alt string) string {
	if alt == "" {
		alt = "image"
	}

	return fmt.Sprintf("![%s](%s)", alt, url)
}
