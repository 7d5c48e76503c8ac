package notion

import (
	"strings"
)

const (
	// Rich text runs are capped by the API at 2000 characters.
	maxRichTextLength = 2000

	// Block children are appended at most 100 per request.
	maxBlocksPerRequest = 100
)

// Block is a Notion content block. Only the variants produced by the
// pipeline are modeled.
type Block struct {
	Object           string          `json:"object,omitempty"`
	ID               string          `json:"id,omitempty"`
	Type             string          `json:"type"`
	HasChildren      bool            `json:"has_children,omitempty"`
	Paragraph        *RichTextBlock  `json:"paragraph,omitempty"`
	HeadingOne       *RichTextBlock  `json:"heading_1,omitempty"`
	HeadingTwo       *RichTextBlock  `json:"heading_2,omitempty"`
	HeadingThree     *RichTextBlock  `json:"heading_3,omitempty"`
	BulletedListItem *RichTextBlock  `json:"bulleted_list_item,omitempty"`
	Toggle           *RichTextBlock  `json:"toggle,omitempty"`
	Image            *ImageBlock     `json:"image,omitempty"`
	Divider          *struct{}       `json:"divider,omitempty"`
}

// RichTextBlock is the shared payload of text-bearing block types.
type RichTextBlock struct {
	RichText []RichText `json:"rich_text"`
	Children []Block    `json:"children,omitempty"`
}

// ImageBlock is an external image block payload.
type ImageBlock struct {
	Type     string       `json:"type"`
	External *ExternalRef `json:"external,omitempty"`
}

// ExternalRef points at an externally hosted file.
type ExternalRef struct {
	URL string `json:"url"`
}

// ParagraphBlock builds a paragraph, splitting text that exceeds the rich
// text limit into multiple runs.
func ParagraphBlock(text string) Block {
	return Block{Object: "block", Type: "paragraph", Paragraph: &RichTextBlock{RichText: chunkText(text)}}
}

// HeadingBlock builds a heading of the given level (1 to 3).
func HeadingBlock(level int, text string) Block {
	b := Block{Object: "block"}
	payload := &RichTextBlock{RichText: chunkText(text)}

	switch level {
	case 1:
		b.Type = "heading_1"
		b.HeadingOne = payload
	case 2:
		b.Type = "heading_2"
		b.HeadingTwo = payload
	default:
		b.Type = "heading_3"
		b.HeadingThree = payload
	}

	return b
}

// BulletBlock builds a bulleted list item.
func BulletBlock(text string) Block {
	return Block{Object: "block", Type: "bulleted_list_item", BulletedListItem: &RichTextBlock{RichText: chunkText(text)}}
}

// ToggleBlock builds a toggle with optional children.
func ToggleBlock(text string, children ...Block) Block {
	return Block{Object: "block", Type: "toggle", Toggle: &RichTextBlock{RichText: chunkText(text), Children: children}}
}

// ExternalImageBlock builds an image block referencing an external URL.
func ExternalImageBlock(url string) Block {
	return Block{Object: "block", Type: "image", Image: &ImageBlock{Type: "external", External: &ExternalRef{URL: url}}}
}

// LinkParagraphBlock builds a paragraph holding a single hyperlink.
func LinkParagraphBlock(text, url string) Block {
	run := RichText{Type: "text", Text: &TextContent{Content: text, Link: &Link{URL: url}}}

	return Block{Object: "block", Type: "paragraph", Paragraph: &RichTextBlock{RichText: []RichText{run}}}
}

// MarkdownToBlocks converts a markdown article body into Notion blocks.
// Image links become external image blocks, heading lines become headings,
// dash bullets become list items, and everything else becomes paragraphs.
func MarkdownToBlocks(body string) []Block {
	var blocks []Block

	for _, block := range strings.Split(body, "\n\n") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}

		for _, line := range strings.Split(block, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}

			blocks = append(blocks, lineToBlock(line))
		}
	}

	return blocks
}

func lineToBlock(line string) Block {
	switch {
	case strings.HasPrefix(line, "!["):
		if url, ok := imageURL(line); ok {
			return ExternalImageBlock(url)
		}

		return ParagraphBlock(line)
	case strings.HasPrefix(line, "### "):
		return HeadingBlock(3, strings.TrimPrefix(line, "### "))
	case strings.HasPrefix(line, "## "):
		return HeadingBlock(2, strings.TrimPrefix(line, "## "))
	case strings.HasPrefix(line, "# "):
		return HeadingBlock(1, strings.TrimPrefix(line, "# "))
	case strings.HasPrefix(line, "- "):
		return BulletBlock(strings.TrimPrefix(line, "- "))
	case strings.HasPrefix(line, "* "):
		return BulletBlock(strings.TrimPrefix(line, "* "))
	case line == "---":
		return Block{Object: "block", Type: "divider", Divider: &struct{}{}}
	default:
		return ParagraphBlock(line)
	}
}

// imageURL extracts the URL of a markdown image link.
func imageURL(line string) (string, bool) {
	open := strings.Index(line, "](")
	if open < 0 {
		return "", false
	}

	end := strings.LastIndex(line, ")")
	if end <= open+2 {
		return "", false
	}

	url := strings.TrimSpace(line[open+2 : end])
	if !strings.HasPrefix(url, "http") {
		return "", false
	}

	return url, true
}

// chunkText splits text into rich text runs within the API limit.
func chunkText(text string) []RichText {
	if text == "" {
		return []RichText{}
	}

	var runs []RichText

	remaining := []rune(text)
	for len(remaining) > 0 {
		n := len(remaining)
		if n > maxRichTextLength {
			n = maxRichTextLength
		}

		runs = append(runs, textRun(string(remaining[:n])))
		remaining = remaining[n:]
	}

	return runs
}
