package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ContentItemType discriminates the content item union.
type ContentItemType string

// Content item types.
const (
	ContentText  ContentItemType = "text"
	ContentList  ContentItemType = "list"
	ContentImage ContentItemType = "image"
)

// ErrUnknownContentType indicates a content item with an unrecognized type tag.
var ErrUnknownContentType = errors.New("unknown content item type")

// ContentItem is one ordered unit of extracted article content: a paragraph,
// a bullet list, or an image reference. Exactly one payload is set depending
// on Type.
type ContentItem struct {
	Type  ContentItemType
	Text  string
	Items []string
	URL   string
	Alt   string
}

// TextItem creates a paragraph content item.
func TextItem(text string) ContentItem {
	return ContentItem{Type: ContentText, Text: text}
}

// ListItem creates a bullet-list content item.
func ListItem(items []string) ContentItem {
	return ContentItem{Type: ContentList, Items: items}
}

// ImageItem creates an image content item.
func ImageItem(url, alt string) ContentItem {
	return ContentItem{Type: ContentImage, URL: url, Alt: alt}
}

// MarshalJSON serializes the union as a tagged object. Text and list items
// share the "content" key; images carry "url" and "alt".
func (c ContentItem) MarshalJSON() ([]byte, error) {
	switch c.Type {
	case ContentText:
		return json.Marshal(struct {
			Type    ContentItemType `json:"type"`
			Content string          `json:"content"`
		}{c.Type, c.Text})
	case ContentList:
		return json.Marshal(struct {
			Type    ContentItemType `json:"type"`
			Content []string        `json:"content"`
		}{c.Type, c.Items})
	case ContentImage:
		return json.Marshal(struct {
			Type ContentItemType `json:"type"`
			URL  string          `json:"url"`
			Alt  string          `json:"alt"`
		}{c.Type, c.URL, c.Alt})
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownContentType, c.Type)
	}
}

// UnmarshalJSON restores the union from its tagged form.
func (c *ContentItem) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type    ContentItemType `json:"type"`
		Content json.RawMessage `json:"content"`
		URL     string          `json:"url"`
		Alt     string          `json:"alt"`
	}

	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	c.Type = raw.Type

	switch raw.Type {
	case ContentText:
		return json.Unmarshal(raw.Content, &c.Text)
	case ContentList:
		return json.Unmarshal(raw.Content, &c.Items)
	case ContentImage:
		c.URL = raw.URL
		c.Alt = raw.Alt

		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownContentType, raw.Type)
	}
}
