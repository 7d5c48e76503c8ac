package notion

import (
	"encoding/json"
	"strings"
)

// Parent identifies where a page lives.
type Parent struct {
	DatabaseID string `json:"database_id,omitempty"`
	PageID     string `json:"page_id,omitempty"`
}

// Page is a Notion page as returned by the API.
type Page struct {
	ID         string              `json:"id"`
	URL        string              `json:"url,omitempty"`
	Properties map[string]Property `json:"properties,omitempty"`
}

// Database is a database schema.
type Database struct {
	ID         string                    `json:"id"`
	Properties map[string]PropertySchema `json:"properties"`
}

// PropertySchema describes one database property.
type PropertySchema struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

// Property is a property value on a page. Only the fields used by the
// pipeline are modeled.
type Property struct {
	Type        string         `json:"type,omitempty"`
	Title       []RichText     `json:"title,omitempty"`
	RichText    []RichText     `json:"rich_text,omitempty"`
	URL         string         `json:"url,omitempty"`
	Date        *DateValue     `json:"date,omitempty"`
	MultiSelect []SelectOption `json:"multi_select,omitempty"`
}

// DateValue is a date property payload.
type DateValue struct {
	Start string `json:"start"`
	End   string `json:"end,omitempty"`
}

// SelectOption is one option of a select or multi-select property.
type SelectOption struct {
	Name string `json:"name"`
}

// RichText is one run of text.
type RichText struct {
	Type      string       `json:"type,omitempty"`
	Text      *TextContent `json:"text,omitempty"`
	PlainText string       `json:"plain_text,omitempty"`
}

// TextContent is the text payload of a rich text run.
type TextContent struct {
	Content string `json:"content"`
	Link    *Link  `json:"link,omitempty"`
}

// Link is a hyperlink on a text run.
type Link struct {
	URL string `json:"url"`
}

// CreatePageRequest is the body for the page creation endpoint.
type CreatePageRequest struct {
	Parent     Parent              `json:"parent"`
	Properties map[string]Property `json:"properties"`
	Children   []Block             `json:"children,omitempty"`
}

// DatabaseQuery is the body for the database query endpoint.
type DatabaseQuery struct {
	Filter      json.RawMessage `json:"filter,omitempty"`
	Sorts       []Sort          `json:"sorts,omitempty"`
	StartCursor string          `json:"start_cursor,omitempty"`
	PageSize    int             `json:"page_size,omitempty"`
}

// Sort orders query results by a property.
type Sort struct {
	Property  string `json:"property"`
	Direction string `json:"direction"`
}

// TitleProperty builds a title property value.
func TitleProperty(text string) Property {
	return Property{Title: []RichText{textRun(text)}}
}

// URLProperty builds a URL property value.
func URLProperty(u string) Property {
	return Property{URL: u}
}

// DateProperty builds a date property value from an ISO date string.
func DateProperty(iso string) Property {
	return Property{Date: &DateValue{Start: iso}}
}

// PlainText joins the plain text of rich text runs.
func PlainText(runs []RichText) string {
	var sb strings.Builder

	for _, r := range runs {
		if r.PlainText != "" {
			sb.WriteString(r.PlainText)
		} else if r.Text != nil {
			sb.WriteString(r.Text.Content)
		}
	}

	return sb.String()
}

func textRun(text string) RichText {
	return RichText{Type: "text", Text: &TextContent{Content: text}}
}
