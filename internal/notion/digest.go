package notion

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"newsdesk/internal/logger"
	"newsdesk/internal/models"
)

// Digest builds the weekly digest page and pulls the news records that feed
// its draft.
type Digest struct {
	client Client
	log    *logger.Logger
}

// NewDigest creates a digest builder over the given client.
func NewDigest(client Client, log *logger.Logger) *Digest {
	return &Digest{client: client, log: log}
}

// WeekTitle names the digest page for an ISO week.
func WeekTitle(year, week int) string {
	return fmt.Sprintf("AI Digest - Week %d %d", week, year)
}

// WeekRange returns the Monday and Sunday of an ISO week.
func WeekRange(year, week int) (time.Time, time.Time) {
	// January 4th is always inside ISO week 1.
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)

	weekday := int(jan4.Weekday())
	if weekday == 0 {
		weekday = 7
	}

	monday := jan4.AddDate(0, 0, 1-weekday).AddDate(0, 0, (week-1)*7)

	return monday, monday.AddDate(0, 0, 6)
}

// digestPrompts seed the page's toggle blocks with the working prompts used
// when editing the draft. Each toggle gets one prompt paragraph.
var digestPrompts = []struct {
	title string
	body  string
}{
	{
		"Text normalization prompt",
		"The input is a list of news items, each with a title, a link and a date. " +
			"Aggregate the items by date: a date heading followed by that date's news list. " +
			"Keep the original titles unchanged, embed each link inside its title, " +
			"and render dates in the dotted format.",
	},
	{
		"Translation prompt",
		"The input is a list of news items, each with a title, a link and a date. " +
			"Aggregate the items by date, embed each link inside its title, " +
			"and render dates in the dotted format. Translate the titles into Russian. " +
			"The translation should convey the substance of each article and read " +
			"naturally rather than literally.",
	},
	{
		"Intro paragraph prompt",
		"Now write an opening paragraph for the digest. Briefly highlight three " +
			"news items picked from different dates of the digest.",
	},
	{
		"Topic title prompt",
		"Come up with the most precise title for this article, one that conveys " +
			"its substance as transparently as possible.",
	},
}

// CreateWeekPage creates the digest page with its Research, Notes, and
// Draft sections. The prompt toggles are created empty and filled in a
// second pass, since the create payload cannot address them by block ID.
// The title property key differs between page and database parents.
func (d *Digest) CreateWeekPage(ctx context.Context, parent Parent, year, week int) (*Page, error) {
	titleKey := "Name"
	if parent.PageID != "" {
		titleKey = "title"
	}

	req := &CreatePageRequest{
		Parent: parent,
		Properties: map[string]Property{
			titleKey: TitleProperty(WeekTitle(year, week)),
		},
	}

	page, err := d.client.CreatePage(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create digest page: %w", err)
	}

	sections := []Block{
		HeadingBlock(1, "Research"),
		ParagraphBlock(""),
		HeadingBlock(1, "Notes"),
	}

	for _, prompt := range digestPrompts {
		sections = append(sections, ToggleBlock(prompt.title))
	}

	sections = append(sections, HeadingBlock(1, "Draft"))

	if err := d.client.AppendBlockChildren(ctx, page.ID, sections); err != nil {
		return nil, fmt.Errorf("failed to lay out digest page: %w", err)
	}

	if err := d.populateToggles(ctx, page.ID); err != nil {
		return nil, err
	}

	d.log.Info("created digest page", "title", WeekTitle(year, week), "id", page.ID)

	return page, nil
}

// populateToggles fills the page's toggle blocks with their prompts, in
// page order.
func (d *Digest) populateToggles(ctx context.Context, pageID string) error {
	children, err := d.client.ListBlockChildren(ctx, pageID)
	if err != nil {
		return fmt.Errorf("failed to list digest blocks: %w", err)
	}

	next := 0

	for _, block := range children {
		if block.Type != "toggle" || block.ID == "" {
			continue
		}

		if next >= len(digestPrompts) {
			break
		}

		prompt := ParagraphBlock(digestPrompts[next].body)
		next++

		if err := d.client.AppendBlockChildren(ctx, block.ID, []Block{prompt}); err != nil {
			return fmt.Errorf("failed to populate toggle: %w", err)
		}
	}

	return nil
}

// FetchNewsRecords queries the news database for records inside the date
// range, newest first.
func (d *Digest) FetchNewsRecords(ctx context.Context, databaseID string, from, to time.Time) ([]models.NewsRecord, error) {
	filter, err := dateRangeFilter("Date", from, to)
	if err != nil {
		return nil, err
	}

	query := &DatabaseQuery{
		Filter: filter,
		Sorts:  []Sort{{Property: "Date", Direction: "descending"}},
	}

	pages, err := d.client.QueryDatabase(ctx, databaseID, query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch news records: %w", err)
	}

	records := make([]models.NewsRecord, 0, len(pages))

	for _, page := range pages {
		record := models.NewsRecord{}

		if prop, ok := page.Properties["Name"]; ok {
			record.Name = PlainText(prop.Title)
		}

		if prop, ok := page.Properties["URL"]; ok {
			record.URL = prop.URL
		}

		if prop, ok := page.Properties["Date"]; ok && prop.Date != nil {
			record.Date = prop.Date.Start
		}

		if record.Name == "" {
			continue
		}

		records = append(records, record)
	}

	return records, nil
}

// AggregateByDate groups records by their date, returning dates newest
// first with each date's records in query order.
func AggregateByDate(records []models.NewsRecord) ([]string, map[string][]models.NewsRecord) {
	byDate := make(map[string][]models.NewsRecord)

	var dates []string

	for _, r := range records {
		date := r.Date
		if date == "" {
			date = "undated"
		}

		if _, ok := byDate[date]; !ok {
			dates = append(dates, date)
		}

		byDate[date] = append(byDate[date], r)
	}

	sort.Sort(sort.Reverse(sort.StringSlice(dates)))

	return dates, byDate
}

// AppendDraft appends the aggregated news under the page's Draft section as
// date headings with linked bullet lists.
func (d *Digest) AppendDraft(ctx context.Context, pageID string, records []models.NewsRecord) error {
	dates, byDate := AggregateByDate(records)

	var blocks []Block

	for _, date := range dates {
		blocks = append(blocks, HeadingBlock(3, digestDate(date)))

		for _, r := range byDate[date] {
			if r.URL != "" {
				blocks = append(blocks, LinkParagraphBlock(r.Name, r.URL))
			} else {
				blocks = append(blocks, BulletBlock(r.Name))
			}
		}
	}

	if len(blocks) == 0 {
		blocks = append(blocks, ParagraphBlock("No news collected this week."))
	}

	if err := d.client.AppendBlockChildren(ctx, pageID, blocks); err != nil {
		return fmt.Errorf("failed to append draft: %w", err)
	}

	return nil
}

// digestDate renders an ISO date as DD.MM.YYYY for the draft headings.
// Non-dates pass through.
func digestDate(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}

	return t.Format("02.01.2006")
}

// dateRangeFilter builds an and-filter constraining a date property to the
// inclusive range.
func dateRangeFilter(property string, from, to time.Time) (json.RawMessage, error) {
	type dateCond struct {
		OnOrAfter  string `json:"on_or_after,omitempty"`
		OnOrBefore string `json:"on_or_before,omitempty"`
	}

	type propFilter struct {
		Property string   `json:"property"`
		Date     dateCond `json:"date"`
	}

	filter := struct {
		And []propFilter `json:"and"`
	}{
		And: []propFilter{
			{Property: property, Date: dateCond{OnOrAfter: from.Format("2006-01-02")}},
			{Property: property, Date: dateCond{OnOrBefore: to.Format("2006-01-02")}},
		},
	}

	data, err := json.Marshal(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to build date filter: %w", err)
	}

	return data, nil
}
