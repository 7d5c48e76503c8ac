package notion

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsdesk/internal/models"
)

func TestWeekTitle(t *testing.T) {
	assert.Equal(t, "AI Digest - Week 12 2024", WeekTitle(2024, 12))
}

func TestWeekRange(t *testing.T) {
	tests := []struct {
		year, week int
		monday     string
		sunday     string
	}{
		{2024, 1, "2024-01-01", "2024-01-07"},
		{2024, 12, "2024-03-18", "2024-03-24"},
		{2026, 1, "2025-12-29", "2026-01-04"},
	}

	for _, tt := range tests {
		from, to := WeekRange(tt.year, tt.week)
		assert.Equal(t, tt.monday, from.Format("2006-01-02"))
		assert.Equal(t, tt.sunday, to.Format("2006-01-02"))

		// Round-trips through Go's ISO week calculation.
		y, w := from.ISOWeek()
		assert.Equal(t, tt.year, y)
		assert.Equal(t, tt.week, w)
	}
}

func TestCreateWeekPage(t *testing.T) {
	fake := newFakeClient()
	d := NewDigest(fake, testLogger())

	page, err := d.CreateWeekPage(context.Background(), Parent{PageID: "parent"}, 2024, 12)
	require.NoError(t, err)
	assert.Equal(t, "fake-page", page.ID)

	require.Len(t, fake.createdPages, 1)
	req := fake.createdPages[0]
	assert.Equal(t, "parent", req.Parent.PageID)
	assert.Equal(t, "AI Digest - Week 12 2024", req.Properties["title"].Title[0].Text.Content)

	// Section scaffolding lands on the new page.
	sections := fake.appendedBlocks[page.ID]
	require.NotEmpty(t, sections)
	assert.Equal(t, "heading_1", sections[0].Type)

	toggles := 0
	for _, b := range sections {
		if b.Type == "toggle" {
			toggles++
		}
	}

	assert.Equal(t, len(digestPrompts), toggles)
}

func TestCreateWeekPagePopulatesToggles(t *testing.T) {
	fake := newFakeClient()
	fake.listChildren = map[string][]Block{
		"fake-page": {
			{ID: "h1", Type: "heading_1"},
			{ID: "t1", Type: "toggle"},
			{ID: "t2", Type: "toggle"},
			{ID: "t3", Type: "toggle"},
			{ID: "t4", Type: "toggle"},
			{ID: "h2", Type: "heading_1"},
		},
	}

	d := NewDigest(fake, testLogger())

	_, err := d.CreateWeekPage(context.Background(), Parent{PageID: "parent"}, 2024, 12)
	require.NoError(t, err)

	// Each toggle receives its prompt paragraph, in page order.
	for i, id := range []string{"t1", "t2", "t3", "t4"} {
		blocks := fake.appendedBlocks[id]
		require.Len(t, blocks, 1, "toggle %s", id)
		assert.Equal(t, "paragraph", blocks[0].Type)
		assert.Equal(t, digestPrompts[i].body, blocks[0].Paragraph.RichText[0].Text.Content)
	}

	// Non-toggle blocks are left alone.
	assert.Empty(t, fake.appendedBlocks["h1"])
}

func TestCreateWeekPageDatabaseParent(t *testing.T) {
	fake := newFakeClient()
	d := NewDigest(fake, testLogger())

	_, err := d.CreateWeekPage(context.Background(), Parent{DatabaseID: "db"}, 2024, 12)
	require.NoError(t, err)

	req := fake.createdPages[0]
	_, hasName := req.Properties["Name"]
	assert.True(t, hasName)
}

func TestFetchNewsRecords(t *testing.T) {
	fake := newFakeClient()
	fake.queryPages = []Page{
		{
			ID: "1",
			Properties: map[string]Property{
				"Name": {Title: []RichText{{PlainText: "Story one"}}},
				"URL":  {URL: "https://example.com/1"},
				"Date": {Date: &DateValue{Start: "2024-03-19"}},
			},
		},
		{
			ID: "2",
			Properties: map[string]Property{
				"Name": {Title: []RichText{}},
			},
		},
	}

	d := NewDigest(fake, testLogger())

	from, to := WeekRange(2024, 12)

	records, err := d.FetchNewsRecords(context.Background(), "db", from, to)
	require.NoError(t, err)

	// Nameless records are dropped.
	require.Len(t, records, 1)
	assert.Equal(t, models.NewsRecord{Name: "Story one", URL: "https://example.com/1", Date: "2024-03-19"}, records[0])
}

func TestAggregateByDate(t *testing.T) {
	records := []models.NewsRecord{
		{Name: "a", Date: "2024-03-19"},
		{Name: "b", Date: "2024-03-20"},
		{Name: "c", Date: "2024-03-19"},
	}

	dates, byDate := AggregateByDate(records)

	assert.Equal(t, []string{"2024-03-20", "2024-03-19"}, dates)
	assert.Len(t, byDate["2024-03-19"], 2)
	assert.Equal(t, "a", byDate["2024-03-19"][0].Name)
}

func TestAppendDraft(t *testing.T) {
	fake := newFakeClient()
	d := NewDigest(fake, testLogger())

	records := []models.NewsRecord{
		{Name: "Linked", URL: "https://example.com/1", Date: "2024-03-19"},
		{Name: "Plain", Date: "2024-03-19"},
	}

	require.NoError(t, d.AppendDraft(context.Background(), "page", records))

	blocks := fake.appendedBlocks["page"]
	require.Len(t, blocks, 3)
	assert.Equal(t, "heading_3", blocks[0].Type)
	assert.Equal(t, "19.03.2024", blocks[0].HeadingThree.RichText[0].Text.Content)
	assert.Equal(t, "paragraph", blocks[1].Type)
	assert.Equal(t, "https://example.com/1", blocks[1].Paragraph.RichText[0].Text.Link.URL)
	assert.Equal(t, "bulleted_list_item", blocks[2].Type)
}

func TestAppendDraftEmpty(t *testing.T) {
	fake := newFakeClient()
	d := NewDigest(fake, testLogger())

	require.NoError(t, d.AppendDraft(context.Background(), "page", nil))
	require.Len(t, fake.appendedBlocks["page"], 1)
	assert.Equal(t, "paragraph", fake.appendedBlocks["page"][0].Type)
}

func TestWeekRangeMatchesNow(t *testing.T) {
	now := time.Now().UTC()
	y, w := now.ISOWeek()

	from, to := WeekRange(y, w)
	assert.False(t, now.Before(from))
	assert.False(t, now.After(to.AddDate(0, 0, 1)))
}
