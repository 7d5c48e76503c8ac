package notion

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsdesk/internal/config"
	"newsdesk/internal/logger"
)

func testLogger() *logger.Logger {
	return logger.NewWithWriter(io.Discard, "error", "text")
}

func testClient(serverURL string) *HTTPClient {
	cfg := config.NotionConfig{Token: "secret-token", Version: "2022-06-28"}

	return NewClient(cfg, testLogger()).WithBaseURL(serverURL)
}

func TestQueryDatabasePagination(t *testing.T) {
	var cursors []string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))
		assert.Equal(t, "2022-06-28", r.Header.Get("Notion-Version"))
		assert.Equal(t, "/databases/db1/query", r.URL.Path)

		var q DatabaseQuery
		require.NoError(t, json.NewDecoder(r.Body).Decode(&q))
		cursors = append(cursors, q.StartCursor)

		resp := queryResponse{Results: []Page{{ID: "p" + q.StartCursor}}}
		if q.StartCursor == "" {
			resp.HasMore = true
			resp.NextCursor = "c2"
		}

		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	pages, err := testClient(server.URL).QueryDatabase(context.Background(), "db1", nil)
	require.NoError(t, err)
	assert.Len(t, pages, 2)
	assert.Equal(t, []string{"", "c2"}, cursors)
}

func TestCreatePage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/pages", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		_ = json.NewEncoder(w).Encode(Page{ID: "page-id", URL: "https://notion.so/page-id"})
	}))
	defer server.Close()

	page, err := testClient(server.URL).CreatePage(context.Background(), &CreatePageRequest{
		Parent:     Parent{DatabaseID: "db1"},
		Properties: map[string]Property{"Name": TitleProperty("hello")},
	})
	require.NoError(t, err)
	assert.Equal(t, "page-id", page.ID)
}

func TestAPIErrorSurfacesMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code":"validation_error","message":"body failed validation"}`))
	}))
	defer server.Close()

	_, err := testClient(server.URL).RetrieveDatabase(context.Background(), "db1")
	require.ErrorIs(t, err, ErrAPIError)
	assert.Contains(t, err.Error(), "body failed validation")
}

func TestAppendBlockChildrenBatches(t *testing.T) {
	var batchSizes []int

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)

		var req appendBlocksRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		batchSizes = append(batchSizes, len(req.Children))

		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	blocks := make([]Block, 150)
	for i := range blocks {
		blocks[i] = ParagraphBlock("x")
	}

	err := testClient(server.URL).AppendBlockChildren(context.Background(), "block1", blocks)
	require.NoError(t, err)
	assert.Equal(t, []int{100, 50}, batchSizes)
}

func TestListBlockChildrenPagination(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := blockListResponse{Results: []Block{{Type: "paragraph"}}}
		if r.URL.Query().Get("start_cursor") == "" {
			resp.HasMore = true
			resp.NextCursor = "next"
		}

		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	blocks, err := testClient(server.URL).ListBlockChildren(context.Background(), "block1")
	require.NoError(t, err)
	assert.Len(t, blocks, 2)
}
