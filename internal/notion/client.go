// Package notion is a minimal Notion REST API client covering page creation,
// database queries, and block manipulation for the import pipeline.
package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"newsdesk/internal/config"
	"newsdesk/internal/logger"
)

const (
	baseURL = "https://api.notion.com/v1"

	defaultTimeout  = 30 * time.Second
	maxResponseSize = 10 << 20

	pageSize = 100
)

// ErrAPIError indicates a non-2xx response from the Notion API.
var ErrAPIError = errors.New("notion API error")

// Client talks to the Notion REST API.
type Client interface {
	CreatePage(ctx context.Context, req *CreatePageRequest) (*Page, error)
	QueryDatabase(ctx context.Context, databaseID string, query *DatabaseQuery) ([]Page, error)
	RetrieveDatabase(ctx context.Context, databaseID string) (*Database, error)
	ListBlockChildren(ctx context.Context, blockID string) ([]Block, error)
	AppendBlockChildren(ctx context.Context, blockID string, children []Block) error
}

// HTTPClient implements Client over net/http.
type HTTPClient struct {
	httpClient *http.Client
	token      string
	version    string
	baseURL    string
	log        *logger.Logger
}

var _ Client = (*HTTPClient)(nil)

// NewClient creates a client from the Notion config.
func NewClient(cfg config.NotionConfig, log *logger.Logger) *HTTPClient {
	return &HTTPClient{
		httpClient: &http.Client{Timeout: defaultTimeout},
		token:      cfg.Token,
		version:    cfg.Version,
		baseURL:    baseURL,
		log:        log,
	}
}

// WithBaseURL overrides the API endpoint. Used by tests.
func (c *HTTPClient) WithBaseURL(u string) *HTTPClient {
	c.baseURL = u

	return c
}

// CreatePage creates a page in a database or under a parent page.
func (c *HTTPClient) CreatePage(ctx context.Context, req *CreatePageRequest) (*Page, error) {
	var page Page
	if err := c.do(ctx, http.MethodPost, "/pages", req, &page); err != nil {
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	return &page, nil
}

// QueryDatabase runs a database query and follows cursor pagination until
// all pages are collected.
func (c *HTTPClient) QueryDatabase(ctx context.Context, databaseID string, query *DatabaseQuery) ([]Page, error) {
	var pages []Page

	q := DatabaseQuery{}
	if query != nil {
		q = *query
	}

	q.PageSize = pageSize

	for {
		var resp queryResponse
		if err := c.do(ctx, http.MethodPost, "/databases/"+databaseID+"/query", &q, &resp); err != nil {
			return nil, fmt.Errorf("failed to query database: %w", err)
		}

		pages = append(pages, resp.Results...)

		if !resp.HasMore || resp.NextCursor == "" {
			return pages, nil
		}

		q.StartCursor = resp.NextCursor
	}
}

// RetrieveDatabase fetches a database's schema.
func (c *HTTPClient) RetrieveDatabase(ctx context.Context, databaseID string) (*Database, error) {
	var db Database
	if err := c.do(ctx, http.MethodGet, "/databases/"+databaseID, nil, &db); err != nil {
		return nil, fmt.Errorf("failed to retrieve database: %w", err)
	}

	return &db, nil
}

// ListBlockChildren returns the direct children of a block or page,
// following pagination.
func (c *HTTPClient) ListBlockChildren(ctx context.Context, blockID string) ([]Block, error) {
	var blocks []Block

	cursor := ""

	for {
		path := fmt.Sprintf("/blocks/%s/children?page_size=%d", blockID, pageSize)
		if cursor != "" {
			path += "&start_cursor=" + cursor
		}

		var resp blockListResponse
		if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
			return nil, fmt.Errorf("failed to list block children: %w", err)
		}

		blocks = append(blocks, resp.Results...)

		if !resp.HasMore || resp.NextCursor == "" {
			return blocks, nil
		}

		cursor = resp.NextCursor
	}
}

// AppendBlockChildren appends blocks to a page or block, batching to the
// API's per-request limit.
func (c *HTTPClient) AppendBlockChildren(ctx context.Context, blockID string, children []Block) error {
	for start := 0; start < len(children); start += maxBlocksPerRequest {
		end := start + maxBlocksPerRequest
		if end > len(children) {
			end = len(children)
		}

		body := appendBlocksRequest{Children: children[start:end]}
		if err := c.do(ctx, http.MethodPatch, "/blocks/"+blockID+"/children", &body, nil); err != nil {
			return fmt.Errorf("failed to append blocks: %w", err)
		}
	}

	return nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader

	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}

		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Notion-Version", c.version)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		var apiErr struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		}

		if json.Unmarshal(data, &apiErr) == nil && apiErr.Message != "" {
			return fmt.Errorf("%w: %d %s: %s", ErrAPIError, resp.StatusCode, apiErr.Code, apiErr.Message)
		}

		return fmt.Errorf("%w: %d", ErrAPIError, resp.StatusCode)
	}

	if out == nil {
		return nil
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

type queryResponse struct {
	Results    []Page `json:"results"`
	NextCursor string `json:"next_cursor"`
	HasMore    bool   `json:"has_more"`
}

type blockListResponse struct {
	Results    []Block `json:"results"`
	NextCursor string  `json:"next_cursor"`
	HasMore    bool    `json:"has_more"`
}

type appendBlocksRequest struct {
	Children []Block `json:"children"`
}
