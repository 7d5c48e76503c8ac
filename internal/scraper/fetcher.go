package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/cenkalti/backoff/v4"

	"newsdesk/internal/config"
	"newsdesk/internal/logger"
)

// ErrUnexpectedStatusCode indicates an HTTP response with unexpected status.
var ErrUnexpectedStatusCode = errors.New("unexpected status code")

// Fetcher downloads pages with browser-like headers and retries transient
// failures with exponential backoff.
type Fetcher struct {
	client  *http.Client
	retry   config.RetryPolicy
	maxBody int64
	log     *logger.Logger
}

// NewFetcher creates a fetcher from the scraper config.
func NewFetcher(cfg config.ScraperConfig, log *logger.Logger) *Fetcher {
	return &Fetcher{
		client:  &http.Client{Timeout: cfg.Retry.Timeout()},
		retry:   cfg.Retry,
		maxBody: int64(cfg.MaxBodyKb) * 1024,
		log:     log,
	}
}

// Fetch downloads the given URL and returns the body, capped at the
// configured size.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	var body []byte

	attempt := 0

	op := func() error {
		attempt++

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
		}

		setBrowserHeaders(req)

		resp, err := f.client.Do(req)
		if err != nil {
			f.log.Debug("request failed", "url", rawURL, "attempt", attempt, "error", err)

			return fmt.Errorf("request failed: %w", err)
		}

		defer func() {
			_ = resp.Body.Close()
		}()

		if resp.StatusCode != http.StatusOK {
			statusErr := fmt.Errorf("%w: %d", ErrUnexpectedStatusCode, resp.StatusCode)
			if isRetryableStatus(resp.StatusCode) {
				f.log.Debug("retryable status", "url", rawURL, "status", resp.StatusCode, "attempt", attempt)

				return statusErr
			}

			return backoff.Permanent(statusErr)
		}

		data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBody))
		if err != nil {
			return fmt.Errorf("failed to read response body: %w", err)
		}

		body = data

		return nil
	}

	if err := backoff.Retry(op, backoff.WithContext(f.retry.Backoff(), ctx)); err != nil {
		return nil, fmt.Errorf("fetch %s: %w", rawURL, err)
	}

	return body, nil
}

// setBrowserHeaders mimics a desktop browser. Several of the supported sites
// answer plain Go clients with 403.
func setBrowserHeaders(req *http.Request) {
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9,ru;q=0.8")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Upgrade-Insecure-Requests", "1")
}

// isRetryableStatus determines if a fetch should be retried for this status.
// 403 is included: the bot walls on these sites frequently pass a later
// attempt through.
func isRetryableStatus(statusCode int) bool {
	switch statusCode {
	case http.StatusForbidden,
		http.StatusRequestTimeout,
		http.StatusTooManyRequests:
		return true
	}

	return statusCode >= http.StatusInternalServerError
}
