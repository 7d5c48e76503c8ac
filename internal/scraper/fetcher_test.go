package scraper

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsdesk/internal/config"
	"newsdesk/internal/logger"
)

func testScraperConfig() config.ScraperConfig {
	return config.ScraperConfig{
		OutputDir:   "out",
		Concurrency: 2,
		MaxBodyKb:   64,
		Retry: config.RetryPolicy{
			MaxAttempts:       3,
			InitialDelayMs:    1,
			MaxDelayMs:        10,
			BackoffMultiplier: 1.5,
			TimeoutSec:        5,
		},
	}
}

func testLogger() *logger.Logger {
	return logger.NewWithWriter(io.Discard, "error", "text")
}

func TestFetchRetriesForbidden(t *testing.T) {
	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusForbidden)

			return
		}

		_, _ = w.Write([]byte("<html>ok</html>"))
	}))
	defer server.Close()

	f := NewFetcher(testScraperConfig(), testLogger())

	body, err := f.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "<html>ok</html>", string(body))
	assert.Equal(t, int32(3), calls.Load())
}

func TestFetchDoesNotRetryNotFound(t *testing.T) {
	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	f := NewFetcher(testScraperConfig(), testLogger())

	_, err := f.Fetch(context.Background(), server.URL)
	require.ErrorIs(t, err, ErrUnexpectedStatusCode)
	assert.Equal(t, int32(1), calls.Load())
}

func TestFetchGivesUpAfterMaxAttempts(t *testing.T) {
	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	f := NewFetcher(testScraperConfig(), testLogger())

	_, err := f.Fetch(context.Background(), server.URL)
	require.ErrorIs(t, err, ErrUnexpectedStatusCode)
	assert.Equal(t, int32(3), calls.Load())
}

func TestFetchSendsBrowserHeaders(t *testing.T) {
	var userAgent string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userAgent = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	f := NewFetcher(testScraperConfig(), testLogger())

	_, err := f.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Contains(t, userAgent, "Mozilla/5.0")
}

func TestFetchCapsBodySize(t *testing.T) {
	cfg := testScraperConfig()
	cfg.MaxBodyKb = 1

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("x", 10*1024)))
	}))
	defer server.Close()

	f := NewFetcher(cfg, testLogger())

	body, err := f.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Len(t, body, 1024)
}
