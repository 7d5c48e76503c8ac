package feeds

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsdesk/internal/logger"
)

const rssFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel>
<title>Test Feed</title>
<item><title>A</title><link>https://techcrunch.com/2024/03/15/a/</link></item>
<item><title>B</title><link>https://example.com/unsupported</link></item>
<item><title>C</title><link>https://habr.com/ru/articles/1/</link></item>
<item><title>Dup</title><link>https://techcrunch.com/2024/03/15/a/</link></item>
</channel></rss>`

func testLogger() *logger.Logger {
	return logger.NewWithWriter(io.Discard, "error", "text")
}

func TestDiscoverFiltersAndDedupes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(rssFeed))
	}))
	defer server.Close()

	d := NewDiscoverer(testLogger())

	links, err := d.Discover(context.Background(), []string{server.URL})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"https://techcrunch.com/2024/03/15/a/",
		"https://habr.com/ru/articles/1/",
	}, links)
}

func TestDiscoverAllFeedsFailing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	d := NewDiscoverer(testLogger())

	_, err := d.Discover(context.Background(), []string{server.URL})
	assert.Error(t, err)
}

func TestMergeURLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urls.txt")
	require.NoError(t, os.WriteFile(path, []byte("https://habr.com/ru/articles/1/\n"), 0o644))

	added, err := MergeURLFile(path, []string{
		"https://habr.com/ru/articles/1/",
		"https://techcrunch.com/2024/03/15/a/",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, added)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "https://habr.com/ru/articles/1/\nhttps://techcrunch.com/2024/03/15/a/\n", string(data))
}

func TestMergeURLFileCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urls.txt")

	added, err := MergeURLFile(path, []string{"https://vc.ru/ai/1-a"})
	require.NoError(t, err)
	assert.Equal(t, 1, added)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "https://vc.ru/ai/1-a\n", string(data))
}

func TestMergeURLFileNoNewLinks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urls.txt")
	require.NoError(t, os.WriteFile(path, []byte("https://vc.ru/ai/1-a\n"), 0o644))

	added, err := MergeURLFile(path, []string{"https://vc.ru/ai/1-a"})
	require.NoError(t, err)
	assert.Zero(t, added)
}
