// Package feeds discovers fresh article URLs from RSS feeds of the
// supported sites.
package feeds

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/mmcdole/gofeed"

	"newsdesk/internal/logger"
	"newsdesk/internal/models"
	"newsdesk/internal/scraper/sites"
)

const filePerm = 0o644

// Discoverer pulls article links out of configured feeds.
type Discoverer struct {
	parser *gofeed.Parser
	log    *logger.Logger
}

// NewDiscoverer creates a discoverer.
func NewDiscoverer(log *logger.Logger) *Discoverer {
	return &Discoverer{parser: gofeed.NewParser(), log: log}
}

// Discover fetches every feed and returns the links pointing at supported
// sites, deduplicated, newest feeds first in input order.
func (d *Discoverer) Discover(ctx context.Context, feedURLs []string) ([]string, error) {
	var links []string

	seen := make(map[string]struct{})

	var lastErr error

	for _, feedURL := range feedURLs {
		feed, err := d.parser.ParseURLWithContext(feedURL, ctx)
		if err != nil {
			d.log.Error("feed fetch failed", "feed", feedURL, "error", err)
			lastErr = err

			continue
		}

		count := 0

		for _, item := range feed.Items {
			link := strings.TrimSpace(item.Link)
			if link == "" {
				continue
			}

			if sites.Detect(link) == models.SiteGeneric {
				continue
			}

			if _, dup := seen[link]; dup {
				continue
			}

			seen[link] = struct{}{}
			links = append(links, link)
			count++
		}

		d.log.Info("feed parsed", "feed", feedURL, "items", len(feed.Items), "accepted", count)
	}

	if len(links) == 0 && lastErr != nil {
		return nil, fmt.Errorf("all feeds failed: %w", lastErr)
	}

	return links, nil
}

// MergeURLFile appends the links missing from the URL file, creating it if
// needed. Returns the number of links added.
func MergeURLFile(path string, links []string) (int, error) {
	existing := make(map[string]struct{})

	content := ""

	if data, err := os.ReadFile(path); err == nil {
		content = string(data)

		for _, line := range strings.Split(content, "\n") {
			if u := strings.TrimSpace(line); u != "" {
				existing[u] = struct{}{}
			}
		}
	} else if !os.IsNotExist(err) {
		return 0, fmt.Errorf("failed to read URL file: %w", err)
	}

	var fresh []string

	for _, link := range links {
		if _, ok := existing[link]; !ok {
			fresh = append(fresh, link)
		}
	}

	if len(fresh) == 0 {
		return 0, nil
	}

	if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}

	content += strings.Join(fresh, "\n") + "\n"

	if err := os.WriteFile(path, []byte(content), filePerm); err != nil {
		return 0, fmt.Errorf("failed to write URL file: %w", err)
	}

	return len(fresh), nil
}
