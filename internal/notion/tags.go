package notion

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"newsdesk/internal/logger"
)

// ErrNoMultiSelect indicates a database without a usable multi-select
// property.
var ErrNoMultiSelect = errors.New("no multi-select property found")

// ErrAmbiguousMultiSelect indicates several multi-select properties when
// none was named.
var ErrAmbiguousMultiSelect = errors.New("multiple multi-select properties found")

// TagSource reads tag values out of a Notion database.
type TagSource struct {
	client Client
	log    *logger.Logger
}

// NewTagSource creates a tag source over the given client.
func NewTagSource(client Client, log *logger.Logger) *TagSource {
	return &TagSource{client: client, log: log}
}

// FindMultiSelectProperty resolves the multi-select property to collect
// from. An explicit name wins; otherwise a single multi-select property is
// picked automatically.
func (t *TagSource) FindMultiSelectProperty(ctx context.Context, databaseID, name string) (string, error) {
	db, err := t.client.RetrieveDatabase(ctx, databaseID)
	if err != nil {
		return "", err
	}

	if name != "" {
		schema, ok := db.Properties[name]
		if !ok || schema.Type != "multi_select" {
			return "", fmt.Errorf("%w: %q is not a multi-select property", ErrNoMultiSelect, name)
		}

		return name, nil
	}

	var candidates []string

	for propName, schema := range db.Properties {
		if schema.Type == "multi_select" {
			candidates = append(candidates, propName)
		}
	}

	switch len(candidates) {
	case 0:
		return "", ErrNoMultiSelect
	case 1:
		t.log.Info("using multi-select property", "property", candidates[0])

		return candidates[0], nil
	default:
		sort.Strings(candidates)

		return "", fmt.Errorf("%w: %v", ErrAmbiguousMultiSelect, candidates)
	}
}

// CollectTags walks the whole database and returns the distinct values of
// the multi-select property, sorted.
func (t *TagSource) CollectTags(ctx context.Context, databaseID, property string) ([]string, error) {
	pages, err := t.client.QueryDatabase(ctx, databaseID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to collect tags: %w", err)
	}

	seen := make(map[string]struct{})

	var tags []string

	for _, page := range pages {
		prop, ok := page.Properties[property]
		if !ok {
			continue
		}

		for _, opt := range prop.MultiSelect {
			if _, dup := seen[opt.Name]; dup || opt.Name == "" {
				continue
			}

			seen[opt.Name] = struct{}{}
			tags = append(tags, opt.Name)
		}
	}

	sort.Strings(tags)

	t.log.Info("collected tags", "count", len(tags), "pages", len(pages))

	return tags, nil
}
