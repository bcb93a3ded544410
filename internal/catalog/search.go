package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/patrickmn/go-cache"
)

// Search looks up movies by title in the configured response language. Adult
// titles are excluded and only the first page is requested. An empty result
// list is not an error.
func (c *Client) Search(ctx context.Context, title string) ([]SearchResult, error) {
	return c.searchMovies(ctx, title, c.language)
}

// SearchTitles backs live search. It always asks for DefaultLanguage and may
// serve a cached response for an identical query.
func (c *Client) SearchTitles(ctx context.Context, query string) ([]SearchResult, error) {
	key := DefaultLanguage + "|" + strings.ToLower(strings.TrimSpace(query))
	if c.searchCache != nil {
		if cached, ok := c.searchCache.Get(key); ok {
			if results, ok := cached.([]SearchResult); ok {
				c.logger.Debug("tmdb search cache hit", slog.String("query", query))
				return cloneResults(results), nil
			}
		}
	}

	results, err := c.searchMovies(ctx, query, DefaultLanguage)
	if err != nil {
		return nil, err
	}
	if c.searchCache != nil {
		c.searchCache.Set(key, cloneResults(results), cache.DefaultExpiration)
	}
	return results, nil
}

func (c *Client) searchMovies(ctx context.Context, title, language string) ([]SearchResult, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return []SearchResult{}, nil
	}

	params := url.Values{}
	params.Set("query", title)
	params.Set("include_adult", "false")
	params.Set("language", language)
	params.Set("page", "1")

	var payload searchEnvelope
	if err := c.getJSON(ctx, "/search/movie", params, &payload); err != nil {
		return nil, err
	}
	if payload.Results == nil {
		return nil, fmt.Errorf("%w: /search/movie: missing results", ErrInvalidResponse)
	}
	results := make([]SearchResult, 0, len(*payload.Results))
	for i, item := range *payload.Results {
		if item.ID == nil || *item.ID <= 0 {
			return nil, fmt.Errorf("%w: /search/movie: result %d has no id", ErrInvalidResponse, i)
		}
		results = append(results, SearchResult{
			ID:          *item.ID,
			Title:       strings.TrimSpace(item.Title),
			ReleaseDate: item.ReleaseDate,
			PosterPath:  item.PosterPath,
		})
	}
	return results, nil
}

func cloneResults(results []SearchResult) []SearchResult {
	out := make([]SearchResult, len(results))
	copy(out, results)
	return out
}
