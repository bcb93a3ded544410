package catalog

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// FetchDetails fetches movie details by TMDB ID in the configured language.
func (c *Client) FetchDetails(ctx context.Context, movieID int64) (*MovieDetails, error) {
	if movieID <= 0 {
		return nil, fmt.Errorf("%w: movie id %d must be positive", ErrInvalidResponse, movieID)
	}
	endpoint := fmt.Sprintf("/movie/%d", movieID)
	params := url.Values{}
	params.Set("language", c.language)

	var payload detailsEnvelope
	if err := c.getJSON(ctx, endpoint, params, &payload); err != nil {
		return nil, err
	}
	if payload.ID == nil || payload.Title == nil {
		return nil, fmt.Errorf("%w: %s: missing id or title", ErrInvalidResponse, endpoint)
	}
	return &MovieDetails{
		ID:          *payload.ID,
		Title:       strings.TrimSpace(*payload.Title),
		Overview:    strings.TrimSpace(payload.Overview),
		PosterPath:  strings.TrimSpace(payload.PosterPath),
		ReleaseDate: strings.TrimSpace(payload.ReleaseDate),
		Runtime:     payload.Runtime,
		VoteAverage: payload.VoteAverage,
		VoteCount:   payload.VoteCount,
	}, nil
}

// FetchProviders fetches the watch-provider listings for every region.
func (c *Client) FetchProviders(ctx context.Context, movieID int64) (ProviderRegions, error) {
	if movieID <= 0 {
		return nil, fmt.Errorf("%w: movie id %d must be positive", ErrInvalidResponse, movieID)
	}
	endpoint := fmt.Sprintf("/movie/%d/watch/providers", movieID)

	var payload providersEnvelope
	if err := c.getJSON(ctx, endpoint, nil, &payload); err != nil {
		return nil, err
	}
	if payload.Results == nil {
		return nil, fmt.Errorf("%w: %s: missing results", ErrInvalidResponse, endpoint)
	}
	regions := make(ProviderRegions, len(payload.Results))
	for code, region := range payload.Results {
		var err error
		var out RegionProviders
		if out.Flatrate, err = providerEntries(endpoint, code, region.Flatrate); err != nil {
			return nil, err
		}
		if out.Rent, err = providerEntries(endpoint, code, region.Rent); err != nil {
			return nil, err
		}
		if out.Buy, err = providerEntries(endpoint, code, region.Buy); err != nil {
			return nil, err
		}
		regions[code] = out
	}
	return regions, nil
}

func providerEntries(endpoint, region string, items []providerPayload) ([]ProviderEntry, error) {
	if items == nil {
		return nil, nil
	}
	entries := make([]ProviderEntry, 0, len(items))
	for _, item := range items {
		if item.ProviderName == nil {
			return nil, fmt.Errorf("%w: %s: %s provider %d has no name", ErrInvalidResponse, endpoint, region, item.ProviderID)
		}
		entries = append(entries, ProviderEntry{
			ProviderID:   item.ProviderID,
			ProviderName: *item.ProviderName,
			LogoPath:     item.LogoPath,
		})
	}
	return entries, nil
}
