package catalog

import (
	"cmp"
	"slices"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/cases"

	"moviewatch/internal/watchlist"
)

// ProvidersFor projects the listings onto the configured watch region. A
// missing region yields an empty set.
func (c *Client) ProvidersFor(regions ProviderRegions) []watchlist.Provider {
	region, ok := regions[c.region]
	if !ok {
		return []watchlist.Provider{}
	}
	return MergeProviders(c.imageBaseURL, region)
}

// MergeProviders turns raw listings into provider records. Entries repeating
// a (name, kind) pair are dropped after the first occurrence. The result is
// ordered by kind priority, then by case-insensitive name, then by exact name.
func MergeProviders(imageBaseURL string, region RegionProviders) []watchlist.Provider {
	groups := []struct {
		kind    watchlist.Kind
		entries []ProviderEntry
	}{
		{watchlist.KindFlatrate, region.Flatrate},
		{watchlist.KindRent, region.Rent},
		{watchlist.KindBuy, region.Buy},
	}

	type keyed struct {
		provider watchlist.Provider
		folded   string
	}

	folder := cases.Fold()
	seen := make(map[string]struct{})
	merged := make([]keyed, 0, len(region.Flatrate)+len(region.Rent)+len(region.Buy))
	for _, group := range groups {
		for _, entry := range group.entries {
			name := strings.TrimSpace(entry.ProviderName)
			if name == "" {
				continue
			}
			provider := watchlist.Provider{
				Name:    name,
				LogoURL: ImageURL(imageBaseURL, SizeLogo, entry.LogoPath),
				Kind:    group.kind,
			}
			if _, dup := seen[provider.Key()]; dup {
				continue
			}
			seen[provider.Key()] = struct{}{}
			provider.ID = uuid.NewString()
			merged = append(merged, keyed{provider: provider, folded: folder.String(name)})
		}
	}

	slices.SortStableFunc(merged, func(a, b keyed) int {
		if c := cmp.Compare(a.provider.Kind.Priority(), b.provider.Kind.Priority()); c != 0 {
			return c
		}
		if c := cmp.Compare(a.folded, b.folded); c != 0 {
			return c
		}
		return cmp.Compare(a.provider.Name, b.provider.Name)
	})

	out := make([]watchlist.Provider, len(merged))
	for i, item := range merged {
		out[i] = item.provider
	}
	return out
}
