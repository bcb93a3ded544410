package catalog_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"moviewatch/internal/catalog"
	"moviewatch/internal/watchlist"
)

func TestMergeProvidersDedupesAndSorts(t *testing.T) {
	region := catalog.RegionProviders{
		Flatrate: []catalog.ProviderEntry{
			{ProviderName: "netflix", LogoPath: "/a.png"},
			{ProviderName: "Disney Plus"},
			{ProviderName: "netflix", LogoPath: "/dup.png"},
			{ProviderName: "Netflix"},
			{ProviderName: "  "},
		},
		Rent: []catalog.ProviderEntry{
			{ProviderName: "Apple TV"},
			{ProviderName: "amazon video"},
		},
		Buy: []catalog.ProviderEntry{
			{ProviderName: "Apple TV"},
			{ProviderName: "Apple TV"},
		},
	}

	got := catalog.MergeProviders("https://img.example/t/p", region)
	want := []watchlist.Provider{
		{Name: "Disney Plus", Kind: watchlist.KindFlatrate},
		{Name: "Netflix", Kind: watchlist.KindFlatrate},
		{Name: "netflix", LogoURL: "https://img.example/t/p/w92/a.png", Kind: watchlist.KindFlatrate},
		{Name: "amazon video", Kind: watchlist.KindRent},
		{Name: "Apple TV", Kind: watchlist.KindRent},
		{Name: "Apple TV", Kind: watchlist.KindBuy},
	}
	if diff := cmp.Diff(want, got, cmpopts.IgnoreFields(watchlist.Provider{}, "ID")); diff != "" {
		t.Fatalf("providers mismatch (-want +got):\n%s", diff)
	}

	ids := make(map[string]struct{}, len(got))
	for _, provider := range got {
		if provider.ID == "" {
			t.Fatalf("provider %q missing id", provider.Name)
		}
		ids[provider.ID] = struct{}{}
	}
	if len(ids) != len(got) {
		t.Fatalf("expected unique ids, got %d for %d providers", len(ids), len(got))
	}
}

func TestMergeProvidersIsDeterministic(t *testing.T) {
	region := catalog.RegionProviders{
		Flatrate: []catalog.ProviderEntry{{ProviderName: "b"}, {ProviderName: "B"}, {ProviderName: "a"}},
	}
	first := catalog.MergeProviders("", region)
	second := catalog.MergeProviders("", catalog.RegionProviders{
		Flatrate: []catalog.ProviderEntry{{ProviderName: "a"}, {ProviderName: "B"}, {ProviderName: "b"}},
	})
	if diff := cmp.Diff(first, second, cmpopts.IgnoreFields(watchlist.Provider{}, "ID")); diff != "" {
		t.Fatalf("order depends on input order (-first +second):\n%s", diff)
	}
}

func TestMergeProvidersEmpty(t *testing.T) {
	got := catalog.MergeProviders("", catalog.RegionProviders{})
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}
