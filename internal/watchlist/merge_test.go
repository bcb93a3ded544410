package watchlist_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"moviewatch/internal/watchlist"
)

func TestApplyEnrichmentFillsOnlyMissingFields(t *testing.T) {
	movie := watchlist.NewMovie("Interstellar")
	movie.Plot = "my own notes"
	movie.Year = intPtr(2013)

	movie.ApplyEnrichment(watchlist.Enrichment{
		Year:      intPtr(2014),
		Plot:      "A team of explorers travel through a wormhole.",
		PosterURL: "https://image.tmdb.org/t/p/w500/poster.jpg",
	})

	if movie.Plot != "my own notes" {
		t.Fatalf("expected existing plot to survive, got %q", movie.Plot)
	}
	if *movie.Year != 2013 {
		t.Fatalf("expected existing year to survive, got %d", *movie.Year)
	}
	if movie.PosterURL != "https://image.tmdb.org/t/p/w500/poster.jpg" {
		t.Fatalf("expected poster to be filled, got %q", movie.PosterURL)
	}
	if movie.Title != "Interstellar" {
		t.Fatalf("title must never change, got %q", movie.Title)
	}
}

func TestApplyEnrichmentFillsUnsetPlot(t *testing.T) {
	movie := watchlist.NewMovie("Interstellar")
	movie.ApplyEnrichment(watchlist.Enrichment{Plot: "overview"})
	if movie.Plot != "overview" {
		t.Fatalf("expected plot from enrichment, got %q", movie.Plot)
	}
}

func TestApplyEnrichmentRuntimeClampsPosition(t *testing.T) {
	movie := watchlist.NewMovie("Interstellar")
	movie.Runtime = 180
	movie.WatchPosition = 175

	movie.ApplyEnrichment(watchlist.Enrichment{Runtime: intPtr(169)})
	if movie.Runtime != 169 {
		t.Fatalf("expected runtime overwrite, got %d", movie.Runtime)
	}
	if movie.WatchPosition != 169 {
		t.Fatalf("expected position clamped to 169, got %d", movie.WatchPosition)
	}

	movie.ApplyEnrichment(watchlist.Enrichment{})
	if movie.Runtime != 169 {
		t.Fatalf("absent runtime must keep previous value, got %d", movie.Runtime)
	}
}

func TestApplyEnrichmentAlwaysOverwritesRating(t *testing.T) {
	movie := watchlist.NewMovie("Interstellar")
	movie.VoteAverage = floatPtr(8.1)
	movie.VoteCount = intPtr(10)

	movie.ApplyEnrichment(watchlist.Enrichment{})
	if movie.VoteAverage != nil || movie.VoteCount != nil {
		t.Fatalf("expected rating cleared by absent values, got %v %v", movie.VoteAverage, movie.VoteCount)
	}

	movie.ApplyEnrichment(watchlist.Enrichment{VoteAverage: floatPtr(8.6), VoteCount: intPtr(34000)})
	if *movie.VoteAverage != 8.6 || *movie.VoteCount != 34000 {
		t.Fatalf("unexpected rating %v/%v", *movie.VoteAverage, *movie.VoteCount)
	}
}

func TestApplyEnrichmentReplacesProviders(t *testing.T) {
	movie := watchlist.NewMovie("Interstellar")
	movie.Providers = []watchlist.Provider{{ID: "old", Name: "Old", Kind: watchlist.KindBuy}}

	fresh := []watchlist.Provider{
		{ID: "a", Name: "Netflix", Kind: watchlist.KindFlatrate},
		{ID: "b", Name: "Apple TV", Kind: watchlist.KindRent},
	}
	movie.ApplyEnrichment(watchlist.Enrichment{Providers: fresh})
	if diff := cmp.Diff(fresh, movie.Providers); diff != "" {
		t.Fatalf("providers mismatch (-want +got):\n%s", diff)
	}

	fresh[0].Name = "mutated"
	if movie.Providers[0].Name != "Netflix" {
		t.Fatal("expected provider slice to be copied")
	}

	movie.ApplyEnrichment(watchlist.Enrichment{})
	if len(movie.Providers) != 0 {
		t.Fatalf("expected empty provider set, got %d", len(movie.Providers))
	}
}
