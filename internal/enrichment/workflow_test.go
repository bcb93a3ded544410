package enrichment_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"moviewatch/internal/catalog"
	"moviewatch/internal/enrichment"
	"moviewatch/internal/logging"
	"moviewatch/internal/store"
	"moviewatch/internal/testsupport"
	"moviewatch/internal/watchlist"
)

var (
	_ enrichment.Catalog = (*catalog.Client)(nil)
	_ enrichment.Store   = (*store.Store)(nil)
)

func ptr[T any](v T) *T { return &v }

func interstellarFixture() testsupport.CatalogFixture {
	return testsupport.CatalogFixture{
		Search: map[string][]catalog.SearchResult{
			"Interstellar": {
				{ID: 157336, Title: "Interstellar", ReleaseDate: "2014-11-05", PosterPath: "/gEU2QniE6E77NI6lCU6MxlNBvIx.jpg"},
				{ID: 301959, Title: "Interstellar: Nolan's Odyssey"},
			},
		},
		Details: map[int64]catalog.MovieDetails{
			157336: {
				ID:          157336,
				Title:       "Interstellar",
				Overview:    "A team of explorers travel through a wormhole in space.",
				PosterPath:  "/gEU2QniE6E77NI6lCU6MxlNBvIx.jpg",
				ReleaseDate: "2014-11-05",
				Runtime:     ptr(169),
				VoteAverage: ptr(8.6),
				VoteCount:   ptr(34000),
			},
		},
		Providers: map[int64]catalog.ProviderRegions{
			157336: {
				"IT": {Flatrate: []catalog.ProviderEntry{{ProviderID: 8, ProviderName: "Netflix"}}},
				"US": {Rent: []catalog.ProviderEntry{{ProviderID: 2, ProviderName: "Apple TV"}}},
			},
		},
	}
}

type harness struct {
	server   *testsupport.CatalogServer
	store    *store.Store
	workflow *enrichment.Workflow
}

func newHarness(t *testing.T, fixture testsupport.CatalogFixture) harness {
	t.Helper()
	server := testsupport.NewCatalogServer(t, fixture)
	cfg := testsupport.NewConfig(t, testsupport.WithCatalogServer(server))
	st := testsupport.MustOpenStore(t, cfg)
	return harness{
		server:   server,
		store:    st,
		workflow: enrichment.New(server.Client(t), st, nil),
	}
}

func TestAddTitleEndToEnd(t *testing.T) {
	h := newHarness(t, interstellarFixture())
	ctx := context.Background()

	movie, err := h.workflow.AddTitle(ctx, "  Interstellar ")
	if err != nil {
		t.Fatalf("AddTitle returned error: %v", err)
	}

	if movie.Title != "Interstellar" || movie.Year == nil || *movie.Year != 2014 {
		t.Fatalf("unexpected title/year: %q %v", movie.Title, movie.Year)
	}
	if movie.Runtime != 169 || movie.IsFetching {
		t.Fatalf("unexpected runtime/busy flag: %d %v", movie.Runtime, movie.IsFetching)
	}
	if movie.VoteAverage == nil || *movie.VoteAverage != 8.6 || movie.VoteCount == nil || *movie.VoteCount != 34000 {
		t.Fatalf("unexpected rating: %v %v", movie.VoteAverage, movie.VoteCount)
	}
	if movie.PosterURL != h.server.URL+"/t/p/w500/gEU2QniE6E77NI6lCU6MxlNBvIx.jpg" {
		t.Fatalf("unexpected poster url %q", movie.PosterURL)
	}
	want := []watchlist.Provider{{Name: "Netflix", Kind: watchlist.KindFlatrate}}
	if diff := cmp.Diff(want, movie.Providers, cmpopts.IgnoreFields(watchlist.Provider{}, "ID")); diff != "" {
		t.Fatalf("providers mismatch (-want +got):\n%s", diff)
	}

	stored, err := h.store.Get(ctx, movie.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if diff := cmp.Diff(movie, stored); diff != "" {
		t.Fatalf("stored record differs (-want +got):\n%s", diff)
	}
	if got := h.server.Queries(); len(got) != 1 || got[0] != "Interstellar" {
		t.Fatalf("unexpected search queries %v", got)
	}
}

func TestRunLogsEnrichmentSummary(t *testing.T) {
	server := testsupport.NewCatalogServer(t, interstellarFixture())
	cfg := testsupport.NewConfig(t, testsupport.WithCatalogServer(server))
	st := testsupport.MustOpenStore(t, cfg)

	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "json", Level: "info", Writer: &buf})
	if err != nil {
		t.Fatalf("logging.New: %v", err)
	}
	workflow := enrichment.New(server.Client(t), st, logger)

	movie, err := workflow.AddTitle(context.Background(), "Interstellar")
	if err != nil {
		t.Fatalf("AddTitle returned error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{`"msg":"movie enriched"`, `"elapsed":`, `"movie_id":"` + movie.ID + `"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %s in log output, got %s", want, out)
		}
	}
}

func TestAddTitleRejectsEmptyTitle(t *testing.T) {
	h := newHarness(t, testsupport.CatalogFixture{})
	if _, err := h.workflow.AddTitle(context.Background(), " \t "); !errors.Is(err, enrichment.ErrEmptyTitle) {
		t.Fatalf("expected ErrEmptyTitle, got %v", err)
	}
	movies, err := h.store.List(context.Background())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(movies) != 0 {
		t.Fatalf("expected nothing inserted, got %d", len(movies))
	}
}

func TestBusyFlagClearedOnEveryFailure(t *testing.T) {
	tests := []struct {
		name      string
		fixture   func(*testsupport.CatalogFixture)
		check     func(error) bool
		wantCalls map[string]int
	}{
		{
			name:    "resolve status",
			fixture: func(f *testsupport.CatalogFixture) { f.Fail = map[string]int{testsupport.EndpointSearch: http.StatusUnauthorized} },
			check: func(err error) bool {
				var statusErr *catalog.StatusError
				return errors.As(err, &statusErr) && statusErr.Code == http.StatusUnauthorized
			},
			wantCalls: map[string]int{testsupport.EndpointSearch: 1},
		},
		{
			name:      "resolve empty",
			fixture:   func(f *testsupport.CatalogFixture) { f.Search = nil },
			check:     func(err error) bool { return errors.Is(err, catalog.ErrNotFound) },
			wantCalls: map[string]int{testsupport.EndpointSearch: 1},
		},
		{
			name:    "details",
			fixture: func(f *testsupport.CatalogFixture) { f.Fail = map[string]int{testsupport.EndpointDetails: http.StatusBadGateway} },
			check: func(err error) bool {
				return catalog.Kind(err) == "bad_status"
			},
			wantCalls: map[string]int{testsupport.EndpointSearch: 1, testsupport.EndpointDetails: 1},
		},
		{
			name:    "providers",
			fixture: func(f *testsupport.CatalogFixture) { f.Fail = map[string]int{testsupport.EndpointProviders: http.StatusInternalServerError} },
			check: func(err error) bool {
				return catalog.Kind(err) == "bad_status"
			},
			wantCalls: map[string]int{testsupport.EndpointSearch: 1, testsupport.EndpointDetails: 1, testsupport.EndpointProviders: 1},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fixture := interstellarFixture()
			tc.fixture(&fixture)
			h := newHarness(t, fixture)
			ctx := context.Background()

			movie := testsupport.InsertMovie(t, h.store, "Interstellar")
			err := h.workflow.Run(ctx, movie)
			if err == nil || !tc.check(err) {
				t.Fatalf("unexpected error: %v", err)
			}
			if movie.IsFetching {
				t.Fatal("busy flag left set in memory")
			}

			stored, getErr := h.store.Get(ctx, movie.ID)
			if getErr != nil {
				t.Fatalf("Get failed: %v", getErr)
			}
			if stored.IsFetching {
				t.Fatal("busy flag left set in store")
			}
			if stored.Year != nil || stored.Plot != "" || stored.Runtime != 0 || len(stored.Providers) != 0 {
				t.Fatalf("failed run partially merged: %#v", stored)
			}
			for endpoint, want := range tc.wantCalls {
				if got := h.server.Calls(endpoint); got != want {
					t.Fatalf("%s calls = %d, want %d", endpoint, got, want)
				}
			}
			if tc.name != "providers" && h.server.Calls(testsupport.EndpointProviders) != 0 {
				t.Fatal("providers fetched after an earlier failure")
			}
		})
	}
}

func TestMergeKeepsUserStateAndClampsPosition(t *testing.T) {
	h := newHarness(t, interstellarFixture())
	ctx := context.Background()

	movie := testsupport.InsertMovie(t, h.store, "Interstellar")
	movie.Plot = "my own notes"
	movie.Year = ptr(1999)
	movie.WatchPosition = 200
	movie.Seen = true
	movie.Providers = []watchlist.Provider{{ID: "old", Name: "Old Service", Kind: watchlist.KindBuy}}
	if err := h.store.Save(ctx, movie); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if err := h.workflow.Run(ctx, movie); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if movie.Plot != "my own notes" || *movie.Year != 1999 || !movie.Seen {
		t.Fatalf("user state overwritten: %#v", movie)
	}
	if movie.Runtime != 169 || movie.WatchPosition != 169 {
		t.Fatalf("expected clamp to 169, got runtime=%d position=%d", movie.Runtime, movie.WatchPosition)
	}
	if len(movie.Providers) != 1 || movie.Providers[0].Name != "Netflix" {
		t.Fatalf("expected providers to be replaced, got %#v", movie.Providers)
	}
}

func TestRatingOverwrittenWithAbsentValue(t *testing.T) {
	fixture := interstellarFixture()
	details := fixture.Details[157336]
	details.VoteAverage = nil
	details.VoteCount = nil
	fixture.Details[157336] = details
	h := newHarness(t, fixture)

	movie := testsupport.InsertMovie(t, h.store, "Interstellar")
	movie.VoteAverage = ptr(5.0)
	movie.VoteCount = ptr(10)
	if err := h.workflow.Run(context.Background(), movie); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if movie.VoteAverage != nil || movie.VoteCount != nil {
		t.Fatalf("expected rating cleared, got %v %v", movie.VoteAverage, movie.VoteCount)
	}
}

func TestRepeatedRunIsIdempotent(t *testing.T) {
	h := newHarness(t, interstellarFixture())
	ctx := context.Background()

	movie, err := h.workflow.AddTitle(ctx, "Interstellar")
	if err != nil {
		t.Fatalf("AddTitle returned error: %v", err)
	}
	first, err := h.store.Get(ctx, movie.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	second, err := h.workflow.Refresh(ctx, movie.ID)
	if err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}
	if diff := cmp.Diff(first, second, cmpopts.IgnoreFields(watchlist.Provider{}, "ID")); diff != "" {
		t.Fatalf("second run changed the record (-first +second):\n%s", diff)
	}
	if first.Providers[0].ID == second.Providers[0].ID {
		t.Fatal("expected provider ids to be regenerated")
	}
}

func TestRunIgnoresCallerCancellation(t *testing.T) {
	h := newHarness(t, interstellarFixture())
	movie := testsupport.InsertMovie(t, h.store, "Interstellar")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := h.workflow.Run(ctx, movie); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if movie.Runtime != 169 {
		t.Fatalf("expected enrichment to complete, got runtime %d", movie.Runtime)
	}
}

type recordingStore struct {
	mu    sync.Mutex
	saves []bool
}

func (s *recordingStore) Insert(context.Context, *watchlist.Movie) error { return nil }

func (s *recordingStore) Save(_ context.Context, movie *watchlist.Movie) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves = append(s.saves, movie.IsFetching)
	return nil
}

func (s *recordingStore) Get(context.Context, string) (*watchlist.Movie, error) {
	return nil, store.ErrNotFound
}

type blockingCatalog struct {
	entered chan struct{}
	release chan struct{}
}

func (c *blockingCatalog) Search(context.Context, string) ([]catalog.SearchResult, error) {
	c.entered <- struct{}{}
	<-c.release
	return nil, nil
}

func (c *blockingCatalog) FetchDetails(context.Context, int64) (*catalog.MovieDetails, error) {
	return nil, errors.New("unexpected details call")
}

func (c *blockingCatalog) FetchProviders(context.Context, int64) (catalog.ProviderRegions, error) {
	return nil, errors.New("unexpected providers call")
}

func (c *blockingCatalog) ProvidersFor(catalog.ProviderRegions) []watchlist.Provider { return nil }

func (c *blockingCatalog) PosterURL(string) string { return "" }

func TestConcurrentRunOnSameMovieIsRejected(t *testing.T) {
	cat := &blockingCatalog{entered: make(chan struct{}, 1), release: make(chan struct{})}
	st := &recordingStore{}
	workflow := enrichment.New(cat, st, nil)
	movie := watchlist.NewMovie("Heat")

	done := make(chan error, 1)
	go func() { done <- workflow.Run(context.Background(), movie) }()

	select {
	case <-cat.entered:
	case <-time.After(2 * time.Second):
		t.Fatal("first run never reached the catalog")
	}
	if err := workflow.Run(context.Background(), movie); !errors.Is(err, enrichment.ErrAlreadyRunning) {
		t.Fatalf("expected ErrAlreadyRunning, got %v", err)
	}

	close(cat.release)
	if err := <-done; !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("expected ErrNotFound from first run, got %v", err)
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	if diff := cmp.Diff([]bool{true, false}, st.saves); diff != "" {
		t.Fatalf("unexpected busy flag saves (-want +got):\n%s", diff)
	}
}
