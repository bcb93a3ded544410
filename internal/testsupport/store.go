package testsupport

import (
	"context"
	"testing"

	"moviewatch/internal/config"
	"moviewatch/internal/store"
	"moviewatch/internal/watchlist"
)

// MustOpenStore opens a store.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *store.Store {
	t.Helper()

	st, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

// InsertMovie adds a fresh, not yet enriched movie for tests.
func InsertMovie(t testing.TB, st *store.Store, title string) *watchlist.Movie {
	t.Helper()

	movie := watchlist.NewMovie(title)
	movie.IsFetching = false
	if err := st.Insert(context.Background(), movie); err != nil {
		t.Fatalf("Insert(%q): %v", title, err)
	}
	return movie
}
