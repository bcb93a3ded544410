package enrichment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"moviewatch/internal/catalog"
	"moviewatch/internal/logging"
	"moviewatch/internal/watchlist"
)

var (
	// ErrAlreadyRunning reports a run against a record that is already being enriched.
	ErrAlreadyRunning = errors.New("enrichment already running for this movie")
	// ErrEmptyTitle reports an add request without a usable title.
	ErrEmptyTitle = errors.New("title is empty")
)

// Catalog is the subset of the catalog client a run needs.
type Catalog interface {
	Search(ctx context.Context, title string) ([]catalog.SearchResult, error)
	FetchDetails(ctx context.Context, movieID int64) (*catalog.MovieDetails, error)
	FetchProviders(ctx context.Context, movieID int64) (catalog.ProviderRegions, error)
	ProvidersFor(regions catalog.ProviderRegions) []watchlist.Provider
	PosterURL(path string) string
}

// Store persists records touched by a run.
type Store interface {
	Insert(ctx context.Context, movie *watchlist.Movie) error
	Save(ctx context.Context, movie *watchlist.Movie) error
	Get(ctx context.Context, id string) (*watchlist.Movie, error)
}

// Workflow runs enrichment against watchlist records.
type Workflow struct {
	catalog Catalog
	store   Store
	logger  *slog.Logger

	mu      sync.Mutex
	running map[string]struct{}
}

// New builds a workflow. A nil logger discards diagnostics.
func New(cat Catalog, st Store, logger *slog.Logger) *Workflow {
	return &Workflow{
		catalog: cat,
		store:   st,
		logger:  logging.NewComponentLogger(logger, "enrichment"),
		running: make(map[string]struct{}),
	}
}

// AddTitle creates a record for title, stores it, and enriches it. The record
// is returned even when enrichment fails; it then stays unenriched.
func (w *Workflow) AddTitle(ctx context.Context, title string) (*watchlist.Movie, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	movie := watchlist.NewMovie(title)
	if err := w.store.Insert(ctx, movie); err != nil {
		return nil, fmt.Errorf("insert movie: %w", err)
	}
	w.logger.Info("movie added",
		logging.String(logging.FieldMovieID, movie.ID),
		logging.String("title", movie.Title),
	)
	return movie, w.Run(ctx, movie)
}

// Refresh reloads the record with id and enriches it again.
func (w *Workflow) Refresh(ctx context.Context, id string) (*watchlist.Movie, error) {
	movie, err := w.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return movie, w.Run(ctx, movie)
}

// Run enriches movie in place and persists it. Cancelling ctx after the call
// starts has no effect; the run always settles and clears the busy flag.
func (w *Workflow) Run(ctx context.Context, movie *watchlist.Movie) (err error) {
	if movie == nil {
		return errors.New("movie is nil")
	}
	if !w.acquire(movie.ID) {
		return ErrAlreadyRunning
	}
	defer w.release(movie.ID)

	ctx = logging.WithMovieID(context.WithoutCancel(ctx), movie.ID)
	logger := logging.WithContext(ctx, w.logger)

	started := time.Now()
	movie.IsFetching = true
	if saveErr := w.store.Save(ctx, movie); saveErr != nil {
		logger.Warn("persist busy flag failed", logging.Error(saveErr))
	}
	defer func() {
		movie.IsFetching = false
		saveErr := w.store.Save(ctx, movie)
		switch {
		case saveErr != nil && err == nil:
			err = saveErr
		case saveErr != nil:
			logger.Warn("persist enrichment result failed", logging.Error(saveErr))
		}
		w.report(logger, movie, time.Since(started), err)
	}()

	results, err := w.catalog.Search(ctx, movie.Title)
	if err != nil {
		return fmt.Errorf("resolve %q: %w", movie.Title, err)
	}
	if len(results) == 0 {
		return fmt.Errorf("resolve %q: %w", movie.Title, catalog.ErrNotFound)
	}
	match := results[0]
	logger.Debug("catalog match resolved",
		logging.Int64(logging.FieldCatalogID, match.ID),
		logging.String("match_title", match.Title),
		logging.Int("candidates", len(results)),
	)

	details, err := w.catalog.FetchDetails(ctx, match.ID)
	if err != nil {
		return fmt.Errorf("fetch details for %d: %w", match.ID, err)
	}

	regions, err := w.catalog.FetchProviders(ctx, match.ID)
	if err != nil {
		return fmt.Errorf("fetch providers for %d: %w", match.ID, err)
	}

	movie.ApplyEnrichment(watchlist.Enrichment{
		Year:        releaseYear(details.ReleaseDate),
		Plot:        details.Overview,
		PosterURL:   w.catalog.PosterURL(details.PosterPath),
		Runtime:     details.Runtime,
		VoteAverage: details.VoteAverage,
		VoteCount:   details.VoteCount,
		Providers:   w.catalog.ProvidersFor(regions),
	})
	return nil
}

func (w *Workflow) report(logger *slog.Logger, movie *watchlist.Movie, elapsed time.Duration, err error) {
	if err == nil {
		logger.Info("movie enriched",
			logging.String("title", movie.DisplayTitle()),
			logging.Int("runtime", movie.Runtime),
			logging.Int("providers", len(movie.Providers)),
			logging.Duration("elapsed", elapsed),
		)
		return
	}
	logging.WarnWithContext(logger, "enrichment failed", "enrichment_failed",
		logging.String("title", movie.Title),
		logging.String(logging.FieldErrorKind, catalog.Kind(err)),
		logging.Error(err),
		logging.String(logging.FieldImpact, "movie keeps its previous metadata"),
		logging.String(logging.FieldErrorHint, "run moviewatch refresh to retry"),
	)
}

func (w *Workflow) acquire(id string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, busy := w.running[id]; busy {
		return false
	}
	w.running[id] = struct{}{}
	return true
}

func (w *Workflow) release(id string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.running, id)
}

func releaseYear(date string) *int {
	date = strings.TrimSpace(date)
	if len(date) < 4 {
		return nil
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return nil
	}
	return &year
}
