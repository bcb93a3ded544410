package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"moviewatch/internal/watchlist"
)

const movieColumns = `id, title, year, plot, poster_url, runtime, watch_position, seen,
    vote_average, vote_count, is_fetching, created_at`

// Insert adds a new movie together with its providers.
func (s *Store) Insert(ctx context.Context, movie *watchlist.Movie) error {
	if movie == nil {
		return fmt.Errorf("%w: insert: movie is nil", ErrStore)
	}
	if strings.TrimSpace(movie.ID) == "" {
		return fmt.Errorf("%w: insert: movie id is empty", ErrStore)
	}
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO movies (`+movieColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			movie.ID,
			movie.Title,
			nullableInt(movie.Year),
			nullableString(movie.Plot),
			nullableString(movie.PosterURL),
			movie.Runtime,
			movie.WatchPosition,
			boolToInt(movie.Seen),
			nullableFloat(movie.VoteAverage),
			nullableInt(movie.VoteCount),
			boolToInt(movie.IsFetching),
			formatTime(movie.CreatedAt),
		); err != nil {
			return err
		}
		return insertProviders(ctx, tx, movie.ID, movie.Providers)
	})
	if err != nil {
		return fmt.Errorf("%w: insert movie: %w", ErrStore, err)
	}
	return nil
}

// Save persists every field of an existing movie and replaces its provider
// set wholesale.
func (s *Store) Save(ctx context.Context, movie *watchlist.Movie) error {
	if movie == nil {
		return fmt.Errorf("%w: save: movie is nil", ErrStore)
	}
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE movies
             SET title = ?, year = ?, plot = ?, poster_url = ?, runtime = ?, watch_position = ?,
                 seen = ?, vote_average = ?, vote_count = ?, is_fetching = ?
             WHERE id = ?`,
			movie.Title,
			nullableInt(movie.Year),
			nullableString(movie.Plot),
			nullableString(movie.PosterURL),
			movie.Runtime,
			movie.WatchPosition,
			boolToInt(movie.Seen),
			nullableFloat(movie.VoteAverage),
			nullableInt(movie.VoteCount),
			boolToInt(movie.IsFetching),
			movie.ID,
		)
		if err != nil {
			return err
		}
		if affected, err := res.RowsAffected(); err == nil && affected == 0 {
			return ErrNotFound
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM providers WHERE movie_id = ?`, movie.ID); err != nil {
			return err
		}
		return insertProviders(ctx, tx, movie.ID, movie.Providers)
	})
	if err != nil {
		return fmt.Errorf("%w: save movie %s: %w", ErrStore, movie.ID, err)
	}
	return nil
}

// Delete removes a movie and the providers it owns.
func (s *Store) Delete(ctx context.Context, id string) error {
	var affected int64
	err := retryOnBusy(ctx, func() error {
		res, err := s.db.ExecContext(ctx, `DELETE FROM movies WHERE id = ?`, id)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return fmt.Errorf("%w: delete movie: %w", ErrStore, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %w: %s", ErrStore, ErrNotFound, id)
	}
	return nil
}

// Get fetches a movie by its full identifier.
func (s *Store) Get(ctx context.Context, id string) (*watchlist.Movie, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+movieColumns+` FROM movies WHERE id = ?`, id)
	movie, err := scanMovie(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %w: %s", ErrStore, ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get movie: %w", ErrStore, err)
	}
	if err := s.attachProviders(ctx, []*watchlist.Movie{movie}); err != nil {
		return nil, err
	}
	return movie, nil
}

// Find resolves a full identifier or a unique prefix of one.
func (s *Store) Find(ctx context.Context, idOrPrefix string) (*watchlist.Movie, error) {
	prefix := strings.ToLower(strings.TrimSpace(idOrPrefix))
	if prefix == "" {
		return nil, fmt.Errorf("%w: %w: empty id", ErrStore, ErrNotFound)
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id FROM movies WHERE substr(id, 1, length(?)) = ? ORDER BY id LIMIT 2`,
		prefix, prefix,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: find movie: %w", ErrStore, err)
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("%w: scan id: %w", ErrStore, err)
		}
		ids = append(ids, id)
	}
	_ = rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: find movie: %w", ErrStore, err)
	}

	switch len(ids) {
	case 0:
		return nil, fmt.Errorf("%w: %w: %s", ErrStore, ErrNotFound, idOrPrefix)
	case 1:
		return s.Get(ctx, ids[0])
	default:
		if ids[0] == prefix {
			return s.Get(ctx, ids[0])
		}
		return nil, fmt.Errorf("%w: %w: %s", ErrStore, ErrAmbiguousID, idOrPrefix)
	}
}

// List returns every movie, most recently created first.
func (s *Store) List(ctx context.Context) ([]*watchlist.Movie, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+movieColumns+` FROM movies ORDER BY created_at DESC, rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("%w: list movies: %w", ErrStore, err)
	}
	var movies []*watchlist.Movie
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("%w: scan movie: %w", ErrStore, err)
		}
		movies = append(movies, movie)
	}
	_ = rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list movies: %w", ErrStore, err)
	}
	if err := s.attachProviders(ctx, movies); err != nil {
		return nil, err
	}
	return movies, nil
}

func insertProviders(ctx context.Context, tx *sql.Tx, movieID string, providers []watchlist.Provider) error {
	if len(providers) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO providers (id, movie_id, name, logo_url, kind, position) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for idx := range providers {
		provider := &providers[idx]
		if provider.ID == "" {
			provider.ID = uuid.NewString()
		}
		if _, err := stmt.ExecContext(ctx,
			provider.ID,
			movieID,
			provider.Name,
			nullableString(provider.LogoURL),
			string(provider.Kind),
			idx,
		); err != nil {
			return fmt.Errorf("insert provider %q: %w", provider.Name, err)
		}
	}
	return nil
}

func (s *Store) attachProviders(ctx context.Context, movies []*watchlist.Movie) error {
	if len(movies) == 0 {
		return nil
	}
	byID := make(map[string]*watchlist.Movie, len(movies))
	args := make([]any, 0, len(movies))
	for _, movie := range movies {
		byID[movie.ID] = movie
		movie.Providers = []watchlist.Provider{}
		args = append(args, movie.ID)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT movie_id, id, name, logo_url, kind FROM providers
         WHERE movie_id IN (`+makePlaceholders(len(args))+`)
         ORDER BY movie_id, position`,
		args...,
	)
	if err != nil {
		return fmt.Errorf("%w: load providers: %w", ErrStore, err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			movieID, id, name, kind string
			logo                    sql.NullString
		)
		if err := rows.Scan(&movieID, &id, &name, &logo, &kind); err != nil {
			return fmt.Errorf("%w: scan provider: %w", ErrStore, err)
		}
		parsed, err := watchlist.ParseKind(kind)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrStore, err)
		}
		if movie, ok := byID[movieID]; ok {
			movie.Providers = append(movie.Providers, watchlist.Provider{
				ID:      id,
				Name:    name,
				LogoURL: logo.String,
				Kind:    parsed,
			})
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: load providers: %w", ErrStore, err)
	}
	return nil
}
