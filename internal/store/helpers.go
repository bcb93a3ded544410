package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"moviewatch/internal/watchlist"
)

// timeLayout is fixed width so created_at sorts correctly as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

func scanMovie(scanner interface{ Scan(dest ...any) error }) (*watchlist.Movie, error) {
	var (
		movie       watchlist.Movie
		year        sql.NullInt64
		plot        sql.NullString
		posterURL   sql.NullString
		seen        int
		voteAverage sql.NullFloat64
		voteCount   sql.NullInt64
		isFetching  int
		createdAt   string
	)
	if err := scanner.Scan(
		&movie.ID,
		&movie.Title,
		&year,
		&plot,
		&posterURL,
		&movie.Runtime,
		&movie.WatchPosition,
		&seen,
		&voteAverage,
		&voteCount,
		&isFetching,
		&createdAt,
	); err != nil {
		return nil, err
	}

	if year.Valid {
		v := int(year.Int64)
		movie.Year = &v
	}
	movie.Plot = plot.String
	movie.PosterURL = posterURL.String
	movie.Seen = seen != 0
	if voteAverage.Valid {
		v := voteAverage.Float64
		movie.VoteAverage = &v
	}
	if voteCount.Valid {
		v := int(voteCount.Int64)
		movie.VoteCount = &v
	}
	movie.IsFetching = isFetching != 0

	created, err := time.Parse(timeLayout, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	movie.CreatedAt = created
	return &movie, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullableInt(value *int) any {
	if value == nil {
		return nil
	}
	return *value
}

func nullableFloat(value *float64) any {
	if value == nil {
		return nil
	}
	return *value
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		value = time.Now()
	}
	return value.UTC().Format(timeLayout)
}

func makePlaceholders(count int) string {
	if count <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?,", count), ",")
}
