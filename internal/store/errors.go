package store

import "errors"

var (
	// ErrStore wraps every persistence failure.
	ErrStore = errors.New("store error")
	// ErrNotFound reports an unknown movie identifier.
	ErrNotFound = errors.New("movie not found")
	// ErrAmbiguousID reports an identifier prefix that matches several movies.
	ErrAmbiguousID = errors.New("ambiguous movie id")
	// ErrLocked reports that another process owns the watchlist.
	ErrLocked = errors.New("watchlist is locked by another process")
	// ErrSchemaMismatch indicates the database schema version doesn't match the expected version.
	ErrSchemaMismatch = errors.New("schema version mismatch")
)
