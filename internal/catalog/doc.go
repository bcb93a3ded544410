// Package catalog is the TMDB client used to search titles and enrich
// watchlist records.
//
// It authenticates every request with a static bearer token, exposes movie
// search, movie details, and watch-provider lookups, and maps responses into
// watchlist types. Provider lists are projected to one configured region,
// deduplicated by name and kind, and sorted for display. The client keeps no
// mutable state apart from an optional TTL cache for live search responses.
//
// Failures are reported with the sentinel errors in errors.go so callers can
// classify them with errors.Is and errors.As; Kind turns any error into a
// short label suitable for log fields.
package catalog
