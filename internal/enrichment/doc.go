// Package enrichment fills watchlist records with catalog metadata.
//
// A run resolves the record title to a catalog entry, fetches its details and
// watch providers, and merges the result into the record. The busy flag is
// raised before the first request and cleared on every exit path. Runs are not
// cancellable once started and at most one run per record is active.
package enrichment
