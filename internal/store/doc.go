// Package store persists the watchlist in SQLite.
//
// Movies and their owned providers live in two tables; Save swaps the
// provider rows of a movie inside one transaction so readers never see a
// half-replaced set. Open takes an exclusive file lock next to the database so
// only one process owns the watchlist at a time, and clears busy flags left
// behind by a process that exited mid-enrichment.
package store
