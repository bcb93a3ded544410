// Package logging assembles the structured slog loggers used across
// moviewatch.
//
// It owns the console and JSON handlers, level parsing, and the file plus
// stderr fan-out, and exposes attribute helpers so catalog, search, and
// enrichment code emit records with the same field names. Loggers built here
// double as the diagnostics sink: components log failures and move on.
package logging
