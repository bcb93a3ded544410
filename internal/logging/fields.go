package logging

import (
	"context"
	"log/slog"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldMovieID is the standardized key for local watchlist record identifiers.
	FieldMovieID = "movie_id"
	// FieldCatalogID is the standardized key for remote catalog identifiers.
	FieldCatalogID = "catalog_id"
	// FieldQuery is the standardized key for search queries.
	FieldQuery = "query"
	// FieldEventType classifies a record for filtering.
	FieldEventType = "event_type"
	// FieldErrorKind carries the catalog error taxonomy name.
	FieldErrorKind = "error_kind"
	// FieldErrorHint suggests a next step to the reader.
	FieldErrorHint = "error_hint"
	// FieldImpact is the standardized key for user-facing consequence of a warning.
	FieldImpact = "impact"
)

type movieIDKey struct{}

// WithMovieID tags ctx with a watchlist record identifier.
func WithMovieID(ctx context.Context, id string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, movieIDKey{}, id)
}

// MovieIDFromContext returns the record identifier stored by WithMovieID.
func MovieIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(movieIDKey{}).(string)
	return id, ok && id != ""
}

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if id, ok := MovieIDFromContext(ctx); ok {
		return []slog.Attr{slog.String(FieldMovieID, id)}
	}
	return nil
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(attrsToArgs(fields)...)
}
