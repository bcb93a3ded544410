// Package search implements the live, debounced title search behind the
// interactive search screen.
//
// A Session turns a stream of query edits into at most one in-flight catalog
// request. Each edit cancels the previous operation, waits for the input to
// settle, and only then queries the catalog. Responses are applied only when
// they still answer the current query. Callers observe changes through the
// Changes channel and read state with the getters.
package search
