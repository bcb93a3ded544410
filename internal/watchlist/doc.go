// Package watchlist defines the locally owned watchlist records.
//
// A Movie is created when the user adds a title and is afterwards mutated by
// two parties only: the enrichment workflow (through ApplyEnrichment) and the
// user (seen flag, watch position). Provider entries belong to exactly one
// Movie and are replaced wholesale on every enrichment; they never carry
// stable identifiers.
//
// The watch position invariant (0 <= position <= runtime once the runtime is
// known) is enforced by every mutator in this package, so callers never clamp
// by hand.
package watchlist
