// Package config loads, normalizes, and validates moviewatch configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// TMDB_READ_TOKEN. The Config type doubles as the first configuration source
// consulted when the catalog client is constructed.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical language and region codes, and clear validation
// errors.
package config
