// Command moviewatch manages a personal movie watchlist enriched with TMDB
// metadata and streaming availability.
//
// Titles are added by name or picked from a live search, then enriched with
// plot, poster, runtime, rating, and the providers offering the title in the
// configured watch region. The watchlist lives in a SQLite database under the
// configured data directory.
package main
