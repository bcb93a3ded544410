package config

import (
	"errors"
	"fmt"

	"golang.org/x/text/language"
)

// Validate ensures the configuration is usable. A missing TMDB token is not a
// configuration error: commands that never reach the catalog still work, and
// the catalog client reports the missing credential itself.
func (c *Config) Validate() error {
	if err := c.validateTMDB(); err != nil {
		return err
	}
	if err := c.validateSearch(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateTMDB() error {
	// Empty language and region resolve to the catalog defaults.
	if c.TMDB.Language != "" {
		if _, err := language.Parse(c.TMDB.Language); err != nil {
			return fmt.Errorf("tmdb.language %q is not a valid language tag: %w", c.TMDB.Language, err)
		}
	}
	if c.TMDB.WatchRegion != "" {
		if !isRegionCode(c.TMDB.WatchRegion) {
			return fmt.Errorf("tmdb.watch_region %q must be a two-letter region code", c.TMDB.WatchRegion)
		}
		if _, err := language.ParseRegion(c.TMDB.WatchRegion); err != nil {
			return fmt.Errorf("tmdb.watch_region %q is not a known region: %w", c.TMDB.WatchRegion, err)
		}
	}
	if c.TMDB.RequestTimeout <= 0 {
		return errors.New("tmdb.request_timeout must be positive")
	}
	if c.TMDB.SearchCacheMinutes < 0 {
		return errors.New("tmdb.search_cache_minutes must be zero or positive")
	}
	return nil
}

func (c *Config) validateSearch() error {
	if c.Search.DebounceMS <= 0 {
		return errors.New("search.debounce_ms must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format %q must be console or json", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q must be debug, info, warn, or error", c.Logging.Level)
	}
	return nil
}

func isRegionCode(value string) bool {
	if len(value) != 2 {
		return false
	}
	for _, r := range value {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
