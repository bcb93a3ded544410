package config

import (
	"fmt"
	"os"
	"strings"

	"moviewatch/internal/catalog"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeTMDB()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	var err error
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeTMDB() {
	c.TMDB.ReadToken = strings.TrimSpace(c.TMDB.ReadToken)
	if c.TMDB.ReadToken == "" {
		if value, ok := os.LookupEnv(catalog.EnvToken); ok {
			c.TMDB.ReadToken = strings.TrimSpace(value)
		}
	}
	c.TMDB.Language = strings.TrimSpace(c.TMDB.Language)
	if c.TMDB.Language == "" {
		if value, ok := os.LookupEnv(catalog.EnvLanguage); ok {
			c.TMDB.Language = strings.TrimSpace(value)
		}
	}
	if c.TMDB.Language == "" {
		c.TMDB.Language = catalog.DefaultLanguage
	}
	c.TMDB.WatchRegion = strings.ToUpper(strings.TrimSpace(c.TMDB.WatchRegion))
	if c.TMDB.WatchRegion == "" {
		if value, ok := os.LookupEnv(catalog.EnvRegion); ok {
			c.TMDB.WatchRegion = strings.ToUpper(strings.TrimSpace(value))
		}
	}
	if c.TMDB.WatchRegion == "" {
		c.TMDB.WatchRegion = catalog.DefaultRegion
	}
	c.TMDB.BaseURL = strings.TrimRight(strings.TrimSpace(c.TMDB.BaseURL), "/")
	if c.TMDB.BaseURL == "" {
		c.TMDB.BaseURL = defaultTMDBBaseURL
	}
	c.TMDB.ImageBaseURL = strings.TrimRight(strings.TrimSpace(c.TMDB.ImageBaseURL), "/")
	if c.TMDB.ImageBaseURL == "" {
		c.TMDB.ImageBaseURL = defaultTMDBImageBaseURL
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
