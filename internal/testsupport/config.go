package testsupport

import (
	"path/filepath"
	"testing"
	"time"

	"moviewatch/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with a unique temp data directory per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.TMDB.ReadToken = "test"
	cfgVal.TMDB.BaseURL = "http://127.0.0.1:0"
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Search.DebounceMS = 20

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}
	for _, opt := range opts {
		opt(builder)
	}
	return builder.cfg
}

// WithTMDBToken sets the TMDB read token on the test config.
func WithTMDBToken(token string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.TMDB.ReadToken = token
	}
}

// WithCatalogServer points the TMDB API and image roots at a fake server.
func WithCatalogServer(server *CatalogServer) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.TMDB.BaseURL = server.URL
		b.cfg.TMDB.ImageBaseURL = server.URL + "/t/p"
	}
}

// WithDebounce overrides the live search quiet period.
func WithDebounce(interval time.Duration) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Search.DebounceMS = int(interval / time.Millisecond)
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.DataDir)
}
