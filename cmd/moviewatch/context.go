package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"moviewatch/internal/catalog"
	"moviewatch/internal/config"
	"moviewatch/internal/enrichment"
	"moviewatch/internal/logging"
	"moviewatch/internal/store"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configPath string
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = resolved
	})
	return c.config, c.configErr
}

// logger builds the diagnostics logger. Console records go to w; the log
// file under the data directory always receives a JSON copy.
func (c *commandContext) logger(w io.Writer) (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return logging.NewFromConfig(cfg, w)
}

func (c *commandContext) catalogClient(logger *slog.Logger) (*catalog.Client, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	settings, err := catalog.Resolve(cfg, catalog.EnvSource{})
	if err != nil {
		return nil, fmt.Errorf("%w: set tmdb.read_token in the config file or export %s", err, catalog.EnvToken)
	}
	return catalog.New(settings,
		catalog.WithBaseURL(cfg.TMDB.BaseURL),
		catalog.WithImageBaseURL(cfg.TMDB.ImageBaseURL),
		catalog.WithTimeout(cfg.RequestTimeout()),
		catalog.WithSearchCache(cfg.SearchCacheTTL()),
		catalog.WithLogger(logging.NewComponentLogger(logger, "catalog")),
	)
}

func (c *commandContext) withStore(fn func(*store.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	st, err := store.Open(cfg)
	if err != nil {
		return err
	}
	defer st.Close()
	return fn(st)
}

// watchlistEnv bundles what the enriching commands need.
type watchlistEnv struct {
	store    *store.Store
	client   *catalog.Client
	workflow *enrichment.Workflow
	logger   *slog.Logger
}

func (c *commandContext) withWatchlist(logOut io.Writer, fn func(*watchlistEnv) error) error {
	logger, err := c.logger(logOut)
	if err != nil {
		return err
	}
	client, err := c.catalogClient(logger)
	if err != nil {
		return err
	}
	return c.withStore(func(st *store.Store) error {
		return fn(&watchlistEnv{
			store:    st,
			client:   client,
			workflow: enrichment.New(client, st, logger),
			logger:   logger,
		})
	})
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
