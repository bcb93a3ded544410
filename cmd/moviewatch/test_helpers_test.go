package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"moviewatch/internal/catalog"
	"moviewatch/internal/config"
	"moviewatch/internal/store"
	"moviewatch/internal/testsupport"
	"moviewatch/internal/watchlist"
)

type cliTestEnv struct {
	cfg        *config.Config
	catalog    *testsupport.CatalogServer
	configPath string
	baseDir    string
}

func setupCLITestEnv(t *testing.T, fixture testsupport.CatalogFixture) *cliTestEnv {
	t.Helper()

	server := testsupport.NewCatalogServer(t, fixture)
	cfg := testsupport.NewConfig(t, testsupport.WithCatalogServer(server))
	base := testsupport.BaseDir(cfg)

	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv(catalog.EnvToken, "")

	configPath := filepath.Join(homeDir, ".config", "moviewatch", "config.toml")
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{
		cfg:        cfg,
		catalog:    server,
		configPath: configPath,
		baseDir:    base,
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(""))
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	content, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

// withStore opens the watchlist briefly; commands take the store lock
// themselves, so tests must not hold it across runCLI.
func (e *cliTestEnv) withStore(t *testing.T, fn func(*store.Store)) {
	t.Helper()
	st, err := store.Open(e.cfg)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	defer st.Close()
	fn(st)
}

func (e *cliTestEnv) seedMovie(t *testing.T, title string) *watchlist.Movie {
	t.Helper()
	var movie *watchlist.Movie
	e.withStore(t, func(st *store.Store) {
		movie = testsupport.InsertMovie(t, st, title)
	})
	return movie
}

func (e *cliTestEnv) movies(t *testing.T) []*watchlist.Movie {
	t.Helper()
	var movies []*watchlist.Movie
	e.withStore(t, func(st *store.Store) {
		list, err := st.List(context.Background())
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		movies = list
	})
	return movies
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }
