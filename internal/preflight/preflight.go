package preflight

import (
	"context"

	"moviewatch/internal/catalog"
	"moviewatch/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes every preflight check for the given config. The catalog
// reachability check only runs when a credential resolves.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{CheckDirectoryAccess("Data directory", cfg.Paths.DataDir)}

	credential, settings := CheckCredential(cfg, catalog.EnvSource{})
	results = append(results, credential)
	if credential.Passed {
		results = append(results, CheckCatalog(ctx, cfg.TMDB.BaseURL, settings.Token))
	}
	return results
}
