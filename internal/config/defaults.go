package config

const (
	defaultDataDir            = "~/.local/share/moviewatch"
	defaultTMDBBaseURL        = "https://api.themoviedb.org/3"
	defaultTMDBImageBaseURL   = "https://image.tmdb.org/t/p"
	defaultTMDBRequestTimeout = 12
	defaultSearchCacheMinutes = 10
	defaultSearchDebounceMS   = 320
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
	defaultConfigPath         = "~/.config/moviewatch/config.toml"
	projectConfigName         = "moviewatch.toml"
)

// Default returns a Config populated with repository defaults. TMDB language
// and watch region stay empty so Load can fall back to the environment before
// the catalog defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
		},
		TMDB: TMDB{
			BaseURL:            defaultTMDBBaseURL,
			ImageBaseURL:       defaultTMDBImageBaseURL,
			RequestTimeout:     defaultTMDBRequestTimeout,
			SearchCacheMinutes: defaultSearchCacheMinutes,
		},
		Search: Search{
			DebounceMS: defaultSearchDebounceMS,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
