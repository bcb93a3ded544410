package catalog

import (
	"os"
	"strings"
)

const (
	// DefaultLanguage is the response language used when none is configured.
	DefaultLanguage = "it-IT"
	// DefaultRegion is the watch region used when none is configured.
	DefaultRegion = "IT"

	EnvToken    = "TMDB_READ_TOKEN"
	EnvLanguage = "TMDB_LANGUAGE"
	EnvRegion   = "TMDB_WATCH_REGION"
)

// Settings is the static configuration a Client is built from.
type Settings struct {
	Token    string
	Language string
	Region   string
}

// Source yields catalog settings, reporting false when it has no credential.
type Source interface {
	CatalogSettings() (Settings, bool)
}

// EnvSource reads settings from the TMDB_* environment variables.
type EnvSource struct{}

// CatalogSettings implements Source.
func (EnvSource) CatalogSettings() (Settings, bool) {
	token := strings.TrimSpace(os.Getenv(EnvToken))
	if token == "" {
		return Settings{}, false
	}
	return Settings{
		Token:    token,
		Language: os.Getenv(EnvLanguage),
		Region:   os.Getenv(EnvRegion),
	}, true
}

// StaticSource serves fixed settings.
type StaticSource Settings

// CatalogSettings implements Source.
func (s StaticSource) CatalogSettings() (Settings, bool) {
	if strings.TrimSpace(s.Token) == "" {
		return Settings{}, false
	}
	return Settings(s), true
}

// Resolve walks the sources in order and returns the first settings that
// carry a token, with language and region defaulted.
func Resolve(sources ...Source) (Settings, error) {
	for _, source := range sources {
		if source == nil {
			continue
		}
		settings, ok := source.CatalogSettings()
		if !ok {
			continue
		}
		settings = settings.normalized()
		if settings.Token != "" {
			return settings, nil
		}
	}
	return Settings{}, ErrMissingCredential
}

func (s Settings) normalized() Settings {
	s.Token = strings.TrimSpace(s.Token)
	s.Language = strings.TrimSpace(s.Language)
	if s.Language == "" {
		s.Language = DefaultLanguage
	}
	s.Region = strings.ToUpper(strings.TrimSpace(s.Region))
	if s.Region == "" {
		s.Region = DefaultRegion
	}
	return s
}
