package catalog

import "strings"

// SearchResult is a single TMDB movie search match. Empty strings mean the
// field was absent.
type SearchResult struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	ReleaseDate string `json:"release_date"`
	PosterPath  string `json:"poster_path"`
}

// Year returns the four-digit release year, or an empty string.
func (r SearchResult) Year() string {
	date := strings.TrimSpace(r.ReleaseDate)
	if len(date) < 4 {
		return ""
	}
	return date[:4]
}

// MovieDetails is the detail payload for one catalog entry.
type MovieDetails struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Overview    string   `json:"overview"`
	PosterPath  string   `json:"poster_path"`
	ReleaseDate string   `json:"release_date"`
	Runtime     *int     `json:"runtime"`
	VoteAverage *float64 `json:"vote_average"`
	VoteCount   *int     `json:"vote_count"`
}

// ProviderEntry is one raw watch-provider listing.
type ProviderEntry struct {
	ProviderID   int64  `json:"provider_id"`
	ProviderName string `json:"provider_name"`
	LogoPath     string `json:"logo_path"`
}

// RegionProviders groups the listings for one region by offer type.
type RegionProviders struct {
	Flatrate []ProviderEntry `json:"flatrate"`
	Rent     []ProviderEntry `json:"rent"`
	Buy      []ProviderEntry `json:"buy"`
}

// ProviderRegions maps region codes to their provider listings.
type ProviderRegions map[string]RegionProviders

type searchEnvelope struct {
	Results *[]searchResultPayload `json:"results"`
}

type searchResultPayload struct {
	ID          *int64 `json:"id"`
	Title       string `json:"title"`
	ReleaseDate string `json:"release_date"`
	PosterPath  string `json:"poster_path"`
}

type detailsEnvelope struct {
	ID          *int64   `json:"id"`
	Title       *string  `json:"title"`
	Overview    string   `json:"overview"`
	PosterPath  string   `json:"poster_path"`
	ReleaseDate string   `json:"release_date"`
	Runtime     *int     `json:"runtime"`
	VoteAverage *float64 `json:"vote_average"`
	VoteCount   *int     `json:"vote_count"`
}

type providersEnvelope struct {
	Results map[string]regionPayload `json:"results"`
}

type regionPayload struct {
	Flatrate []providerPayload `json:"flatrate"`
	Rent     []providerPayload `json:"rent"`
	Buy      []providerPayload `json:"buy"`
}

type providerPayload struct {
	ProviderID   int64   `json:"provider_id"`
	ProviderName *string `json:"provider_name"`
	LogoPath     string  `json:"logo_path"`
}
