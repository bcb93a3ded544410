package catalog

import "strings"

const (
	// SizePoster is the large poster variant stored on records.
	SizePoster = "w500"
	// SizeThumbnail is the poster variant shown next to search results.
	SizeThumbnail = "w154"
	// SizeLogo is the small variant used for provider logos.
	SizeLogo = "w92"
)

// ImageURL joins the CDN base, a size variant, and the path fragment returned
// by TMDB. An empty fragment yields an empty URL.
func ImageURL(base, size, path string) string {
	path = strings.TrimLeft(strings.TrimSpace(path), "/")
	if path == "" {
		return ""
	}
	return strings.TrimRight(base, "/") + "/" + size + "/" + path
}

// PosterURL builds a large poster URL.
func (c *Client) PosterURL(path string) string {
	return ImageURL(c.imageBaseURL, SizePoster, path)
}

// ThumbnailURL builds a search result thumbnail URL.
func (c *Client) ThumbnailURL(path string) string {
	return ImageURL(c.imageBaseURL, SizeThumbnail, path)
}

// LogoURL builds a provider logo URL.
func (c *Client) LogoURL(path string) string {
	return ImageURL(c.imageBaseURL, SizeLogo, path)
}
