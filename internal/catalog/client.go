package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
)

const (
	defaultBaseURL      = "https://api.themoviedb.org/3"
	defaultImageBaseURL = "https://image.tmdb.org/t/p"
	defaultTimeout      = 12 * time.Second
)

// Client provides access to the TMDB API.
type Client struct {
	token        string
	language     string
	region       string
	baseURL      string
	imageBaseURL string
	httpClient   *http.Client
	searchCache  *cache.Cache
	logger       *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL points the client at a different API root.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if trimmed := strings.TrimSpace(baseURL); trimmed != "" {
			c.baseURL = strings.TrimRight(trimmed, "/")
		}
	}
}

// WithImageBaseURL overrides the image CDN root.
func WithImageBaseURL(baseURL string) Option {
	return func(c *Client) {
		if trimmed := strings.TrimSpace(baseURL); trimmed != "" {
			c.imageBaseURL = strings.TrimRight(trimmed, "/")
		}
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithSearchCache reuses live search responses for ttl. A zero ttl disables caching.
func WithSearchCache(ttl time.Duration) Option {
	return func(c *Client) {
		if ttl <= 0 {
			c.searchCache = nil
			return
		}
		c.searchCache = cache.New(ttl, 2*ttl)
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a TMDB client from resolved settings.
func New(settings Settings, opts ...Option) (*Client, error) {
	settings = settings.normalized()
	if settings.Token == "" {
		return nil, ErrMissingCredential
	}
	client := &Client{
		token:        settings.Token,
		language:     settings.Language,
		region:       settings.Region,
		baseURL:      defaultBaseURL,
		imageBaseURL: defaultImageBaseURL,
		httpClient:   &http.Client{Timeout: defaultTimeout},
		logger:       slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Language returns the configured response language.
func (c *Client) Language() string {
	return c.language
}

// Region returns the configured watch region.
func (c *Client) Region() string {
	return c.region
}

func (c *Client) getJSON(ctx context.Context, endpoint string, params url.Values, dest any) error {
	target, err := url.Parse(c.baseURL + endpoint)
	if err != nil {
		return fmt.Errorf("parse tmdb url: %w", err)
	}
	if len(params) > 0 {
		target.RawQuery = params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return fmt.Errorf("%w: %s (latency=%v): %w", ErrTransport, endpoint, latency, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("tmdb request",
		slog.String("endpoint", endpoint),
		slog.Int("status", resp.StatusCode),
		slog.Duration("latency", latency),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		return &StatusError{Code: resp.StatusCode, Endpoint: endpoint}
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidResponse, endpoint, err)
	}
	return nil
}
