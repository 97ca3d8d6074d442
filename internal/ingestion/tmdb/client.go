package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL      = "https://api.themoviedb.org/3"
	DefaultImageBaseURL = "https://image.tmdb.org/t/p"

	// TMDB allows roughly 40 requests per second per IP
	rateLimit = 40
	rateBurst = 20

	defaultTimeout = 10 * time.Second
	maxErrorBody   = 512
)

var (
	ErrNotFound = errors.New("tmdb: movie not found")
	ErrUpstream = errors.New("tmdb: upstream failure")
)

// Gateway is the catalog search surface. Client and CachedGateway implement it.
type Gateway interface {
	SearchMovies(ctx context.Context, query string) ([]SearchResult, error)
	MovieDetails(ctx context.Context, externalID int64) (*MovieDetails, error)
}

type Config struct {
	BaseURL      string
	ImageBaseURL string
	APIKey       string
	Timeout      time.Duration
}

// Client talks to the TMDB v3 API. Each call is a single attempt paced by a
// shared rate limiter; failures are reported, never retried.
type Client struct {
	baseURL      string
	imageBaseURL string
	apiKey       string
	httpClient   *http.Client
	rateLimiter  *rate.Limiter
	logger       *slog.Logger
}

// NewClient creates a TMDB client. Empty config fields fall back to defaults.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.ImageBaseURL == "" {
		cfg.ImageBaseURL = DefaultImageBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	return &Client{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		imageBaseURL: strings.TrimRight(cfg.ImageBaseURL, "/"),
		apiKey:       cfg.APIKey,
		rateLimiter:  rate.NewLimiter(rate.Limit(rateLimit), rateBurst),
		logger:       logger,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// SearchMovies runs a title search and maps every hit.
func (c *Client) SearchMovies(ctx context.Context, query string) ([]SearchResult, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("language", "en-US")
	params.Set("page", "1")
	params.Set("include_adult", "false")

	var response searchResponse
	if err := c.doRequest(ctx, "/search/movie", params, &response); err != nil {
		return nil, fmt.Errorf("search movies: %w", err)
	}

	results := make([]SearchResult, 0, len(response.Results))
	for _, m := range response.Results {
		results = append(results, c.toSearchResult(m))
	}
	return results, nil
}

// MovieDetails fetches one movie together with its credits.
func (c *Client) MovieDetails(ctx context.Context, externalID int64) (*MovieDetails, error) {
	params := url.Values{}
	params.Set("language", "en-US")
	params.Set("append_to_response", "credits")

	var response detailsResponse
	endpoint := "/movie/" + strconv.FormatInt(externalID, 10)
	if err := c.doRequest(ctx, endpoint, params, &response); err != nil {
		return nil, fmt.Errorf("movie details %d: %w", externalID, err)
	}
	return c.toMovieDetails(response), nil
}

func (c *Client) doRequest(ctx context.Context, endpoint string, params url.Values, result interface{}) error {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter error: %w", err)
	}

	// v4 read access tokens are JWTs and go in the Authorization header
	bearer := strings.HasPrefix(c.apiKey, "eyJ")
	if c.apiKey != "" && !bearer {
		params.Set("api_key", c.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "MovieLogger/1.0")
	if bearer {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("tmdb_request",
		"endpoint", endpoint,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("%w: HTTP %d: %s", ErrUpstream, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("%w: failed to parse response: %v", ErrUpstream, err)
	}
	return nil
}
