package client

// http_client.go = the movielogger REST API as seen from the CLI.

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"movielogger/cmd/cli/dto"
)

// APIError is a non-success response. Message comes from the server's
// {"message": ...} body when present.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

// constructor for HTTP client
func NewHTTPClient(apiURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(apiURL, "/"),
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// set token for HTTP client
func (c *HTTPClient) SetToken(token string) {
	c.token = token
}

// Auth

func (c *HTTPClient) Register(request *dto.RegisterRequest) (*dto.AuthResponse, error) {
	var result dto.AuthResponse
	if _, err := c.do(http.MethodPost, "/auth/register", request, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) Login(request *dto.LoginRequest) (*dto.AuthResponse, error) {
	var result dto.AuthResponse
	if _, err := c.do(http.MethodPost, "/auth/login", request, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) Me() (*dto.User, error) {
	var result struct {
		User dto.User `json:"user"`
	}
	if _, err := c.do(http.MethodGet, "/auth/me", nil, &result); err != nil {
		return nil, err
	}
	return &result.User, nil
}

// Movies

func (c *HTTPClient) ListMovies() ([]dto.Movie, error) {
	var result struct {
		Movies []dto.Movie `json:"movies"`
	}
	if _, err := c.do(http.MethodGet, "/movies", nil, &result); err != nil {
		return nil, err
	}
	return result.Movies, nil
}

func (c *HTTPClient) GetMovie(id int64) (*dto.Movie, error) {
	var result struct {
		Movie dto.Movie `json:"movie"`
	}
	if _, err := c.do(http.MethodGet, "/movies/"+strconv.FormatInt(id, 10), nil, &result); err != nil {
		return nil, err
	}
	return &result.Movie, nil
}

// GetTMDBMovie fetches TMDB details through the server's tmdb-<id> route.
func (c *HTTPClient) GetTMDBMovie(tmdbID int64) (*dto.TMDBMovie, error) {
	var result struct {
		Movie dto.TMDBMovie `json:"movie"`
	}
	if _, err := c.do(http.MethodGet, "/movies/tmdb-"+strconv.FormatInt(tmdbID, 10), nil, &result); err != nil {
		return nil, err
	}
	return &result.Movie, nil
}

func (c *HTTPClient) SearchMovies(query string) ([]dto.Movie, error) {
	var result struct {
		Movies []dto.Movie `json:"movies"`
	}
	if _, err := c.do(http.MethodGet, "/movies/search/"+url.PathEscape(query), nil, &result); err != nil {
		return nil, err
	}
	return result.Movies, nil
}

func (c *HTTPClient) SearchTMDB(query string) ([]dto.TMDBMovie, error) {
	var result struct {
		Movies []dto.TMDBMovie `json:"movies"`
	}
	if _, err := c.do(http.MethodGet, "/movies/search/tmdb/"+url.PathEscape(query), nil, &result); err != nil {
		return nil, err
	}
	return result.Movies, nil
}

// CreateMovie adds a movie; created is false when it already existed.
func (c *HTTPClient) CreateMovie(request *dto.CreateMovieRequest) (*dto.CreateMovieResponse, bool, error) {
	var result dto.CreateMovieResponse
	status, err := c.do(http.MethodPost, "/movies", request, &result)
	if err != nil {
		return nil, false, err
	}
	return &result, status == http.StatusCreated, nil
}

// Logs and watchlist

func (c *HTTPClient) ListLogs() ([]dto.MovieLog, error) {
	var result struct {
		Logs []dto.MovieLog `json:"logs"`
	}
	if _, err := c.do(http.MethodGet, "/user-movies/logs", nil, &result); err != nil {
		return nil, err
	}
	return result.Logs, nil
}

// LogMovie upserts the caller's entry; created is false on an update.
func (c *HTTPClient) LogMovie(request *dto.LogMovieRequest) (*dto.LogMovieResponse, bool, error) {
	var result dto.LogMovieResponse
	status, err := c.do(http.MethodPost, "/user-movies/log", request, &result)
	if err != nil {
		return nil, false, err
	}
	return &result, status == http.StatusCreated, nil
}

func (c *HTTPClient) DeleteLog(id int64) error {
	_, err := c.do(http.MethodDelete, "/user-movies/log/"+strconv.FormatInt(id, 10), nil, nil)
	return err
}

func (c *HTTPClient) ListWatchlist() ([]dto.WatchlistEntry, error) {
	var result struct {
		Watchlist []dto.WatchlistEntry `json:"watchlist"`
	}
	if _, err := c.do(http.MethodGet, "/user-movies/watchlist", nil, &result); err != nil {
		return nil, err
	}
	return result.Watchlist, nil
}

// AddToWatchlist adds a movie; added is false when it was already there.
func (c *HTTPClient) AddToWatchlist(request *dto.MovieIdentity) (*dto.AddWatchlistResponse, bool, error) {
	var result dto.AddWatchlistResponse
	status, err := c.do(http.MethodPost, "/user-movies/watchlist", request, &result)
	if err != nil {
		return nil, false, err
	}
	return &result, status == http.StatusCreated, nil
}

func (c *HTTPClient) RemoveFromWatchlist(id int64) error {
	_, err := c.do(http.MethodDelete, "/user-movies/watchlist/"+strconv.FormatInt(id, 10), nil, nil)
	return err
}

// do sends body as JSON and decodes a 2xx response into out. Other
// statuses become an *APIError.
func (c *HTTPClient) do(method, path string, body, out any) (int, error) {
	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return 0, err
		}
		reader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	response, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("cannot reach %s: %w", c.baseURL, err)
	}
	defer response.Body.Close() // Ensure the response body is closed

	if response.StatusCode < 200 || response.StatusCode > 299 {
		apiErr := &APIError{StatusCode: response.StatusCode}
		var payload struct {
			Message string `json:"message"`
		}
		if json.NewDecoder(io.LimitReader(response.Body, 4096)).Decode(&payload) == nil {
			apiErr.Message = payload.Message
		}
		return response.StatusCode, apiErr
	}

	if out != nil {
		if err := json.NewDecoder(response.Body).Decode(out); err != nil {
			return response.StatusCode, fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return response.StatusCode, nil
}
