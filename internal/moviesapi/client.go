// Package moviesapi is a client for the json-server style movies REST API.
package moviesapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ksenia-gurenko/film-catalog/internal/movie"
)

const (
	// DefaultBaseURL matches the json-server default.
	DefaultBaseURL = "http://localhost:3000"

	moviesPath       = "/movies"
	totalCountHeader = "X-Total-Count"
)

// Page is one list response: the mapped movies and the server-reported total.
type Page struct {
	Movies []movie.Movie
	Total  int
}

// Client talks to the movies API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	log        *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout bounds every request. The HTTP client passed to
// WithHTTPClient is left untouched; the client works on a copy.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithLogger enables request logging through a LoggingTransport.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		c.log = log.With("component", "moviesapi")
	}
}

// NewClient creates a client for the API rooted at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		clone := *c.httpClient
		clone.Timeout = c.timeout
		c.httpClient = &clone
	}
	if c.log != nil {
		c.httpClient = withTransport(c.httpClient, &LoggingTransport{
			Base: c.httpClient.Transport,
			Log:  c.log,
		})
	}
	return c
}

// BaseURL returns the API root the client was created with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// List fetches GET /movies with the given query parameters.
func (c *Client) List(ctx context.Context, params url.Values) (Page, error) {
	u := c.baseURL + moviesPath
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	body, header, err := c.get(ctx, u)
	if err != nil {
		return Page{}, err
	}

	movies, err := movie.ListFromJSON(body)
	if err != nil {
		return Page{}, fmt.Errorf("decode response: %w", err)
	}

	return Page{Movies: movies, Total: parseTotal(header.Get(totalCountHeader))}, nil
}

// Get fetches GET /movies/:id. A missing movie yields an error matching
// ErrNotFound.
func (c *Client) Get(ctx context.Context, id int64) (movie.Movie, error) {
	u := fmt.Sprintf("%s%s/%d", c.baseURL, moviesPath, id)

	body, _, err := c.get(ctx, u)
	if err != nil {
		return movie.Movie{}, err
	}
	return movie.FromJSON(body), nil
}

func (c *Client) get(ctx context.Context, u string) ([]byte, http.Header, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, &TransportError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, nil, &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, &TransportError{Err: fmt.Errorf("read body: %w", err)}
	}
	return body, resp.Header, nil
}

// parseTotal reads X-Total-Count; absent or malformed values count as 0.
func parseTotal(v string) int {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func withTransport(hc *http.Client, rt http.RoundTripper) *http.Client {
	clone := *hc
	clone.Transport = rt
	return &clone
}

// IsTransport reports whether err is a network-level failure rather than a
// server-reported one.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
