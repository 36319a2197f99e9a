// Package lichess fetches a user's raw game transcript from the lichess
// export API and parses movetext transcripts into structured records.
package lichess

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Default client configuration constants.
const (
	defaultBaseURL      = "https://lichess.org"
	defaultFetchTimeout = 60 * time.Second
)

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithBaseURL overrides the upstream base URL. Used by tests.
func WithBaseURL(base string) Option {
	return func(c *Client) {
		if base != "" {
			c.baseURL = strings.TrimRight(base, "/")
		}
	}
}

// WithToken sets the bearer token sent to the upstream service.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithCacheDir enables writing fetched transcripts to dir, one file per
// username. Fetches still go upstream; the cache is a raw-transcript
// archive, not a read-through cache.
func WithCacheDir(dir string) Option {
	return func(c *Client) {
		c.cacheDir = dir
	}
}

// WithTimeout sets the single fetch timeout. There are no retries.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithHTTPClient swaps the underlying HTTP client. Used by tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// Client talks to the lichess game export API.
type Client struct {
	baseURL    string
	token      string
	cacheDir   string
	timeout    time.Duration
	httpClient *http.Client
}

// NewClient creates a lichess client with configuration options.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL: defaultBaseURL,
		timeout: defaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: c.timeout}
	}
	return c
}

// FetchGames downloads the user's recent games as one PGN transcript.
// A non-success status or timeout surfaces as ErrUpstream; the call is
// never retried.
func (c *Client) FetchGames(ctx context.Context, username string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return "", ErrInvalidUsername
	}

	params := url.Values{}
	params.Set("moves", "true")
	params.Set("opening", "true")
	params.Set("clocks", "false")

	endpoint := fmt.Sprintf("%s/api/games/user/%s?%s", c.baseURL, url.PathEscape(username), params.Encode())

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	req.Header.Set("Accept", "application/x-chess-pgn")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUpstream, err)
	}

	pgn := string(body)
	c.writeCache(username, pgn)
	return pgn, nil
}

// writeCache archives the raw transcript. Failures are deliberately
// swallowed: caching is best-effort and must not fail the request.
func (c *Client) writeCache(username, pgn string) {
	if c.cacheDir == "" {
		return
	}
	if err := os.MkdirAll(c.cacheDir, 0o750); err != nil {
		return
	}
	path := filepath.Join(c.cacheDir, username+".pgn")
	_ = os.WriteFile(path, []byte(pgn), 0o600)
}
