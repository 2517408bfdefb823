// Package apiclient talks to the companion backend. Every request passes
// through a middleware pipeline (session identity headers by default) and is
// sent with the underlying http.Client's defaults: no retries, no caching,
// no extra timeout.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/maidacontrol/internal/apipaths"
	"github.com/maidacontrol/internal/constants"
	"github.com/maidacontrol/internal/domain"
)

// Client handles communication with the backend API
type Client struct {
	baseURL     *url.URL
	httpClient  *http.Client
	middlewares []Middleware
	logger      *slog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithMiddleware appends request middlewares
func WithMiddleware(mws ...Middleware) Option {
	return func(c *Client) {
		c.middlewares = append(c.middlewares, mws...)
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a backend API client rooted at baseURL
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, domain.WrapConfigInvalid("API base URL", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, domain.WrapConfigInvalid("API base URL", fmt.Errorf("%q is not absolute", baseURL))
	}
	u.Path = strings.TrimSuffix(u.Path, "/")

	c := &Client{
		baseURL:    u,
		httpClient: http.DefaultClient,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the API base URL
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Call invokes a backend method by name: GET /api with a method header.
// extra headers are merged last and win on key collision.
func (c *Client) Call(ctx context.Context, method string, extra http.Header) (*http.Response, error) {
	req, err := c.newRequest(ctx, http.MethodGet, apipaths.API, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set(constants.HeaderMethod, method)
	for k, vv := range extra {
		req.Header.Del(k)
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	return c.do(req)
}

// SetLocalFavorites replaces the locally stored favorites with songIDs.
// Order and duplicates are sent as given.
func (c *Client) SetLocalFavorites(ctx context.Context, songIDs []int) (*http.Response, error) {
	if songIDs == nil {
		songIDs = []int{}
	}
	return c.postJSON(ctx, apipaths.Favorites, favoritesRequest{SongIDs: songIDs})
}

// SyncFavorites asks the backend to reconcile local and remote favorites
func (c *Client) SyncFavorites(ctx context.Context) (*http.Response, error) {
	return c.postJSON(ctx, apipaths.FavoritesSync, struct{}{})
}

type favoritesRequest struct {
	SongIDs []int `json:"song_ids"`
}

func (c *Client) postJSON(ctx context.Context, path string, body interface{}) (*http.Response, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}
	req, err := c.newRequest(ctx, http.MethodPost, path, bytes.NewReader(jsonData))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	target := *c.baseURL
	target.Path = c.baseURL.Path + path
	req, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return req, nil
}

// do runs the middleware pipeline and sends the request. Transport errors
// are returned unchanged so callers can inspect them directly.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	req, err := Chain(c.middlewares...)(req)
	if err != nil {
		return nil, err
	}

	c.logger.DebugContext(req.Context(), "api: sending request",
		"method", req.Method,
		"path", req.URL.Path,
		"backend_method", req.Header.Get(constants.HeaderMethod),
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	c.logger.DebugContext(req.Context(), "api: response received",
		"path", req.URL.Path,
		"status", resp.StatusCode,
	)
	return resp, nil
}

// DecodeJSON decodes a response body into v and closes it
func DecodeJSON(resp *http.Response, v interface{}) error {
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
