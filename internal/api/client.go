// Package api is the HTTP boundary to the remote storefront backend. It owns
// authentication headers, the response cache, timeouts and the mapping of
// failures into a closed set of error kinds; everything above it works with
// typed values only.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// TokenSource yields the bearer credential for outbound requests. An empty
// token means the current session is unauthenticated and no Authorization
// header is sent.
type TokenSource interface {
	Token() string
}

// Client issues JSON requests against the backend API
type Client struct {
	httpClient     *http.Client
	baseURL        string
	tokens         TokenSource
	cache          *responseCache
	cacheEnabled   bool
	onUnauthorized func()
	logger         *zap.Logger
	group          singleflight.Group
}

// Option configures a Client
type Option func(*Client)

// WithTokenSource attaches the credential source used for the bearer header
func WithTokenSource(tokens TokenSource) Option {
	return func(c *Client) { c.tokens = tokens }
}

// WithLogger sets the logger; a no-op logger is used otherwise
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithOnUnauthorized registers the hook invoked once per 401 response,
// before the error is returned to the caller
func WithOnUnauthorized(hook func()) Option {
	return func(c *Client) { c.onUnauthorized = hook }
}

// WithCache enables the GET response cache with the given TTL
func WithCache(ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = newResponseCache(ttl)
		c.cacheEnabled = ttl > 0
	}
}

// NewClient creates a client for the API at baseURL. Requests time out after
// the given duration and are never retried.
func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		cache:      newResponseCache(0),
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RequestOption adjusts a single call
type RequestOption func(*requestOptions)

type requestOptions struct {
	bypassCache bool
}

// BypassCache makes a GET skip the response cache in both directions. Cart
// reads always use it: a mutable authenticated resource must never be served
// stale.
func BypassCache() RequestOption {
	return func(o *requestOptions) { o.bypassCache = true }
}

// Get issues a GET and decodes the JSON response into out. Successful
// responses are served from and stored into the cache unless bypassed;
// concurrent misses for the same URL are collapsed into one upstream call.
func (c *Client) Get(ctx context.Context, path string, out interface{}, opts ...RequestOption) error {
	var options requestOptions
	for _, opt := range opts {
		opt(&options)
	}

	useCache := c.cacheEnabled && !options.bypassCache
	key := c.baseURL + path

	if useCache {
		if body, ok := c.cache.get(key); ok {
			return decodeInto(body, out)
		}

		body, err, _ := c.group.Do(key, func() (interface{}, error) {
			body, err := c.do(ctx, http.MethodGet, path, nil)
			if err != nil {
				return nil, err
			}
			c.cache.set(key, body)
			return body, nil
		})
		if err != nil {
			return err
		}
		return decodeInto(body.([]byte), out)
	}

	body, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return decodeInto(body, out)
}

// Post issues a POST with a JSON body and decodes the response into out
func (c *Client) Post(ctx context.Context, path string, payload, out interface{}) error {
	body, err := c.do(ctx, http.MethodPost, path, payload)
	if err != nil {
		return err
	}
	return decodeInto(body, out)
}

// Put issues a PUT with a JSON body and decodes the response into out
func (c *Client) Put(ctx context.Context, path string, payload, out interface{}) error {
	body, err := c.do(ctx, http.MethodPut, path, payload)
	if err != nil {
		return err
	}
	return decodeInto(body, out)
}

// Delete issues a DELETE and decodes the response into out
func (c *Client) Delete(ctx context.Context, path string, out interface{}) error {
	body, err := c.do(ctx, http.MethodDelete, path, nil)
	if err != nil {
		return err
	}
	return decodeInto(body, out)
}

// Invalidate drops the cache entries for the given API paths
func (c *Client) Invalidate(paths ...string) {
	keys := make([]string, len(paths))
	for i, path := range paths {
		keys[i] = c.baseURL + path
	}
	c.cache.invalidate(keys...)
}

// ClearCache drops every cached response
func (c *Client) ClearCache() {
	c.cache.clear()
}

func (c *Client) do(ctx context.Context, method, path string, payload interface{}) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return nil, networkError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, networkError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if resp.StatusCode == http.StatusUnauthorized && c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		apiErr := decodeError(resp.StatusCode, body)
		c.logger.Debug("api error",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("kind", apiErr.Kind.String()))
		return nil, apiErr
	}

	return body, nil
}

func decodeInto(body []byte, out interface{}) error {
	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
