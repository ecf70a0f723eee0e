// Package client is the Go client for the rental property API: a thin
// bearer-token transport plus a session store with durable rehydration.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"
)

// defaultTimeout bounds every outbound request. The server contract defines
// no timeout; a hung call would otherwise suspend the caller indefinitely.
const defaultTimeout = 15 * time.Second

// APIError is a structured error response from the server.
type APIError struct {
	Status  int
	Message string
	// Fields carries the per-field validation error map on 422 responses.
	Fields map[string]string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %d %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api: status %d", e.Status)
}

// IsUnauthorized reports whether the server rejected the credentials or
// token. The session layer resets on this class of failure.
func (e *APIError) IsUnauthorized() bool {
	return e.Status == http.StatusUnauthorized
}

// Client is the API gateway transport: it attaches the current bearer token
// to every outbound call. It performs no retries and no token refresh; a 401
// surfaces to the caller so the session invalidation path can run.
type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient substitutes the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout overrides the default request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// New creates a Client for the API served at baseURL (e.g.
// "http://localhost:8080/api").
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken installs the bearer token attached to subsequent requests. An
// empty token sends requests unauthenticated.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Token returns the currently installed bearer token.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// do runs one request: marshals body (when non-nil), injects the bearer
// token (when held), and decodes the response into out (when non-nil).
// Non-2xx responses are returned as *APIError.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}
	var envelope struct {
		Message string            `json:"message"`
		Errors  map[string]string `json:"errors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil {
		apiErr.Message = envelope.Message
		apiErr.Fields = envelope.Errors
	}
	return apiErr
}

// --- Auth endpoints ---

// Login exchanges credentials for a user and bearer token. It does not
// install the token; that is the session store's decision.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	var result AuthResult
	err := c.do(ctx, http.MethodPost, "/login", map[string]string{
		"email":    email,
		"password": password,
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Register creates an account and returns the fresh session pair.
func (c *Client) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	var result AuthResult
	err := c.do(ctx, http.MethodPost, "/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Me probes the server for the identity behind the current token.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout invalidates the current token server-side.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/logout", nil, nil)
}

// --- Property endpoints ---

// Properties lists every property, newest first, owner joined.
func (c *Client) Properties(ctx context.Context) ([]Property, error) {
	var props []Property
	if err := c.do(ctx, http.MethodGet, "/properties", nil, &props); err != nil {
		return nil, err
	}
	return props, nil
}

// Property fetches a single property by id.
func (c *Client) Property(ctx context.Context, id int64) (*Property, error) {
	var p Property
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/properties/%d", id), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateProperty creates a property owned by the authenticated user.
func (c *Client) CreateProperty(ctx context.Context, input PropertyInput) (*Property, error) {
	var p Property
	if err := c.do(ctx, http.MethodPost, "/properties", input, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateProperty applies a sparse update to a property the authenticated
// user owns.
func (c *Client) UpdateProperty(ctx context.Context, id int64, patch PropertyPatch) (*Property, error) {
	var p Property
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/properties/%d", id), patch, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// DeleteProperty removes a property the authenticated user owns.
func (c *Client) DeleteProperty(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/properties/%d", id), nil, nil)
}

// PropertyStats returns the acting user's portfolio rollup.
func (c *Client) PropertyStats(ctx context.Context) (*Stats, error) {
	var s Stats
	if err := c.do(ctx, http.MethodGet, "/properties/stats", nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
