// Package transport provides the HTTP client used to fetch remote
// catalogs, with optional token authentication.
package transport

import (
	"net/http"

	"github.com/agentstation/diecast/pkg/catalogs"
	"github.com/agentstation/diecast/pkg/constants"
)

// DefaultHTTPTimeout is the default timeout for HTTP requests.
var DefaultHTTPTimeout = constants.DefaultTimeout

// UserAgent identifies catalog fetches.
const UserAgent = "diecast"

// Client is an HTTP client that authenticates every request.
type Client struct {
	http  *http.Client
	auth  Authenticator
	token string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New creates a client that applies token with auth. An empty token
// sends requests unauthenticated.
func New(auth Authenticator, token string, opts ...Option) *Client {
	if auth == nil {
		auth = &NoAuth{}
	}
	c := &Client{
		http:  &http.Client{Timeout: DefaultHTTPTimeout},
		auth:  auth,
		token: token,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Do performs an HTTP request with authentication applied.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	if c.token != "" {
		c.auth.Apply(req, c.token)
	}
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", UserAgent)
	}
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9, */*;q=0.1")
	return c.http.Do(req)
}

var _ catalogs.Doer = (*Client)(nil)
