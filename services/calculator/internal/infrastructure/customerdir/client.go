// Package customerdir implements the customer directory port against the
// customer service's HTTP API.
package customerdir

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/crestbank/crest/services/calculator/internal/domain/port"
)

// Compile-time interface check.
var _ port.CustomerDirectory = (*Client)(nil)

// Client fetches customer classification tags over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	authToken  string
}

// Option configures the client.
type Option func(*Client)

// WithAuthToken attaches a bearer token to outgoing requests.
func WithAuthToken(token string) Option {
	return func(c *Client) { c.authToken = token }
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a directory client for the given base URL.
func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type customerResponse struct {
	ID              int64    `json:"id"`
	Classifications []string `json:"classifications"`
}

// Classifications returns the customer's tags. An unknown customer yields
// an empty slice, not an error; transport failures surface.
func (c *Client) Classifications(ctx context.Context, customerID int64) ([]string, error) {
	url := fmt.Sprintf("%s/api/v1/customers/%d", c.baseURL, customerID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build customer request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch customer %d: %w", customerID, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, nil
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("customer service returned %d: %s", resp.StatusCode, body)
	}

	var customer customerResponse
	if err := json.NewDecoder(resp.Body).Decode(&customer); err != nil {
		return nil, fmt.Errorf("decode customer %d: %w", customerID, err)
	}
	return customer.Classifications, nil
}
