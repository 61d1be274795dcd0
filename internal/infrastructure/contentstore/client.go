package contentstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// maxResponseSize is the maximum allowed response size from the content store (10MB)
const maxResponseSize = 10 * 1024 * 1024

var (
	// ErrConfigMissingBaseURL indicates the base URL was not configured
	ErrConfigMissingBaseURL = errors.New("contentstore: missing base URL")
	// ErrEndpointNotFound indicates the physical endpoint does not exist on
	// this content-store deployment
	ErrEndpointNotFound = errors.New("contentstore: endpoint not found")
	// ErrRequestFailed indicates a non-404 error response from the content store
	ErrRequestFailed = errors.New("contentstore: request failed")
	// ErrUnavailable indicates the content store could not be reached
	ErrUnavailable = errors.New("contentstore: temporarily unavailable")
)

// Config holds content-store client configuration
type Config struct {
	BaseURL  string
	APIToken string
	Timeout  time.Duration
}

// Validate checks required fields and applies defaults
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return ErrConfigMissingBaseURL
	}
	if c.Timeout == 0 {
		c.Timeout = 10 * time.Second
	}
	return nil
}

// Client is an HTTP client for the headless content store. It is stateless;
// endpoint resolution state lives in per-request Resolver instances.
type Client struct {
	config     *Config
	httpClient *http.Client
}

// NewClient creates a new content-store client with the given configuration
func NewClient(config *Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}, nil
}

// Get performs a GET against a physical endpoint and returns the raw JSON
// body. A 404 is reported as ErrEndpointNotFound so callers can distinguish
// a renamed endpoint from a failing one.
func (c *Client) Get(ctx context.Context, endpoint string, query url.Values) (json.RawMessage, error) {
	u := c.config.BaseURL + "/" + url.PathEscape(endpoint)
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("contentstore: failed to create request: %w", err)
	}
	if c.config.APIToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.APIToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("contentstore: failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrEndpointNotFound, endpoint)
	case resp.StatusCode >= 400:
		return nil, fmt.Errorf("%w: %s: HTTP %d", ErrRequestFailed, endpoint, resp.StatusCode)
	}

	return body, nil
}
