package carrier

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxResponseSize is the maximum allowed response size from the carrier API (1MB)
const maxResponseSize = 1 * 1024 * 1024

var (
	// ErrConfigMissingBaseURL indicates the base URL was not configured
	ErrConfigMissingBaseURL = errors.New("carrier: missing base URL")
	// ErrShipmentNotFound indicates the carrier has no such shipment
	ErrShipmentNotFound = errors.New("carrier: shipment not found")
	// ErrRequestFailed indicates an error response from the carrier API
	ErrRequestFailed = errors.New("carrier: request failed")
	// ErrUnavailable indicates the carrier API could not be reached
	ErrUnavailable = errors.New("carrier: temporarily unavailable")
)

// Config holds carrier client configuration
type Config struct {
	BaseURL       string
	APIKey        string
	WebhookSecret string
	Timeout       time.Duration
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

// Shipment is the carrier's view of one shipment
type Shipment struct {
	ID             string `json:"id"`
	Reference      string `json:"reference"`
	Status         string `json:"status"`
	TrackingNumber string `json:"tracking_number"`
	TrackingURL    string `json:"tracking_url"`
}

// Client is an HTTP client for the shipping carrier API
type Client struct {
	config     *Config
	httpClient *http.Client
}

// NewClient creates a new carrier client with the given configuration
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

// GetShipment fetches live shipment state for the dashboard detail pages
func (c *Client) GetShipment(ctx context.Context, shipmentID string) (*Shipment, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+"/shipments/"+shipmentID, nil)
	if err != nil {
		return nil, fmt.Errorf("carrier: failed to create request: %w", err)
	}
	if c.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("carrier: failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrShipmentNotFound, shipmentID)
	case resp.StatusCode >= 400:
		return nil, fmt.Errorf("%w: HTTP %d", ErrRequestFailed, resp.StatusCode)
	}

	var shipment Shipment
	if err := json.Unmarshal(body, &shipment); err != nil {
		return nil, fmt.Errorf("%w: failed to parse shipment: %v", ErrRequestFailed, err)
	}
	return &shipment, nil
}

// VerifyWebhookSignature checks the HMAC-SHA256 hex signature the carrier
// sends with each webhook. An empty configured secret disables verification
// (development only; production config requires the secret).
func (c *Client) VerifyWebhookSignature(body []byte, signature string) bool {
	if c.config.WebhookSecret == "" {
		return true
	}
	mac := hmac.New(sha256.New, []byte(c.config.WebhookSecret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
