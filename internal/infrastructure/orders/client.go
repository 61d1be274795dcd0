package orders

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/panel/backend/internal/domain/fulfillment"
)

// maxResponseSize is the maximum allowed response size from the order system (10MB)
const maxResponseSize = 10 * 1024 * 1024

var (
	// ErrConfigMissingBaseURL indicates the base URL was not configured
	ErrConfigMissingBaseURL = errors.New("orders: missing base URL")
	// ErrRequestFailed indicates an error response from the order system
	ErrRequestFailed = errors.New("orders: request failed")
	// ErrUnavailable indicates the order system could not be reached
	ErrUnavailable = errors.New("orders: temporarily unavailable")
)

// Config holds order-system client configuration
type Config struct {
	BaseURL        string
	ConsumerKey    string
	ConsumerSecret string
	Timeout        time.Duration
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

// Client is an HTTP client for the e-commerce order system. It implements
// the fulfillment.OrderService port.
type Client struct {
	config     *Config
	httpClient *http.Client
}

// NewClient creates a new order-system client with the given configuration
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

// apiOrder mirrors the order system's wire shape for an order
type apiOrder struct {
	ID       int64     `json:"id"`
	Status   string    `json:"status"`
	Total    string    `json:"total"`
	Currency string    `json:"currency"`
	MetaData []apiMeta `json:"meta_data"`
}

// apiMeta mirrors one meta_data entry. Values written by this layer are
// strings; inherited entries can carry any JSON value.
type apiMeta struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

// GetOrder fetches an order by id
func (c *Client) GetOrder(ctx context.Context, id int64) (*fulfillment.Order, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/orders/"+strconv.FormatInt(id, 10), nil)
	if err != nil {
		return nil, err
	}

	var raw apiOrder
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: failed to parse order: %v", ErrRequestFailed, err)
	}
	return convertOrder(&raw), nil
}

// UpdateOrder writes status and metadata back to the order system
func (c *Client) UpdateOrder(ctx context.Context, id int64, update fulfillment.OrderUpdate) error {
	payload := struct {
		Status   string    `json:"status"`
		MetaData []apiMeta `json:"meta_data"`
	}{
		Status:   update.Status,
		MetaData: make([]apiMeta, 0, len(update.MetaEntries)),
	}
	for _, e := range update.MetaEntries {
		payload.MetaData = append(payload.MetaData, apiMeta{Key: e.Key, Value: e.Value})
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("orders: failed to encode update: %w", err)
	}

	_, err = c.doRequest(ctx, http.MethodPut, "/orders/"+strconv.FormatInt(id, 10), encoded)
	return err
}

// doRequest performs an authenticated request to the order system
func (c *Client) doRequest(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.BaseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("orders: failed to create request: %w", err)
	}
	req.SetBasicAuth(c.config.ConsumerKey, c.config.ConsumerSecret)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("orders: failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fulfillment.ErrOrderNotFound
	case resp.StatusCode >= 400:
		return nil, fmt.Errorf("%w: %s %s: HTTP %d", ErrRequestFailed, method, path, resp.StatusCode)
	}

	return body, nil
}

// convertOrder converts the wire shape to the domain order
func convertOrder(raw *apiOrder) *fulfillment.Order {
	order := &fulfillment.Order{
		ID:          raw.ID,
		Status:      raw.Status,
		Total:       parseDecimal(raw.Total),
		Currency:    raw.Currency,
		MetaEntries: make([]fulfillment.MetaEntry, 0, len(raw.MetaData)),
	}
	for _, m := range raw.MetaData {
		order.MetaEntries = append(order.MetaEntries, fulfillment.MetaEntry{
			Key:   m.Key,
			Value: metaValueString(m.Value),
		})
	}
	return order
}

// parseDecimal parses a decimal string, defaulting to zero on bad input
func parseDecimal(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// metaValueString renders a meta value as a string. Non-string values are
// rendered as compact JSON so round-tripping them back is lossless enough
// for display and merge purposes.
func metaValueString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case nil:
		return ""
	default:
		encoded, err := json.Marshal(s)
		if err != nil {
			return fmt.Sprintf("%v", s)
		}
		return string(encoded)
	}
}

// Ensure Client implements the OrderService port
var _ fulfillment.OrderService = (*Client)(nil)
