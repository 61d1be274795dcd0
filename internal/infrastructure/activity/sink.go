package activity

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Entry is one activity-log record. The sink is a collaborator owned by
// another team; this layer only posts to it.
type Entry struct {
	ID          string         `json:"id"`
	Actor       string         `json:"actor"`
	Action      string         `json:"action"`
	Entity      string         `json:"entity"`
	Description string         `json:"description"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	OccurredAt  time.Time      `json:"occurred_at"`
}

// Sink accepts activity entries fire-and-forget: Record never blocks the
// caller's request and never fails it.
type Sink interface {
	Record(entry Entry)
}

// HTTPSink posts entries to a remote activity-log service.
type HTTPSink struct {
	url        string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewHTTPSink creates a sink posting to the given URL. Timeout bounds each
// delivery attempt; there are no retries, a lost entry is acceptable.
func NewHTTPSink(url string, timeout time.Duration, logger *zap.Logger) *HTTPSink {
	if timeout == 0 {
		timeout = 3 * time.Second
	}
	return &HTTPSink{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Record delivers the entry in the background.
func (s *HTTPSink) Record(entry Entry) {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.OccurredAt.IsZero() {
		entry.OccurredAt = time.Now().UTC()
	}

	go func() {
		payload, err := json.Marshal(entry)
		if err != nil {
			s.logger.Warn("activity entry encode failed", zap.Error(err))
			return
		}

		req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, s.url, bytes.NewReader(payload))
		if err != nil {
			s.logger.Warn("activity entry request failed", zap.Error(err))
			return
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := s.httpClient.Do(req)
		if err != nil {
			s.logger.Warn("activity entry delivery failed",
				zap.String("action", entry.Action),
				zap.Error(err),
			)
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 400 {
			s.logger.Warn("activity sink rejected entry",
				zap.String("action", entry.Action),
				zap.Int("status", resp.StatusCode),
			)
		}
	}()
}

// NopSink discards entries. Used when no sink URL is configured and in tests.
type NopSink struct{}

// Record implements Sink
func (NopSink) Record(Entry) {}
