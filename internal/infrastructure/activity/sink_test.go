package activity

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHTTPSink_Record(t *testing.T) {
	received := make(chan Entry, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		var entry Entry
		require.NoError(t, json.Unmarshal(body, &entry))
		received <- entry
	}))
	defer server.Close()

	sink := NewHTTPSink(server.URL, 0, zap.NewNop())
	sink.Record(Entry{
		Actor:  "carrier-webhook",
		Action: "order.status_updated",
		Entity: "order:1042",
	})

	select {
	case entry := <-received:
		assert.Equal(t, "carrier-webhook", entry.Actor)
		assert.Equal(t, "order.status_updated", entry.Action)
		assert.NotEmpty(t, entry.ID)
		assert.False(t, entry.OccurredAt.IsZero())
	case <-time.After(2 * time.Second):
		t.Fatal("entry never delivered")
	}
}

func TestHTTPSink_KeepsCallerFieldsWhenSet(t *testing.T) {
	received := make(chan Entry, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var entry Entry
		_ = json.Unmarshal(body, &entry)
		received <- entry
	}))
	defer server.Close()

	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	sink := NewHTTPSink(server.URL, 0, zap.NewNop())
	sink.Record(Entry{ID: "fixed-id", Action: "test", OccurredAt: at})

	select {
	case entry := <-received:
		assert.Equal(t, "fixed-id", entry.ID)
		assert.True(t, entry.OccurredAt.Equal(at))
	case <-time.After(2 * time.Second):
		t.Fatal("entry never delivered")
	}
}

func TestHTTPSink_NeverFailsCaller(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	sink := NewHTTPSink(server.URL, 100*time.Millisecond, zap.NewNop())
	assert.NotPanics(t, func() {
		sink.Record(Entry{Action: "test"})
	})
}

func TestNopSink(t *testing.T) {
	assert.NotPanics(t, func() {
		NopSink{}.Record(Entry{Action: "test"})
	})
}
