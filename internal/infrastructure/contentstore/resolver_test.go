package contentstore

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(&Config{BaseURL: server.URL, APIToken: "test-token"})
	require.NoError(t, err)
	return client, server
}

func TestResolver_ProbesInOrderAndCachesWinner(t *testing.T) {
	var hits atomic.Int64
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		// First candidate is gone on this deployment, second answers.
		if strings.HasPrefix(r.URL.Path, "/colecciones") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if strings.HasPrefix(r.URL.Path, "/serie-coleccions") {
			w.Write([]byte(`{"data": [{"id": 1, "nombre": "Narrativa"}]}`))
			return
		}
		t.Errorf("unexpected path %s", r.URL.Path)
	}))

	resolver := client.NewResolver()
	raw, err := resolver.Fetch(context.Background(), "collections", nil)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Narrativa")
	assert.Equal(t, int64(2), hits.Load())

	// Second fetch goes straight to the cached winner.
	_, err = resolver.Fetch(context.Background(), "collections", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(3), hits.Load())
}

func TestResolver_Resolve(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/autores") {
			assert.Equal(t, "1", r.URL.Query().Get("pagination[pageSize]"))
			w.Write([]byte(`{"data": []}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))

	resolver := client.NewResolver()
	endpoint, err := resolver.Resolve(context.Background(), "authors")
	require.NoError(t, err)
	assert.Equal(t, "autores", endpoint)
}

func TestResolver_ExhaustionNamesEveryCandidate(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	resolver := client.NewResolver()
	_, err := resolver.Fetch(context.Background(), "products", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEndpointExhausted)
	assert.ErrorIs(t, err, ErrEndpointNotFound)
	for _, candidate := range []string{"productos", "libros", "producto-catalogos"} {
		assert.Contains(t, err.Error(), candidate)
	}
}

func TestResolver_UnknownResource(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for an unknown resource")
	}))

	resolver := client.NewResolver()
	_, err := resolver.Fetch(context.Background(), "warehouses", nil)
	assert.ErrorIs(t, err, ErrResourceUnknown)
}

func TestResolver_IndependentInstancesProbeIndependently(t *testing.T) {
	var hits atomic.Int64
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(`{"data": []}`))
	}))

	_, err := client.NewResolver().Fetch(context.Background(), "tags", nil)
	require.NoError(t, err)
	_, err = client.NewResolver().Fetch(context.Background(), "tags", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), hits.Load())
}

func TestClient_Get(t *testing.T) {
	t.Run("sends bearer token and query", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
			assert.Equal(t, "2", r.URL.Query().Get("pagination[page]"))
			w.Write([]byte(`{"data": []}`))
		}))

		query := url.Values{}
		query.Set("pagination[page]", "2")
		_, err := client.Get(context.Background(), "libros", query)
		assert.NoError(t, err)
	})

	t.Run("server error", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))

		_, err := client.Get(context.Background(), "libros", nil)
		assert.ErrorIs(t, err, ErrRequestFailed)
	})

	t.Run("unreachable host", func(t *testing.T) {
		client, server := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close()

		_, err := client.Get(context.Background(), "libros", nil)
		assert.ErrorIs(t, err, ErrUnavailable)
	})

	t.Run("missing base url", func(t *testing.T) {
		_, err := NewClient(&Config{})
		assert.ErrorIs(t, err, ErrConfigMissingBaseURL)
	})
}
