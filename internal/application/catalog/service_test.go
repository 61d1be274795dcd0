package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/panel/backend/internal/domain/catalog"
	"github.com/panel/backend/internal/domain/shared"
	"github.com/panel/backend/internal/infrastructure/contentstore"
)

func newTestService(t *testing.T, handler http.Handler) *Service {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	store, err := contentstore.NewClient(&contentstore.Config{BaseURL: server.URL})
	require.NoError(t, err)
	return NewService(store, zap.NewNop())
}

func TestService_List(t *testing.T) {
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/colecciones":
			w.WriteHeader(http.StatusNotFound)
		case "/serie-coleccions":
			assert.Equal(t, "2", r.URL.Query().Get("pagination[page]"))
			assert.Equal(t, "10", r.URL.Query().Get("pagination[pageSize]"))
			assert.Equal(t, "*", r.URL.Query().Get("populate"))
			w.Write([]byte(`{"data": [
				{"id": 1, "attributes": {"nombre_marca": "Austral", "slug": "austral"}},
				{"id": 2, "attributes": {"name": "Contempla", "descripcion": "Serie de ensayo"}}
			]}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))

	summaries, err := svc.List(context.Background(), catalog.KindCollection, 2, 10)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	assert.Equal(t, int64(1), summaries[0].ID)
	assert.Equal(t, "Austral", summaries[0].Name)
	assert.Equal(t, "austral", summaries[0].Slug)

	assert.Equal(t, int64(2), summaries[1].ID)
	assert.Equal(t, "Contempla", summaries[1].Name)
	assert.Equal(t, "Serie de ensayo", summaries[1].Description)
}

func TestService_List_ClampsPagination(t *testing.T) {
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("pagination[page]"))
		assert.Equal(t, "20", r.URL.Query().Get("pagination[pageSize]"))
		w.Write([]byte(`{"data": []}`))
	}))

	summaries, err := svc.List(context.Background(), catalog.KindProduct, 0, 500)
	require.NoError(t, err)
	assert.Empty(t, summaries)
}

func TestService_List_InvalidKind(t *testing.T) {
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for an invalid kind")
	}))

	_, err := svc.List(context.Background(), catalog.Kind("warehouses"), 1, 20)
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestService_Get(t *testing.T) {
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/autores", r.URL.Path)
		assert.Equal(t, "9", r.URL.Query().Get("filters[id][$eq]"))
		w.Write([]byte(`{"data": [{"id": 9, "documentId": "doc9", "nombre": "Ana Laguna"}]}`))
	}))

	summary, err := svc.Get(context.Background(), catalog.KindAuthor, 9)
	require.NoError(t, err)
	assert.Equal(t, int64(9), summary.ID)
	assert.Equal(t, "doc9", summary.DocumentID)
	assert.Equal(t, "Ana Laguna", summary.Name)
}

func TestService_Get_NotFound(t *testing.T) {
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": []}`))
	}))

	_, err := svc.Get(context.Background(), catalog.KindAuthor, 404)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestService_Get_AllEndpointsGone(t *testing.T) {
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := svc.Get(context.Background(), catalog.KindCategory, 1)
	assert.ErrorIs(t, err, contentstore.ErrEndpointExhausted)
}
