package catalog

import (
	"context"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"github.com/panel/backend/internal/domain/catalog"
	"github.com/panel/backend/internal/domain/shared"
	"github.com/panel/backend/internal/infrastructure/contentstore"
)

// Service is the read path behind the dashboard's catalog listings and
// detail pages. Every call runs its own endpoint resolution pass; nothing
// is cached across requests.
type Service struct {
	store  *contentstore.Client
	logger *zap.Logger
}

// NewService creates a new catalog read service
func NewService(store *contentstore.Client, logger *zap.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger,
	}
}

// Summary is the display-ready projection of one catalog entity, with the
// drifting field names already resolved through the alias tables.
type Summary struct {
	ID          int64  `json:"id"`
	DocumentID  string `json:"document_id,omitempty"`
	Name        string `json:"name"`
	Slug        string `json:"slug,omitempty"`
	Description string `json:"description,omitempty"`
	CoverURL    string `json:"cover_url,omitempty"`
}

// List fetches one page of entities of the given kind.
func (s *Service) List(ctx context.Context, kind catalog.Kind, page, pageSize int) ([]Summary, error) {
	if !kind.IsValid() {
		return nil, shared.ErrInvalidInput
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	query := url.Values{}
	query.Set("pagination[page]", strconv.Itoa(page))
	query.Set("pagination[pageSize]", strconv.Itoa(pageSize))
	query.Set("populate", "*")

	raw, err := s.store.NewResolver().Fetch(ctx, kind.String(), query)
	if err != nil {
		return nil, err
	}

	records, err := contentstore.Normalize(raw)
	if err != nil {
		return nil, err
	}

	summaries := make([]Summary, 0, len(records))
	for _, rec := range records {
		summaries = append(summaries, summarize(kind, rec))
	}
	return summaries, nil
}

// Get fetches one entity by id.
func (s *Service) Get(ctx context.Context, kind catalog.Kind, id int64) (*Summary, error) {
	if !kind.IsValid() {
		return nil, shared.ErrInvalidInput
	}

	query := url.Values{}
	query.Set("filters[id][$eq]", strconv.FormatInt(id, 10))
	query.Set("populate", "*")

	raw, err := s.store.NewResolver().Fetch(ctx, kind.String(), query)
	if err != nil {
		return nil, err
	}

	records, err := contentstore.Normalize(raw)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, shared.ErrNotFound
	}

	summary := summarize(kind, records[0])
	return &summary, nil
}

// summarize resolves the drifting field names into the display projection
func summarize(kind catalog.Kind, rec catalog.Record) Summary {
	return Summary{
		ID:          rec.ID,
		DocumentID:  rec.DocumentID,
		Name:        catalog.ResolveString(kind, rec, catalog.FieldDisplayName),
		Slug:        catalog.ResolveString(kind, rec, catalog.FieldSlug),
		Description: catalog.ResolveString(kind, rec, catalog.FieldDescription),
		CoverURL:    catalog.ResolveString(kind, rec, catalog.FieldCoverURL),
	}
}
