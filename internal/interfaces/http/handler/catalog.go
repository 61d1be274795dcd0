package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	catalogapp "github.com/panel/backend/internal/application/catalog"
	"github.com/panel/backend/internal/domain/catalog"
	"github.com/panel/backend/internal/interfaces/http/dto"
)

// CatalogHandler serves the dashboard's catalog listings and detail pages
type CatalogHandler struct {
	BaseHandler
	service *catalogapp.Service
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(service *catalogapp.Service) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// RegisterRoutes registers catalog routes
func (h *CatalogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/catalog/:kind", h.List)
	rg.GET("/catalog/:kind/:id", h.Get)
}

// List returns one page of catalog entities of the requested kind
func (h *CatalogHandler) List(c *gin.Context) {
	kind := catalog.Kind(c.Param("kind"))
	if !kind.IsValid() {
		h.BadRequest(c, "Unknown catalog kind: "+c.Param("kind"))
		return
	}

	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid pagination parameters")
		return
	}

	summaries, err := h.service.List(c.Request.Context(), kind, req.Page, req.PageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, summaries, req.Page, req.PageSize)
}

// Get returns a single catalog entity
func (h *CatalogHandler) Get(c *gin.Context) {
	kind := catalog.Kind(c.Param("kind"))
	if !kind.IsValid() {
		h.BadRequest(c, "Unknown catalog kind: "+c.Param("kind"))
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.BadRequest(c, "Invalid id")
		return
	}

	summary, err := h.service.Get(c.Request.Context(), kind, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}
