package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	fulfillmentapp "github.com/panel/backend/internal/application/fulfillment"
)

// OrderHandler serves the dashboard's order detail pages
type OrderHandler struct {
	BaseHandler
	query *fulfillmentapp.OrderQueryService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(query *fulfillmentapp.OrderQueryService) *OrderHandler {
	return &OrderHandler{query: query}
}

// RegisterRoutes registers order routes
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/orders/:id", h.Get)
}

// Get returns one order with display status and live shipment state
func (h *OrderHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.BadRequest(c, "Invalid order id")
		return
	}

	view, err := h.query.GetOrder(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}
