package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	fulfillmentapp "github.com/panel/backend/internal/application/fulfillment"
	"github.com/panel/backend/internal/domain/fulfillment"
	"github.com/panel/backend/internal/infrastructure/carrier"
	"github.com/panel/backend/internal/interfaces/http/dto"
)

// CarrierSignatureHeader carries the HMAC signature of the webhook body
const CarrierSignatureHeader = "X-Carrier-Signature"

// WebhookHandler receives shipment notifications from the shipping carrier.
// The route is unauthenticated; the carrier proves itself with the body
// signature. Non-2xx responses make the carrier redeliver, so the error
// mapping in BaseHandler.HandleError is part of the delivery contract.
type WebhookHandler struct {
	BaseHandler
	reconcile *fulfillmentapp.ReconcileService
	carrier   *carrier.Client
}

// NewWebhookHandler creates a new WebhookHandler. The carrier client may be
// nil when signature verification is not configured.
func NewWebhookHandler(reconcile *fulfillmentapp.ReconcileService, carrierClient *carrier.Client) *WebhookHandler {
	return &WebhookHandler{
		reconcile: reconcile,
		carrier:   carrierClient,
	}
}

// RegisterRoutes registers webhook routes
func (h *WebhookHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/webhooks/carrier", h.HandleCarrierNotification)
}

// carrierNotificationRequest mirrors the carrier's webhook body
type carrierNotificationRequest struct {
	Event          string `json:"event"`
	ShipmentID     string `json:"shipment_id"`
	Reference      string `json:"reference"`
	Status         string `json:"status"`
	TrackingNumber string `json:"tracking_number"`
}

// carrierNotificationResponse is the acknowledgement the carrier expects
type carrierNotificationResponse struct {
	Success bool   `json:"success"`
	OrderID int64  `json:"orderId"`
	Status  string `json:"status"`
}

// HandleCarrierNotification processes one shipment webhook
func (h *WebhookHandler) HandleCarrierNotification(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.BadRequest(c, "Failed to read request body")
		return
	}

	if h.carrier != nil && !h.carrier.VerifyWebhookSignature(body, c.GetHeader(CarrierSignatureHeader)) {
		h.Error(c, http.StatusUnauthorized, dto.ErrCodeSignatureInvalid, "Webhook signature verification failed")
		return
	}

	var req carrierNotificationRequest
	if err := json.Unmarshal(body, &req); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, "Request body is not valid JSON")
		return
	}

	notification := &fulfillment.CarrierNotification{
		Event:          req.Event,
		ShipmentID:     req.ShipmentID,
		Reference:      req.Reference,
		Status:         req.Status,
		TrackingNumber: req.TrackingNumber,
	}

	result, err := h.reconcile.ProcessNotification(c.Request.Context(), notification)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, carrierNotificationResponse{
		Success: true,
		OrderID: result.OrderID,
		Status:  result.Status,
	})
}
