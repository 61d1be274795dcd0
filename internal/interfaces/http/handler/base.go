package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/panel/backend/internal/domain/fulfillment"
	"github.com/panel/backend/internal/domain/shared"
	"github.com/panel/backend/internal/infrastructure/contentstore"
	"github.com/panel/backend/internal/interfaces/http/dto"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// getRequestID extracts the request ID from the context
func getRequestID(c *gin.Context) string {
	if id := c.GetString("request_id"); id != "" {
		return id
	}
	return c.GetHeader("X-Request-ID")
}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta sends a success response with pagination meta
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data any, page, pageSize int) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, page, pageSize))
}

// Error sends an error response with the given status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, getRequestID(c)))
}

// ErrorWithCode sends an error response, deriving status code from error code
func (h *BaseHandler) ErrorWithCode(c *gin.Context, code, message string) {
	h.Error(c, dto.GetHTTPStatus(code), code, message)
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// NotFound sends a 404 not found response
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, message)
}

// InternalError sends a 500 internal server error response
func (h *BaseHandler) InternalError(c *gin.Context, message string) {
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, message)
}

// HandleError converts domain and upstream errors to HTTP responses. The
// status choice carries the retry contract: terminal conditions map to 4xx,
// transient upstream conditions to 502 so callers know to retry.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	switch {
	case errors.Is(err, fulfillment.ErrMalformedNotification):
		h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, "Malformed notification")
	case errors.Is(err, fulfillment.ErrUnresolvableReference):
		h.Error(c, http.StatusBadRequest, dto.ErrCodeUnresolvableReference, "Reference carries no order id")
	case errors.Is(err, fulfillment.ErrOrderNotFound):
		h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, "Order not found")
	case errors.Is(err, fulfillment.ErrPersistFailed):
		h.Error(c, http.StatusBadGateway, dto.ErrCodePersistFailed, "Order update failed, retry later")
	case errors.Is(err, contentstore.ErrEndpointExhausted):
		h.Error(c, http.StatusBadGateway, dto.ErrCodeEndpointExhausted, err.Error())
	case errors.Is(err, contentstore.ErrMalformedPayload):
		h.Error(c, http.StatusBadGateway, dto.ErrCodeUpstream, "Content store returned an unrecognized payload")
	case errors.Is(err, contentstore.ErrUnavailable):
		h.Error(c, http.StatusBadGateway, dto.ErrCodeUpstream, "Content store unavailable")
	default:
		var domainErr *shared.DomainError
		if errors.As(err, &domainErr) {
			code := dto.NormalizeErrorCode(domainErr.Code)
			h.Error(c, dto.GetHTTPStatus(code), code, domainErr.Message)
			return
		}
		h.Error(c, http.StatusBadGateway, dto.ErrCodeUpstream, "Upstream request failed")
	}
}
