package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Authentication error codes
const (
	// ErrCodeUnauthorized is used when authentication is required but missing/invalid
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	// ErrCodeTokenInvalid is used when the auth token is invalid
	ErrCodeTokenInvalid = "ERR_TOKEN_INVALID"
	// ErrCodeSignatureInvalid is used when a webhook signature does not verify
	ErrCodeSignatureInvalid = "ERR_SIGNATURE_INVALID"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
)

// Input error codes
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"
	// ErrCodeUnresolvableReference is used when a carrier reference carries no order id
	ErrCodeUnresolvableReference = "ERR_UNRESOLVABLE_REFERENCE"
)

// Upstream error codes
const (
	// ErrCodeUpstream is used when a backend request failed
	ErrCodeUpstream = "ERR_UPSTREAM"
	// ErrCodeEndpointExhausted is used when every candidate endpoint failed
	ErrCodeEndpointExhausted = "ERR_ENDPOINT_EXHAUSTED"
	// ErrCodePersistFailed is used when the order write-back failed
	ErrCodePersistFailed = "ERR_PERSIST_FAILED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes. The 4xx/5xx
// split doubles as the retry contract for webhook callers: terminal
// failures get 4xx, retryable ones get 5xx.
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeUnauthorized:     http.StatusUnauthorized,
	ErrCodeTokenInvalid:     http.StatusUnauthorized,
	ErrCodeSignatureInvalid: http.StatusUnauthorized,

	ErrCodeNotFound: http.StatusNotFound,

	ErrCodeBadRequest:            http.StatusBadRequest,
	ErrCodeInvalidInput:          http.StatusBadRequest,
	ErrCodeInvalidJSON:           http.StatusBadRequest,
	ErrCodeUnresolvableReference: http.StatusBadRequest,

	ErrCodeUpstream:          http.StatusBadGateway,
	ErrCodeEndpointExhausted: http.StatusBadGateway,
	ErrCodePersistFailed:     http.StatusBadGateway,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// LegacyErrorCodeMapping maps domain error codes to the standardized codes
var LegacyErrorCodeMapping = map[string]string{
	"NOT_FOUND":      ErrCodeNotFound,
	"INVALID_INPUT":  ErrCodeInvalidInput,
	"UNAUTHORIZED":   ErrCodeUnauthorized,
	"UPSTREAM_ERROR": ErrCodeUpstream,
}

// NormalizeErrorCode converts a domain error code to the standardized format
// If the code is already in the new format or unknown, returns it as-is
func NormalizeErrorCode(code string) string {
	if newCode, ok := LegacyErrorCodeMapping[code]; ok {
		return newCode
	}
	return code
}
