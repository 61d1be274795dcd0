package fulfillment

import "errors"

var (
	// ErrMalformedNotification indicates a webhook missing required fields.
	// Terminal: the carrier must not redeliver.
	ErrMalformedNotification = errors.New("fulfillment: malformed carrier notification")

	// ErrUnresolvableReference indicates a reference string with no
	// extractable order id. Terminal.
	ErrUnresolvableReference = errors.New("fulfillment: reference carries no order id")

	// ErrOrderNotFound indicates the order system has no matching order.
	// Terminal, logged for investigation.
	ErrOrderNotFound = errors.New("fulfillment: order not found")

	// ErrPersistFailed indicates the write-back to the order system failed.
	// Retryable: surfaced as non-2xx so the carrier redelivers.
	ErrPersistFailed = errors.New("fulfillment: order update failed")
)
