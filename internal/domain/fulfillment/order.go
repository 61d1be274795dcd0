package fulfillment

import (
	"context"
	"regexp"
	"strconv"

	"github.com/shopspring/decimal"
)

// Meta keys reserved for carrier-derived values on an order.
const (
	MetaKeyCarrierID       = "_carrier_id"
	MetaKeyCarrierStatus   = "_carrier_status"
	MetaKeyCarrierTracking = "_carrier_tracking"
)

// MetaEntry is one key-value pair in an order's metadata list. The list is
// ordered: downstream systems render it in display order.
type MetaEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Order is the dashboard's view of an order-system order. Only Status and
// MetaEntries are ever written back.
type Order struct {
	ID          int64
	Status      string
	Total       decimal.Decimal
	Currency    string
	MetaEntries []MetaEntry
}

// OrderUpdate carries the fields written back to the order system.
type OrderUpdate struct {
	Status      string
	MetaEntries []MetaEntry
}

// OrderService is the port to the order system. The concrete HTTP client
// lives in the infrastructure layer.
type OrderService interface {
	// GetOrder fetches an order by id. A missing order is ErrOrderNotFound.
	GetOrder(ctx context.Context, id int64) (*Order, error)

	// UpdateOrder writes status and metadata back to the order system.
	UpdateOrder(ctx context.Context, id int64, update OrderUpdate) error
}

// CarrierNotification is an inbound shipment webhook. It is never stored;
// only its translated status and derived metadata persist.
type CarrierNotification struct {
	Event          string
	ShipmentID     string
	Reference      string
	Status         string
	TrackingNumber string
}

// Validate checks the fields the reconciliation requires.
func (n *CarrierNotification) Validate() error {
	if n.Reference == "" || n.ShipmentID == "" {
		return ErrMalformedNotification
	}
	return nil
}

// orderRefPattern matches an optional non-numeric prefix followed by the
// order id digits, e.g. "TEST-1042" or "1042".
var orderRefPattern = regexp.MustCompile(`^[^0-9]*([0-9]+)`)

// ExtractOrderID pulls the order id out of a free-form carrier reference.
func ExtractOrderID(reference string) (int64, error) {
	m := orderRefPattern.FindStringSubmatch(reference)
	if m == nil {
		return 0, ErrUnresolvableReference
	}
	id, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, ErrUnresolvableReference
	}
	return id, nil
}

// MergeMeta merges new entries into an existing ordered metadata list.
// Existing entries whose key is absent from the new set keep their original
// position; all new entries are appended afterward in the order given. The
// new value always wins for a matching key, which makes the merge idempotent
// under replay.
func MergeMeta(existing, entries []MetaEntry) []MetaEntry {
	replaced := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		replaced[e.Key] = struct{}{}
	}

	merged := make([]MetaEntry, 0, len(existing)+len(entries))
	for _, e := range existing {
		if _, ok := replaced[e.Key]; ok {
			continue
		}
		merged = append(merged, e)
	}
	return append(merged, entries...)
}
