package fulfillment

import (
	"context"

	"go.uber.org/zap"

	"github.com/panel/backend/internal/domain/fulfillment"
	"github.com/panel/backend/internal/infrastructure/carrier"
)

// OrderQueryService serves the dashboard's order detail pages: the order
// from the order system with its status rendered in display vocabulary,
// plus live shipment state when the order carries a carrier id.
type OrderQueryService struct {
	orders  fulfillment.OrderService
	carrier *carrier.Client
	logger  *zap.Logger
}

// NewOrderQueryService creates a new OrderQueryService. The carrier client
// may be nil when no carrier is configured.
func NewOrderQueryService(orders fulfillment.OrderService, carrierClient *carrier.Client, logger *zap.Logger) *OrderQueryService {
	return &OrderQueryService{
		orders:  orders,
		carrier: carrierClient,
		logger:  logger,
	}
}

// OrderView is the dashboard-facing projection of an order.
type OrderView struct {
	ID            int64                   `json:"id"`
	Status        string                  `json:"status"`
	DisplayStatus string                  `json:"display_status"`
	Total         string                  `json:"total"`
	Currency      string                  `json:"currency"`
	MetaEntries   []fulfillment.MetaEntry `json:"meta_entries"`
	Shipment      *carrier.Shipment       `json:"shipment,omitempty"`
}

// GetOrder fetches one order. Shipment lookup is best-effort: a carrier
// outage degrades the view, it does not fail the page.
func (s *OrderQueryService) GetOrder(ctx context.Context, id int64) (*OrderView, error) {
	order, err := s.orders.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	view := &OrderView{
		ID:            order.ID,
		Status:        order.Status,
		DisplayStatus: fulfillment.DisplayStatuses.ToInternal(order.Status),
		Total:         order.Total.StringFixed(2),
		Currency:      order.Currency,
		MetaEntries:   order.MetaEntries,
	}

	if s.carrier != nil {
		if shipmentID := findMeta(order.MetaEntries, fulfillment.MetaKeyCarrierID); shipmentID != "" {
			shipment, err := s.carrier.GetShipment(ctx, shipmentID)
			if err != nil {
				s.logger.Warn("shipment lookup failed",
					zap.Int64("order_id", id),
					zap.String("shipment_id", shipmentID),
					zap.Error(err),
				)
			} else {
				view.Shipment = shipment
			}
		}
	}

	return view, nil
}

func findMeta(entries []fulfillment.MetaEntry, key string) string {
	for _, e := range entries {
		if e.Key == key {
			return e.Value
		}
	}
	return ""
}
