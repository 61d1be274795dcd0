package fulfillment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/panel/backend/internal/domain/fulfillment"
	"github.com/panel/backend/internal/infrastructure/activity"
)

// ReconcileService reconciles an order's state across the three systems
// when a carrier shipment webhook arrives. Each notification is handled to
// completion within its own request: validate, locate the order, translate
// the carrier status into the order system's vocabulary, merge the derived
// metadata, write back. Replaying a notification is safe because the merge
// replaces by key and the translation is a pure function of the input.
type ReconcileService struct {
	orders fulfillment.OrderService
	sink   activity.Sink
	logger *zap.Logger
}

// NewReconcileService creates a new ReconcileService
func NewReconcileService(orders fulfillment.OrderService, sink activity.Sink, logger *zap.Logger) *ReconcileService {
	return &ReconcileService{
		orders: orders,
		sink:   sink,
		logger: logger,
	}
}

// ReconcileResult reports the final order state after a notification.
type ReconcileResult struct {
	OrderID     int64
	Status      string
	MetaEntries []fulfillment.MetaEntry
}

// ProcessNotification runs the reconciliation for one inbound notification.
// Terminal failures (malformed, unresolvable reference, unknown order) come
// back as the corresponding fulfillment sentinel; the carrier must not
// redeliver those. Persist failures come back as ErrPersistFailed and are
// retryable via carrier redelivery.
func (s *ReconcileService) ProcessNotification(ctx context.Context, n *fulfillment.CarrierNotification) (*ReconcileResult, error) {
	if err := n.Validate(); err != nil {
		return nil, err
	}

	orderID, err := fulfillment.ExtractOrderID(n.Reference)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", err, n.Reference)
	}

	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, fulfillment.ErrOrderNotFound) {
			s.logger.Warn("carrier notification for unknown order",
				zap.Int64("order_id", orderID),
				zap.String("shipment_id", n.ShipmentID),
				zap.String("reference", n.Reference),
			)
			return nil, fmt.Errorf("%w: %d", fulfillment.ErrOrderNotFound, orderID)
		}
		return nil, err
	}

	status := fulfillment.CarrierStatuses.ToInternal(n.Status)

	entries := []fulfillment.MetaEntry{
		{Key: fulfillment.MetaKeyCarrierID, Value: n.ShipmentID},
		{Key: fulfillment.MetaKeyCarrierStatus, Value: strings.TrimSpace(n.Status)},
	}
	if n.TrackingNumber != "" {
		entries = append(entries, fulfillment.MetaEntry{
			Key:   fulfillment.MetaKeyCarrierTracking,
			Value: n.TrackingNumber,
		})
	}
	merged := fulfillment.MergeMeta(order.MetaEntries, entries)

	update := fulfillment.OrderUpdate{Status: status, MetaEntries: merged}
	if err := s.orders.UpdateOrder(ctx, orderID, update); err != nil {
		s.logger.Error("order write-back failed",
			zap.Int64("order_id", orderID),
			zap.String("shipment_id", n.ShipmentID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %v", fulfillment.ErrPersistFailed, err)
	}

	s.logger.Info("order reconciled from carrier notification",
		zap.Int64("order_id", orderID),
		zap.String("shipment_id", n.ShipmentID),
		zap.String("carrier_status", n.Status),
		zap.String("order_status", status),
	)
	s.sink.Record(activity.Entry{
		Actor:       "carrier-webhook",
		Action:      "order.status_updated",
		Entity:      fmt.Sprintf("order:%d", orderID),
		Description: fmt.Sprintf("Shipment %s reported %s", n.ShipmentID, n.Status),
		Metadata: map[string]any{
			"shipment_id":  n.ShipmentID,
			"order_status": status,
		},
	})

	return &ReconcileResult{
		OrderID:     orderID,
		Status:      status,
		MetaEntries: merged,
	}, nil
}
