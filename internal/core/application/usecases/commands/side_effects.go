package commands

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// SideEffectResult is the outcome of one best-effort step run after a commit.
type SideEffectResult struct {
	Step string
	Err  error
}

func (r SideEffectResult) OK() bool { return r.Err == nil }

// OrderObserver runs the observers of an order change: the customer-facing
// status mirror and the notification outbox. Failures are logged and
// returned, never propagated to the operation that triggered them.
type OrderObserver struct {
	mirror ports.StatusMirror
	queue  ports.NotificationQueue
	clock  ports.Clock
	logger *slog.Logger
}

func NewOrderObserver(
	mirror ports.StatusMirror,
	queue ports.NotificationQueue,
	clock ports.Clock,
	logger *slog.Logger,
) OrderObserver {
	return OrderObserver{
		mirror: mirror,
		queue:  queue,
		clock:  clock,
		logger: logger.With("component", "order_observer"),
	}
}

// OrderChanged mirrors o and, if kind is not empty, enqueues a notification.
// Customers who opted out get an audit row that is never dispatched.
func (ob OrderObserver) OrderChanged(ctx context.Context, o *order.Order, kind ports.NotificationKind) []SideEffectResult {
	now := ob.clock.Now()
	view := ports.OrderStatusView{
		OrderID:   o.ID().String(),
		Phone:     o.Phone(),
		Status:    o.Status().String(),
		UpdatedAt: now,
	}
	if s := o.Shipment(); s != nil {
		view.Carrier = s.Carrier
		view.AWB = s.AWB
		view.TrackingURL = s.TrackingURL
	}

	results := make([]SideEffectResult, 0, 2)

	err := ob.mirror.Mirror(ctx, view)
	if err != nil {
		ob.logger.ErrorContext(ctx, "Failed to mirror order status",
			"order_id", view.OrderID, "status", view.Status, "error", err)
	}
	results = append(results, SideEffectResult{Step: "status_mirror", Err: err})

	if kind == "" {
		return results
	}

	err = ob.queue.Enqueue(ctx, ports.Notification{
		ID:        kernel.NewUUID(),
		OrderID:   o.ID(),
		Kind:      kind,
		Phone:     o.Phone(),
		Data:      notificationData(o, view),
		OptedOut:  o.NotificationsOptOut(),
		CreatedAt: now,
	})
	if err != nil {
		ob.logger.ErrorContext(ctx, "Failed to enqueue notification",
			"order_id", view.OrderID, "kind", string(kind), "error", err)
	}
	results = append(results, SideEffectResult{Step: "notification_" + string(kind), Err: err})

	return results
}

func notificationData(o *order.Order, view ports.OrderStatusView) map[string]string {
	data := map[string]string{
		"order_id":    view.OrderID,
		"status":      view.Status,
		"grand_total": o.GrandTotal().StringFixed(2),
	}
	if view.AWB != "" {
		data["awb"] = view.AWB
		data["carrier"] = view.Carrier
		data["tracking_url"] = view.TrackingURL
	}
	return data
}
