package ports

import (
	"context"
	"time"
)

// OrderStatusView is the customer-facing projection of an order's progress.
type OrderStatusView struct {
	OrderID     string
	Phone       string
	Status      string
	Carrier     string
	AWB         string
	TrackingURL string
	UpdatedAt   time.Time
}

type StatusMirror interface {
	Mirror(ctx context.Context, view OrderStatusView) error
}
