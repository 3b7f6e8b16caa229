package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

type NotificationKind string

const (
	NotificationPlaced         NotificationKind = "placed"
	NotificationShipped        NotificationKind = "shipped"
	NotificationPicked         NotificationKind = "picked"
	NotificationOutForDelivery NotificationKind = "out_for_delivery"
	NotificationDelivered      NotificationKind = "delivered"
)

// Notification is a customer message waiting in the outbox. OptedOut rows are
// stored for audit but never dispatched.
type Notification struct {
	ID        kernel.UUID
	OrderID   kernel.UUID
	Kind      NotificationKind
	Phone     string
	Data      map[string]string
	OptedOut  bool
	CreatedAt time.Time
}

// NotificationQueue accepts notifications for later delivery. It never sends inline.
type NotificationQueue interface {
	Enqueue(ctx context.Context, n Notification) error
}

// NotificationOutbox is the consumer side of NotificationQueue.
type NotificationOutbox interface {
	// ClaimPending atomically moves up to limit pending rows to dispatching and
	// returns them. A claimed row is never returned again, so a crash between
	// claim and send loses the message instead of sending it twice.
	ClaimPending(ctx context.Context, limit int) ([]Notification, error)
	MarkSent(ctx context.Context, id kernel.UUID, messageID string, at time.Time) error
	MarkFailed(ctx context.Context, id kernel.UUID, reason string, at time.Time) error
}

type DispatchResult struct {
	Success   bool
	MessageID string
	Error     string
}

// NotificationDispatcher delivers one message through the messaging provider.
type NotificationDispatcher interface {
	Send(ctx context.Context, kind NotificationKind, phone string, data map[string]string) DispatchResult
}
