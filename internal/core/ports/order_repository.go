// Package ports defines the contracts between the fulfillment core and its
// infrastructure: repositories, the unit of work, and the external
// collaborators (catalog, carriers, messaging, status mirror).
package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository persists Order aggregates with optimistic concurrency.
// Every successful write bumps the stored version; a write carrying a stale
// version fails with errs.VersionIsInvalidError.
type OrderRepository interface {
	Add(ctx context.Context, aggregate *order.Order) error

	// Update writes the aggregate if the stored version still equals aggregate.Version().
	Update(ctx context.Context, aggregate *order.Order) error

	// UpdateFromStatus is Update that also requires the stored status to equal expected.
	// It is how a transition is applied "only if the order is still in state X".
	UpdateFromStatus(ctx context.Context, aggregate *order.Order, expected order.Status) error

	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// CountByPhone counts orders placed with phone, ignoring exclude.
	CountByPhone(ctx context.Context, phone string, exclude kernel.UUID) (int64, error)

	// CountByCustomer counts orders placed by customerID or with phone, ignoring
	// exclude. Either identity may be empty.
	CountByCustomer(ctx context.Context, customerID, phone string, exclude kernel.UUID) (int64, error)

	// ClaimShipment marks an approved order as being shipped so that a concurrent
	// shipment attempt is refused. A claim older than ttl is considered abandoned.
	// Returns false when the order is not approved or already claimed.
	ClaimShipment(ctx context.Context, id kernel.UUID, at time.Time, ttl time.Duration) (bool, error)

	// ReleaseShipmentClaim clears a claim taken by ClaimShipment.
	ReleaseShipmentClaim(ctx context.Context, id kernel.UUID) error
}
