package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrGetOrdersAwaitingActionQueryIsNotConstructed = errors.New(
		"GetOrdersAwaitingActionQuery must be created via NewGetOrdersAwaitingActionQuery constructor",
	)
)

// GetOrdersAwaitingActionQuery is the operator work queue: orders that are
// created_pending, held in needs_manual_verification, or approved but not yet
// shipped.
//
// Example:
//
//	query := NewGetOrdersAwaitingActionQuery()
//	handler := NewGetOrdersAwaitingActionQueryHandler(db)
//
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to load the operator queue: %w", err)
//	}
//
//	for _, o := range orders {
//	    fmt.Printf("%s %s %s\n", o.ID, o.Status, o.GrandTotal.StringFixed(2))
//	}
type GetOrdersAwaitingActionQuery struct {
	guard guard.ConstructorGuard
}

func NewGetOrdersAwaitingActionQuery() GetOrdersAwaitingActionQuery {
	return GetOrdersAwaitingActionQuery{guard: guard.NewConstructorGuard()}
}

func (q GetOrdersAwaitingActionQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersAwaitingActionQueryIsNotConstructed)
}

// GetOrdersAwaitingActionQueryResponse is one queue row. LastShipmentError is
// set when a carrier submission already failed for an approved order.
type GetOrdersAwaitingActionQueryResponse struct {
	ID                kernel.UUID
	Phone             string
	Status            order.Status
	PaymentMethod     order.PaymentMethod
	GrandTotal        decimal.Decimal
	HasDimensions     bool
	LastShipmentError string
	CreatedAt         time.Time
}
