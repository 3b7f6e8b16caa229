package queries

import (
	"context"
	"database/sql"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type GetOrdersAwaitingActionQueryHandler struct {
	db *gorm.DB
}

func NewGetOrdersAwaitingActionQueryHandler(db *gorm.DB) GetOrdersAwaitingActionQueryHandler {
	return GetOrdersAwaitingActionQueryHandler{db: db}
}

// Handle returns the queue oldest first.
func (h GetOrdersAwaitingActionQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersAwaitingActionQuery,
) ([]GetOrdersAwaitingActionQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetOrdersAwaitingActionQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			phone,
			status,
			payment_method,
			grand_total,
			weight IS NOT NULL AND length IS NOT NULL,
			shipment_last_error,
			created_at
		FROM orders
		WHERE status IN (?, ?, ?)
		ORDER BY created_at, id
	`, order.CreatedPending, order.NeedsManualVerification, order.Approved).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			resp      GetOrdersAwaitingActionQueryResponse
			id        uuid.UUID
			status    int
			method    string
			total     decimal.Decimal
			lastError sql.NullString
		)

		err = rows.Scan(
			&id,
			&resp.Phone,
			&status,
			&method,
			&total,
			&resp.HasDimensions,
			&lastError,
			&resp.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = orderID
		resp.Status = order.Status(status)
		resp.PaymentMethod = order.PaymentMethod(method)
		resp.GrandTotal = total
		resp.LastShipmentError = lastError.String

		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
