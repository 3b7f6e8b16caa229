package coupon

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Usage is one append-only redemption ledger row. Per-user and global caps are
// enforced by counting these rows.
type Usage struct {
	ID             kernel.UUID
	CouponID       kernel.UUID
	CouponCode     string
	OrderID        kernel.UUID
	CustomerID     string
	Phone          string
	DiscountAmount decimal.Decimal
	OrderValue     decimal.Decimal
	UsedAt         time.Time
}

func NewUsage(
	c *Coupon,
	orderID kernel.UUID,
	customerID, phone string,
	discount, orderValue decimal.Decimal,
	at time.Time,
) (Usage, error) {
	var errCustomer error
	if customerID == "" && phone == "" {
		errCustomer = errs.NewValueIsRequiredError("customer id or phone")
	}
	if err := errors.Join(c.Validate(), orderID.Validate(), errCustomer); err != nil {
		return Usage{}, err
	}
	return Usage{
		ID:             kernel.NewUUID(),
		CouponID:       c.ID(),
		CouponCode:     c.Code(),
		OrderID:        orderID,
		CustomerID:     customerID,
		Phone:          phone,
		DiscountAmount: kernel.RoundMoney(discount),
		OrderValue:     orderValue,
		UsedAt:         at,
	}, nil
}
