package commands

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/coupon"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

type redemptionInput struct {
	code       string
	orderID    kernel.UUID
	customerID string
	phone      string
	orderValue decimal.Decimal
	lines      []coupon.Line
}

type redemptionOutcome struct {
	coupon    *coupon.Coupon
	usage     coupon.Usage
	rejection *coupon.Rejection
}

// redeemCoupon locks the coupon row, re-runs every rule against the locked
// state, then records the ledger row and counter increment. It must run inside
// a serializable transaction; a rejection leaves nothing written.
func redeemCoupon(
	ctx context.Context,
	coupons ports.CouponRepository,
	orders ports.OrderRepository,
	in redemptionInput,
	now time.Time,
) (redemptionOutcome, error) {
	c, err := coupons.LockActiveByCode(ctx, coupon.NormalizeCode(in.code))
	if errors.Is(err, errs.ErrObjectNotFound) {
		return redemptionOutcome{rejection: coupon.Reject(coupon.ReasonNotFound, "coupon not found")}, nil
	}
	if err != nil {
		return redemptionOutcome{}, err
	}

	prior, err := orders.CountByCustomer(ctx, in.customerID, in.phone, in.orderID)
	if err != nil {
		return redemptionOutcome{}, err
	}

	used, err := coupons.CountUsages(ctx, c.ID(), in.customerID, in.phone)
	if err != nil {
		return redemptionOutcome{}, err
	}

	orderValue := in.orderValue
	if rejection := services.NewCouponPolicy().Check(c, services.Redemption{
		CustomerID:             in.customerID,
		Phone:                  in.phone,
		OrderValue:             &orderValue,
		Lines:                  in.lines,
		CustomerHasPriorOrders: prior > 0,
		CustomerUsageCount:     int(used),
		Now:                    now,
	}); rejection != nil {
		return redemptionOutcome{coupon: c, rejection: rejection}, nil
	}

	discount := services.NewDiscountCalculator().Calculate(c, in.orderValue, in.lines)

	usage, err := coupon.NewUsage(c, in.orderID, in.customerID, in.phone, discount, in.orderValue, now)
	if err != nil {
		return redemptionOutcome{}, err
	}

	if err = coupons.RecordUsage(ctx, usage); err != nil {
		return redemptionOutcome{}, err
	}

	return redemptionOutcome{coupon: c, usage: usage}, nil
}
