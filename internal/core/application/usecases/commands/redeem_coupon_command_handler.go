package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/coupon"
	"fulfillment/internal/core/ports"

	"github.com/shopspring/decimal"
)

// RedeemCouponResult reports whether the coupon was applied. A refused coupon
// is not an error; Reason and Message say why.
type RedeemCouponResult struct {
	Applied      bool
	Code         string
	DiscountType coupon.DiscountType
	Discount     decimal.Decimal
	Reason       coupon.Reason
	Message      string
}

// RedeemCouponCommandHandler validates and records a redemption in one
// SERIALIZABLE transaction with the coupon row locked, so concurrent
// redemptions cannot both take the last slot.
type RedeemCouponCommandHandler struct {
	uowFactory CouponUoWFactory
	clock      ports.Clock
}

func NewRedeemCouponCommandHandler(uowFactory CouponUoWFactory, clock ports.Clock) RedeemCouponCommandHandler {
	return RedeemCouponCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h RedeemCouponCommandHandler) Handle(ctx context.Context, cmd RedeemCouponCommand) (RedeemCouponResult, error) {
	if err := cmd.Validate(); err != nil {
		return RedeemCouponResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.BeginSerializable(ctx); err != nil {
		return RedeemCouponResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	outcome, err := redeemCoupon(ctx, uow.CouponRepository(), uow.OrderRepository(), cmd.input, h.clock.Now())
	if err != nil {
		return RedeemCouponResult{}, err
	}
	if outcome.rejection != nil {
		return RedeemCouponResult{
			Code:    coupon.NormalizeCode(cmd.Code()),
			Reason:  outcome.rejection.Reason,
			Message: outcome.rejection.Message,
		}, nil
	}

	if err = uow.Commit(ctx); err != nil {
		return RedeemCouponResult{}, err
	}

	return RedeemCouponResult{
		Applied:      true,
		Code:         outcome.coupon.Code(),
		DiscountType: outcome.coupon.DiscountType(),
		Discount:     outcome.usage.DiscountAmount,
	}, nil
}
