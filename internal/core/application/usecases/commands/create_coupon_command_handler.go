package commands

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/coupon"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

type CreateCouponCommandHandler struct {
	uowFactory CouponUoWFactory
}

func NewCreateCouponCommandHandler(uowFactory CouponUoWFactory) CreateCouponCommandHandler {
	return CreateCouponCommandHandler{uowFactory: uowFactory}
}

// Handle stores a new coupon and returns its id. An active coupon with the
// same normalised code blocks creation.
func (h CreateCouponCommandHandler) Handle(ctx context.Context, cmd CreateCouponCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	c, err := coupon.NewCoupon(kernel.NewUUID(), cmd.Definition())
	if err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	coupons := uow.CouponRepository()
	_, err = coupons.FindActiveByCode(ctx, c.Code())
	switch {
	case err == nil:
		return kernel.UUID{}, errs.NewInvariantViolationError("unique_code", "an active coupon "+c.Code()+" already exists")
	case !errors.Is(err, errs.ErrObjectNotFound):
		return kernel.UUID{}, err
	}

	if err = coupons.Add(ctx, c); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	return c.ID(), nil
}
