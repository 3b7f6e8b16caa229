package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/coupon"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrCreateCouponCommandIsNotConstructed = errors.New(
	"CreateCouponCommand must be created via NewCreateCouponCommand constructor",
)

type CreateCouponCommand struct { //nolint:recvcheck //using for validation
	definition coupon.Definition

	guard guard.ConstructorGuard
}

// NewCreateCouponCommand only checks that a code was given; the coupon
// aggregate validates the rest of the definition.
func NewCreateCouponCommand(def coupon.Definition) (CreateCouponCommand, error) {
	if coupon.NormalizeCode(def.Code) == "" {
		return CreateCouponCommand{}, errs.NewValueIsRequiredError("code")
	}
	return CreateCouponCommand{definition: def, guard: guard.NewConstructorGuard()}, nil
}

func (c CreateCouponCommand) Validate() error {
	return c.guard.Validate(ErrCreateCouponCommandIsNotConstructed)
}

func (c CreateCouponCommand) Definition() coupon.Definition { return c.definition }
