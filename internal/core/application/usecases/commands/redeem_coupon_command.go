package commands

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/coupon"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrRedeemCouponCommandIsNotConstructed = errors.New(
	"RedeemCouponCommand must be created via NewRedeemCouponCommand constructor",
)

// RedeemCouponCommand applies a coupon to an already persisted order.
type RedeemCouponCommand struct { //nolint:recvcheck //using for validation
	input redemptionInput

	guard guard.ConstructorGuard
}

func NewRedeemCouponCommand(
	code string,
	orderID kernel.UUID,
	customerID, phone string,
	orderValue decimal.Decimal,
	lines []coupon.Line,
) (RedeemCouponCommand, error) {
	var errCode, errCustomer, errValue error
	if coupon.NormalizeCode(code) == "" {
		errCode = errs.NewValueIsRequiredError("code")
	}
	if customerID == "" && phone == "" {
		errCustomer = errs.NewValueIsRequiredError("customer id or phone")
	}
	if orderValue.IsNegative() {
		errValue = errs.NewValueIsInvalidErrorWithCause("order value is invalid",
			fmt.Errorf("%s is negative", orderValue))
	}
	if err := errors.Join(errCode, orderID.Validate(), errCustomer, errValue); err != nil {
		return RedeemCouponCommand{}, err
	}

	return RedeemCouponCommand{
		input: redemptionInput{
			code:       code,
			orderID:    orderID,
			customerID: customerID,
			phone:      phone,
			orderValue: orderValue,
			lines:      append([]coupon.Line(nil), lines...),
		},
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c RedeemCouponCommand) Validate() error {
	return c.guard.Validate(ErrRedeemCouponCommandIsNotConstructed)
}

func (c RedeemCouponCommand) Code() string                { return c.input.code }
func (c RedeemCouponCommand) OrderID() kernel.UUID        { return c.input.orderID }
func (c RedeemCouponCommand) CustomerID() string          { return c.input.customerID }
func (c RedeemCouponCommand) Phone() string               { return c.input.phone }
func (c RedeemCouponCommand) OrderValue() decimal.Decimal { return c.input.orderValue }
