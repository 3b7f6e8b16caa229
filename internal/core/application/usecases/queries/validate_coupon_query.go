package queries

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/coupon"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrValidateCouponQueryIsNotConstructed = errors.New(
	"ValidateCouponQuery must be created via NewValidateCouponQuery constructor",
)

// ValidateCouponQuery previews a coupon for a cart. Nothing is written and
// the coupon row is not locked, so a valid preview may still be refused at
// checkout.
//
// orderValue and lines are optional; the value and product rules are skipped
// when they are absent.
type ValidateCouponQuery struct {
	code       string
	customerID string
	phone      string
	orderValue *decimal.Decimal
	lines      []coupon.Line

	guard guard.ConstructorGuard
}

func NewValidateCouponQuery(
	code, customerID, phone string,
	orderValue *decimal.Decimal,
	lines []coupon.Line,
) (ValidateCouponQuery, error) {
	if coupon.NormalizeCode(code) == "" {
		return ValidateCouponQuery{}, errs.NewValueIsRequiredError("code")
	}
	if orderValue != nil && orderValue.IsNegative() {
		return ValidateCouponQuery{}, errs.NewValueIsInvalidErrorWithCause("order value is invalid",
			fmt.Errorf("%s is negative", orderValue))
	}

	return ValidateCouponQuery{
		code:       coupon.NormalizeCode(code),
		customerID: customerID,
		phone:      phone,
		orderValue: orderValue,
		lines:      append([]coupon.Line(nil), lines...),
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q ValidateCouponQuery) Validate() error {
	return q.guard.Validate(ErrValidateCouponQueryIsNotConstructed)
}

func (q ValidateCouponQuery) Code() string                 { return q.code }
func (q ValidateCouponQuery) CustomerID() string           { return q.customerID }
func (q ValidateCouponQuery) Phone() string                { return q.phone }
func (q ValidateCouponQuery) OrderValue() *decimal.Decimal { return q.orderValue }
func (q ValidateCouponQuery) Lines() []coupon.Line         { return append([]coupon.Line(nil), q.lines...) }

// ValidationResult carries the discount the cart would get. Discount is zero
// when no order value was supplied.
type ValidationResult struct {
	Valid        bool
	Code         string
	DiscountType coupon.DiscountType
	Discount     decimal.Decimal
	Reason       coupon.Reason
	Message      string
}
