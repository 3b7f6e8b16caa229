package coupon

import (
	"fmt"

	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

type DiscountType string

const (
	DiscountPercentage   DiscountType = "percentage"
	DiscountFixedAmount  DiscountType = "fixed_amount"
	DiscountFreeShipping DiscountType = "free_shipping"
)

func (t DiscountType) Validate() error {
	switch t {
	case DiscountPercentage, DiscountFixedAmount, DiscountFreeShipping:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("discount type is invalid", fmt.Errorf("%q is not supported", t))
}

type UsageType string

const (
	SingleUse UsageType = "single_use"
	MultiUse  UsageType = "multi_use"
)

func (t UsageType) Validate() error {
	switch t {
	case SingleUse, MultiUse:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("usage type is invalid", fmt.Errorf("%q is not supported", t))
}

type Eligibility string

const (
	EligibleAll           Eligibility = "all"
	EligibleSpecificUsers Eligibility = "specific_users"
	EligibleNewUsers      Eligibility = "new_users"
)

func (e Eligibility) Validate() error {
	switch e {
	case EligibleAll, EligibleSpecificUsers, EligibleNewUsers:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("eligibility is invalid", fmt.Errorf("%q is not supported", e))
}

// Line is an order line as seen by coupon rules.
type Line struct {
	ProductID string
	SKU       string
	Quantity  int
	UnitPrice decimal.Decimal
}

func (l Line) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
