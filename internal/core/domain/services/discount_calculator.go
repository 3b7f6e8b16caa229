package services

import (
	"fulfillment/internal/core/domain/model/coupon"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// DiscountCalculator prices a coupon against an order.
type DiscountCalculator struct{}

func NewDiscountCalculator() DiscountCalculator {
	return DiscountCalculator{}
}

// Calculate returns the discount rounded to 2 places.
//
//   - percentage: value% of the applicable amount
//   - fixed_amount: min(value, applicable amount)
//   - free_shipping: zero; the waiver is applied to shipping charges by pricing
//
// The applicable amount is the total of lines on the product allow-list, or the
// whole order value when the coupon has no allow-list or no lines are given.
// The result is clamped to maximumDiscountAmount when set.
func (DiscountCalculator) Calculate(c *coupon.Coupon, orderValue decimal.Decimal, lines []coupon.Line) decimal.Decimal {
	applicable := orderValue
	if c.HasProductAllowList() && len(lines) > 0 {
		applicable = decimal.Zero
		for _, l := range lines {
			if c.AppliesTo(l.ProductID) {
				applicable = applicable.Add(l.Total())
			}
		}
	}

	var discount decimal.Decimal
	switch c.DiscountType() {
	case coupon.DiscountPercentage:
		discount = applicable.Mul(c.Value()).Div(hundred)
	case coupon.DiscountFixedAmount:
		discount = decimal.Min(c.Value(), applicable)
	case coupon.DiscountFreeShipping:
		return decimal.Zero
	}

	if limit := c.MaximumDiscountAmount(); limit != nil && discount.GreaterThan(*limit) {
		discount = *limit
	}
	if discount.IsNegative() {
		discount = decimal.Zero
	}

	return kernel.RoundMoney(discount)
}
