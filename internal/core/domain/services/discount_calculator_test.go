package services_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/coupon"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var couponStart = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func newCoupon(t *testing.T, mutate func(*coupon.Definition)) *coupon.Coupon {
	t.Helper()
	def := coupon.Definition{
		Code:         "SAVE10",
		DiscountType: coupon.DiscountPercentage,
		Value:        decimal.NewFromInt(10),
		UsageType:    coupon.MultiUse,
		ValidFrom:    couponStart,
		ValidUntil:   couponStart.AddDate(0, 1, 0),
	}
	if mutate != nil {
		mutate(&def)
	}
	c, err := coupon.NewCoupon(kernel.NewUUID(), def)
	require.NoError(t, err)
	return c
}

func ptrDecimal(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func TestDiscountCalculator_Calculate(t *testing.T) {
	calc := services.NewDiscountCalculator()
	thousand := decimal.NewFromInt(1000)

	t.Run("percentage is clamped to the maximum", func(t *testing.T) {
		c := newCoupon(t, func(d *coupon.Definition) { d.MaximumDiscountAmount = ptrDecimal(50) })

		assert.Equal(t, "50", calc.Calculate(c, thousand, nil).String())
	})

	t.Run("percentage without maximum", func(t *testing.T) {
		c := newCoupon(t, nil)

		assert.Equal(t, "100", calc.Calculate(c, thousand, nil).String())
	})

	t.Run("percentage only on allow-listed lines", func(t *testing.T) {
		c := newCoupon(t, func(d *coupon.Definition) { d.ApplicableProducts = []string{"p-1"} })
		lines := []coupon.Line{
			{ProductID: "p-1", Quantity: 2, UnitPrice: decimal.NewFromInt(150)},
			{ProductID: "p-2", Quantity: 1, UnitPrice: decimal.NewFromInt(700)},
		}

		assert.Equal(t, "30", calc.Calculate(c, thousand, lines).String())
	})

	t.Run("fixed amount never exceeds the applicable value", func(t *testing.T) {
		c := newCoupon(t, func(d *coupon.Definition) {
			d.DiscountType = coupon.DiscountFixedAmount
			d.Value = decimal.NewFromInt(200)
		})

		assert.Equal(t, "200", calc.Calculate(c, thousand, nil).String())
		assert.Equal(t, "120", calc.Calculate(c, decimal.NewFromInt(120), nil).String())
	})

	t.Run("free shipping discounts nothing here", func(t *testing.T) {
		c := newCoupon(t, func(d *coupon.Definition) {
			d.DiscountType = coupon.DiscountFreeShipping
			d.Value = decimal.Zero
		})

		assert.True(t, calc.Calculate(c, thousand, nil).IsZero())
	})

	t.Run("rounds to two places", func(t *testing.T) {
		c := newCoupon(t, func(d *coupon.Definition) { d.Value = decimal.RequireFromString("12.5") })

		assert.Equal(t, "41.67", calc.Calculate(c, decimal.RequireFromString("333.35"), nil).String())
	})
}
