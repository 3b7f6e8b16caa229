package services_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/coupon"
	"fulfillment/internal/core/domain/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestCouponPolicy_Check(t *testing.T) {
	policy := services.NewCouponPolicy()
	inWindow := couponStart.Add(24 * time.Hour)
	value := decimal.NewFromInt(800)

	t.Run("valid coupon passes", func(t *testing.T) {
		c := newCoupon(t, nil)

		assert.Nil(t, policy.Check(c, services.Redemption{CustomerID: "c-1", OrderValue: &value, Now: inWindow}))
	})

	t.Run("inactive coupon is not found", func(t *testing.T) {
		c := newCoupon(t, nil)
		c.Deactivate()

		r := policy.Check(c, services.Redemption{Now: inWindow})
		require.NotNil(t, r)
		assert.Equal(t, coupon.ReasonNotFound, r.Reason)
	})

	cases := []struct {
		name   string
		mutate func(*coupon.Definition)
		red    services.Redemption
		reason coupon.Reason
	}{
		{
			name:   "not started",
			red:    services.Redemption{Now: couponStart.Add(-time.Minute)},
			reason: coupon.ReasonNotStarted,
		},
		{
			name:   "expired",
			red:    services.Redemption{Now: couponStart.AddDate(0, 2, 0)},
			reason: coupon.ReasonExpired,
		},
		{
			name: "specific users",
			mutate: func(d *coupon.Definition) {
				d.Eligibility = coupon.EligibleSpecificUsers
				d.EligiblePhones = []string{"+1"}
			},
			red:    services.Redemption{CustomerID: "c-1", Phone: "+2", Now: inWindow},
			reason: coupon.ReasonNotEligible,
		},
		{
			name:   "new users only",
			mutate: func(d *coupon.Definition) { d.Eligibility = coupon.EligibleNewUsers },
			red:    services.Redemption{CustomerID: "c-1", CustomerHasPriorOrders: true, Now: inWindow},
			reason: coupon.ReasonNewUsersOnly,
		},
		{
			name:   "per user limit",
			mutate: func(d *coupon.Definition) { d.MaxUsagePerUser = intPtr(2) },
			red:    services.Redemption{Phone: "+1", CustomerUsageCount: 2, Now: inWindow},
			reason: coupon.ReasonPerUserLimitReached,
		},
		{
			name:   "minimum order value",
			mutate: func(d *coupon.Definition) { d.MinimumOrderValue = decimal.NewFromInt(1000) },
			red:    services.Redemption{OrderValue: &value, Now: inWindow},
			reason: coupon.ReasonMinimumOrderValue,
		},
		{
			name:   "no applicable products",
			mutate: func(d *coupon.Definition) { d.ApplicableProducts = []string{"p-1"} },
			red:    services.Redemption{Lines: []coupon.Line{{ProductID: "p-2", Quantity: 1}}, Now: inWindow},
			reason: coupon.ReasonNoApplicableProducts,
		},
		{
			name:   "excluded product",
			mutate: func(d *coupon.Definition) { d.ExcludedProducts = []string{"p-9"} },
			red: services.Redemption{
				Lines: []coupon.Line{{ProductID: "p-1", Quantity: 1}, {ProductID: "p-9", Quantity: 1}},
				Now:   inWindow,
			},
			reason: coupon.ReasonExcludedProduct,
		},
		{
			name:   "single use already redeemed by this customer",
			mutate: func(d *coupon.Definition) { d.UsageType = coupon.SingleUse },
			red:    services.Redemption{CustomerID: "c-1", CustomerUsageCount: 1, Now: inWindow},
			reason: coupon.ReasonAlreadyUsed,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := policy.Check(newCoupon(t, tc.mutate), tc.red)

			require.NotNil(t, r)
			assert.Equal(t, tc.reason, r.Reason)
		})
	}

	t.Run("usage caps", func(t *testing.T) {
		single, err := coupon.Restore(coupon.Snapshot{
			ID:                newCoupon(t, nil).ID(),
			Definition:        coupon.Definition{Code: "ONCE", UsageType: coupon.SingleUse, ValidFrom: couponStart},
			CurrentUsageCount: 1,
			IsActive:          true,
		})
		require.NoError(t, err)
		r := policy.Check(single, services.Redemption{Now: inWindow})
		require.NotNil(t, r)
		assert.Equal(t, coupon.ReasonUsageLimitReached, r.Reason)

		multi, err := coupon.Restore(coupon.Snapshot{
			ID: newCoupon(t, nil).ID(),
			Definition: coupon.Definition{
				Code: "MANY", UsageType: coupon.MultiUse, MaxUsageCount: intPtr(5), ValidFrom: couponStart,
			},
			CurrentUsageCount: 5,
			IsActive:          true,
		})
		require.NoError(t, err)
		r = policy.Check(multi, services.Redemption{Now: inWindow})
		require.NotNil(t, r)
		assert.Equal(t, coupon.ReasonUsageLimitReached, r.Reason)
	})

	t.Run("first failing rule wins", func(t *testing.T) {
		c := newCoupon(t, func(d *coupon.Definition) { d.MinimumOrderValue = decimal.NewFromInt(5000) })

		r := policy.Check(c, services.Redemption{OrderValue: &value, Now: couponStart.AddDate(1, 0, 0)})

		require.NotNil(t, r)
		assert.Equal(t, coupon.ReasonExpired, r.Reason)
	})

	t.Run("multi use coupon ignores per customer history without a per user cap", func(t *testing.T) {
		r := policy.Check(newCoupon(t, nil), services.Redemption{CustomerID: "c-1", CustomerUsageCount: 4, Now: inWindow})

		assert.Nil(t, r)
	})
}
