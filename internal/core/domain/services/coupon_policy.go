package services

import (
	"fmt"
	"slices"
	"time"

	"fulfillment/internal/core/domain/model/coupon"

	"github.com/shopspring/decimal"
)

// Redemption is the context a coupon is checked against. CustomerUsageCount is
// the number of ledger rows for this coupon and this customer (by id or phone).
// CustomerHasPriorOrders must be resolved by every identity the caller holds,
// customer id and phone alike; the new-users rule trusts it as given.
type Redemption struct {
	CustomerID             string
	Phone                  string
	OrderValue             *decimal.Decimal
	Lines                  []coupon.Line
	CustomerHasPriorOrders bool
	CustomerUsageCount     int
	Now                    time.Time
}

func (r Redemption) hasCustomer() bool {
	return r.CustomerID != "" || r.Phone != ""
}

// CouponPolicy runs the coupon rules in a fixed order; the first failing rule wins.
type CouponPolicy struct{}

func NewCouponPolicy() CouponPolicy {
	return CouponPolicy{}
}

// Check returns nil when the coupon may be applied.
func (CouponPolicy) Check(c *coupon.Coupon, r Redemption) *coupon.Rejection {
	if c == nil || !c.IsActive() {
		return coupon.Reject(coupon.ReasonNotFound, "coupon not found")
	}

	if r.Now.Before(c.ValidFrom()) {
		return coupon.Reject(coupon.ReasonNotStarted,
			fmt.Sprintf("coupon is valid from %s", c.ValidFrom().Format(time.DateOnly)))
	}
	if !c.ValidUntil().IsZero() && r.Now.After(c.ValidUntil()) {
		return coupon.Reject(coupon.ReasonExpired,
			fmt.Sprintf("coupon expired on %s", c.ValidUntil().Format(time.DateOnly)))
	}

	switch c.UsageType() {
	case coupon.SingleUse:
		if c.CurrentUsageCount() > 0 {
			return coupon.Reject(coupon.ReasonUsageLimitReached, "coupon has already been used")
		}
	case coupon.MultiUse:
		if limit := c.MaxUsageCount(); limit != nil && c.CurrentUsageCount() >= *limit {
			return coupon.Reject(coupon.ReasonUsageLimitReached, "coupon usage limit reached")
		}
	}

	switch c.Eligibility() {
	case coupon.EligibleSpecificUsers:
		if !c.IsAllowListed(r.CustomerID, r.Phone) {
			return coupon.Reject(coupon.ReasonNotEligible, "coupon is not available for this customer")
		}
	case coupon.EligibleNewUsers:
		if r.CustomerHasPriorOrders {
			return coupon.Reject(coupon.ReasonNewUsersOnly, "coupon is only for first orders")
		}
	case coupon.EligibleAll:
	}

	if limit := c.MaxUsagePerUser(); limit != nil && r.hasCustomer() && r.CustomerUsageCount >= *limit {
		return coupon.Reject(coupon.ReasonPerUserLimitReached,
			fmt.Sprintf("coupon can be used %d time(s) per customer", *limit))
	}

	if r.OrderValue != nil && r.OrderValue.LessThan(c.MinimumOrderValue()) {
		return coupon.Reject(coupon.ReasonMinimumOrderValue,
			fmt.Sprintf("minimum order value is %s", c.MinimumOrderValue().StringFixed(2)))
	}

	if len(r.Lines) > 0 {
		if c.HasProductAllowList() && !slices.ContainsFunc(r.Lines, func(l coupon.Line) bool { return c.AppliesTo(l.ProductID) }) {
			return coupon.Reject(coupon.ReasonNoApplicableProducts, "no item in the order qualifies for this coupon")
		}
		if slices.ContainsFunc(r.Lines, func(l coupon.Line) bool { return c.Excludes(l.ProductID) }) {
			return coupon.Reject(coupon.ReasonExcludedProduct, "order contains a product excluded from this coupon")
		}
	}

	if c.UsageType() == coupon.SingleUse && r.hasCustomer() && r.CustomerUsageCount > 0 {
		return coupon.Reject(coupon.ReasonAlreadyUsed, "customer has already used this coupon")
	}

	return nil
}
