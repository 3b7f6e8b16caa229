package services

import (
	"time"

	"fulfillment/internal/core/domain/model/customer"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/settings"
)

// Reasons an order is left for an operator.
const (
	ApprovalReasonApproved          = "approved"
	ApprovalReasonNoSettings        = "settings_missing"
	ApprovalReasonNoCustomer        = "customer_missing"
	ApprovalReasonDubiousCustomer   = "customer_dubious"
	ApprovalReasonNewCustomer       = "new_customer_not_allowed"
	ApprovalReasonValueAboveLimit   = "order_value_above_limit"
	ApprovalReasonNotPending        = "order_not_pending"
	ApprovalWarningUnverifiedParcel = "multi_item_order_without_verified_dimensions_check"
)

// ApprovalDecision is the outcome of ApprovalPolicy.Evaluate. Not approving is
// a normal result.
type ApprovalDecision struct {
	Approve  bool
	Reason   string
	Warnings []string
}

// ApprovalPolicy decides whether an order may be approved without an operator.
type ApprovalPolicy struct{}

func NewApprovalPolicy() ApprovalPolicy {
	return ApprovalPolicy{}
}

// Evaluate applies the gates in order: settings present, order still
// created_pending, customer present and not dubious, returning customer or new
// customers allowed, grand total within the limit.
//
// RequireVerifiedDimensions only adds a warning for multi-item orders; such
// orders without a verified combination are already held in
// needs_manual_verification by dimension resolution.
func (ApprovalPolicy) Evaluate(
	s *settings.ApprovalSettings,
	c *customer.Customer,
	o *order.Order,
	now time.Time,
) ApprovalDecision {
	if s == nil {
		return ApprovalDecision{Reason: ApprovalReasonNoSettings}
	}
	if o.Status() != order.CreatedPending {
		return ApprovalDecision{Reason: ApprovalReasonNotPending}
	}
	if c == nil {
		return ApprovalDecision{Reason: ApprovalReasonNoCustomer}
	}
	if c.IsDubious() {
		return ApprovalDecision{Reason: ApprovalReasonDubiousCustomer}
	}
	if !c.IsReturning(now, s.MinCustomerAgeDays) && !s.AllowNewCustomers {
		return ApprovalDecision{Reason: ApprovalReasonNewCustomer}
	}
	if o.GrandTotal().GreaterThan(s.MaxAutoApprovalValue) {
		return ApprovalDecision{Reason: ApprovalReasonValueAboveLimit}
	}

	d := ApprovalDecision{Approve: true, Reason: ApprovalReasonApproved}
	if s.RequireVerifiedDimensions && len(o.Items()) > 1 {
		d.Warnings = append(d.Warnings, ApprovalWarningUnverifiedParcel)
	}
	return d
}
