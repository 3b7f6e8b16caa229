package coupon

// Reason is a stable code for why a coupon was refused. Codes are shown to
// operators and returned to storefront clients.
type Reason string

const (
	ReasonNotFound             Reason = "not_found"
	ReasonNotStarted           Reason = "not_started"
	ReasonExpired              Reason = "expired"
	ReasonUsageLimitReached    Reason = "usage_limit_reached"
	ReasonNotEligible          Reason = "not_eligible"
	ReasonNewUsersOnly         Reason = "new_users_only"
	ReasonPerUserLimitReached  Reason = "per_user_limit_reached"
	ReasonMinimumOrderValue    Reason = "minimum_order_value"
	ReasonNoApplicableProducts Reason = "no_applicable_products"
	ReasonExcludedProduct      Reason = "excluded_product"
	ReasonAlreadyUsed          Reason = "already_used"
)

// Rejection is a refused validation. It is a normal outcome, but implements
// error so the redemption path can abort a transaction with it.
type Rejection struct {
	Reason  Reason
	Message string
}

func Reject(reason Reason, message string) *Rejection {
	return &Rejection{Reason: reason, Message: message}
}

func (r *Rejection) Error() string {
	return "coupon rejected: " + string(r.Reason) + ": " + r.Message
}
