// Package settings holds operator-tunable configuration read by the decision core.
package settings

import (
	"errors"
	"fmt"

	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ApprovalSettings gate automatic order approval.
type ApprovalSettings struct {
	MinCustomerAgeDays        int
	AllowNewCustomers         bool
	MaxAutoApprovalValue      decimal.Decimal
	RequireVerifiedDimensions bool
}

func NewApprovalSettings(
	minCustomerAgeDays int,
	allowNewCustomers bool,
	maxAutoApprovalValue decimal.Decimal,
	requireVerifiedDimensions bool,
) (ApprovalSettings, error) {
	var errAge, errValue error
	if minCustomerAgeDays < 0 {
		errAge = errs.NewValueIsInvalidErrorWithCause("minCustomerAgeDays is invalid",
			fmt.Errorf("%d is negative", minCustomerAgeDays))
	}
	if maxAutoApprovalValue.IsNegative() {
		errValue = errs.NewValueIsInvalidErrorWithCause("maxAutoApprovalValue is invalid",
			fmt.Errorf("%s is negative", maxAutoApprovalValue))
	}
	if err := errors.Join(errAge, errValue); err != nil {
		return ApprovalSettings{}, err
	}

	return ApprovalSettings{
		MinCustomerAgeDays:        minCustomerAgeDays,
		AllowNewCustomers:         allowNewCustomers,
		MaxAutoApprovalValue:      maxAutoApprovalValue,
		RequireVerifiedDimensions: requireVerifiedDimensions,
	}, nil
}
