package order

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentCOD     PaymentMethod = "COD"
	PaymentPrepaid PaymentMethod = "Prepaid"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "Pending"
	PaymentCompleted PaymentStatus = "Completed"
	PaymentFailed    PaymentStatus = "Failed"
	PaymentRefunded  PaymentStatus = "Refunded"
)

type Payment struct {
	Method PaymentMethod
	Status PaymentStatus
}

func (p Payment) Validate() error {
	var errMethod, errStatus error
	switch p.Method {
	case PaymentCOD, PaymentPrepaid:
	default:
		errMethod = errs.NewValueIsInvalidErrorWithCause("payment method is invalid",
			fmt.Errorf("%q is not supported", p.Method))
	}
	switch p.Status {
	case PaymentPending, PaymentCompleted, PaymentFailed, PaymentRefunded:
	default:
		errStatus = errs.NewValueIsInvalidErrorWithCause("payment status is invalid",
			fmt.Errorf("%q is not supported", p.Status))
	}
	return errors.Join(errMethod, errStatus)
}

// CanShip reports whether the payment allows a shipment: cash on delivery, or
// a completed prepayment.
func (p Payment) CanShip() bool {
	return p.Method == PaymentCOD || p.Status == PaymentCompleted
}

// Pricing holds the order's money breakdown. GrandTotal is derived.
type Pricing struct {
	Subtotal        decimal.Decimal
	Discount        decimal.Decimal
	ShippingCharges decimal.Decimal
	CODCharges      decimal.Decimal
	Taxes           decimal.Decimal
	GrandTotal      decimal.Decimal
}

// NewPricing computes the grand total, never below zero.
func NewPricing(subtotal, discount, shipping, cod, taxes decimal.Decimal) (Pricing, error) {
	for name, v := range map[string]decimal.Decimal{
		"subtotal": subtotal, "discount": discount, "shipping charges": shipping,
		"cod charges": cod, "taxes": taxes,
	} {
		if v.IsNegative() {
			return Pricing{}, errs.NewValueIsInvalidErrorWithCause(name+" is invalid",
				fmt.Errorf("%s is negative", v))
		}
	}

	total := subtotal.Sub(discount).Add(shipping).Add(cod).Add(taxes)
	if total.IsNegative() {
		total = decimal.Zero
	}

	return Pricing{
		Subtotal:        kernel.RoundMoney(subtotal),
		Discount:        kernel.RoundMoney(discount),
		ShippingCharges: kernel.RoundMoney(shipping),
		CODCharges:      kernel.RoundMoney(cod),
		Taxes:           kernel.RoundMoney(taxes),
		GrandTotal:      kernel.RoundMoney(total),
	}, nil
}

type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// AutoApprover is recorded as approvedBy when the rule engine approves an order.
const AutoApprover = "auto"

type Approval struct {
	Status     ApprovalStatus
	ApprovedBy string
	ApprovedAt *time.Time
}

type Address struct {
	Name    string
	Line1   string
	Line2   string
	City    string
	State   string
	Pincode string
	Country string
}
