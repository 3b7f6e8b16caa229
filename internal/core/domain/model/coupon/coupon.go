package coupon

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var ErrCouponIsNotConstructed = errors.New("Coupon must be created via NewCoupon constructor")

// NormalizeCode returns the canonical (trimmed, upper-case) form of a coupon code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Definition is everything an operator sets when creating a coupon.
type Definition struct {
	Code                  string
	DiscountType          DiscountType
	Value                 decimal.Decimal
	UsageType             UsageType
	MaxUsageCount         *int
	MaxUsagePerUser       *int
	Eligibility           Eligibility
	EligibleUserIDs       []string
	EligiblePhones        []string
	ApplicableProducts    []string
	ExcludedProducts      []string
	MinimumOrderValue     decimal.Decimal
	MaximumDiscountAmount *decimal.Decimal
	ValidFrom             time.Time
	ValidUntil            time.Time
}

// Coupon is a discount code with its caps, eligibility, product lists and
// running usage counter. The counter is only ever changed together with a
// ledger row, by the repository.
type Coupon struct {
	id                kernel.UUID
	def               Definition
	currentUsageCount int
	isActive          bool

	isConstructed bool
}

func NewCoupon(id kernel.UUID, def Definition) (*Coupon, error) {
	def.Code = NormalizeCode(def.Code)
	if def.Eligibility == "" {
		def.Eligibility = EligibleAll
	}

	var errCode, errValue, errWindow, errPercent error
	if def.Code == "" {
		errCode = errs.NewValueIsRequiredError("code")
	}
	if def.Value.IsNegative() {
		errValue = errs.NewValueIsInvalidErrorWithCause("value is invalid", fmt.Errorf("%s is negative", def.Value))
	}
	if def.DiscountType == DiscountPercentage && def.Value.GreaterThan(decimal.NewFromInt(100)) {
		errPercent = errs.NewValueIsOutOfRangeError("percentage", def.Value, 0, 100)
	}
	if !def.ValidUntil.IsZero() && def.ValidUntil.Before(def.ValidFrom) {
		errWindow = errs.NewValueIsInvalidErrorWithCause("validity window is invalid",
			fmt.Errorf("validUntil %s is before validFrom %s", def.ValidUntil, def.ValidFrom))
	}

	if err := errors.Join(
		id.Validate(),
		errCode,
		def.DiscountType.Validate(),
		def.UsageType.Validate(),
		def.Eligibility.Validate(),
		errValue,
		errPercent,
		errWindow,
	); err != nil {
		return nil, err
	}

	return &Coupon{id: id, def: cloneDefinition(def), isActive: true, isConstructed: true}, nil
}

type Snapshot struct {
	ID                kernel.UUID
	Definition        Definition
	CurrentUsageCount int
	IsActive          bool
}

func Restore(s Snapshot) (*Coupon, error) {
	if err := s.ID.Validate(); err != nil {
		return nil, err
	}
	return &Coupon{
		id:                s.ID,
		def:               cloneDefinition(s.Definition),
		currentUsageCount: s.CurrentUsageCount,
		isActive:          s.IsActive,
		isConstructed:     true,
	}, nil
}

func (c *Coupon) Snapshot() Snapshot {
	return Snapshot{
		ID:                c.id,
		Definition:        cloneDefinition(c.def),
		CurrentUsageCount: c.currentUsageCount,
		IsActive:          c.isActive,
	}
}

func (c *Coupon) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCouponIsNotConstructed
	}
	return nil
}

func (c *Coupon) ID() kernel.UUID                         { return c.id }
func (c *Coupon) Code() string                            { return c.def.Code }
func (c *Coupon) DiscountType() DiscountType              { return c.def.DiscountType }
func (c *Coupon) Value() decimal.Decimal                  { return c.def.Value }
func (c *Coupon) UsageType() UsageType                    { return c.def.UsageType }
func (c *Coupon) MaxUsageCount() *int                     { return c.def.MaxUsageCount }
func (c *Coupon) MaxUsagePerUser() *int                   { return c.def.MaxUsagePerUser }
func (c *Coupon) Eligibility() Eligibility                { return c.def.Eligibility }
func (c *Coupon) MinimumOrderValue() decimal.Decimal      { return c.def.MinimumOrderValue }
func (c *Coupon) MaximumDiscountAmount() *decimal.Decimal { return c.def.MaximumDiscountAmount }
func (c *Coupon) ValidFrom() time.Time                    { return c.def.ValidFrom }
func (c *Coupon) ValidUntil() time.Time                   { return c.def.ValidUntil }
func (c *Coupon) CurrentUsageCount() int                  { return c.currentUsageCount }
func (c *Coupon) IsActive() bool                          { return c.isActive }
func (c *Coupon) HasProductAllowList() bool               { return len(c.def.ApplicableProducts) > 0 }
func (c *Coupon) ApplicableProducts() []string            { return slices.Clone(c.def.ApplicableProducts) }
func (c *Coupon) ExcludedProducts() []string              { return slices.Clone(c.def.ExcludedProducts) }
func (c *Coupon) EligibleUserIDs() []string               { return slices.Clone(c.def.EligibleUserIDs) }
func (c *Coupon) EligiblePhones() []string                { return slices.Clone(c.def.EligiblePhones) }

// AppliesTo reports whether productID is covered by the allow-list. An empty
// allow-list covers everything.
func (c *Coupon) AppliesTo(productID string) bool {
	return !c.HasProductAllowList() || slices.Contains(c.def.ApplicableProducts, productID)
}

func (c *Coupon) Excludes(productID string) bool {
	return slices.Contains(c.def.ExcludedProducts, productID)
}

// IsAllowListed reports whether the customer id or phone is on the allow-list.
func (c *Coupon) IsAllowListed(customerID, phone string) bool {
	return (customerID != "" && slices.Contains(c.def.EligibleUserIDs, customerID)) ||
		(phone != "" && slices.Contains(c.def.EligiblePhones, phone))
}

func (c *Coupon) Deactivate() {
	c.isActive = false
}

func cloneDefinition(def Definition) Definition {
	def.EligibleUserIDs = slices.Clone(def.EligibleUserIDs)
	def.EligiblePhones = slices.Clone(def.EligiblePhones)
	def.ApplicableProducts = slices.Clone(def.ApplicableProducts)
	def.ExcludedProducts = slices.Clone(def.ExcludedProducts)
	return def
}
