package combination

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var ErrCombinationIsNotConstructed = errors.New("VerifiedCombination must be created via NewVerifiedCombination constructor")

// VerifiedCombination is a human-confirmed weight and box size for one item
// multiset, keyed by its hash. Rows are deactivated, never deleted.
type VerifiedCombination struct {
	hash       string
	items      []Item
	weight     float64
	dimensions kernel.Dimensions
	verifiedBy string
	verifiedAt time.Time
	notes      string
	usageCount int
	lastUsedAt *time.Time
	isActive   bool

	updatedBy     string
	updatedAt     time.Time
	deactivatedBy string
	deactivatedAt *time.Time

	isConstructed bool
}

func NewVerifiedCombination(
	items []Item,
	weight float64,
	dimensions kernel.Dimensions,
	verifiedBy, notes string,
	at time.Time,
) (*VerifiedCombination, error) {
	c := &VerifiedCombination{
		verifiedAt:    at,
		updatedAt:     at,
		notes:         notes,
		isActive:      true,
		isConstructed: true,
	}

	if err := errors.Join(
		c.setItems(items),
		c.setMeasurements(weight, dimensions),
		c.setVerifiedBy(verifiedBy),
	); err != nil {
		return nil, err
	}
	c.updatedBy = verifiedBy

	return c, nil
}

type Snapshot struct {
	Hash          string
	Items         []Item
	Weight        float64
	Dimensions    kernel.Dimensions
	VerifiedBy    string
	VerifiedAt    time.Time
	Notes         string
	UsageCount    int
	LastUsedAt    *time.Time
	IsActive      bool
	UpdatedBy     string
	UpdatedAt     time.Time
	DeactivatedBy string
	DeactivatedAt *time.Time
}

func Restore(s Snapshot) (*VerifiedCombination, error) {
	if s.Hash == "" {
		return nil, errs.NewValueIsRequiredError("combination hash")
	}
	if err := s.Dimensions.Validate(); err != nil {
		return nil, err
	}
	return &VerifiedCombination{
		hash:          s.Hash,
		items:         slices.Clone(s.Items),
		weight:        s.Weight,
		dimensions:    s.Dimensions,
		verifiedBy:    s.VerifiedBy,
		verifiedAt:    s.VerifiedAt,
		notes:         s.Notes,
		usageCount:    s.UsageCount,
		lastUsedAt:    s.LastUsedAt,
		isActive:      s.IsActive,
		updatedBy:     s.UpdatedBy,
		updatedAt:     s.UpdatedAt,
		deactivatedBy: s.DeactivatedBy,
		deactivatedAt: s.DeactivatedAt,
		isConstructed: true,
	}, nil
}

func (c *VerifiedCombination) Snapshot() Snapshot {
	return Snapshot{
		Hash:          c.hash,
		Items:         slices.Clone(c.items),
		Weight:        c.weight,
		Dimensions:    c.dimensions,
		VerifiedBy:    c.verifiedBy,
		VerifiedAt:    c.verifiedAt,
		Notes:         c.notes,
		UsageCount:    c.usageCount,
		LastUsedAt:    c.lastUsedAt,
		IsActive:      c.isActive,
		UpdatedBy:     c.updatedBy,
		UpdatedAt:     c.updatedAt,
		DeactivatedBy: c.deactivatedBy,
		DeactivatedAt: c.deactivatedAt,
	}
}

func (c *VerifiedCombination) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCombinationIsNotConstructed
	}
	return nil
}

func (c *VerifiedCombination) Hash() string                  { return c.hash }
func (c *VerifiedCombination) Items() []Item                 { return slices.Clone(c.items) }
func (c *VerifiedCombination) Weight() float64               { return c.weight }
func (c *VerifiedCombination) Dimensions() kernel.Dimensions { return c.dimensions }
func (c *VerifiedCombination) VerifiedBy() string            { return c.verifiedBy }
func (c *VerifiedCombination) VerifiedAt() time.Time         { return c.verifiedAt }
func (c *VerifiedCombination) Notes() string                 { return c.notes }
func (c *VerifiedCombination) UsageCount() int               { return c.usageCount }
func (c *VerifiedCombination) LastUsedAt() *time.Time        { return c.lastUsedAt }
func (c *VerifiedCombination) IsActive() bool                { return c.isActive }
func (c *VerifiedCombination) UpdatedBy() string             { return c.updatedBy }
func (c *VerifiedCombination) UpdatedAt() time.Time          { return c.updatedAt }
func (c *VerifiedCombination) DeactivatedBy() string         { return c.deactivatedBy }
func (c *VerifiedCombination) DeactivatedAt() *time.Time     { return c.deactivatedAt }

// TotalItems is the sum of quantities.
func (c *VerifiedCombination) TotalItems() int {
	total := 0
	for _, it := range c.items {
		total += it.Quantity
	}
	return total
}

// DistinctProducts counts unique product ids.
func (c *VerifiedCombination) DistinctProducts() int {
	seen := make(map[string]struct{}, len(c.items))
	for _, it := range c.items {
		seen[it.ProductID] = struct{}{}
	}
	return len(seen)
}

// Update overwrites the measurements in place.
func (c *VerifiedCombination) Update(
	weight float64,
	dimensions kernel.Dimensions,
	by, notes string,
	at time.Time,
) error {
	if by == "" {
		return errs.NewValueIsRequiredError("updatedBy")
	}
	if err := c.setMeasurements(weight, dimensions); err != nil {
		return err
	}
	if notes != "" {
		c.notes = notes
	}
	c.updatedBy = by
	c.updatedAt = at
	return nil
}

// Reverify replaces the measurements with a fresh human verification and
// reactivates the record. Usage history is kept.
func (c *VerifiedCombination) Reverify(
	weight float64,
	dimensions kernel.Dimensions,
	by, notes string,
	at time.Time,
) error {
	if err := errors.Join(c.setMeasurements(weight, dimensions), c.setVerifiedBy(by)); err != nil {
		return err
	}
	c.verifiedAt = at
	c.notes = notes
	c.isActive = true
	c.deactivatedBy = ""
	c.deactivatedAt = nil
	c.updatedBy = by
	c.updatedAt = at
	return nil
}

// Deactivate soft-deletes the record. Deactivating twice keeps the first stamp.
func (c *VerifiedCombination) Deactivate(by string, at time.Time) error {
	if by == "" {
		return errs.NewValueIsRequiredError("deactivatedBy")
	}
	if !c.isActive {
		return nil
	}
	c.isActive = false
	c.deactivatedBy = by
	c.deactivatedAt = &at
	c.updatedBy = by
	c.updatedAt = at
	return nil
}

// RecordUsage bumps the usage counter. lastUsedAt never moves backwards.
func (c *VerifiedCombination) RecordUsage(at time.Time) {
	c.usageCount++
	if c.lastUsedAt == nil || at.After(*c.lastUsedAt) {
		c.lastUsedAt = &at
	}
}

func (c *VerifiedCombination) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, it := range items {
		if it.SKU == "" {
			return errs.NewValueIsRequiredError("sku")
		}
		if it.Quantity <= 0 {
			return errs.NewValueIsInvalidErrorWithCause("quantity is invalid",
				fmt.Errorf("%d is not greater than 0", it.Quantity))
		}
	}
	c.items = slices.Clone(items)
	c.hash = HashItems(items)
	return nil
}

func (c *VerifiedCombination) setMeasurements(weight float64, dimensions kernel.Dimensions) error {
	var errWeight error
	if weight <= 0 {
		errWeight = errs.NewValueIsInvalidErrorWithCause("weight is invalid",
			fmt.Errorf("%g is not greater than 0", weight))
	}
	if err := errors.Join(errWeight, dimensions.Validate()); err != nil {
		return err
	}
	c.weight = weight
	c.dimensions = dimensions
	return nil
}

func (c *VerifiedCombination) setVerifiedBy(by string) error {
	if by == "" {
		return errs.NewValueIsRequiredError("verifiedBy")
	}
	c.verifiedBy = by
	return nil
}
