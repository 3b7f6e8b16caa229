package customer

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

const (
	MinTrustScore     = 0
	MaxTrustScore     = 100
	DefaultTrustScore = 50
)

// Trust adjustments applied on order lifecycle events.
const (
	FirstApprovalBonus = 1
	DeliveredBonus     = 2
	CancelledPenalty   = -5
	ReturnPenalty      = -5
)

var ErrCustomerIsNotConstructed = errors.New("Customer must be created via NewCustomer constructor")

// OrderEvent is an order lifecycle transition that affects the customer profile.
type OrderEvent string

const (
	EventApproved        OrderEvent = "approved"
	EventDelivered       OrderEvent = "delivered"
	EventReturnInitiated OrderEvent = "return_initiated"
	EventCancelled       OrderEvent = "cancelled"

	// EventActivity only stamps lastOrderAt and updatedAt. A repeat approval
	// is recorded this way.
	EventActivity OrderEvent = "activity"
)

type Address struct {
	Label   string
	Line1   string
	Line2   string
	City    string
	State   string
	Pincode string
}

// Customer is the aggregate holding a shopper's order metrics, trust score and
// loyalty tier. Key is the storage key: the generated id for new records, the
// bare phone number for records created before ids were introduced.
type Customer struct {
	id           kernel.UUID
	key          string
	phone        string
	name         string
	totalOrders  int
	totalSpent   decimal.Decimal
	refundsCount int
	trustScore   int
	loyaltyTier  LoyaltyTier
	isDubious    bool
	addresses    []Address
	createdAt    time.Time
	lastOrderAt  *time.Time
	updatedAt    time.Time

	isConstructed bool
}

// NewCustomer creates a customer keyed by its generated id.
func NewCustomer(id kernel.UUID, phone, name string, now time.Time) (*Customer, error) {
	c := &Customer{
		name:          name,
		totalSpent:    decimal.Zero,
		trustScore:    DefaultTrustScore,
		loyaltyTier:   TierNew,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	var errPhone error
	if phone == "" {
		errPhone = errs.NewValueIsRequiredError("phone")
	}
	if err := errors.Join(id.Validate(), errPhone); err != nil {
		return nil, err
	}
	c.id = id
	c.key = id.String()
	c.phone = phone

	return c, nil
}

type Snapshot struct {
	ID           kernel.UUID
	Key          string
	Phone        string
	Name         string
	TotalOrders  int
	TotalSpent   decimal.Decimal
	RefundsCount int
	TrustScore   int
	LoyaltyTier  LoyaltyTier
	IsDubious    bool
	Addresses    []Address
	CreatedAt    time.Time
	LastOrderAt  *time.Time
	UpdatedAt    time.Time
}

// Restore rebuilds a stored customer. An out-of-range trust score is clamped.
func Restore(s Snapshot) (*Customer, error) {
	if err := s.ID.Validate(); err != nil {
		return nil, err
	}
	if s.Key == "" {
		return nil, errs.NewValueIsRequiredError("customer key")
	}
	tier := s.LoyaltyTier
	if tier == "" {
		tier = TierFor(s.TotalOrders)
	}
	return &Customer{
		id:            s.ID,
		key:           s.Key,
		phone:         s.Phone,
		name:          s.Name,
		totalOrders:   s.TotalOrders,
		totalSpent:    s.TotalSpent,
		refundsCount:  s.RefundsCount,
		trustScore:    clampTrust(s.TrustScore),
		loyaltyTier:   tier,
		isDubious:     s.IsDubious,
		addresses:     append([]Address(nil), s.Addresses...),
		createdAt:     s.CreatedAt,
		lastOrderAt:   s.LastOrderAt,
		updatedAt:     s.UpdatedAt,
		isConstructed: true,
	}, nil
}

func (c *Customer) Snapshot() Snapshot {
	return Snapshot{
		ID:           c.id,
		Key:          c.key,
		Phone:        c.phone,
		Name:         c.name,
		TotalOrders:  c.totalOrders,
		TotalSpent:   c.totalSpent,
		RefundsCount: c.refundsCount,
		TrustScore:   c.trustScore,
		LoyaltyTier:  c.loyaltyTier,
		IsDubious:    c.isDubious,
		Addresses:    append([]Address(nil), c.addresses...),
		CreatedAt:    c.createdAt,
		LastOrderAt:  c.lastOrderAt,
		UpdatedAt:    c.updatedAt,
	}
}

func (c *Customer) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCustomerIsNotConstructed
	}
	return nil
}

func (c *Customer) ID() kernel.UUID             { return c.id }
func (c *Customer) Key() string                 { return c.key }
func (c *Customer) Phone() string               { return c.phone }
func (c *Customer) Name() string                { return c.name }
func (c *Customer) TotalOrders() int            { return c.totalOrders }
func (c *Customer) TotalSpent() decimal.Decimal { return c.totalSpent }
func (c *Customer) RefundsCount() int           { return c.refundsCount }
func (c *Customer) TrustScore() int             { return c.trustScore }
func (c *Customer) LoyaltyTier() LoyaltyTier    { return c.loyaltyTier }
func (c *Customer) IsDubious() bool             { return c.isDubious }
func (c *Customer) Addresses() []Address        { return append([]Address(nil), c.addresses...) }
func (c *Customer) CreatedAt() time.Time        { return c.createdAt }
func (c *Customer) LastOrderAt() *time.Time     { return c.lastOrderAt }
func (c *Customer) UpdatedAt() time.Time        { return c.updatedAt }

// IsReturning reports whether the customer is older than minAgeDays.
func (c *Customer) IsReturning(now time.Time, minAgeDays int) bool {
	return now.Sub(c.createdAt) > time.Duration(minAgeDays)*24*time.Hour
}

func (c *Customer) MarkDubious(dubious bool, at time.Time) {
	c.isDubious = dubious
	c.updatedAt = at
}

// AddAddress appends an address unless an identical one is already on file.
func (c *Customer) AddAddress(a Address) {
	for _, existing := range c.addresses {
		if existing == a {
			return
		}
	}
	c.addresses = append(c.addresses, a)
}

// Change describes what ApplyOrderEvent did.
type Change struct {
	Event          OrderEvent
	TrustBefore    int
	TrustAfter     int
	TierBefore     LoyaltyTier
	TierAfter      LoyaltyTier
	MetricsChanged bool
}

func (ch Change) TierChanged() bool { return ch.TierBefore != ch.TierAfter }

// ApplyOrderEvent updates metrics, trust score and tier for one order transition.
// lastOrderAt and updatedAt are stamped for every event, including unknown ones.
func (c *Customer) ApplyOrderEvent(event OrderEvent, grandTotal decimal.Decimal, at time.Time) Change {
	ch := Change{
		Event:       event,
		TrustBefore: c.trustScore,
		TierBefore:  c.loyaltyTier,
	}

	switch event {
	case EventApproved:
		if c.totalOrders == 0 {
			c.adjustTrust(FirstApprovalBonus)
		}
	case EventDelivered:
		c.totalOrders++
		c.totalSpent = kernel.RoundMoney(c.totalSpent.Add(grandTotal))
		c.adjustTrust(DeliveredBonus)
		c.recomputeTier()
		ch.MetricsChanged = true
	case EventReturnInitiated:
		c.adjustTrust(ReturnPenalty)
	case EventCancelled:
		c.refundsCount++
		c.adjustTrust(CancelledPenalty)
		c.recomputeTier()
		ch.MetricsChanged = true
	}

	c.lastOrderAt = &at
	c.updatedAt = at

	ch.TrustAfter = c.trustScore
	ch.TierAfter = c.loyaltyTier
	return ch
}

func (c *Customer) adjustTrust(delta int) {
	c.trustScore = clampTrust(c.trustScore + delta)
}

func (c *Customer) recomputeTier() {
	if tier := TierFor(c.totalOrders); tier != c.loyaltyTier {
		c.loyaltyTier = tier
	}
}

func clampTrust(score int) int {
	return min(max(score, MinTrustScore), MaxTrustScore)
}
