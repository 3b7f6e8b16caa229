package order

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through NewOrder or Restore.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order is the aggregate root for a customer order and its fulfillment lifecycle.
//
// Invariants:
//   - at least one item, valid payment and pricing
//   - status moves only along the transitions of Status
//   - a shipment is never marked without payment settled and weight/dimensions resolved
//
// version is the optimistic concurrency counter. The repository bumps it on every
// successful write; the aggregate only carries the value it was loaded with.
type Order struct {
	id                  kernel.UUID
	customerID          *kernel.UUID
	phone               string
	shippingAddress     Address
	items               []Item
	payment             Payment
	pricing             Pricing
	approval            Approval
	status              Status
	shipment            *ShipmentInfo
	needsTracking       bool
	weight              *float64
	dimensions          *kernel.Dimensions
	couponCode          string
	notificationsOptOut bool
	version             int
	createdAt           time.Time
	updatedAt           time.Time

	isConstructed bool
}

// NewOrder creates an order in CreatedPending with a pending approval.
//
// Example:
//
//	item, _ := order.NewItem("prod-1", "SKU-1", 2, decimal.NewFromInt(250))
//	pricing, _ := order.NewPricing(decimal.NewFromInt(500), decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero)
//	o, err := order.NewOrder(kernel.NewUUID(), "+15550001111", addr, []order.Item{item},
//	    order.Payment{Method: order.PaymentCOD, Status: order.PaymentPending}, pricing, time.Now())
func NewOrder(
	id kernel.UUID,
	phone string,
	address Address,
	items []Item,
	payment Payment,
	pricing Pricing,
	now time.Time,
) (*Order, error) {
	o := &Order{
		shippingAddress: address,
		pricing:         pricing,
		approval:        Approval{Status: ApprovalPending},
		status:          CreatedPending,
		createdAt:       now,
		updatedAt:       now,
		isConstructed:   true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setPhone(phone),
		o.setItems(items),
		o.setPayment(payment),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Snapshot is the full persisted state of an Order. Repositories use it to
// restore and to save orders.
type Snapshot struct {
	ID                  kernel.UUID
	CustomerID          *kernel.UUID
	Phone               string
	ShippingAddress     Address
	Items               []Item
	Payment             Payment
	Pricing             Pricing
	Approval            Approval
	Status              Status
	Shipment            *ShipmentInfo
	NeedsTracking       bool
	Weight              *float64
	Dimensions          *kernel.Dimensions
	CouponCode          string
	NotificationsOptOut bool
	Version             int
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Restore rebuilds an order from storage.
func Restore(s Snapshot) (*Order, error) {
	if err := errors.Join(s.ID.Validate(), s.Status.Validate()); err != nil {
		return nil, err
	}

	items := make([]Item, len(s.Items))
	copy(items, s.Items)

	return &Order{
		id:                  s.ID,
		customerID:          s.CustomerID,
		phone:               s.Phone,
		shippingAddress:     s.ShippingAddress,
		items:               items,
		payment:             s.Payment,
		pricing:             s.Pricing,
		approval:            s.Approval,
		status:              s.Status,
		shipment:            s.Shipment,
		needsTracking:       s.NeedsTracking,
		weight:              s.Weight,
		dimensions:          s.Dimensions,
		couponCode:          s.CouponCode,
		notificationsOptOut: s.NotificationsOptOut,
		version:             s.Version,
		createdAt:           s.CreatedAt,
		updatedAt:           s.UpdatedAt,
		isConstructed:       true,
	}, nil
}

func (o *Order) Snapshot() Snapshot {
	items := make([]Item, len(o.items))
	copy(items, o.items)

	return Snapshot{
		ID:                  o.id,
		CustomerID:          o.customerID,
		Phone:               o.phone,
		ShippingAddress:     o.shippingAddress,
		Items:               items,
		Payment:             o.payment,
		Pricing:             o.pricing,
		Approval:            o.approval,
		Status:              o.status,
		Shipment:            o.shipment,
		NeedsTracking:       o.needsTracking,
		Weight:              o.weight,
		Dimensions:          o.dimensions,
		CouponCode:          o.couponCode,
		NotificationsOptOut: o.notificationsOptOut,
		Version:             o.version,
		CreatedAt:           o.createdAt,
		UpdatedAt:           o.updatedAt,
	}
}

func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID                { return o.id }
func (o *Order) CustomerID() *kernel.UUID       { return o.customerID }
func (o *Order) Phone() string                  { return o.phone }
func (o *Order) ShippingAddress() Address       { return o.shippingAddress }
func (o *Order) Payment() Payment               { return o.payment }
func (o *Order) Pricing() Pricing               { return o.pricing }
func (o *Order) GrandTotal() decimal.Decimal    { return o.pricing.GrandTotal }
func (o *Order) Approval() Approval             { return o.approval }
func (o *Order) Status() Status                 { return o.status }
func (o *Order) Shipment() *ShipmentInfo        { return o.shipment }
func (o *Order) NeedsTracking() bool            { return o.needsTracking }
func (o *Order) Weight() *float64               { return o.weight }
func (o *Order) Dimensions() *kernel.Dimensions { return o.dimensions }
func (o *Order) CouponCode() string             { return o.couponCode }
func (o *Order) NotificationsOptOut() bool      { return o.notificationsOptOut }
func (o *Order) Version() int                   { return o.version }
func (o *Order) CreatedAt() time.Time           { return o.createdAt }
func (o *Order) UpdatedAt() time.Time           { return o.updatedAt }

// Items returns a copy of the order lines.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// AttachCustomer links the order to a customer record.
func (o *Order) AttachCustomer(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	o.customerID = &customerID
	return nil
}

func (o *Order) SetNotificationsOptOut(optOut bool) {
	o.notificationsOptOut = optOut
}

// ApplyCoupon records the redeemed code and the repriced totals.
func (o *Order) ApplyCoupon(code string, pricing Pricing) error {
	if code == "" {
		return errs.NewValueIsRequiredError("coupon code")
	}
	if o.status != CreatedPending {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("coupon cannot be applied in %s", o.status))
	}
	o.couponCode = code
	o.pricing = pricing
	return nil
}

// ApplyResolution stores the dimension resolution outcome. When manual
// verification is required the order moves to NeedsManualVerification.
func (o *Order) ApplyResolution(
	items []Item,
	weight *float64,
	dimensions *kernel.Dimensions,
	needsManualVerification bool,
	at time.Time,
) error {
	if len(items) != len(o.items) {
		return errs.NewValueIsInvalidErrorWithCause("items are invalid",
			fmt.Errorf("resolution has %d items, order has %d", len(items), len(o.items)))
	}

	if needsManualVerification {
		next, err := o.status.TransitionTo(NeedsManualVerification)
		if err != nil {
			return err
		}
		o.status = next
	}

	o.items = append([]Item(nil), items...)
	o.weight = weight
	o.dimensions = dimensions
	o.updatedAt = at
	return nil
}

// ConfirmDimensions records operator-verified package facts.
func (o *Order) ConfirmDimensions(weight float64, dimensions kernel.Dimensions, at time.Time) error {
	if weight <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("weight is invalid",
			fmt.Errorf("%g is not greater than 0", weight))
	}
	if err := dimensions.Validate(); err != nil {
		return err
	}
	o.weight = &weight
	o.dimensions = &dimensions
	o.updatedAt = at
	return nil
}

// Approve moves the order to Approved and records who approved it.
func (o *Order) Approve(by string, at time.Time) error {
	if by == "" {
		return errs.NewValueIsRequiredError("approvedBy")
	}
	next, err := o.status.TransitionTo(Approved)
	if err != nil {
		return err
	}
	o.status = next
	o.approval = Approval{Status: ApprovalApproved, ApprovedBy: by, ApprovedAt: &at}
	o.updatedAt = at
	return nil
}

// Reject moves an approved order to Rejected.
func (o *Order) Reject(by string, at time.Time) error {
	next, err := o.status.TransitionTo(Rejected)
	if err != nil {
		return err
	}
	o.status = next
	o.approval = Approval{Status: ApprovalRejected, ApprovedBy: by, ApprovedAt: &at}
	o.updatedAt = at
	return nil
}

// CheckShippable returns the first invariant that prevents a shipment, or nil.
func (o *Order) CheckShippable() error {
	if !o.payment.CanShip() {
		return errs.NewInvariantViolationError("payment",
			fmt.Sprintf("%s payment is %s", o.payment.Method, o.payment.Status))
	}
	if o.weight == nil || o.dimensions == nil {
		return errs.NewInvariantViolationError("dimensions", "weight and dimensions must be resolved before shipping")
	}
	if o.status != Approved {
		return errs.NewInvariantViolationError("status",
			fmt.Sprintf("order is %s, expected %s", o.status, Approved))
	}
	return nil
}

// RecordShipmentAttempt stores the carrier outcome for audit. Only a successful
// attempt moves the order to Shipped; API carriers also flag the order for tracking.
func (o *Order) RecordShipmentAttempt(attempt ShipmentAttempt) error {
	if attempt.Success {
		if err := o.CheckShippable(); err != nil {
			return err
		}
		next, err := o.status.TransitionTo(Shipped)
		if err != nil {
			return err
		}
		o.status = next
		o.needsTracking = attempt.Mode != ShipmentModeManual
	}

	info := ShipmentInfo{
		Carrier:     attempt.Carrier,
		Mode:        attempt.Mode,
		RawRequest:  attempt.RawRequest,
		RawResponse: attempt.RawResponse,
		LastError:   attempt.Error,
		AttemptedAt: attempt.At,
	}
	if attempt.Success {
		info.AWB = attempt.AWB
		info.TrackingURL = attempt.TrackingURL
		info.LastError = ""
	} else if o.shipment != nil {
		info.AWB = o.shipment.AWB
		info.TrackingURL = o.shipment.TrackingURL
	}
	o.shipment = &info
	o.updatedAt = attempt.At
	return nil
}

// RecordShipmentAudit keeps the carrier's answer on the order without moving
// its status. It is used when an attempt could not be applied to the order,
// e.g. a carrier accepted the shipment after the order was cancelled.
func (o *Order) RecordShipmentAudit(attempt ShipmentAttempt, note string) {
	info := ShipmentInfo{
		Carrier:     attempt.Carrier,
		Mode:        attempt.Mode,
		AWB:         attempt.AWB,
		TrackingURL: attempt.TrackingURL,
		RawRequest:  attempt.RawRequest,
		RawResponse: attempt.RawResponse,
		LastError:   note,
		AttemptedAt: attempt.At,
	}
	if attempt.Error != "" {
		info.LastError = note + ": " + attempt.Error
	}
	if info.AWB == "" && o.shipment != nil {
		info.AWB = o.shipment.AWB
		info.TrackingURL = o.shipment.TrackingURL
	}
	o.shipment = &info
	o.updatedAt = attempt.At
}

// TransitionTo applies a lifecycle transition fed by tracking or an operator.
// Approved, Rejected and Shipped have dedicated methods and are refused here.
func (o *Order) TransitionTo(next Status, at time.Time) error {
	switch next { //nolint:exhaustive // only states owned by other methods
	case Approved, Rejected, Shipped:
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is set through its own operation", next))
	}
	status, err := o.status.TransitionTo(next)
	if err != nil {
		return err
	}
	o.status = status
	if o.shipment != nil && status != Cancelled {
		o.shipment.TrackingStatus = status.String()
	}
	if status.IsTerminal() {
		o.needsTracking = false
	}
	o.updatedAt = at
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setPhone(phone string) error {
	if phone == "" {
		return errs.NewValueIsRequiredError("phone")
	}
	o.phone = phone
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	o.items = append([]Item(nil), items...)
	return nil
}

func (o *Order) setPayment(payment Payment) error {
	if err := payment.Validate(); err != nil {
		return err
	}
	o.payment = payment
	return nil
}
