package commands

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// Charges are the order-level amounts added on top of the item subtotal.
type Charges struct {
	Shipping decimal.Decimal
	COD      decimal.Decimal
	Taxes    decimal.Decimal
}

// CreateOrderCommand represents a storefront checkout.
//
// Example:
//
//	item, _ := order.NewItem("prod-1", "SKU-1", 2, decimal.NewFromInt(500))
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), "Asha", "+919800000001", address,
//	    []order.Item{item}, order.Payment{Method: order.PaymentPrepaid, Status: order.PaymentCompleted},
//	    Charges{Shipping: decimal.NewFromInt(50)}, "WELCOME10", false)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID             kernel.UUID
	customerName        string
	phone               string
	address             order.Address
	items               []order.Item
	payment             order.Payment
	charges             Charges
	couponCode          string
	notificationsOptOut bool

	guard guard.ConstructorGuard
}

func NewCreateOrderCommand(
	orderID kernel.UUID,
	customerName, phone string,
	address order.Address,
	items []order.Item,
	payment order.Payment,
	charges Charges,
	couponCode string,
	notificationsOptOut bool,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		orderID:             orderID,
		customerName:        customerName,
		address:             address,
		payment:             payment,
		couponCode:          couponCode,
		notificationsOptOut: notificationsOptOut,
		guard:               guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		requireActor(&cmd.phone, "phone", phone),
		cmd.setItems(items),
		payment.Validate(),
		cmd.setCharges(charges),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID      { return c.orderID }
func (c CreateOrderCommand) CustomerName() string      { return c.customerName }
func (c CreateOrderCommand) Phone() string             { return c.phone }
func (c CreateOrderCommand) Address() order.Address    { return c.address }
func (c CreateOrderCommand) Items() []order.Item       { return append([]order.Item(nil), c.items...) }
func (c CreateOrderCommand) Payment() order.Payment    { return c.payment }
func (c CreateOrderCommand) Charges() Charges          { return c.charges }
func (c CreateOrderCommand) CouponCode() string        { return c.couponCode }
func (c CreateOrderCommand) NotificationsOptOut() bool { return c.notificationsOptOut }
func (c CreateOrderCommand) HasCoupon() bool           { return c.couponCode != "" }

// Subtotal is the sum of the line totals.
func (c CreateOrderCommand) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.items {
		total = total.Add(it.LineTotal())
	}
	return total
}

func (c *CreateOrderCommand) setItems(items []order.Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	c.items = append([]order.Item(nil), items...)
	return nil
}

func (c *CreateOrderCommand) setCharges(ch Charges) error {
	for name, v := range map[string]decimal.Decimal{"shipping": ch.Shipping, "cod": ch.COD, "taxes": ch.Taxes} {
		if v.IsNegative() {
			return errs.NewValueIsInvalidErrorWithCause(name+" charge is invalid",
				fmt.Errorf("%s is negative", v))
		}
	}
	c.charges = ch
	return nil
}
