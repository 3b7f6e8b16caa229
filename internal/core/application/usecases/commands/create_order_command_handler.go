package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/coupon"
	"fulfillment/internal/core/domain/model/customer"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// DimensionResolver is the hook order creation uses to size the parcel.
type DimensionResolver interface {
	Handle(ctx context.Context, cmd ResolveDimensionsCommand) (Resolution, error)
}

type CreateOrderResult struct {
	OrderID                 kernel.UUID
	Status                  order.Status
	NeedsManualVerification bool
	ResolutionReason        string
	Discount                decimal.Decimal
	GrandTotal              decimal.Decimal
	Approval                ApprovalOutcome
}

// CreateOrderCommandHandler places an order.
//
// The parcel is resolved before the transaction opens. The customer lookup,
// the coupon redemption and the order insert share one SERIALIZABLE
// transaction; a refused coupon fails the whole checkout with the
// *coupon.Rejection. Auto-approval and the "placed" notification run after
// commit and never fail the checkout.
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
	resolver   DimensionResolver
	approver   AutoApprover
	observer   OrderObserver
	clock      ports.Clock
	logger     *slog.Logger
}

func NewCreateOrderCommandHandler(
	uowFactory UoWFactory,
	resolver DimensionResolver,
	approver AutoApprover,
	observer OrderObserver,
	clock ports.Clock,
	logger *slog.Logger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		resolver:   resolver,
		approver:   approver,
		observer:   observer,
		clock:      clock,
		logger:     logger.With("component", "order_creation"),
	}
}

func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (CreateOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return CreateOrderResult{}, err
	}

	now := h.clock.Now()
	subtotal := cmd.Subtotal()
	charges := cmd.Charges()

	pricing, err := order.NewPricing(subtotal, decimal.Zero, charges.Shipping, charges.COD, charges.Taxes)
	if err != nil {
		return CreateOrderResult{}, err
	}

	o, err := order.NewOrder(cmd.OrderID(), cmd.Phone(), cmd.Address(), cmd.Items(), cmd.Payment(), pricing, now)
	if err != nil {
		return CreateOrderResult{}, err
	}
	o.SetNotificationsOptOut(cmd.NotificationsOptOut())

	resolveCmd, err := NewResolveDimensionsCommand(cmd.Items())
	if err != nil {
		return CreateOrderResult{}, err
	}
	resolution, err := h.resolver.Handle(ctx, resolveCmd)
	if err != nil {
		return CreateOrderResult{}, err
	}

	uow := h.uowFactory.Create()
	if cmd.HasCoupon() {
		err = uow.BeginSerializable(ctx)
	} else {
		err = uow.Begin(ctx)
	}
	if err != nil {
		return CreateOrderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	c, err := h.findOrCreateCustomer(ctx, uow.CustomerRepository(), cmd, now)
	if err != nil {
		return CreateOrderResult{}, err
	}
	if err = o.AttachCustomer(c.ID()); err != nil {
		return CreateOrderResult{}, err
	}

	if cmd.HasCoupon() {
		if err = h.applyCoupon(ctx, uow, o, c, cmd, now); err != nil {
			return CreateOrderResult{}, err
		}
	}

	err = o.ApplyResolution(
		resolution.ResolvedItems, resolution.Weight, resolution.Dimensions, resolution.NeedsManualVerification, now,
	)
	if err != nil {
		return CreateOrderResult{}, err
	}

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return CreateOrderResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return CreateOrderResult{}, err
	}

	h.logger.InfoContext(ctx, "Order created",
		"order_id", o.ID().String(), "status", o.Status().String(), "resolution", resolution.Reason)

	result := CreateOrderResult{
		OrderID:                 o.ID(),
		Status:                  o.Status(),
		NeedsManualVerification: resolution.NeedsManualVerification,
		ResolutionReason:        resolution.Reason,
		Discount:                o.Pricing().Discount,
		GrandTotal:              o.GrandTotal(),
	}

	if o.Status() == order.CreatedPending {
		approvalCmd, cmdErr := NewEvaluateAutoApprovalCommand(o.ID())
		if cmdErr == nil {
			result.Approval = h.approver.Handle(ctx, approvalCmd)
			if result.Approval.Approved {
				result.Status = order.Approved
			}
		}
	}

	h.observer.OrderChanged(ctx, o, ports.NotificationPlaced)

	return result, nil
}

func (h CreateOrderCommandHandler) findOrCreateCustomer(
	ctx context.Context,
	customers ports.CustomerRepository,
	cmd CreateOrderCommand,
	now time.Time,
) (*customer.Customer, error) {
	c, err := customers.FindByPhone(ctx, cmd.Phone())
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}

	c, err = customer.NewCustomer(kernel.NewUUID(), cmd.Phone(), cmd.CustomerName(), now)
	if err != nil {
		return nil, err
	}
	a := cmd.Address()
	c.AddAddress(customer.Address{
		Label:   "shipping",
		Line1:   a.Line1,
		Line2:   a.Line2,
		City:    a.City,
		State:   a.State,
		Pincode: a.Pincode,
	})

	if err = customers.Add(ctx, c); err != nil {
		return nil, err
	}
	h.logger.InfoContext(ctx, "Customer created", "customer_id", c.ID().String())
	return c, nil
}

// applyCoupon redeems the code against the order subtotal and reprices the
// order. A free_shipping coupon waives the shipping charge.
func (h CreateOrderCommandHandler) applyCoupon(
	ctx context.Context,
	uow UoW,
	o *order.Order,
	c *customer.Customer,
	cmd CreateOrderCommand,
	now time.Time,
) error {
	items := cmd.Items()
	lines := make([]coupon.Line, len(items))
	for i, it := range items {
		lines[i] = coupon.Line{
			ProductID: it.ProductID(),
			SKU:       it.SKU(),
			Quantity:  it.Quantity(),
			UnitPrice: it.UnitPrice(),
		}
	}

	outcome, err := redeemCoupon(ctx, uow.CouponRepository(), uow.OrderRepository(), redemptionInput{
		code:       cmd.CouponCode(),
		orderID:    o.ID(),
		customerID: c.ID().String(),
		phone:      cmd.Phone(),
		orderValue: cmd.Subtotal(),
		lines:      lines,
	}, now)
	if err != nil {
		return err
	}
	if outcome.rejection != nil {
		h.logger.InfoContext(ctx, "Coupon refused at checkout",
			"order_id", o.ID().String(), "reason", string(outcome.rejection.Reason))
		return outcome.rejection
	}

	charges := cmd.Charges()
	shipping := charges.Shipping
	if outcome.coupon.DiscountType() == coupon.DiscountFreeShipping {
		shipping = decimal.Zero
	}

	pricing, err := order.NewPricing(cmd.Subtotal(), outcome.usage.DiscountAmount, shipping, charges.COD, charges.Taxes)
	if err != nil {
		return err
	}
	return o.ApplyCoupon(outcome.coupon.Code(), pricing)
}
