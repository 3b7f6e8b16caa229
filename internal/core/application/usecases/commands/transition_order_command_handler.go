package commands

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

type TransitionOrderCommandHandler struct {
	uowFactory   OrderUoWFactory
	intelligence CustomerIntelligenceUpdater
	observer     OrderObserver
	clock        ports.Clock
	logger       *slog.Logger
}

func NewTransitionOrderCommandHandler(
	uowFactory OrderUoWFactory,
	intelligence CustomerIntelligenceUpdater,
	observer OrderObserver,
	clock ports.Clock,
	logger *slog.Logger,
) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory:   uowFactory,
		intelligence: intelligence,
		observer:     observer,
		clock:        clock,
		logger:       logger.With("component", "order_transitions"),
	}
}

func (h TransitionOrderCommandHandler) Handle(ctx context.Context, cmd TransitionOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders := uow.OrderRepository()
	o, err := orders.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	prev := o.Status()
	now := h.clock.Now()
	if cmd.Next() == order.Rejected {
		err = o.Reject(cmd.Actor(), now)
	} else {
		err = o.TransitionTo(cmd.Next(), now)
	}
	if err != nil {
		return err
	}

	if err = orders.UpdateFromStatus(ctx, o, prev); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.logger.InfoContext(ctx, "Order status changed",
		"order_id", o.ID().String(), "from", prev.String(), "to", o.Status().String(), "actor", cmd.Actor())

	switch o.Status() { //nolint:exhaustive // only statuses that feed customer metrics
	case order.Cancelled, order.Delivered, order.ReturnInitiated:
		if ic, icErr := NewUpdateCustomerIntelligenceCommand(o.ID(), o.Status()); icErr == nil {
			h.intelligence.Handle(ctx, ic)
		}
	}

	h.observer.OrderChanged(ctx, o, notificationFor(o.Status()))
	return nil
}

func notificationFor(s order.Status) ports.NotificationKind {
	switch s { //nolint:exhaustive // only customer-facing milestones notify
	case order.InTransit:
		return ports.NotificationPicked
	case order.OutForDelivery:
		return ports.NotificationOutForDelivery
	case order.Delivered:
		return ports.NotificationDelivered
	default:
		return ""
	}
}
