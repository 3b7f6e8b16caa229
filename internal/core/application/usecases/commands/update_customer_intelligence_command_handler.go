package commands

import (
	"context"
	"errors"
	"log/slog"

	"fulfillment/internal/core/domain/model/customer"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// IntelligenceOutcome reports what the customer update did. Err is set when
// the update failed; it has already been logged.
type IntelligenceOutcome struct {
	Applied bool
	Skipped string
	Change  customer.Change
	Err     error
}

// CustomerIntelligenceUpdater is the hook order transitions call.
type CustomerIntelligenceUpdater interface {
	Handle(ctx context.Context, cmd UpdateCustomerIntelligenceCommand) IntelligenceOutcome
}

// UpdateCustomerIntelligenceCommandHandler applies an order transition to the
// customer's metrics, trust score and loyalty tier. The customer row is locked
// for the transaction so concurrent transitions of the same customer serialise.
// It never returns an error to the caller.
type UpdateCustomerIntelligenceCommandHandler struct {
	uowFactory CustomerUoWFactory
	clock      ports.Clock
	logger     *slog.Logger
}

func NewUpdateCustomerIntelligenceCommandHandler(
	uowFactory CustomerUoWFactory,
	clock ports.Clock,
	logger *slog.Logger,
) UpdateCustomerIntelligenceCommandHandler {
	return UpdateCustomerIntelligenceCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		logger:     logger.With("component", "customer_intelligence"),
	}
}

func (h UpdateCustomerIntelligenceCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateCustomerIntelligenceCommand,
) IntelligenceOutcome {
	outcome, err := h.update(ctx, cmd)
	if err != nil {
		h.logger.ErrorContext(ctx, "Customer intelligence update failed",
			"order_id", cmd.OrderID().String(), "status", cmd.NewStatus().String(), "error", err)
		return IntelligenceOutcome{Err: err}
	}
	if outcome.Skipped != "" {
		h.logger.InfoContext(ctx, "Customer intelligence update skipped",
			"order_id", cmd.OrderID().String(), "reason", outcome.Skipped)
	}
	return outcome
}

func (h UpdateCustomerIntelligenceCommandHandler) update(
	ctx context.Context,
	cmd UpdateCustomerIntelligenceCommand,
) (IntelligenceOutcome, error) {
	if err := cmd.Validate(); err != nil {
		return IntelligenceOutcome{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return IntelligenceOutcome{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return IntelligenceOutcome{}, err
	}

	customers := uow.CustomerRepository()
	c, err := customers.LockByPhone(ctx, o.Phone())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return IntelligenceOutcome{Skipped: "customer_not_found"}, nil
	}
	if err != nil {
		return IntelligenceOutcome{}, err
	}

	event := customer.OrderEvent(cmd.NewStatus().String())
	if event == customer.EventApproved {
		// The approval bonus is for the first order ever placed with this phone.
		prior, countErr := uow.OrderRepository().CountByPhone(ctx, o.Phone(), o.ID())
		if countErr != nil {
			return IntelligenceOutcome{}, countErr
		}
		if prior > 0 {
			event = customer.EventActivity
		}
	}

	change := c.ApplyOrderEvent(event, o.GrandTotal(), h.clock.Now())

	if err = customers.Update(ctx, c); err != nil {
		return IntelligenceOutcome{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return IntelligenceOutcome{}, err
	}

	return IntelligenceOutcome{Applied: true, Change: change}, nil
}
