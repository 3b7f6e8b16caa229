package commands

import (
	"context"
	"errors"
	"log/slog"

	"fulfillment/internal/core/domain/model/combination"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// ApproveOrderCommandHandler records an operator approval. Measurements given
// for a multi-item order are saved as a verified combination in the same
// transaction, so the next order with the same items resolves from cache.
type ApproveOrderCommandHandler struct {
	uowFactory   UoWFactory
	intelligence CustomerIntelligenceUpdater
	observer     OrderObserver
	clock        ports.Clock
	logger       *slog.Logger
}

func NewApproveOrderCommandHandler(
	uowFactory UoWFactory,
	intelligence CustomerIntelligenceUpdater,
	observer OrderObserver,
	clock ports.Clock,
	logger *slog.Logger,
) ApproveOrderCommandHandler {
	return ApproveOrderCommandHandler{
		uowFactory:   uowFactory,
		intelligence: intelligence,
		observer:     observer,
		clock:        clock,
		logger:       logger.With("component", "order_approval"),
	}
}

func (h ApproveOrderCommandHandler) Handle(ctx context.Context, cmd ApproveOrderCommand) error {
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

	if cmd.HasMeasurements() {
		if err = o.ConfirmDimensions(*cmd.Weight(), *cmd.Dimensions(), now); err != nil {
			return err
		}
	}
	if prev == order.NeedsManualVerification && (o.Weight() == nil || o.Dimensions() == nil) {
		return errs.NewInvariantViolationError("dimensions",
			"weight and dimensions are required to approve an unverified order")
	}

	if err = o.Approve(cmd.ApprovedBy(), now); err != nil {
		return err
	}

	if err = orders.UpdateFromStatus(ctx, o, prev); err != nil {
		return err
	}

	items := combinationItems(o.Items())
	if cmd.HasMeasurements() && len(items) > 1 {
		err = h.verifyCombination(ctx, uow.CombinationRepository(), items, cmd, o)
		if err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.logger.InfoContext(ctx, "Order approved",
		"order_id", o.ID().String(), "approved_by", cmd.ApprovedBy(), "from", prev.String())

	if ic, icErr := NewUpdateCustomerIntelligenceCommand(o.ID(), order.Approved); icErr == nil {
		h.intelligence.Handle(ctx, ic)
	}
	h.observer.OrderChanged(ctx, o, "")
	return nil
}

func (h ApproveOrderCommandHandler) verifyCombination(
	ctx context.Context,
	repo ports.CombinationRepository,
	items []combination.Item,
	cmd ApproveOrderCommand,
	o *order.Order,
) error {
	now := h.clock.Now()
	notes := "verified on approval of order " + o.ID().String()

	existing, err := repo.Get(ctx, combination.HashItems(items))
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		c, newErr := combination.NewVerifiedCombination(
			items, *cmd.Weight(), *cmd.Dimensions(), cmd.ApprovedBy(), notes, now,
		)
		if newErr != nil {
			return newErr
		}
		return repo.Save(ctx, c)
	case err != nil:
		return err
	}

	if err = existing.Reverify(*cmd.Weight(), *cmd.Dimensions(), cmd.ApprovedBy(), notes, now); err != nil {
		return err
	}
	return repo.Save(ctx, existing)
}
