package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

// DeactivateCombinationCommandHandler soft-deletes a combination. The record
// stays readable; dimension resolution ignores it.
type DeactivateCombinationCommandHandler struct {
	uowFactory CombinationUoWFactory
	clock      ports.Clock
}

func NewDeactivateCombinationCommandHandler(
	uowFactory CombinationUoWFactory,
	clock ports.Clock,
) DeactivateCombinationCommandHandler {
	return DeactivateCombinationCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h DeactivateCombinationCommandHandler) Handle(ctx context.Context, cmd DeactivateCombinationCommand) error {
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

	repo := uow.CombinationRepository()

	c, err := repo.Get(ctx, cmd.Hash())
	if err != nil {
		return err
	}

	if err = c.Deactivate(cmd.By(), h.clock.Now()); err != nil {
		return err
	}

	if err = repo.Save(ctx, c); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
