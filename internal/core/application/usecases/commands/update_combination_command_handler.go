package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

// UpdateCombinationCommandHandler overwrites the measurements of an existing
// combination in place.
type UpdateCombinationCommandHandler struct {
	uowFactory CombinationUoWFactory
	clock      ports.Clock
}

func NewUpdateCombinationCommandHandler(uowFactory CombinationUoWFactory, clock ports.Clock) UpdateCombinationCommandHandler {
	return UpdateCombinationCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h UpdateCombinationCommandHandler) Handle(ctx context.Context, cmd UpdateCombinationCommand) error {
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

	if err = c.Update(cmd.Weight(), cmd.Dimensions(), cmd.UpdatedBy(), cmd.Notes(), h.clock.Now()); err != nil {
		return err
	}

	if err = repo.Save(ctx, c); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
