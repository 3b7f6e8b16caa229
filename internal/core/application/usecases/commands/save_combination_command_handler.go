package commands

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/combination"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// SaveCombinationCommandHandler upserts a verified combination by hash.
// A new record starts unused and active. An existing record, active or not,
// is re-verified and reactivated and keeps its usage history.
type SaveCombinationCommandHandler struct {
	uowFactory CombinationUoWFactory
	clock      ports.Clock
}

func NewSaveCombinationCommandHandler(uowFactory CombinationUoWFactory, clock ports.Clock) SaveCombinationCommandHandler {
	return SaveCombinationCommandHandler{uowFactory: uowFactory, clock: clock}
}

// Handle returns the combination hash.
func (h SaveCombinationCommandHandler) Handle(ctx context.Context, cmd SaveCombinationCommand) (string, error) {
	if err := cmd.Validate(); err != nil {
		return "", err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return "", err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.CombinationRepository()
	now := h.clock.Now()

	existing, err := repo.Get(ctx, combination.HashItems(cmd.Items()))
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		existing, err = combination.NewVerifiedCombination(
			cmd.Items(), cmd.Weight(), cmd.Dimensions(), cmd.VerifiedBy(), cmd.Notes(), now)
		if err != nil {
			return "", err
		}
	case err != nil:
		return "", err
	default:
		if err = existing.Reverify(cmd.Weight(), cmd.Dimensions(), cmd.VerifiedBy(), cmd.Notes(), now); err != nil {
			return "", err
		}
	}

	if err = repo.Save(ctx, existing); err != nil {
		return "", err
	}

	if err = uow.Commit(ctx); err != nil {
		return "", err
	}

	return existing.Hash(), nil
}
