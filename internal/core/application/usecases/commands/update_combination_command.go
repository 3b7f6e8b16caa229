package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrUpdateCombinationCommandIsNotConstructed = errors.New(
	"UpdateCombinationCommand must be created via NewUpdateCombinationCommand constructor",
)

type UpdateCombinationCommand struct { //nolint:recvcheck //using for validation
	hash       string
	weight     float64
	dimensions kernel.Dimensions
	updatedBy  string
	notes      string

	guard guard.ConstructorGuard
}

func NewUpdateCombinationCommand(
	hash string,
	weight float64,
	dimensions kernel.Dimensions,
	updatedBy, notes string,
) (UpdateCombinationCommand, error) {
	cmd := UpdateCombinationCommand{notes: notes, guard: guard.NewConstructorGuard()}

	var errHash error
	if hash == "" {
		errHash = errs.NewValueIsRequiredError("hash")
	}
	if err := errors.Join(
		errHash,
		setMeasurements(&cmd.weight, &cmd.dimensions, weight, dimensions),
		requireActor(&cmd.updatedBy, "updatedBy", updatedBy),
	); err != nil {
		return UpdateCombinationCommand{}, err
	}
	cmd.hash = hash

	return cmd, nil
}

func (c UpdateCombinationCommand) Validate() error {
	return c.guard.Validate(ErrUpdateCombinationCommandIsNotConstructed)
}

func (c UpdateCombinationCommand) Hash() string                  { return c.hash }
func (c UpdateCombinationCommand) Weight() float64               { return c.weight }
func (c UpdateCombinationCommand) Dimensions() kernel.Dimensions { return c.dimensions }
func (c UpdateCombinationCommand) UpdatedBy() string             { return c.updatedBy }
func (c UpdateCombinationCommand) Notes() string                 { return c.notes }
