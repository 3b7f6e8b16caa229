package commands

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/combination"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrSaveCombinationCommandIsNotConstructed = errors.New(
	"SaveCombinationCommand must be created via NewSaveCombinationCommand constructor",
)

// SaveCombinationCommand records a human-verified weight and box for an item set.
type SaveCombinationCommand struct { //nolint:recvcheck //using for validation
	items      []combination.Item
	weight     float64
	dimensions kernel.Dimensions
	verifiedBy string
	notes      string

	guard guard.ConstructorGuard
}

func NewSaveCombinationCommand(
	items []combination.Item,
	weight float64,
	dimensions kernel.Dimensions,
	verifiedBy, notes string,
) (SaveCombinationCommand, error) {
	cmd := SaveCombinationCommand{
		notes: notes,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setItems(items),
		setMeasurements(&cmd.weight, &cmd.dimensions, weight, dimensions),
		requireActor(&cmd.verifiedBy, "verifiedBy", verifiedBy),
	); err != nil {
		return SaveCombinationCommand{}, err
	}

	return cmd, nil
}

func (c SaveCombinationCommand) Validate() error {
	return c.guard.Validate(ErrSaveCombinationCommandIsNotConstructed)
}

func (c SaveCombinationCommand) Items() []combination.Item {
	return append([]combination.Item(nil), c.items...)
}
func (c SaveCombinationCommand) Weight() float64               { return c.weight }
func (c SaveCombinationCommand) Dimensions() kernel.Dimensions { return c.dimensions }
func (c SaveCombinationCommand) VerifiedBy() string            { return c.verifiedBy }
func (c SaveCombinationCommand) Notes() string                 { return c.notes }

func (c *SaveCombinationCommand) setItems(items []combination.Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	c.items = append([]combination.Item(nil), items...)
	return nil
}

func setMeasurements(
	dstWeight *float64,
	dstDims *kernel.Dimensions,
	weight float64,
	dimensions kernel.Dimensions,
) error {
	var errWeight error
	if weight <= 0 {
		errWeight = errs.NewValueIsInvalidErrorWithCause("weight is invalid",
			fmt.Errorf("%g is not greater than 0", weight))
	}
	if err := errors.Join(errWeight, dimensions.Validate()); err != nil {
		return err
	}
	*dstWeight = weight
	*dstDims = dimensions
	return nil
}

func requireActor(dst *string, name, value string) error {
	if value == "" {
		return errs.NewValueIsRequiredError(name)
	}
	*dst = value
	return nil
}
