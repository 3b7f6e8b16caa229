package commands

import (
	"errors"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrDeactivateCombinationCommandIsNotConstructed = errors.New(
	"DeactivateCombinationCommand must be created via NewDeactivateCombinationCommand constructor",
)

type DeactivateCombinationCommand struct { //nolint:recvcheck //using for validation
	hash string
	by   string

	guard guard.ConstructorGuard
}

func NewDeactivateCombinationCommand(hash, by string) (DeactivateCombinationCommand, error) {
	cmd := DeactivateCombinationCommand{guard: guard.NewConstructorGuard()}

	var errHash error
	if hash == "" {
		errHash = errs.NewValueIsRequiredError("hash")
	}
	if err := errors.Join(errHash, requireActor(&cmd.by, "deactivatedBy", by)); err != nil {
		return DeactivateCombinationCommand{}, err
	}
	cmd.hash = hash

	return cmd, nil
}

func (c DeactivateCombinationCommand) Validate() error {
	return c.guard.Validate(ErrDeactivateCombinationCommandIsNotConstructed)
}

func (c DeactivateCombinationCommand) Hash() string { return c.hash }
func (c DeactivateCombinationCommand) By() string   { return c.by }
