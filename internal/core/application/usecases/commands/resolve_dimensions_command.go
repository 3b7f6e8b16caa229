package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrResolveDimensionsCommandIsNotConstructed = errors.New(
	"ResolveDimensionsCommand must be created via NewResolveDimensionsCommand constructor",
)

// ResolveDimensionsCommand asks for the shippable weight and box of a set of order lines.
type ResolveDimensionsCommand struct { //nolint:recvcheck //using for validation
	items []order.Item

	guard guard.ConstructorGuard
}

func NewResolveDimensionsCommand(items []order.Item) (ResolveDimensionsCommand, error) {
	if len(items) == 0 {
		return ResolveDimensionsCommand{}, errs.NewValueIsRequiredError("items")
	}
	return ResolveDimensionsCommand{
		items: append([]order.Item(nil), items...),
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c ResolveDimensionsCommand) Validate() error {
	return c.guard.Validate(ErrResolveDimensionsCommandIsNotConstructed)
}

func (c ResolveDimensionsCommand) Items() []order.Item {
	return append([]order.Item(nil), c.items...)
}
