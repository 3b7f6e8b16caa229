package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrTransitionOrderCommandIsNotConstructed = errors.New(
	"TransitionOrderCommand must be created via NewTransitionOrderCommand constructor",
)

// TransitionOrderCommand moves an order along its lifecycle on behalf of an
// operator or the tracking feed.
type TransitionOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	next    order.Status
	actor   string

	guard guard.ConstructorGuard
}

func NewTransitionOrderCommand(orderID kernel.UUID, next order.Status, actor string) (TransitionOrderCommand, error) {
	cmd := TransitionOrderCommand{
		orderID: orderID,
		next:    next,
		guard:   guard.NewConstructorGuard(),
	}
	if err := errors.Join(orderID.Validate(), next.Validate(), requireActor(&cmd.actor, "actor", actor)); err != nil {
		return TransitionOrderCommand{}, err
	}
	return cmd, nil
}

func (c TransitionOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderCommandIsNotConstructed)
}

func (c TransitionOrderCommand) OrderID() kernel.UUID { return c.orderID }
func (c TransitionOrderCommand) Next() order.Status   { return c.next }
func (c TransitionOrderCommand) Actor() string        { return c.actor }
