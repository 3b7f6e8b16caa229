package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrUpdateCustomerIntelligenceCommandIsNotConstructed = errors.New(
	"UpdateCustomerIntelligenceCommand must be created via NewUpdateCustomerIntelligenceCommand constructor",
)

type UpdateCustomerIntelligenceCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	newStatus order.Status

	guard guard.ConstructorGuard
}

func NewUpdateCustomerIntelligenceCommand(
	orderID kernel.UUID,
	newStatus order.Status,
) (UpdateCustomerIntelligenceCommand, error) {
	if err := errors.Join(orderID.Validate(), newStatus.Validate()); err != nil {
		return UpdateCustomerIntelligenceCommand{}, err
	}
	return UpdateCustomerIntelligenceCommand{
		orderID:   orderID,
		newStatus: newStatus,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateCustomerIntelligenceCommand) Validate() error {
	return c.guard.Validate(ErrUpdateCustomerIntelligenceCommandIsNotConstructed)
}

func (c UpdateCustomerIntelligenceCommand) OrderID() kernel.UUID    { return c.orderID }
func (c UpdateCustomerIntelligenceCommand) NewStatus() order.Status { return c.newStatus }
