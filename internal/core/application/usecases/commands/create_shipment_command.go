package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrCreateShipmentCommandIsNotConstructed = errors.New(
	"CreateShipmentCommand must be created via NewCreateShipmentCommand constructor",
)

type CreateShipmentCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	carrier   string
	manualAWB string

	guard guard.ConstructorGuard
}

// NewCreateShipmentCommand builds a shipment request. manualAWB is used only by
// manual carriers.
func NewCreateShipmentCommand(orderID kernel.UUID, carrier, manualAWB string) (CreateShipmentCommand, error) {
	var errCarrier error
	if carrier == "" {
		errCarrier = errs.NewValueIsRequiredError("carrier")
	}
	if err := errors.Join(orderID.Validate(), errCarrier); err != nil {
		return CreateShipmentCommand{}, err
	}
	return CreateShipmentCommand{
		orderID:   orderID,
		carrier:   carrier,
		manualAWB: manualAWB,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c CreateShipmentCommand) Validate() error {
	return c.guard.Validate(ErrCreateShipmentCommandIsNotConstructed)
}

func (c CreateShipmentCommand) OrderID() kernel.UUID { return c.orderID }
func (c CreateShipmentCommand) Carrier() string      { return c.carrier }
func (c CreateShipmentCommand) ManualAWB() string    { return c.manualAWB }
