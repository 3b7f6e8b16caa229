package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrApproveOrderCommandIsNotConstructed = errors.New(
	"ApproveOrderCommand must be created via NewApproveOrderCommand constructor",
)

// ApproveOrderCommand is an operator approval. Orders held for manual
// verification need the measured weight and box.
type ApproveOrderCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	approvedBy string
	weight     *float64
	dimensions *kernel.Dimensions

	guard guard.ConstructorGuard
}

func NewApproveOrderCommand(orderID kernel.UUID, approvedBy string) (ApproveOrderCommand, error) {
	cmd := ApproveOrderCommand{orderID: orderID, guard: guard.NewConstructorGuard()}
	if err := errors.Join(orderID.Validate(), requireActor(&cmd.approvedBy, "approvedBy", approvedBy)); err != nil {
		return ApproveOrderCommand{}, err
	}
	return cmd, nil
}

// NewVerifiedApproveOrderCommand is NewApproveOrderCommand with the package
// measured by the operator.
func NewVerifiedApproveOrderCommand(
	orderID kernel.UUID,
	approvedBy string,
	weight float64,
	dimensions kernel.Dimensions,
) (ApproveOrderCommand, error) {
	cmd, err := NewApproveOrderCommand(orderID, approvedBy)
	if err != nil {
		return ApproveOrderCommand{}, err
	}

	var w float64
	var d kernel.Dimensions
	if err = setMeasurements(&w, &d, weight, dimensions); err != nil {
		return ApproveOrderCommand{}, err
	}
	cmd.weight = &w
	cmd.dimensions = &d
	return cmd, nil
}

func (c ApproveOrderCommand) Validate() error {
	return c.guard.Validate(ErrApproveOrderCommandIsNotConstructed)
}

func (c ApproveOrderCommand) OrderID() kernel.UUID           { return c.orderID }
func (c ApproveOrderCommand) ApprovedBy() string             { return c.approvedBy }
func (c ApproveOrderCommand) Weight() *float64               { return c.weight }
func (c ApproveOrderCommand) Dimensions() *kernel.Dimensions { return c.dimensions }
func (c ApproveOrderCommand) HasMeasurements() bool          { return c.weight != nil && c.dimensions != nil }
