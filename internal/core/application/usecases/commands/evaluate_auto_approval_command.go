package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrEvaluateAutoApprovalCommandIsNotConstructed = errors.New(
	"EvaluateAutoApprovalCommand must be created via NewEvaluateAutoApprovalCommand constructor",
)

type EvaluateAutoApprovalCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewEvaluateAutoApprovalCommand(orderID kernel.UUID) (EvaluateAutoApprovalCommand, error) {
	if err := orderID.Validate(); err != nil {
		return EvaluateAutoApprovalCommand{}, err
	}
	return EvaluateAutoApprovalCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c EvaluateAutoApprovalCommand) Validate() error {
	return c.guard.Validate(ErrEvaluateAutoApprovalCommandIsNotConstructed)
}

func (c EvaluateAutoApprovalCommand) OrderID() kernel.UUID { return c.orderID }
