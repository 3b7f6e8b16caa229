package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/settings"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrUpdateApprovalSettingsCommandIsNotConstructed = errors.New(
	"UpdateApprovalSettingsCommand must be created via NewUpdateApprovalSettingsCommand constructor",
)

type UpdateApprovalSettingsCommand struct { //nolint:recvcheck //using for validation
	settings settings.ApprovalSettings

	guard guard.ConstructorGuard
}

func NewUpdateApprovalSettingsCommand(
	minCustomerAgeDays int,
	allowNewCustomers bool,
	maxAutoApprovalValue decimal.Decimal,
	requireVerifiedDimensions bool,
) (UpdateApprovalSettingsCommand, error) {
	s, err := settings.NewApprovalSettings(
		minCustomerAgeDays, allowNewCustomers, maxAutoApprovalValue, requireVerifiedDimensions,
	)
	if err != nil {
		return UpdateApprovalSettingsCommand{}, err
	}
	return UpdateApprovalSettingsCommand{settings: s, guard: guard.NewConstructorGuard()}, nil
}

func (c UpdateApprovalSettingsCommand) Validate() error {
	return c.guard.Validate(ErrUpdateApprovalSettingsCommandIsNotConstructed)
}

func (c UpdateApprovalSettingsCommand) Settings() settings.ApprovalSettings { return c.settings }
