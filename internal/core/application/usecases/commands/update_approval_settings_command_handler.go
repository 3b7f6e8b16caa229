package commands

import (
	"context"
	"log/slog"
)

// SettingsInvalidator drops cached approval settings after a write.
type SettingsInvalidator interface {
	Invalidate()
}

type UpdateApprovalSettingsCommandHandler struct {
	uowFactory SettingsUoWFactory
	cache      SettingsInvalidator
	logger     *slog.Logger
}

func NewUpdateApprovalSettingsCommandHandler(
	uowFactory SettingsUoWFactory,
	cache SettingsInvalidator,
	logger *slog.Logger,
) UpdateApprovalSettingsCommandHandler {
	return UpdateApprovalSettingsCommandHandler{
		uowFactory: uowFactory,
		cache:      cache,
		logger:     logger.With("component", "approval_settings"),
	}
}

func (h UpdateApprovalSettingsCommandHandler) Handle(ctx context.Context, cmd UpdateApprovalSettingsCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.SettingsRepository().SaveApprovalSettings(ctx, cmd.Settings()); err != nil {
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	h.cache.Invalidate()

	s := cmd.Settings()
	h.logger.InfoContext(ctx, "Approval settings updated",
		"min_customer_age_days", s.MinCustomerAgeDays,
		"allow_new_customers", s.AllowNewCustomers,
		"max_auto_approval_value", s.MaxAutoApprovalValue.String(),
		"require_verified_dimensions", s.RequireVerifiedDimensions)
	return nil
}
