package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/settings"
)

type SettingsRepository interface {
	// GetApprovalSettings returns errs.ObjectNotFoundError when nothing is configured.
	GetApprovalSettings(ctx context.Context) (*settings.ApprovalSettings, error)
	SaveApprovalSettings(ctx context.Context, s settings.ApprovalSettings) error
}

// SettingsProvider serves approval settings, possibly from a short-lived cache.
// A nil result with a nil error means no settings are configured.
type SettingsProvider interface {
	ApprovalSettings(ctx context.Context) (*settings.ApprovalSettings, error)
}
