package http

import (
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/labstack/echo/v4"
)

// UpdateApprovalSettings handles PUT /api/v1/settings/approval.
func (s *Server) UpdateApprovalSettings(c echo.Context) error {
	var req ApprovalSettings
	if ok, err := bind(c, &req); !ok {
		return err
	}

	cmd, err := commands.NewUpdateApprovalSettingsCommand(
		req.MinCustomerAgeDays,
		req.AllowNewCustomers,
		req.MaxAutoApprovalValue,
		req.RequireVerifiedDimensions,
	)
	if err != nil {
		return badRequest(c, "Invalid approval settings", err)
	}

	if err = s.h.UpdateSettings.Handle(c.Request().Context(), cmd); err != nil {
		return writeError(c, err, "Failed to update approval settings")
	}
	return c.NoContent(http.StatusNoContent)
}
