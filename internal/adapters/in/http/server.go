// Package http exposes the operator and storefront use cases over echo.
// Handlers only translate between JSON and commands/queries.
package http

import (
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/generated/servers"

	"github.com/labstack/echo/v4"
)

// Handlers groups the use cases the server dispatches to.
type Handlers struct {
	CreateOrder         commands.CreateOrderCommandHandler
	ApproveOrder        commands.ApproveOrderCommandHandler
	CreateShipment      commands.CreateShipmentCommandHandler
	TransitionOrder     commands.TransitionOrderCommandHandler
	CreateCoupon        commands.CreateCouponCommandHandler
	RedeemCoupon        commands.RedeemCouponCommandHandler
	SaveCombination     commands.SaveCombinationCommandHandler
	UpdateCombination   commands.UpdateCombinationCommandHandler
	DeactivateCombo     commands.DeactivateCombinationCommandHandler
	UpdateSettings      commands.UpdateApprovalSettingsCommandHandler
	ValidateCoupon      queries.ValidateCouponQueryHandler
	OrdersAwaiting      queries.GetOrdersAwaitingActionQueryHandler
	FindCombination     queries.FindCombinationQueryHandler
	ListCombinations    queries.ListCombinationsQueryHandler
	SearchCombinations  queries.SearchCombinationsByProductQueryHandler
	CombinationStatsFor queries.CombinationStatsQueryHandler
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	h Handlers
}

func NewServer(h Handlers) *Server {
	return &Server{h: h}
}

var _ servers.ServerInterface = (*Server)(nil)

// Register installs the request validator on e and mounts the generated
// routes next to /health.
func (s *Server) Register(e *echo.Echo) {
	e.Validator = NewRequestValidator()
	e.GET("/health", Health)
	servers.RegisterHandlers(e, s)
}

func Health(c echo.Context) error {
	return c.String(http.StatusOK, "healthy")
}
