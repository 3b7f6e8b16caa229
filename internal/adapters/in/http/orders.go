package http

import (
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(c echo.Context) error {
	var req NewOrder
	if ok, err := bind(c, &req); !ok {
		return err
	}

	items := make([]order.Item, 0, len(req.Items))
	for _, it := range req.Items {
		item, err := order.NewItem(it.ProductID, it.SKU, it.Quantity, it.UnitPrice)
		if err != nil {
			return badRequest(c, "Invalid order item", err)
		}
		items = append(items, item)
	}

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(),
		req.CustomerName,
		req.Phone,
		order.Address(req.Address),
		items,
		order.Payment{
			Method: order.PaymentMethod(req.Payment.Method),
			Status: order.PaymentStatus(req.Payment.Status),
		},
		commands.Charges{Shipping: req.ShippingCharges, COD: req.CODCharges, Taxes: req.Taxes},
		req.CouponCode,
		req.NotificationsOptOut,
	)
	if err != nil {
		return badRequest(c, "Invalid order data", err)
	}

	result, err := s.h.CreateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err, "Failed to create order")
	}

	return c.JSON(http.StatusCreated, CreatedOrder{
		ID:                      result.OrderID.String(),
		Status:                  result.Status.String(),
		NeedsManualVerification: result.NeedsManualVerification,
		ResolutionReason:        result.ResolutionReason,
		Discount:                result.Discount,
		GrandTotal:              result.GrandTotal,
		AutoApproved:            result.Approval.Approved,
		ApprovalReason:          result.Approval.Reason,
		ApprovalWarnings:        result.Approval.Warnings,
	})
}

// GetOrdersAwaitingAction handles GET /api/v1/orders/awaiting-action.
func (s *Server) GetOrdersAwaitingAction(c echo.Context) error {
	orders, err := s.h.OrdersAwaiting.Handle(c.Request().Context(), queries.NewGetOrdersAwaitingActionQuery())
	if err != nil {
		return writeError(c, err, "Failed to retrieve orders")
	}

	response := make([]AwaitingOrder, len(orders))
	for i, o := range orders {
		response[i] = AwaitingOrder{
			ID:                o.ID.String(),
			Phone:             o.Phone,
			Status:            o.Status.String(),
			PaymentMethod:     string(o.PaymentMethod),
			GrandTotal:        o.GrandTotal,
			HasDimensions:     o.HasDimensions,
			LastShipmentError: o.LastShipmentError,
			CreatedAt:         o.CreatedAt,
		}
	}
	return c.JSON(http.StatusOK, response)
}

// ApproveOrder handles POST /api/v1/orders/:id/approve. Weight and
// dimensions, when given, record the operator's measurement.
func (s *Server) ApproveOrder(c echo.Context, id string) error {
	orderID, err := kernel.UUIDFromString(id)
	if err != nil {
		return badRequest(c, "Invalid order id", err)
	}

	var req ApproveOrder
	if ok, bindErr := bind(c, &req); !ok {
		return bindErr
	}

	var cmd commands.ApproveOrderCommand
	switch {
	case req.Weight != nil && req.Dimensions != nil:
		dims, dimErr := kernel.NewDimensions(req.Dimensions.Length, req.Dimensions.Width, req.Dimensions.Height)
		if dimErr != nil {
			return badRequest(c, "Invalid dimensions", dimErr)
		}
		cmd, err = commands.NewVerifiedApproveOrderCommand(orderID, req.ApprovedBy, *req.Weight, dims)
	case req.Weight != nil || req.Dimensions != nil:
		return c.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "weight and dimensions must be given together",
		})
	default:
		cmd, err = commands.NewApproveOrderCommand(orderID, req.ApprovedBy)
	}
	if err != nil {
		return badRequest(c, "Invalid approval", err)
	}

	if err = s.h.ApproveOrder.Handle(c.Request().Context(), cmd); err != nil {
		return writeError(c, err, "Failed to approve order")
	}
	return c.NoContent(http.StatusNoContent)
}

// CreateShipment handles POST /api/v1/orders/:id/shipments. A carrier or
// invariant refusal is a 422 carrying the shipment result.
func (s *Server) CreateShipment(c echo.Context, id string) error {
	orderID, err := kernel.UUIDFromString(id)
	if err != nil {
		return badRequest(c, "Invalid order id", err)
	}

	var req NewShipment
	if ok, bindErr := bind(c, &req); !ok {
		return bindErr
	}

	cmd, err := commands.NewCreateShipmentCommand(orderID, req.Carrier, req.ManualAWB)
	if err != nil {
		return badRequest(c, "Invalid shipment", err)
	}

	result, err := s.h.CreateShipment.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err, "Failed to create shipment")
	}

	status := http.StatusCreated
	if !result.Success {
		status = http.StatusUnprocessableEntity
	}
	return c.JSON(status, Shipment(result))
}

// TransitionOrder handles POST /api/v1/orders/:id/transitions.
func (s *Server) TransitionOrder(c echo.Context, id string) error {
	orderID, err := kernel.UUIDFromString(id)
	if err != nil {
		return badRequest(c, "Invalid order id", err)
	}

	var req Transition
	if ok, bindErr := bind(c, &req); !ok {
		return bindErr
	}

	next, err := order.ParseStatus(req.Status)
	if err != nil {
		return badRequest(c, "Invalid status", err)
	}

	cmd, err := commands.NewTransitionOrderCommand(orderID, next, req.Actor)
	if err != nil {
		return badRequest(c, "Invalid transition", err)
	}

	if err = s.h.TransitionOrder.Handle(c.Request().Context(), cmd); err != nil {
		return writeError(c, err, "Failed to transition order")
	}
	return c.NoContent(http.StatusNoContent)
}
