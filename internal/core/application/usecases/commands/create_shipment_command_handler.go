package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// DefaultShipmentClaimTTL bounds how long a crashed submission blocks a retry.
const DefaultShipmentClaimTTL = 2 * time.Minute

// ShipmentResult is the outcome of a shipment request. Business refusals and
// carrier failures are results, not errors.
type ShipmentResult struct {
	Success     bool
	OrderID     string
	Carrier     string
	AWB         string
	TrackingURL string
	// Rule names the violated invariant when the order was not shippable.
	Rule  string
	Error string
}

// CreateShipmentCommandHandler submits an approved order to a carrier.
//
// The order is claimed before the carrier is called so two concurrent requests
// cannot both reach the carrier. The attempt is persisted whether it
// succeeded or not; only a success moves the order to shipped.
type CreateShipmentCommandHandler struct {
	uowFactory OrderUoWFactory
	registry   ports.CourierRegistry
	observer   OrderObserver
	clock      ports.Clock
	claimTTL   time.Duration
	logger     *slog.Logger
}

func NewCreateShipmentCommandHandler(
	uowFactory OrderUoWFactory,
	registry ports.CourierRegistry,
	observer OrderObserver,
	clock ports.Clock,
	claimTTL time.Duration,
	logger *slog.Logger,
) CreateShipmentCommandHandler {
	if claimTTL <= 0 {
		claimTTL = DefaultShipmentClaimTTL
	}
	return CreateShipmentCommandHandler{
		uowFactory: uowFactory,
		registry:   registry,
		observer:   observer,
		clock:      clock,
		claimTTL:   claimTTL,
		logger:     logger.With("component", "shipment_orchestrator"),
	}
}

func (h CreateShipmentCommandHandler) Handle(ctx context.Context, cmd CreateShipmentCommand) (ShipmentResult, error) {
	if err := cmd.Validate(); err != nil {
		return ShipmentResult{}, err
	}

	result := ShipmentResult{OrderID: cmd.OrderID().String(), Carrier: cmd.Carrier()}

	orders := h.uowFactory.Create().OrderRepository()
	o, err := orders.Get(ctx, cmd.OrderID())
	if err != nil {
		return ShipmentResult{}, err
	}

	if err = o.CheckShippable(); err != nil {
		return refused(result, err), nil
	}

	adapter, ok := h.registry.Get(cmd.Carrier())
	if !ok {
		result.Rule = "carrier"
		result.Error = fmt.Sprintf("unknown carrier %q", cmd.Carrier())
		return result, nil
	}

	claimed, err := orders.ClaimShipment(ctx, o.ID(), h.clock.Now(), h.claimTTL)
	if err != nil {
		return ShipmentResult{}, err
	}
	if !claimed {
		result.Rule = "in_progress"
		result.Error = "a shipment for this order is already in progress"
		return result, nil
	}

	submitted := adapter.Submit(ctx, o, cmd.ManualAWB())

	attempt := order.ShipmentAttempt{
		Carrier:     adapter.Name(),
		Mode:        adapter.Mode(),
		Success:     submitted.Success,
		AWB:         submitted.AWB,
		TrackingURL: submitted.TrackingURL,
		RawRequest:  submitted.RawRequest,
		RawResponse: submitted.RawResponse,
		Error:       submitted.Error,
		At:          h.clock.Now(),
	}
	if err = o.RecordShipmentAttempt(attempt); err != nil {
		h.release(ctx, orders, o)
		return ShipmentResult{}, err
	}

	err = h.persist(ctx, o, submitted.Success)
	if errors.Is(err, errs.ErrVersionIsInvalid) {
		h.logger.ErrorContext(ctx, "Order changed while carrier was called",
			"order_id", result.OrderID, "carrier", attempt.Carrier, "awb", attempt.AWB)
		h.release(ctx, orders, o)
		h.audit(ctx, o, attempt, "order changed while the shipment was being created")
		result.Rule = "status"
		result.Error = "order changed while the shipment was being created"
		return result, nil
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to persist shipment attempt",
			"order_id", result.OrderID, "carrier", attempt.Carrier, "awb", attempt.AWB, "error", err)
		h.release(ctx, orders, o)
		h.audit(ctx, o, attempt, "shipment attempt could not be applied")
		return ShipmentResult{}, err
	}

	if !submitted.Success {
		h.logger.WarnContext(ctx, "Carrier refused shipment",
			"order_id", result.OrderID, "carrier", attempt.Carrier, "error", submitted.Error)
		result.Error = submitted.Error
		return result, nil
	}

	h.logger.InfoContext(ctx, "Order shipped",
		"order_id", result.OrderID, "carrier", attempt.Carrier, "awb", attempt.AWB)
	h.observer.OrderChanged(ctx, o, ports.NotificationShipped)

	result.Success = true
	result.AWB = submitted.AWB
	result.TrackingURL = submitted.TrackingURL
	return result, nil
}

// persist stores the attempt and drops the claim in one transaction. A
// successful attempt is only written if the order is still approved.
func (h CreateShipmentCommandHandler) persist(ctx context.Context, o *order.Order, success bool) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders := uow.OrderRepository()

	var err error
	if success {
		err = orders.UpdateFromStatus(ctx, o, order.Approved)
	} else {
		err = orders.Update(ctx, o)
	}
	if err != nil {
		return err
	}

	if err = orders.ReleaseShipmentClaim(ctx, o.ID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// audit writes the carrier's answer onto a fresh copy of the order when the
// attempt itself could not be saved. The status is left as stored.
func (h CreateShipmentCommandHandler) audit(ctx context.Context, o *order.Order, attempt order.ShipmentAttempt, note string) {
	orders := h.uowFactory.Create().OrderRepository()

	fresh, err := orders.Get(ctx, o.ID())
	if err == nil {
		fresh.RecordShipmentAudit(attempt, note)
		err = orders.Update(ctx, fresh)
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to write shipment audit",
			"order_id", o.ID().String(), "carrier", attempt.Carrier, "awb", attempt.AWB,
			"raw_request", string(attempt.RawRequest), "raw_response", string(attempt.RawResponse), "error", err)
	}
}

func (h CreateShipmentCommandHandler) release(ctx context.Context, orders ports.OrderRepository, o *order.Order) {
	if err := orders.ReleaseShipmentClaim(ctx, o.ID()); err != nil {
		h.logger.ErrorContext(ctx, "Failed to release shipment claim", "order_id", o.ID().String(), "error", err)
	}
}

func refused(result ShipmentResult, err error) ShipmentResult {
	var violation *errs.InvariantViolationError
	if errors.As(err, &violation) {
		result.Rule = violation.Rule
	}
	result.Error = err.Error()
	return result
}
