package commands

import (
	"context"
	"errors"
	"log/slog"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// ApprovalReasonConcurrentUpdate is reported when the order changed between
// evaluation and the approval write.
const ApprovalReasonConcurrentUpdate = "concurrent_update"

// ApprovalOutcome reports the auto-approval decision. Err is set when the
// evaluation itself failed; it has already been logged.
type ApprovalOutcome struct {
	Approved bool
	Reason   string
	Warnings []string
	Err      error
}

// AutoApprover is the hook order creation calls after commit.
type AutoApprover interface {
	Handle(ctx context.Context, cmd EvaluateAutoApprovalCommand) ApprovalOutcome
}

// EvaluateAutoApprovalCommandHandler approves a created_pending order when the
// configured policy allows it. Declining is a normal outcome and no failure
// is ever returned to the caller.
type EvaluateAutoApprovalCommandHandler struct {
	uowFactory   CustomerUoWFactory
	settings     ports.SettingsProvider
	intelligence CustomerIntelligenceUpdater
	observer     OrderObserver
	policy       services.ApprovalPolicy
	clock        ports.Clock
	logger       *slog.Logger
}

func NewEvaluateAutoApprovalCommandHandler(
	uowFactory CustomerUoWFactory,
	settings ports.SettingsProvider,
	intelligence CustomerIntelligenceUpdater,
	observer OrderObserver,
	clock ports.Clock,
	logger *slog.Logger,
) EvaluateAutoApprovalCommandHandler {
	return EvaluateAutoApprovalCommandHandler{
		uowFactory:   uowFactory,
		settings:     settings,
		intelligence: intelligence,
		observer:     observer,
		policy:       services.NewApprovalPolicy(),
		clock:        clock,
		logger:       logger.With("component", "auto_approval"),
	}
}

func (h EvaluateAutoApprovalCommandHandler) Handle(ctx context.Context, cmd EvaluateAutoApprovalCommand) ApprovalOutcome {
	if err := cmd.Validate(); err != nil {
		return h.failed(ctx, cmd, err)
	}

	s, err := h.settings.ApprovalSettings(ctx)
	if err != nil {
		return h.failed(ctx, cmd, err)
	}

	reader := h.uowFactory.Create()
	o, err := reader.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return h.failed(ctx, cmd, err)
	}

	c, err := reader.CustomerRepository().FindByPhone(ctx, o.Phone())
	if errors.Is(err, errs.ErrObjectNotFound) {
		c, err = nil, nil
	}
	if err != nil {
		return h.failed(ctx, cmd, err)
	}

	now := h.clock.Now()
	decision := h.policy.Evaluate(s, c, o, now)
	for _, w := range decision.Warnings {
		h.logger.WarnContext(ctx, "Auto-approval warning", "order_id", o.ID().String(), "warning", w)
	}

	if !decision.Approve {
		h.logger.InfoContext(ctx, "Order left for manual approval",
			"order_id", o.ID().String(), "reason", decision.Reason)
		return ApprovalOutcome{Reason: decision.Reason, Warnings: decision.Warnings}
	}

	if err = o.Approve(order.AutoApprover, now); err != nil {
		return h.failed(ctx, cmd, err)
	}

	err = h.persist(ctx, o)
	if errors.Is(err, errs.ErrVersionIsInvalid) {
		h.logger.InfoContext(ctx, "Order changed during auto-approval", "order_id", o.ID().String())
		return ApprovalOutcome{Reason: ApprovalReasonConcurrentUpdate, Warnings: decision.Warnings}
	}
	if err != nil {
		return h.failed(ctx, cmd, err)
	}

	h.logger.InfoContext(ctx, "Order auto-approved", "order_id", o.ID().String())

	if ic, icErr := NewUpdateCustomerIntelligenceCommand(o.ID(), order.Approved); icErr == nil {
		h.intelligence.Handle(ctx, ic)
	}
	h.observer.OrderChanged(ctx, o, "")

	return ApprovalOutcome{Approved: true, Reason: decision.Reason, Warnings: decision.Warnings}
}

// persist writes the approval only if the order is still created_pending.
func (h EvaluateAutoApprovalCommandHandler) persist(ctx context.Context, o *order.Order) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.OrderRepository().UpdateFromStatus(ctx, o, order.CreatedPending); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h EvaluateAutoApprovalCommandHandler) failed(
	ctx context.Context,
	cmd EvaluateAutoApprovalCommand,
	err error,
) ApprovalOutcome {
	h.logger.ErrorContext(ctx, "Auto-approval evaluation failed",
		"order_id", cmd.OrderID().String(), "error", err)
	return ApprovalOutcome{Err: err}
}
