package commands

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/ports"
)

type DispatchReport struct {
	Claimed int
	Sent    int
	Failed  int
}

// DispatchNotificationsCommandHandler drains the notification outbox. Rows are
// claimed before sending, so a message is delivered at most once.
type DispatchNotificationsCommandHandler struct {
	outbox     ports.NotificationOutbox
	dispatcher ports.NotificationDispatcher
	clock      ports.Clock
	logger     *slog.Logger
}

func NewDispatchNotificationsCommandHandler(
	outbox ports.NotificationOutbox,
	dispatcher ports.NotificationDispatcher,
	clock ports.Clock,
	logger *slog.Logger,
) DispatchNotificationsCommandHandler {
	return DispatchNotificationsCommandHandler{
		outbox:     outbox,
		dispatcher: dispatcher,
		clock:      clock,
		logger:     logger.With("component", "notification_dispatch"),
	}
}

func (h DispatchNotificationsCommandHandler) Handle(
	ctx context.Context,
	cmd DispatchNotificationsCommand,
) (DispatchReport, error) {
	if err := cmd.Validate(); err != nil {
		return DispatchReport{}, err
	}

	batch, err := h.outbox.ClaimPending(ctx, cmd.BatchSize())
	if err != nil {
		return DispatchReport{}, err
	}

	report := DispatchReport{Claimed: len(batch)}
	for _, n := range batch {
		if ctx.Err() != nil {
			return report, ctx.Err()
		}

		res := h.dispatcher.Send(ctx, n.Kind, n.Phone, n.Data)
		if res.Success {
			report.Sent++
			if err = h.outbox.MarkSent(ctx, n.ID, res.MessageID, h.clock.Now()); err != nil {
				h.logger.ErrorContext(ctx, "Failed to mark notification sent",
					"notification_id", n.ID.String(), "error", err)
			}
			continue
		}

		report.Failed++
		h.logger.WarnContext(ctx, "Notification not delivered",
			"notification_id", n.ID.String(), "order_id", n.OrderID.String(),
			"kind", string(n.Kind), "error", res.Error)
		if err = h.outbox.MarkFailed(ctx, n.ID, res.Error, h.clock.Now()); err != nil {
			h.logger.ErrorContext(ctx, "Failed to mark notification failed",
				"notification_id", n.ID.String(), "error", err)
		}
	}

	return report, nil
}
