package jobs

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultDispatchSchedule drains the outbox every five seconds.
const DefaultDispatchSchedule = "*/5 * * * * *"

// NotificationDrainer is satisfied by commands.DispatchNotificationsCommandHandler.
type NotificationDrainer interface {
	Handle(ctx context.Context, cmd commands.DispatchNotificationsCommand) (commands.DispatchReport, error)
}

// NotificationDispatchJob sends queued order notifications on a cron schedule.
// A tick is skipped while the previous one is still draining.
type NotificationDispatchJob struct {
	handler   NotificationDrainer
	schedule  string
	batchSize int
	cron      *cron.Cron
	logger    *slog.Logger
}

func NewNotificationDispatchJob(
	handler NotificationDrainer,
	schedule string,
	batchSize int,
	logger *slog.Logger,
) *NotificationDispatchJob {
	if schedule == "" {
		schedule = DefaultDispatchSchedule
	}
	return &NotificationDispatchJob{
		handler:   handler,
		schedule:  schedule,
		batchSize: batchSize,
		cron:      cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:    logger.With("component", "notification_dispatch_job"),
	}
}

// Start registers the job and starts the scheduler.
func (j *NotificationDispatchJob) Start() error {
	cmd, err := commands.NewDispatchNotificationsCommand(j.batchSize)
	if err != nil {
		return err
	}

	if _, err = j.cron.AddFunc(j.schedule, func() { j.Run(context.Background(), cmd) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Notification dispatch job started", "schedule", j.schedule, "batch_size", j.batchSize)
	return nil
}

// Run drains one batch. Failures are logged; the next tick retries the
// rows that were never claimed.
func (j *NotificationDispatchJob) Run(ctx context.Context, cmd commands.DispatchNotificationsCommand) {
	report, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Notification dispatch failed", "error", err)
		return
	}
	if report.Claimed > 0 {
		j.logger.InfoContext(ctx, "Notifications dispatched",
			"claimed", report.Claimed, "sent", report.Sent, "failed", report.Failed)
	}
}

// Stop stops the scheduler and waits for a running tick to finish.
func (j *NotificationDispatchJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Notification dispatch job stopped")
}
