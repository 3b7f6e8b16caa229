// Package jobs provides scheduled background tasks for the fulfillment service.
//
// Jobs are built on github.com/robfig/cron/v3 with second-level schedules.
//
// # Available Jobs
//
// NotificationDispatchJob claims a batch of queued order notifications from
// the outbox and hands each one to the messaging provider. The schedule comes
// from NOTIFICATION_DISPATCH_CRON and defaults to every five seconds.
//
// # Usage
//
//	job := jobs.NewNotificationDispatchJob(dispatchHandler, cfg.NotificationDispatchCron, 50, logger)
//	jobManager := jobs.NewJobManager(job)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed batch is logged and left to the next tick. Rows already claimed
// are not retried, so a notification is sent at most once.
package jobs
