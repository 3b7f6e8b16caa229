package jobs

import (
	"fmt"
)

// JobManager starts and stops the background jobs of the service.
type JobManager struct {
	notificationDispatchJob *NotificationDispatchJob
}

func NewJobManager(notificationDispatchJob *NotificationDispatchJob) *JobManager {
	return &JobManager{notificationDispatchJob: notificationDispatchJob}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.notificationDispatchJob.Start(); err != nil {
		return fmt.Errorf("failed to start notification dispatch job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.notificationDispatchJob.Stop()
}
