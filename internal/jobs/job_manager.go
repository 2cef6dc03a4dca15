package jobs

import (
	"fmt"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	dispatchRetryJob *DispatchRetryJob
	lowStockJob      *LowStockJob
	sessionSweepJob  *SessionSweepJob
}

// NewJobManager creates a new job manager over the three scheduled jobs.
func NewJobManager(
	dispatchRetryJob *DispatchRetryJob,
	lowStockJob *LowStockJob,
	sessionSweepJob *SessionSweepJob,
) *JobManager {
	return &JobManager{
		dispatchRetryJob: dispatchRetryJob,
		lowStockJob:      lowStockJob,
		sessionSweepJob:  sessionSweepJob,
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.sessionSweepJob.Start(); err != nil {
		return fmt.Errorf("failed to start session sweep job: %w", err)
	}

	if err := jm.lowStockJob.Start(); err != nil {
		jm.sessionSweepJob.Stop()
		return fmt.Errorf("failed to start low stock job: %w", err)
	}

	if err := jm.dispatchRetryJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.lowStockJob.Stop()
		jm.sessionSweepJob.Stop()
		return fmt.Errorf("failed to start dispatch retry job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.dispatchRetryJob.Stop()
	jm.lowStockJob.Stop()
	jm.sessionSweepJob.Stop()
}
