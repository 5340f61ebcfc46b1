package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager coordinates the scheduled jobs of the application.
type JobManager struct {
	assignmentJob *AssignmentJob
}

// NewJobManager creates a job manager wired to the engine.
func NewJobManager(runner assignmentRunner, logger *slog.Logger) *JobManager {
	return &JobManager{
		assignmentJob: NewAssignmentJob(runner, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.assignmentJob.Start(); err != nil {
		return fmt.Errorf("failed to start assignment job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.assignmentJob.Stop()
}
