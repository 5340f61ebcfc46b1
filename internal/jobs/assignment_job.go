package jobs

import (
	"context"
	"errors"
	"log/slog"

	"courier/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// assignmentSchedule runs a round every five seconds. Pending deliveries
// wait at most one interval before the resolver looks at them.
const assignmentSchedule = "*/5 * * * * *"

// assignmentRunner is the slice of the engine the job needs.
type assignmentRunner interface {
	RunAssignmentRound(ctx context.Context) error
}

// AssignmentJob runs scheduled assignment rounds, binding the oldest
// pending delivery to an available rider.
type AssignmentJob struct {
	runner assignmentRunner
	cron   *cron.Cron
	logger *slog.Logger
}

// NewAssignmentJob creates the scheduled auto-assignment job.
func NewAssignmentJob(runner assignmentRunner, logger *slog.Logger) *AssignmentJob {
	return &AssignmentJob{
		runner: runner,
		cron:   cron.New(cron.WithSeconds()),
		logger: logger.With("component", "assignment_job"),
	}
}

// Start begins the assignment rounds.
func (j *AssignmentJob) Start() error {
	_, err := j.cron.AddFunc(assignmentSchedule, func() {
		ctx := context.Background()

		err := j.runner.RunAssignmentRound(ctx)
		if err == nil {
			return
		}

		// An empty queue and a fully busy fleet are normal between
		// rounds; everything else is worth a look.
		if errors.Is(err, commands.ErrNoPendingDeliveries) || errors.Is(err, commands.ErrNoAvailableRiders) {
			j.logger.DebugContext(ctx, "assignment round skipped", "reason", err)
			return
		}

		j.logger.ErrorContext(ctx, "assignment round failed", "error", err)
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "assignment job started", "schedule", assignmentSchedule)
	return nil
}

// Stop stops the assignment job.
func (j *AssignmentJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "assignment job stopped")
}
