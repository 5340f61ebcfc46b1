package commands

import (
	"context"
	"errors"
	"log/slog"

	"courier/internal/core/domain/model/delivery"
	"courier/internal/core/domain/model/kernel"
	"courier/internal/core/ports"
	"courier/internal/pkg/errs"
)

var (
	// ErrNoPendingDeliveries signals an empty assignment queue. Expected
	// between customer requests; the job logs it at debug only.
	ErrNoPendingDeliveries = errors.New("no pending deliveries found")

	// ErrNoAvailableRiders signals that every rider is busy or offline.
	ErrNoAvailableRiders = errors.New("no available riders found")
)

// AutoAssignCommandHandler performs scheduled assignment rounds: it picks
// the oldest pending delivery, the first available rider, and binds them
// acting as the resolver role.
//
// A concurrent admin assignment can win the race for the same delivery.
// The resulting VersionConflict is not retried here; the next scheduled
// round simply picks up whatever is still pending.
type AutoAssignCommandHandler struct {
	uowFactory UoWFactory
	directory  ports.RiderDirectory
	notifier   ports.Notifier
	logger     *slog.Logger
	resolver   delivery.Actor
}

// NewAutoAssignCommandHandler creates a handler for automatic assignment.
func NewAutoAssignCommandHandler(
	uowFactory UoWFactory,
	directory ports.RiderDirectory,
	notifier ports.Notifier,
	logger *slog.Logger,
) (AutoAssignCommandHandler, error) {
	resolver, err := delivery.NewActor(kernel.NewUUID(), delivery.RoleResolver)
	if err != nil {
		return AutoAssignCommandHandler{}, err
	}

	return AutoAssignCommandHandler{
		uowFactory: uowFactory,
		directory:  directory,
		notifier:   notifier,
		logger:     logger,
		resolver:   resolver,
	}, nil
}

// Handle processes one assignment round.
// Returns ErrNoPendingDeliveries or ErrNoAvailableRiders when there is
// nothing to do.
func (h AutoAssignCommandHandler) Handle(ctx context.Context, cmd AutoAssignCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	riders, err := h.directory.ListAvailable(ctx)
	if err != nil {
		return err
	}
	if len(riders) == 0 {
		return ErrNoAvailableRiders
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.DeliveryRepository()
	aggregate, err := repo.GetOldestPending(ctx)
	if errors.Is(err, errs.ErrNotFound) {
		return ErrNoPendingDeliveries
	}
	if err != nil {
		return err
	}

	riderID := riders[0]
	if err = aggregate.Assign(riderID, h.resolver); err != nil {
		return err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	notifyCommitted(ctx, h.logger, h.notifier, ports.NotificationEvent{
		DeliveryID: aggregate.ID(),
		EventType:  ports.EventRiderAssigned,
		Payload: map[string]string{
			"rider_id": riderID.String(),
			"status":   aggregate.Status().String(),
		},
	})

	return nil
}
