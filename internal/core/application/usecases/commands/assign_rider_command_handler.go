package commands

import (
	"context"
	"log/slog"

	"courier/internal/core/domain/model/delivery"
	"courier/internal/core/ports"
	"courier/internal/pkg/errs"
)

// AssignRiderCommandHandler is the assignment resolver: it validates the
// rider against the rider directory and binds them to a pending delivery.
//
// The binding and the pending -> accepted transition are applied in one
// aggregate mutation persisted by one compare-and-set write, so there is no
// window where the rider is set but the status is still pending. When two
// assignments race on the same delivery, the store accepts exactly one; the
// loser fails with VersionConflict and must re-read before retrying.
type AssignRiderCommandHandler struct {
	uowFactory UoWFactory
	directory  ports.RiderDirectory
	notifier   ports.Notifier
	logger     *slog.Logger
}

// NewAssignRiderCommandHandler creates a handler for rider assignment.
func NewAssignRiderCommandHandler(
	uowFactory UoWFactory,
	directory ports.RiderDirectory,
	notifier ports.Notifier,
	logger *slog.Logger,
) AssignRiderCommandHandler {
	return AssignRiderCommandHandler{
		uowFactory: uowFactory,
		directory:  directory,
		notifier:   notifier,
		logger:     logger,
	}
}

// Handle processes the assignment and returns the committed aggregate.
//
// Failure modes: NotFound (delivery or rider unknown), InvalidTransition
// (delivery not pending), RiderUnavailable, Forbidden (actor is neither
// admin nor resolver) and VersionConflict (stale token or lost race).
func (h AssignRiderCommandHandler) Handle(
	ctx context.Context,
	cmd AssignRiderCommand,
) (*delivery.Delivery, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	status, err := h.directory.Status(ctx, cmd.RiderID())
	if err != nil {
		return nil, err
	}
	if !status.Registered {
		return nil, errs.NewNotFoundError("riderId", cmd.RiderID().String())
	}
	if !status.Available {
		return nil, errs.NewRiderUnavailableError(cmd.RiderID().String())
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.DeliveryRepository()
	aggregate, err := repo.Get(ctx, cmd.DeliveryID())
	if err != nil {
		return nil, err
	}

	if aggregate.Version() != cmd.Version() {
		return nil, errs.NewVersionConflictError(cmd.DeliveryID().String(), cmd.Version())
	}

	if err = aggregate.Assign(cmd.RiderID(), cmd.Actor()); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	notifyCommitted(ctx, h.logger, h.notifier, ports.NotificationEvent{
		DeliveryID: aggregate.ID(),
		EventType:  ports.EventRiderAssigned,
		Payload: map[string]string{
			"rider_id": cmd.RiderID().String(),
			"status":   aggregate.Status().String(),
		},
	})

	return aggregate, nil
}
