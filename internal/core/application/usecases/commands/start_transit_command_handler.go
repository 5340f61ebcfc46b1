package commands

import (
	"context"
	"log/slog"

	"courier/internal/core/domain/model/delivery"
	"courier/internal/core/ports"
)

// StartTransitCommandHandler moves an accepted delivery into transit on
// behalf of its assigned rider.
type StartTransitCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
	logger     *slog.Logger
}

// NewStartTransitCommandHandler creates a handler for the transit start.
func NewStartTransitCommandHandler(
	uowFactory UoWFactory,
	notifier ports.Notifier,
	logger *slog.Logger,
) StartTransitCommandHandler {
	return StartTransitCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     logger,
	}
}

// Handle processes the transition and returns the committed aggregate.
func (h StartTransitCommandHandler) Handle(
	ctx context.Context,
	cmd StartTransitCommand,
) (*delivery.Delivery, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	aggregate, err := applyTransition(ctx, h.uowFactory, cmd.DeliveryID(), cmd.Version(),
		func(d *delivery.Delivery) error {
			return d.StartTransit(cmd.Actor())
		})
	if err != nil {
		return nil, err
	}

	notifyCommitted(ctx, h.logger, h.notifier, ports.NotificationEvent{
		DeliveryID: aggregate.ID(),
		EventType:  ports.EventTransitStarted,
		Payload: map[string]string{
			"status": aggregate.Status().String(),
		},
	})

	return aggregate, nil
}
