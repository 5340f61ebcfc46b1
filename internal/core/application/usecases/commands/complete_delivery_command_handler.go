package commands

import (
	"context"
	"log/slog"

	"courier/internal/core/domain/model/delivery"
	"courier/internal/core/ports"
)

// CompleteDeliveryCommandHandler records the completion of a delivery by
// its assigned rider.
type CompleteDeliveryCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
	logger     *slog.Logger
}

// NewCompleteDeliveryCommandHandler creates a handler for completion.
func NewCompleteDeliveryCommandHandler(
	uowFactory UoWFactory,
	notifier ports.Notifier,
	logger *slog.Logger,
) CompleteDeliveryCommandHandler {
	return CompleteDeliveryCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     logger,
	}
}

// Handle processes the transition and returns the committed aggregate.
func (h CompleteDeliveryCommandHandler) Handle(
	ctx context.Context,
	cmd CompleteDeliveryCommand,
) (*delivery.Delivery, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	aggregate, err := applyTransition(ctx, h.uowFactory, cmd.DeliveryID(), cmd.Version(),
		func(d *delivery.Delivery) error {
			return d.Complete(cmd.Actor())
		})
	if err != nil {
		return nil, err
	}

	notifyCommitted(ctx, h.logger, h.notifier, ports.NotificationEvent{
		DeliveryID: aggregate.ID(),
		EventType:  ports.EventDeliveryCompleted,
		Payload: map[string]string{
			"status": aggregate.Status().String(),
		},
	})

	return aggregate, nil
}
