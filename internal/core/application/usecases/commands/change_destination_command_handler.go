package commands

import (
	"context"
	"log/slog"

	"courier/internal/core/domain/model/delivery"
	"courier/internal/core/ports"
)

// ChangeDestinationCommandHandler updates a delivery's drop-off location
// while it is still editable. The original quote stands: no price
// recomputation happens here.
type ChangeDestinationCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
	logger     *slog.Logger
}

// NewChangeDestinationCommandHandler creates a handler for destination
// changes.
func NewChangeDestinationCommandHandler(
	uowFactory UoWFactory,
	notifier ports.Notifier,
	logger *slog.Logger,
) ChangeDestinationCommandHandler {
	return ChangeDestinationCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     logger,
	}
}

// Handle processes the change and returns the committed aggregate.
func (h ChangeDestinationCommandHandler) Handle(
	ctx context.Context,
	cmd ChangeDestinationCommand,
) (*delivery.Delivery, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	aggregate, err := applyTransition(ctx, h.uowFactory, cmd.DeliveryID(), cmd.Version(),
		func(d *delivery.Delivery) error {
			return d.ChangeDestination(cmd.NewDestination(), cmd.Actor())
		})
	if err != nil {
		return nil, err
	}

	notifyCommitted(ctx, h.logger, h.notifier, ports.NotificationEvent{
		DeliveryID: aggregate.ID(),
		EventType:  ports.EventDestinationChanged,
		Payload: map[string]string{
			"drop_off_location": aggregate.DropOffLocation(),
		},
	})

	return aggregate, nil
}
