package commands

import (
	"context"
	"log/slog"

	"courier/internal/core/domain/model/delivery"
	"courier/internal/core/ports"
)

// CancelDeliveryCommandHandler cancels a delivery, clearing any rider
// binding and recording who cancelled, when and why.
type CancelDeliveryCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
	logger     *slog.Logger
}

// NewCancelDeliveryCommandHandler creates a handler for cancellation.
func NewCancelDeliveryCommandHandler(
	uowFactory UoWFactory,
	notifier ports.Notifier,
	logger *slog.Logger,
) CancelDeliveryCommandHandler {
	return CancelDeliveryCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     logger,
	}
}

// Handle processes the cancellation and returns the committed aggregate.
func (h CancelDeliveryCommandHandler) Handle(
	ctx context.Context,
	cmd CancelDeliveryCommand,
) (*delivery.Delivery, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	aggregate, err := applyTransition(ctx, h.uowFactory, cmd.DeliveryID(), cmd.Version(),
		func(d *delivery.Delivery) error {
			return d.Cancel(cmd.Actor(), cmd.Reason())
		})
	if err != nil {
		return nil, err
	}

	notifyCommitted(ctx, h.logger, h.notifier, ports.NotificationEvent{
		DeliveryID: aggregate.ID(),
		EventType:  ports.EventDeliveryCancelled,
		Payload: map[string]string{
			"status":       aggregate.Status().String(),
			"cancelled_by": cmd.Actor().Role().String(),
			"reason":       cmd.Reason(),
		},
	})

	return aggregate, nil
}
