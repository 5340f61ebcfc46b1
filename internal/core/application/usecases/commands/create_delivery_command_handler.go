package commands

import (
	"context"
	"log/slog"

	"courier/internal/core/domain/model/delivery"
	"courier/internal/core/domain/services"
	"courier/internal/core/ports"
)

// CreateDeliveryCommandHandler creates delivery records.
// Quotes the price from the physical attributes, persists the aggregate in
// pending status at version 1 and fires the "created" notification after
// commit.
type CreateDeliveryCommandHandler struct {
	uowFactory UoWFactory
	pricing    services.PricingCalculator
	notifier   ports.Notifier
	logger     *slog.Logger
}

// NewCreateDeliveryCommandHandler creates a handler for delivery creation.
func NewCreateDeliveryCommandHandler(
	uowFactory UoWFactory,
	pricing services.PricingCalculator,
	notifier ports.Notifier,
	logger *slog.Logger,
) CreateDeliveryCommandHandler {
	return CreateDeliveryCommandHandler{
		uowFactory: uowFactory,
		pricing:    pricing,
		notifier:   notifier,
		logger:     logger,
	}
}

// Handle processes the creation command and returns the committed aggregate.
func (h CreateDeliveryCommandHandler) Handle(
	ctx context.Context,
	cmd CreateDeliveryCommand,
) (*delivery.Delivery, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	price, err := h.pricing.Quote(cmd.Attributes())
	if err != nil {
		return nil, err
	}

	aggregate, err := delivery.NewDelivery(
		cmd.DeliveryID(),
		cmd.CustomerID(),
		cmd.OrderName(),
		cmd.PickupLocation(),
		cmd.DropOffLocation(),
		cmd.Attributes(),
		price,
	)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.DeliveryRepository().Add(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	notifyCommitted(ctx, h.logger, h.notifier, ports.NotificationEvent{
		DeliveryID: aggregate.ID(),
		EventType:  ports.EventDeliveryCreated,
		Payload: map[string]string{
			"customer_id": aggregate.CustomerID().String(),
			"status":      aggregate.Status().String(),
		},
	})

	return aggregate, nil
}
