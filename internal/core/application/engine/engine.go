// Package engine exposes the delivery lifecycle operations behind one
// facade. Inbound adapters (HTTP, scheduled jobs) talk to the Engine; the
// Engine builds validated commands and dispatches them to the use case
// handlers.
package engine

import (
	"context"
	"log/slog"

	"courier/internal/core/application/usecases/commands"
	"courier/internal/core/application/usecases/queries"
	"courier/internal/core/domain/model/delivery"
	"courier/internal/core/domain/model/kernel"
	"courier/internal/core/domain/services"
	"courier/internal/core/ports"
	"courier/internal/pkg/errs"

	"gorm.io/gorm"
)

// uowFactoryAdapter narrows ports.UnitOfWorkFactory to the factory
// interface the command handlers depend on.
type uowFactoryAdapter struct {
	factory ports.UnitOfWorkFactory
}

func (a uowFactoryAdapter) Create() commands.UoW {
	return a.factory.Create()
}

// TransitionRequest asks for one lifecycle transition of a delivery.
// RiderID is consulted only when the target is accepted; Reason only when
// the target is cancelled.
type TransitionRequest struct {
	DeliveryID kernel.UUID
	Target     delivery.Status
	Actor      delivery.Actor
	Version    int64
	RiderID    *kernel.UUID
	Reason     string
}

// Engine is the delivery lifecycle and assignment facade.
//
// Writes go through command handlers under optimistic concurrency: callers
// pass the version they observed, and a mismatch with the stored record
// fails with a VersionConflict error without side effects. Reads bypass the
// transaction machinery entirely.
type Engine struct {
	pricing services.PricingCalculator

	createHandler            commands.CreateDeliveryCommandHandler
	assignHandler            commands.AssignRiderCommandHandler
	autoAssignHandler        commands.AutoAssignCommandHandler
	startTransitHandler      commands.StartTransitCommandHandler
	completeHandler          commands.CompleteDeliveryCommandHandler
	cancelHandler            commands.CancelDeliveryCommandHandler
	changeDestinationHandler commands.ChangeDestinationCommandHandler

	getHandler  queries.GetDeliveryQueryHandler
	listHandler queries.ListDeliveriesQueryHandler
}

// NewEngine wires the facade from its collaborators. The database handle
// serves the read side; all writes run through units of work created by the
// factory.
func NewEngine(
	db *gorm.DB,
	uowFactory ports.UnitOfWorkFactory,
	directory ports.RiderDirectory,
	notifier ports.Notifier,
	pricing services.PricingCalculator,
	logger *slog.Logger,
) (*Engine, error) {
	factory := uowFactoryAdapter{factory: uowFactory}

	autoAssignHandler, err := commands.NewAutoAssignCommandHandler(factory, directory, notifier, logger)
	if err != nil {
		return nil, err
	}

	return &Engine{
		pricing:                  pricing,
		createHandler:            commands.NewCreateDeliveryCommandHandler(factory, pricing, notifier, logger),
		assignHandler:            commands.NewAssignRiderCommandHandler(factory, directory, notifier, logger),
		autoAssignHandler:        autoAssignHandler,
		startTransitHandler:      commands.NewStartTransitCommandHandler(factory, notifier, logger),
		completeHandler:          commands.NewCompleteDeliveryCommandHandler(factory, notifier, logger),
		cancelHandler:            commands.NewCancelDeliveryCommandHandler(factory, notifier, logger),
		changeDestinationHandler: commands.NewChangeDestinationCommandHandler(factory, notifier, logger),
		getHandler:               queries.NewGetDeliveryQueryHandler(db),
		listHandler:              queries.NewListDeliveriesQueryHandler(db),
	}, nil
}

// QuotePrice computes the price a delivery with these attributes would be
// created at, without creating anything.
func (e *Engine) QuotePrice(attributes delivery.PhysicalAttributes) (int64, error) {
	return e.pricing.Quote(attributes)
}

// CreateDelivery quotes and persists a new delivery in pending status.
func (e *Engine) CreateDelivery(
	ctx context.Context,
	customerID kernel.UUID,
	orderName string,
	pickupLocation string,
	dropOffLocation string,
	attributes delivery.PhysicalAttributes,
) (*delivery.Delivery, error) {
	cmd, err := commands.NewCreateDeliveryCommand(
		kernel.NewUUID(),
		customerID,
		orderName,
		pickupLocation,
		dropOffLocation,
		attributes,
	)
	if err != nil {
		return nil, err
	}

	return e.createHandler.Handle(ctx, cmd)
}

// GetDelivery returns the current record of one delivery.
func (e *Engine) GetDelivery(ctx context.Context, deliveryID kernel.UUID) (queries.DeliveryResponse, error) {
	query, err := queries.NewGetDeliveryQuery(deliveryID)
	if err != nil {
		return queries.DeliveryResponse{}, err
	}

	return e.getHandler.Handle(ctx, query)
}

// ListDeliveries returns deliveries matching the filter, newest first.
func (e *Engine) ListDeliveries(ctx context.Context, filter ports.ListFilter) ([]queries.DeliveryResponse, error) {
	query, err := queries.NewListDeliveriesQuery(filter.CustomerID, filter.RiderID, filter.Status)
	if err != nil {
		return nil, err
	}

	return e.listHandler.Handle(ctx, query)
}

// AssignRider binds a rider to a pending delivery on behalf of an admin or
// the resolver.
func (e *Engine) AssignRider(
	ctx context.Context,
	deliveryID kernel.UUID,
	riderID kernel.UUID,
	actor delivery.Actor,
	version int64,
) (*delivery.Delivery, error) {
	cmd, err := commands.NewAssignRiderCommand(deliveryID, riderID, actor, version)
	if err != nil {
		return nil, err
	}

	return e.assignHandler.Handle(ctx, cmd)
}

// StartTransit moves an accepted delivery into transit on behalf of its
// assigned rider.
func (e *Engine) StartTransit(
	ctx context.Context,
	deliveryID kernel.UUID,
	actor delivery.Actor,
	version int64,
) (*delivery.Delivery, error) {
	cmd, err := commands.NewStartTransitCommand(deliveryID, actor, version)
	if err != nil {
		return nil, err
	}

	return e.startTransitHandler.Handle(ctx, cmd)
}

// CompleteDelivery marks an in-transit delivery as delivered.
func (e *Engine) CompleteDelivery(
	ctx context.Context,
	deliveryID kernel.UUID,
	actor delivery.Actor,
	version int64,
) (*delivery.Delivery, error) {
	cmd, err := commands.NewCompleteDeliveryCommand(deliveryID, actor, version)
	if err != nil {
		return nil, err
	}

	return e.completeHandler.Handle(ctx, cmd)
}

// Cancel cancels a pending or accepted delivery, recording who did it and
// why.
func (e *Engine) Cancel(
	ctx context.Context,
	deliveryID kernel.UUID,
	actor delivery.Actor,
	version int64,
	reason string,
) (*delivery.Delivery, error) {
	cmd, err := commands.NewCancelDeliveryCommand(deliveryID, actor, version, reason)
	if err != nil {
		return nil, err
	}

	return e.cancelHandler.Handle(ctx, cmd)
}

// UpdateDestination changes the drop-off location of an editable delivery.
// The price is never requoted.
func (e *Engine) UpdateDestination(
	ctx context.Context,
	deliveryID kernel.UUID,
	actor delivery.Actor,
	version int64,
	newDestination string,
) (*delivery.Delivery, error) {
	cmd, err := commands.NewChangeDestinationCommand(deliveryID, actor, version, newDestination)
	if err != nil {
		return nil, err
	}

	return e.changeDestinationHandler.Handle(ctx, cmd)
}

// Transition applies one lifecycle transition selected by target status.
// It is the single entry point behind the generic transition API: accepted
// requires a rider, cancelled accepts an optional reason, and pending can
// never be a target.
func (e *Engine) Transition(ctx context.Context, req TransitionRequest) (*delivery.Delivery, error) {
	switch req.Target {
	case delivery.Accepted:
		if req.RiderID == nil {
			return nil, errs.NewInvalidInputError("rider_id")
		}
		return e.AssignRider(ctx, req.DeliveryID, *req.RiderID, req.Actor, req.Version)
	case delivery.InTransit:
		return e.StartTransit(ctx, req.DeliveryID, req.Actor, req.Version)
	case delivery.Delivered:
		return e.CompleteDelivery(ctx, req.DeliveryID, req.Actor, req.Version)
	case delivery.Cancelled:
		return e.Cancel(ctx, req.DeliveryID, req.Actor, req.Version, req.Reason)
	case delivery.Pending, delivery.Unknown:
		return nil, errs.NewInvalidInputError("target_status")
	default:
		return nil, errs.NewInvalidInputError("target_status")
	}
}

// RunAssignmentRound performs one automatic assignment round: the oldest
// pending delivery is bound to an available rider. Returns
// commands.ErrNoPendingDeliveries or commands.ErrNoAvailableRiders when
// there is nothing to do.
func (e *Engine) RunAssignmentRound(ctx context.Context) error {
	return e.autoAssignHandler.Handle(ctx, commands.NewAutoAssignCommand())
}
