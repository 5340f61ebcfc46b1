package commands

import (
	"errors"

	"courier/internal/core/domain/model/delivery"
	"courier/internal/core/domain/model/kernel"
	"courier/internal/pkg/errs"
	"courier/internal/pkg/guard"
)

var ErrCompleteDeliveryCommandIsNotConstructed = errors.New(
	"CompleteDeliveryCommand must be created via NewCompleteDeliveryCommand constructor",
)

// CompleteDeliveryCommand requests the in_transit -> delivered transition.
// Only the assigned rider may issue it; delivered is terminal.
type CompleteDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	actor      delivery.Actor
	version    int64

	guard guard.ConstructorGuard
}

// NewCompleteDeliveryCommand validates and creates the command.
func NewCompleteDeliveryCommand(
	deliveryID kernel.UUID,
	actor delivery.Actor,
	version int64,
) (CompleteDeliveryCommand, error) {
	cmd := CompleteDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setActor(actor),
		cmd.setVersion(version),
	); err != nil {
		return CompleteDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCompleteDeliveryCommandIsNotConstructed)
}

// DeliveryID returns the target delivery's identifier.
func (c CompleteDeliveryCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// Actor returns who requests the transition.
func (c CompleteDeliveryCommand) Actor() delivery.Actor {
	return c.actor
}

// Version returns the concurrency token the caller observed.
func (c CompleteDeliveryCommand) Version() int64 {
	return c.version
}

func (c *CompleteDeliveryCommand) setDeliveryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.deliveryID = id
	return nil
}

func (c *CompleteDeliveryCommand) setActor(actor delivery.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}

func (c *CompleteDeliveryCommand) setVersion(version int64) error {
	if version < 1 {
		return errs.NewInvalidInputError("version")
	}
	c.version = version
	return nil
}
