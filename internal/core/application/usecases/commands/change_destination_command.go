package commands

import (
	"errors"

	"courier/internal/core/domain/model/delivery"
	"courier/internal/core/domain/model/kernel"
	"courier/internal/pkg/errs"
	"courier/internal/pkg/guard"
)

var ErrChangeDestinationCommandIsNotConstructed = errors.New(
	"ChangeDestinationCommand must be created via NewChangeDestinationCommand constructor",
)

// ChangeDestinationCommand requests a drop-off change on an editable
// (pending or accepted) delivery by its owning customer. The price quote is
// not recomputed.
type ChangeDestinationCommand struct { //nolint:recvcheck //using for validation
	deliveryID     kernel.UUID
	actor          delivery.Actor
	version        int64
	newDestination string

	guard guard.ConstructorGuard
}

// NewChangeDestinationCommand validates and creates the command.
func NewChangeDestinationCommand(
	deliveryID kernel.UUID,
	actor delivery.Actor,
	version int64,
	newDestination string,
) (ChangeDestinationCommand, error) {
	cmd := ChangeDestinationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setActor(actor),
		cmd.setVersion(version),
		cmd.setNewDestination(newDestination),
	); err != nil {
		return ChangeDestinationCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ChangeDestinationCommand) Validate() error {
	return c.guard.Validate(ErrChangeDestinationCommandIsNotConstructed)
}

// DeliveryID returns the target delivery's identifier.
func (c ChangeDestinationCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// Actor returns who requests the change.
func (c ChangeDestinationCommand) Actor() delivery.Actor {
	return c.actor
}

// Version returns the concurrency token the caller observed.
func (c ChangeDestinationCommand) Version() int64 {
	return c.version
}

// NewDestination returns the replacement drop-off location.
func (c ChangeDestinationCommand) NewDestination() string {
	return c.newDestination
}

func (c *ChangeDestinationCommand) setDeliveryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.deliveryID = id
	return nil
}

func (c *ChangeDestinationCommand) setActor(actor delivery.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}

func (c *ChangeDestinationCommand) setVersion(version int64) error {
	if version < 1 {
		return errs.NewInvalidInputError("version")
	}
	c.version = version
	return nil
}

func (c *ChangeDestinationCommand) setNewDestination(destination string) error {
	if destination == "" {
		return errs.NewInvalidInputError("drop_off_location")
	}
	c.newDestination = destination
	return nil
}
