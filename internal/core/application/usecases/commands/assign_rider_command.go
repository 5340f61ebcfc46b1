package commands

import (
	"errors"

	"courier/internal/core/domain/model/delivery"
	"courier/internal/core/domain/model/kernel"
	"courier/internal/pkg/errs"
	"courier/internal/pkg/guard"
)

var ErrAssignRiderCommandIsNotConstructed = errors.New(
	"AssignRiderCommand must be created via NewAssignRiderCommand constructor",
)

// AssignRiderCommand requests binding a rider to a pending delivery.
// The version is the optimistic concurrency token the caller last observed.
type AssignRiderCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	riderID    kernel.UUID
	actor      delivery.Actor
	version    int64

	guard guard.ConstructorGuard
}

// NewAssignRiderCommand validates and creates the command.
func NewAssignRiderCommand(
	deliveryID kernel.UUID,
	riderID kernel.UUID,
	actor delivery.Actor,
	version int64,
) (AssignRiderCommand, error) {
	cmd := AssignRiderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setRiderID(riderID),
		cmd.setActor(actor),
		cmd.setVersion(version),
	); err != nil {
		return AssignRiderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignRiderCommand) Validate() error {
	return c.guard.Validate(ErrAssignRiderCommandIsNotConstructed)
}

// DeliveryID returns the target delivery's identifier.
func (c AssignRiderCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// RiderID returns the rider to bind.
func (c AssignRiderCommand) RiderID() kernel.UUID {
	return c.riderID
}

// Actor returns who requests the assignment.
func (c AssignRiderCommand) Actor() delivery.Actor {
	return c.actor
}

// Version returns the concurrency token the caller observed.
func (c AssignRiderCommand) Version() int64 {
	return c.version
}

func (c *AssignRiderCommand) setDeliveryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.deliveryID = id
	return nil
}

func (c *AssignRiderCommand) setRiderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.riderID = id
	return nil
}

func (c *AssignRiderCommand) setActor(actor delivery.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}

func (c *AssignRiderCommand) setVersion(version int64) error {
	if version < 1 {
		return errs.NewInvalidInputError("version")
	}
	c.version = version
	return nil
}
