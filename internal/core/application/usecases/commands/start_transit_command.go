package commands

import (
	"errors"

	"courier/internal/core/domain/model/delivery"
	"courier/internal/core/domain/model/kernel"
	"courier/internal/pkg/errs"
	"courier/internal/pkg/guard"
)

var ErrStartTransitCommandIsNotConstructed = errors.New(
	"StartTransitCommand must be created via NewStartTransitCommand constructor",
)

// StartTransitCommand requests the accepted -> in_transit transition.
// Only the assigned rider may issue it.
type StartTransitCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	actor      delivery.Actor
	version    int64

	guard guard.ConstructorGuard
}

// NewStartTransitCommand validates and creates the command.
func NewStartTransitCommand(deliveryID kernel.UUID, actor delivery.Actor, version int64) (StartTransitCommand, error) {
	cmd := StartTransitCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setActor(actor),
		cmd.setVersion(version),
	); err != nil {
		return StartTransitCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c StartTransitCommand) Validate() error {
	return c.guard.Validate(ErrStartTransitCommandIsNotConstructed)
}

// DeliveryID returns the target delivery's identifier.
func (c StartTransitCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// Actor returns who requests the transition.
func (c StartTransitCommand) Actor() delivery.Actor {
	return c.actor
}

// Version returns the concurrency token the caller observed.
func (c StartTransitCommand) Version() int64 {
	return c.version
}

func (c *StartTransitCommand) setDeliveryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.deliveryID = id
	return nil
}

func (c *StartTransitCommand) setActor(actor delivery.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}

func (c *StartTransitCommand) setVersion(version int64) error {
	if version < 1 {
		return errs.NewInvalidInputError("version")
	}
	c.version = version
	return nil
}
