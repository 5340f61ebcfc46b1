package commands

import (
	"errors"

	"courier/internal/core/domain/model/delivery"
	"courier/internal/core/domain/model/kernel"
	"courier/internal/pkg/errs"
	"courier/internal/pkg/guard"
)

var ErrCancelDeliveryCommandIsNotConstructed = errors.New(
	"CancelDeliveryCommand must be created via NewCancelDeliveryCommand constructor",
)

// CancelDeliveryCommand requests cancellation of a pending or accepted
// delivery by its owning customer or an admin. The reason is recorded on
// the record; cancelled is terminal.
type CancelDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	actor      delivery.Actor
	version    int64
	reason     string

	guard guard.ConstructorGuard
}

// NewCancelDeliveryCommand validates and creates the command.
// The reason may be empty; it is stored as given.
func NewCancelDeliveryCommand(
	deliveryID kernel.UUID,
	actor delivery.Actor,
	version int64,
	reason string,
) (CancelDeliveryCommand, error) {
	cmd := CancelDeliveryCommand{
		reason: reason,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setActor(actor),
		cmd.setVersion(version),
	); err != nil {
		return CancelDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCancelDeliveryCommandIsNotConstructed)
}

// DeliveryID returns the target delivery's identifier.
func (c CancelDeliveryCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// Actor returns who requests the cancellation.
func (c CancelDeliveryCommand) Actor() delivery.Actor {
	return c.actor
}

// Version returns the concurrency token the caller observed.
func (c CancelDeliveryCommand) Version() int64 {
	return c.version
}

// Reason returns the cancellation reason to record.
func (c CancelDeliveryCommand) Reason() string {
	return c.reason
}

func (c *CancelDeliveryCommand) setDeliveryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.deliveryID = id
	return nil
}

func (c *CancelDeliveryCommand) setActor(actor delivery.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}

func (c *CancelDeliveryCommand) setVersion(version int64) error {
	if version < 1 {
		return errs.NewInvalidInputError("version")
	}
	c.version = version
	return nil
}
