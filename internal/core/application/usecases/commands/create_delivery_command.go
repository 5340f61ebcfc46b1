package commands

import (
	"errors"

	"courier/internal/core/domain/model/delivery"
	"courier/internal/core/domain/model/kernel"
	"courier/internal/pkg/errs"
	"courier/internal/pkg/guard"
)

var ErrCreateDeliveryCommandIsNotConstructed = errors.New(
	"CreateDeliveryCommand must be created via NewCreateDeliveryCommand constructor",
)

// CreateDeliveryCommand represents a customer's request for a new delivery.
// The physical attributes must already be validated (the routed distance is
// supplied by the external routing provider); the price is quoted by the
// handler at creation time and fixed thereafter.
type CreateDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID      kernel.UUID
	customerID      kernel.UUID
	orderName       string
	pickupLocation  string
	dropOffLocation string
	attributes      delivery.PhysicalAttributes

	guard guard.ConstructorGuard
}

// NewCreateDeliveryCommand validates and creates the command.
// The order name is optional; everything else is required.
func NewCreateDeliveryCommand(
	deliveryID kernel.UUID,
	customerID kernel.UUID,
	orderName string,
	pickupLocation string,
	dropOffLocation string,
	attributes delivery.PhysicalAttributes,
) (CreateDeliveryCommand, error) {
	cmd := CreateDeliveryCommand{
		orderName: orderName,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setCustomerID(customerID),
		cmd.setPickupLocation(pickupLocation),
		cmd.setDropOffLocation(dropOffLocation),
		cmd.setAttributes(attributes),
	); err != nil {
		return CreateDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCreateDeliveryCommandIsNotConstructed)
}

// DeliveryID returns the identifier the new delivery will carry.
func (c CreateDeliveryCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// CustomerID returns the owning customer's identifier.
func (c CreateDeliveryCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// OrderName returns the optional human-readable label.
func (c CreateDeliveryCommand) OrderName() string {
	return c.orderName
}

// PickupLocation returns the pickup address descriptor.
func (c CreateDeliveryCommand) PickupLocation() string {
	return c.pickupLocation
}

// DropOffLocation returns the drop-off address descriptor.
func (c CreateDeliveryCommand) DropOffLocation() string {
	return c.dropOffLocation
}

// Attributes returns the validated physical attributes.
func (c CreateDeliveryCommand) Attributes() delivery.PhysicalAttributes {
	return c.attributes
}

func (c *CreateDeliveryCommand) setDeliveryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.deliveryID = id
	return nil
}

func (c *CreateDeliveryCommand) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.customerID = id
	return nil
}

func (c *CreateDeliveryCommand) setPickupLocation(location string) error {
	if location == "" {
		return errs.NewInvalidInputError("pickup_location")
	}
	c.pickupLocation = location
	return nil
}

func (c *CreateDeliveryCommand) setDropOffLocation(location string) error {
	if location == "" {
		return errs.NewInvalidInputError("drop_off_location")
	}
	c.dropOffLocation = location
	return nil
}

func (c *CreateDeliveryCommand) setAttributes(attributes delivery.PhysicalAttributes) error {
	if err := attributes.Validate(); err != nil {
		return err
	}
	c.attributes = attributes
	return nil
}
