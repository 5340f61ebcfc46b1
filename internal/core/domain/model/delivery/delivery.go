package delivery

import (
	"errors"
	"time"

	"courier/internal/core/domain/model/kernel"
	"courier/internal/pkg/errs"
)

// ErrDeliveryIsNotConstructed is returned when a Delivery instance was not
// created through NewDelivery or RestoreDelivery.
var ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewDelivery or RestoreDelivery")

// Delivery is the aggregate root of the engine: a single courier order
// tracked from creation to a terminal state.
//
// Invariants maintained by this type:
//   - a rider is bound if and only if status is accepted, in_transit or delivered
//   - price is computed once at creation and never changes
//   - version increases by exactly 1 per applied mutation
//   - delivered/cancelled records reject every further mutation
//
// All mutating methods are actor-gated: the role (and where relevant the
// identity) of the caller decides whether the transition is permitted.
// Persisting a mutated aggregate is the store's concern; the version carried
// here is the optimistic concurrency token the store compares against.
type Delivery struct {
	id         kernel.UUID
	customerID kernel.UUID

	// riderID is the assigned rider (nil while pending or cancelled)
	riderID *kernel.UUID

	// orderName is an optional human-readable label
	orderName string

	pickupLocation  string
	dropOffLocation string

	// previousDropOffLocation and destinationChangedAt audit the last
	// destination change; nil until one happens
	previousDropOffLocation *string
	destinationChangedAt    *time.Time

	attributes PhysicalAttributes

	// price is the quote in whole currency units, fixed at creation
	price int64

	status  Status
	version int64

	createdAt   time.Time
	deliveredAt *time.Time

	cancelledBy        *Role
	cancelledAt        *time.Time
	cancellationReason *string

	isConstructed bool
}

// NewDelivery creates a delivery in pending status at version 1.
// The price must already be quoted from the attributes (see
// services.PricingCalculator); attributes and price are immutable afterwards.
func NewDelivery(
	id kernel.UUID,
	customerID kernel.UUID,
	orderName string,
	pickupLocation string,
	dropOffLocation string,
	attributes PhysicalAttributes,
	price int64,
) (*Delivery, error) {
	d := &Delivery{
		status:        Pending,
		version:       1,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		d.setID(id),
		d.setCustomerID(customerID),
		d.setPickupLocation(pickupLocation),
		d.setDropOffLocation(dropOffLocation),
		d.setAttributes(attributes),
		d.setPrice(price),
	); err != nil {
		return nil, err
	}

	d.orderName = orderName
	return d, nil
}

// RestoreDelivery reconstructs a delivery from persistence.
// It revalidates the rider-binding invariant so corrupted rows are rejected
// at the boundary instead of flowing through the state machine.
func RestoreDelivery(
	id kernel.UUID,
	customerID kernel.UUID,
	riderID *kernel.UUID,
	orderName string,
	pickupLocation string,
	dropOffLocation string,
	previousDropOffLocation *string,
	destinationChangedAt *time.Time,
	attributes PhysicalAttributes,
	price int64,
	status Status,
	version int64,
	createdAt time.Time,
	deliveredAt *time.Time,
	cancelledBy *Role,
	cancelledAt *time.Time,
	cancellationReason *string,
) (*Delivery, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if err := status.ValidateCanHaveRider(riderID != nil); err != nil {
		return nil, err
	}
	if version < 1 {
		return nil, errs.NewInvalidInputError("version")
	}

	d := &Delivery{
		status:                  status,
		version:                 version,
		createdAt:               createdAt,
		deliveredAt:             deliveredAt,
		cancelledBy:             cancelledBy,
		cancelledAt:             cancelledAt,
		cancellationReason:      cancellationReason,
		previousDropOffLocation: previousDropOffLocation,
		destinationChangedAt:    destinationChangedAt,
		orderName:               orderName,
		riderID:                 riderID,
		isConstructed:           true,
	}

	if err := errors.Join(
		d.setID(id),
		d.setCustomerID(customerID),
		d.setPickupLocation(pickupLocation),
		d.setDropOffLocation(dropOffLocation),
		d.setAttributes(attributes),
		d.setPrice(price),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// Validate ensures the instance came through a constructor.
func (d *Delivery) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDeliveryIsNotConstructed
	}
	return nil
}

// IsEqual compares two deliveries by identifier.
func (d *Delivery) IsEqual(other *Delivery) bool {
	return other != nil && d.id.IsEqual(other.id)
}

// ID returns the delivery's unique identifier.
func (d *Delivery) ID() kernel.UUID {
	return d.id
}

// CustomerID returns the owning customer's identifier.
func (d *Delivery) CustomerID() kernel.UUID {
	return d.customerID
}

// RiderID returns the assigned rider's identifier, or nil if unassigned.
func (d *Delivery) RiderID() *kernel.UUID {
	return d.riderID
}

// OrderName returns the optional human-readable label.
func (d *Delivery) OrderName() string {
	return d.orderName
}

// PickupLocation returns the pickup address descriptor.
func (d *Delivery) PickupLocation() string {
	return d.pickupLocation
}

// DropOffLocation returns the current drop-off address descriptor.
func (d *Delivery) DropOffLocation() string {
	return d.dropOffLocation
}

// PreviousDropOffLocation returns the drop-off before the last destination
// change, or nil if the destination never changed.
func (d *Delivery) PreviousDropOffLocation() *string {
	return d.previousDropOffLocation
}

// DestinationChangedAt returns when the destination last changed, or nil.
func (d *Delivery) DestinationChangedAt() *time.Time {
	return d.destinationChangedAt
}

// Attributes returns the immutable physical attributes.
func (d *Delivery) Attributes() PhysicalAttributes {
	return d.attributes
}

// Price returns the quote in whole currency units, fixed at creation.
func (d *Delivery) Price() int64 {
	return d.price
}

// Status returns the current lifecycle state.
func (d *Delivery) Status() Status {
	return d.status
}

// Version returns the optimistic concurrency token.
func (d *Delivery) Version() int64 {
	return d.version
}

// CreatedAt returns the creation timestamp.
func (d *Delivery) CreatedAt() time.Time {
	return d.createdAt
}

// DeliveredAt returns the completion timestamp, or nil.
func (d *Delivery) DeliveredAt() *time.Time {
	return d.deliveredAt
}

// CancelledBy returns the role that cancelled the delivery, or nil.
func (d *Delivery) CancelledBy() *Role {
	return d.cancelledBy
}

// CancelledAt returns the cancellation timestamp, or nil.
func (d *Delivery) CancelledAt() *time.Time {
	return d.cancelledAt
}

// CancellationReason returns the reason recorded at cancellation, or nil.
func (d *Delivery) CancellationReason() *string {
	return d.cancellationReason
}

// Assign binds a rider and transitions pending -> accepted.
//
// Only an admin or the assignment resolver may assign. Whether the rider
// exists and is available is the resolver's concern (it consults the rider
// directory before calling); the aggregate guarantees the binding and the
// transition happen together, so no state exists where the rider is set but
// the status is still pending.
func (d *Delivery) Assign(riderID kernel.UUID, actor Actor) error {
	if err := riderID.Validate(); err != nil {
		return err
	}
	if err := actor.Validate(); err != nil {
		return err
	}
	if err := d.status.ValidateTransition(Accepted); err != nil {
		return err
	}
	if actor.Role() != RoleAdmin && actor.Role() != RoleResolver {
		return errs.NewForbiddenError(actor.Role().String(), "assign a rider")
	}

	d.riderID = &riderID
	d.status = Accepted
	d.bumpVersion()
	return nil
}

// StartTransit transitions accepted -> in_transit.
// Only the assigned rider may start transit.
func (d *Delivery) StartTransit(actor Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if err := d.status.ValidateTransition(InTransit); err != nil {
		return err
	}
	if err := d.requireAssignedRider(actor, "start transit"); err != nil {
		return err
	}

	d.status = InTransit
	d.bumpVersion()
	return nil
}

// Complete transitions in_transit -> delivered and records the completion
// time. Only the assigned rider may complete. Delivered is terminal.
func (d *Delivery) Complete(actor Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if err := d.status.ValidateTransition(Delivered); err != nil {
		return err
	}
	if err := d.requireAssignedRider(actor, "complete the delivery"); err != nil {
		return err
	}

	now := time.Now().UTC()
	d.status = Delivered
	d.deliveredAt = &now
	d.bumpVersion()
	return nil
}

// Cancel transitions pending/accepted -> cancelled, records who cancelled,
// when and why, and clears any rider binding. Cancelled is terminal.
//
// The owning customer or an admin may cancel; riders and non-owning
// customers may not.
func (d *Delivery) Cancel(actor Actor, reason string) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if err := d.status.ValidateTransition(Cancelled); err != nil {
		return err
	}
	if err := d.requireOwnerOrAdmin(actor, "cancel the delivery"); err != nil {
		return err
	}

	now := time.Now().UTC()
	role := actor.Role()
	d.status = Cancelled
	d.riderID = nil
	d.cancelledBy = &role
	d.cancelledAt = &now
	d.cancellationReason = &reason
	d.bumpVersion()
	return nil
}

// ChangeDestination updates the drop-off location while the delivery is
// still editable (pending or accepted), keeping the previous destination
// for audit. The price is deliberately NOT recomputed: the quote is fixed
// at creation time.
//
// Only the owning customer may change the destination.
func (d *Delivery) ChangeDestination(newDropOffLocation string, actor Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if newDropOffLocation == "" {
		return errs.NewInvalidInputError("drop_off_location")
	}
	if err := d.status.ValidateEditable(); err != nil {
		return err
	}
	if actor.Role() != RoleCustomer || !actor.ID().IsEqual(d.customerID) {
		return errs.NewForbiddenError(actor.Role().String(), "change the destination")
	}

	now := time.Now().UTC()
	previous := d.dropOffLocation
	d.previousDropOffLocation = &previous
	d.destinationChangedAt = &now
	d.dropOffLocation = newDropOffLocation
	d.bumpVersion()
	return nil
}

func (d *Delivery) requireAssignedRider(actor Actor, action string) error {
	if actor.Role() != RoleRider {
		return errs.NewForbiddenError(actor.Role().String(), action)
	}
	if d.riderID == nil || !actor.ID().IsEqual(*d.riderID) {
		return errs.NewForbiddenError(actor.Role().String(), action+" of a delivery assigned to another rider")
	}
	return nil
}

func (d *Delivery) requireOwnerOrAdmin(actor Actor, action string) error {
	if actor.Role() == RoleAdmin {
		return nil
	}
	if actor.Role() == RoleCustomer && actor.ID().IsEqual(d.customerID) {
		return nil
	}
	return errs.NewForbiddenError(actor.Role().String(), action)
}

func (d *Delivery) bumpVersion() {
	d.version++
}

func (d *Delivery) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Delivery) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.customerID = id
	return nil
}

func (d *Delivery) setPickupLocation(location string) error {
	if location == "" {
		return errs.NewInvalidInputError("pickup_location")
	}
	d.pickupLocation = location
	return nil
}

func (d *Delivery) setDropOffLocation(location string) error {
	if location == "" {
		return errs.NewInvalidInputError("drop_off_location")
	}
	d.dropOffLocation = location
	return nil
}

func (d *Delivery) setAttributes(attributes PhysicalAttributes) error {
	if err := attributes.Validate(); err != nil {
		return err
	}
	d.attributes = attributes
	return nil
}

func (d *Delivery) setPrice(price int64) error {
	if price < 0 {
		return errs.NewInvalidInputError("price")
	}
	d.price = price
	return nil
}
