package delivery_test

import (
	"math"
	"testing"

	"courier/internal/core/domain/model/delivery"
	"courier/internal/core/domain/model/kernel"
	"courier/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustAttributes(t *testing.T) delivery.PhysicalAttributes {
	t.Helper()
	attrs, err := delivery.NewPhysicalAttributes(10, 5, 40)
	require.NoError(t, err)
	return attrs
}

func mustActor(t *testing.T, id kernel.UUID, role delivery.Role) delivery.Actor {
	t.Helper()
	actor, err := delivery.NewActor(id, role)
	require.NoError(t, err)
	return actor
}

func newPendingDelivery(t *testing.T, customerID kernel.UUID) *delivery.Delivery {
	t.Helper()
	d, err := delivery.NewDelivery(
		kernel.NewUUID(), customerID, "books",
		"12 Station Road", "7 Harbor View", mustAttributes(t), 930,
	)
	require.NoError(t, err)
	return d
}

// assertRiderInvariant checks the binding invariant after a mutation:
// rider bound iff status is accepted, in_transit or delivered.
func assertRiderInvariant(t *testing.T, d *delivery.Delivery) {
	t.Helper()
	bound := d.RiderID() != nil
	switch d.Status() {
	case delivery.Accepted, delivery.InTransit, delivery.Delivered:
		assert.True(t, bound, "status %s must have a rider", d.Status())
	default:
		assert.False(t, bound, "status %s must not have a rider", d.Status())
	}
}

func TestNewDelivery(t *testing.T) {
	t.Run("creates pending delivery at version 1", func(t *testing.T) {
		customerID := kernel.NewUUID()
		d := newPendingDelivery(t, customerID)

		assert.Equal(t, delivery.Pending, d.Status())
		assert.Equal(t, int64(1), d.Version())
		assert.Nil(t, d.RiderID())
		assert.True(t, customerID.IsEqual(d.CustomerID()))
		assert.Equal(t, int64(930), d.Price())
		assert.False(t, d.CreatedAt().IsZero())
		assertRiderInvariant(t, d)
	})

	t.Run("rejects empty locations", func(t *testing.T) {
		_, err := delivery.NewDelivery(
			kernel.NewUUID(), kernel.NewUUID(), "",
			"", "7 Harbor View", mustAttributes(t), 100,
		)
		require.ErrorIs(t, err, errs.ErrInvalidInput)
	})

	t.Run("rejects negative price", func(t *testing.T) {
		_, err := delivery.NewDelivery(
			kernel.NewUUID(), kernel.NewUUID(), "",
			"a", "b", mustAttributes(t), -1,
		)
		require.ErrorIs(t, err, errs.ErrInvalidInput)
	})

	t.Run("rejects unconstructed attributes", func(t *testing.T) {
		_, err := delivery.NewDelivery(
			kernel.NewUUID(), kernel.NewUUID(), "",
			"a", "b", delivery.PhysicalAttributes{}, 100,
		)
		require.Error(t, err)
	})
}

func TestDelivery_Validate(t *testing.T) {
	var zero delivery.Delivery
	require.ErrorIs(t, zero.Validate(), delivery.ErrDeliveryIsNotConstructed)

	d := newPendingDelivery(t, kernel.NewUUID())
	require.NoError(t, d.Validate())
}

func TestDelivery_Assign(t *testing.T) {
	t.Run("admin assigns pending delivery", func(t *testing.T) {
		d := newPendingDelivery(t, kernel.NewUUID())
		riderID := kernel.NewUUID()
		admin := mustActor(t, kernel.NewUUID(), delivery.RoleAdmin)

		require.NoError(t, d.Assign(riderID, admin))

		assert.Equal(t, delivery.Accepted, d.Status())
		require.NotNil(t, d.RiderID())
		assert.True(t, riderID.IsEqual(*d.RiderID()))
		assert.Equal(t, int64(2), d.Version())
		assertRiderInvariant(t, d)
	})

	t.Run("resolver may assign", func(t *testing.T) {
		d := newPendingDelivery(t, kernel.NewUUID())
		resolver := mustActor(t, kernel.NewUUID(), delivery.RoleResolver)

		require.NoError(t, d.Assign(kernel.NewUUID(), resolver))
		assert.Equal(t, delivery.Accepted, d.Status())
	})

	t.Run("customer may not assign", func(t *testing.T) {
		customerID := kernel.NewUUID()
		d := newPendingDelivery(t, customerID)
		customer := mustActor(t, customerID, delivery.RoleCustomer)

		err := d.Assign(kernel.NewUUID(), customer)

		require.ErrorIs(t, err, errs.ErrForbidden)
		assert.Equal(t, delivery.Pending, d.Status())
		assert.Equal(t, int64(1), d.Version())
	})

	t.Run("assigning an in_transit delivery fails with invalid transition", func(t *testing.T) {
		d, _ := deliveryInTransit(t)
		admin := mustActor(t, kernel.NewUUID(), delivery.RoleAdmin)

		err := d.Assign(kernel.NewUUID(), admin)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})
}

func deliveryAccepted(t *testing.T) (*delivery.Delivery, delivery.Actor) {
	t.Helper()
	d := newPendingDelivery(t, kernel.NewUUID())
	riderID := kernel.NewUUID()
	admin := mustActor(t, kernel.NewUUID(), delivery.RoleAdmin)
	require.NoError(t, d.Assign(riderID, admin))
	return d, mustActor(t, riderID, delivery.RoleRider)
}

func deliveryInTransit(t *testing.T) (*delivery.Delivery, delivery.Actor) {
	t.Helper()
	d, rider := deliveryAccepted(t)
	require.NoError(t, d.StartTransit(rider))
	return d, rider
}

func TestDelivery_StartTransit(t *testing.T) {
	t.Run("assigned rider starts transit", func(t *testing.T) {
		d, rider := deliveryAccepted(t)

		require.NoError(t, d.StartTransit(rider))

		assert.Equal(t, delivery.InTransit, d.Status())
		assert.Equal(t, int64(3), d.Version())
		assertRiderInvariant(t, d)
	})

	t.Run("another rider is forbidden", func(t *testing.T) {
		d, _ := deliveryAccepted(t)
		stranger := mustActor(t, kernel.NewUUID(), delivery.RoleRider)

		err := d.StartTransit(stranger)

		require.ErrorIs(t, err, errs.ErrForbidden)
		assert.Equal(t, delivery.Accepted, d.Status())
	})

	t.Run("admin is forbidden", func(t *testing.T) {
		d, _ := deliveryAccepted(t)
		admin := mustActor(t, kernel.NewUUID(), delivery.RoleAdmin)

		require.ErrorIs(t, d.StartTransit(admin), errs.ErrForbidden)
	})

	t.Run("pending delivery cannot start transit", func(t *testing.T) {
		d := newPendingDelivery(t, kernel.NewUUID())
		rider := mustActor(t, kernel.NewUUID(), delivery.RoleRider)

		require.ErrorIs(t, d.StartTransit(rider), errs.ErrInvalidTransition)
	})
}

func TestDelivery_Complete(t *testing.T) {
	t.Run("assigned rider completes in_transit delivery", func(t *testing.T) {
		d, rider := deliveryInTransit(t)

		require.NoError(t, d.Complete(rider))

		assert.Equal(t, delivery.Delivered, d.Status())
		assert.Equal(t, int64(4), d.Version())
		require.NotNil(t, d.DeliveredAt())
		assertRiderInvariant(t, d)
	})

	t.Run("completing an accepted delivery fails", func(t *testing.T) {
		d, rider := deliveryAccepted(t)

		require.ErrorIs(t, d.Complete(rider), errs.ErrInvalidTransition)
	})

	t.Run("delivered record rejects further mutation", func(t *testing.T) {
		d, rider := deliveryInTransit(t)
		require.NoError(t, d.Complete(rider))

		require.ErrorIs(t, d.Complete(rider), errs.ErrTerminalState)
		require.ErrorIs(t, d.StartTransit(rider), errs.ErrTerminalState)
	})
}

func TestDelivery_Cancel(t *testing.T) {
	t.Run("customer cancels own pending delivery", func(t *testing.T) {
		customerID := kernel.NewUUID()
		d := newPendingDelivery(t, customerID)
		customer := mustActor(t, customerID, delivery.RoleCustomer)

		require.NoError(t, d.Cancel(customer, "changed my mind"))

		assert.Equal(t, delivery.Cancelled, d.Status())
		assert.Nil(t, d.RiderID())
		require.NotNil(t, d.CancellationReason())
		assert.Equal(t, "changed my mind", *d.CancellationReason())
		require.NotNil(t, d.CancelledBy())
		assert.Equal(t, delivery.RoleCustomer, *d.CancelledBy())
		require.NotNil(t, d.CancelledAt())
		assert.Equal(t, int64(2), d.Version())
		assertRiderInvariant(t, d)
	})

	t.Run("cancelling accepted delivery clears the rider", func(t *testing.T) {
		d, _ := deliveryAccepted(t)
		admin := mustActor(t, kernel.NewUUID(), delivery.RoleAdmin)

		require.NoError(t, d.Cancel(admin, "customer unreachable"))

		assert.Equal(t, delivery.Cancelled, d.Status())
		assert.Nil(t, d.RiderID())
		assertRiderInvariant(t, d)
	})

	t.Run("another customer may not cancel", func(t *testing.T) {
		d := newPendingDelivery(t, kernel.NewUUID())
		other := mustActor(t, kernel.NewUUID(), delivery.RoleCustomer)

		require.ErrorIs(t, d.Cancel(other, "nope"), errs.ErrForbidden)
	})

	t.Run("rider may not cancel", func(t *testing.T) {
		d, rider := deliveryAccepted(t)

		require.ErrorIs(t, d.Cancel(rider, "too far"), errs.ErrForbidden)
	})

	t.Run("in_transit delivery cannot be cancelled", func(t *testing.T) {
		d, _ := deliveryInTransit(t)
		admin := mustActor(t, kernel.NewUUID(), delivery.RoleAdmin)

		require.ErrorIs(t, d.Cancel(admin, "late"), errs.ErrInvalidTransition)
	})

	t.Run("cancelled record rejects further transitions", func(t *testing.T) {
		customerID := kernel.NewUUID()
		d := newPendingDelivery(t, customerID)
		customer := mustActor(t, customerID, delivery.RoleCustomer)
		admin := mustActor(t, kernel.NewUUID(), delivery.RoleAdmin)

		require.NoError(t, d.Cancel(customer, "changed my mind"))

		require.ErrorIs(t, d.Cancel(admin, "again"), errs.ErrTerminalState)
		require.ErrorIs(t, d.Assign(kernel.NewUUID(), admin), errs.ErrTerminalState)
		require.ErrorIs(t, d.ChangeDestination("1 Elsewhere", customer), errs.ErrTerminalState)
	})
}

func TestDelivery_ChangeDestination(t *testing.T) {
	t.Run("owning customer changes destination without re-quote", func(t *testing.T) {
		customerID := kernel.NewUUID()
		d := newPendingDelivery(t, customerID)
		customer := mustActor(t, customerID, delivery.RoleCustomer)
		priceBefore := d.Price()

		require.NoError(t, d.ChangeDestination("99 New Quay", customer))

		assert.Equal(t, "99 New Quay", d.DropOffLocation())
		require.NotNil(t, d.PreviousDropOffLocation())
		assert.Equal(t, "7 Harbor View", *d.PreviousDropOffLocation())
		require.NotNil(t, d.DestinationChangedAt())
		assert.Equal(t, priceBefore, d.Price())
		assert.Equal(t, delivery.Pending, d.Status())
		assert.Equal(t, int64(2), d.Version())
	})

	t.Run("accepted delivery is still editable", func(t *testing.T) {
		customerID := kernel.NewUUID()
		d := newPendingDelivery(t, customerID)
		admin := mustActor(t, kernel.NewUUID(), delivery.RoleAdmin)
		require.NoError(t, d.Assign(kernel.NewUUID(), admin))
		customer := mustActor(t, customerID, delivery.RoleCustomer)

		require.NoError(t, d.ChangeDestination("99 New Quay", customer))
		assert.Equal(t, delivery.Accepted, d.Status())
	})

	t.Run("in_transit delivery is not editable", func(t *testing.T) {
		d, _ := deliveryInTransit(t)
		customer := mustActor(t, d.CustomerID(), delivery.RoleCustomer)

		require.ErrorIs(t, d.ChangeDestination("99 New Quay", customer), errs.ErrInvalidTransition)
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		d := newPendingDelivery(t, kernel.NewUUID())
		other := mustActor(t, kernel.NewUUID(), delivery.RoleCustomer)

		require.ErrorIs(t, d.ChangeDestination("99 New Quay", other), errs.ErrForbidden)
	})

	t.Run("empty destination is invalid input", func(t *testing.T) {
		customerID := kernel.NewUUID()
		d := newPendingDelivery(t, customerID)
		customer := mustActor(t, customerID, delivery.RoleCustomer)

		require.ErrorIs(t, d.ChangeDestination("", customer), errs.ErrInvalidInput)
	})
}

func TestDelivery_VersionSequence(t *testing.T) {
	// The version must increase by exactly one per applied mutation,
	// with no gaps.
	customerID := kernel.NewUUID()
	d := newPendingDelivery(t, customerID)
	customer := mustActor(t, customerID, delivery.RoleCustomer)
	admin := mustActor(t, kernel.NewUUID(), delivery.RoleAdmin)
	riderID := kernel.NewUUID()
	rider := mustActor(t, riderID, delivery.RoleRider)

	versions := []int64{d.Version()}

	require.NoError(t, d.ChangeDestination("5 Side Street", customer))
	versions = append(versions, d.Version())
	require.NoError(t, d.Assign(riderID, admin))
	versions = append(versions, d.Version())
	require.NoError(t, d.StartTransit(rider))
	versions = append(versions, d.Version())
	require.NoError(t, d.Complete(rider))
	versions = append(versions, d.Version())

	assert.Equal(t, []int64{1, 2, 3, 4, 5}, versions)
}

func TestDelivery_FailedMutationsDoNotBumpVersion(t *testing.T) {
	d := newPendingDelivery(t, kernel.NewUUID())
	rider := mustActor(t, kernel.NewUUID(), delivery.RoleRider)

	require.Error(t, d.StartTransit(rider))
	require.Error(t, d.Cancel(rider, "no"))

	assert.Equal(t, int64(1), d.Version())
}

func TestRestoreDelivery(t *testing.T) {
	t.Run("restores a persisted aggregate", func(t *testing.T) {
		d, rider := deliveryAccepted(t)
		riderID := rider.ID()

		restored, err := delivery.RestoreDelivery(
			d.ID(), d.CustomerID(), &riderID, d.OrderName(),
			d.PickupLocation(), d.DropOffLocation(), nil, nil,
			d.Attributes(), d.Price(), d.Status(), d.Version(),
			d.CreatedAt(), nil, nil, nil, nil,
		)

		require.NoError(t, err)
		assert.True(t, d.IsEqual(restored))
		assert.Equal(t, d.Status(), restored.Status())
		assert.Equal(t, d.Version(), restored.Version())
	})

	t.Run("rejects rider binding that contradicts status", func(t *testing.T) {
		d := newPendingDelivery(t, kernel.NewUUID())
		riderID := kernel.NewUUID()

		_, err := delivery.RestoreDelivery(
			d.ID(), d.CustomerID(), &riderID, "",
			d.PickupLocation(), d.DropOffLocation(), nil, nil,
			d.Attributes(), d.Price(), delivery.Pending, 1,
			d.CreatedAt(), nil, nil, nil, nil,
		)

		require.Error(t, err)
	})

	t.Run("rejects version below 1", func(t *testing.T) {
		d := newPendingDelivery(t, kernel.NewUUID())

		_, err := delivery.RestoreDelivery(
			d.ID(), d.CustomerID(), nil, "",
			d.PickupLocation(), d.DropOffLocation(), nil, nil,
			d.Attributes(), d.Price(), delivery.Pending, 0,
			d.CreatedAt(), nil, nil, nil, nil,
		)

		require.ErrorIs(t, err, errs.ErrInvalidInput)
	})
}

func TestPhysicalAttributes(t *testing.T) {
	t.Run("valid attributes", func(t *testing.T) {
		attrs, err := delivery.NewPhysicalAttributes(10.5, 2, 0)
		require.NoError(t, err)
		assert.InEpsilon(t, 10.5, attrs.DistanceKm(), 1e-9)
		assert.InEpsilon(t, 2.0, attrs.WeightKg(), 1e-9)
		assert.Zero(t, attrs.SizeCm())
	})

	t.Run("negative values are invalid input", func(t *testing.T) {
		_, err := delivery.NewPhysicalAttributes(-1, 2, 3)
		require.ErrorIs(t, err, errs.ErrInvalidInput)

		_, err = delivery.NewPhysicalAttributes(1, -2, 3)
		require.ErrorIs(t, err, errs.ErrInvalidInput)

		_, err = delivery.NewPhysicalAttributes(1, 2, -3)
		require.ErrorIs(t, err, errs.ErrInvalidInput)
	})

	t.Run("non-finite values are invalid input", func(t *testing.T) {
		nan := math.NaN()
		_, err := delivery.NewPhysicalAttributes(nan, 2, 3)
		require.ErrorIs(t, err, errs.ErrInvalidInput)

		_, err = delivery.NewPhysicalAttributes(1, math.Inf(1), 3)
		require.ErrorIs(t, err, errs.ErrInvalidInput)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var attrs delivery.PhysicalAttributes
		require.Error(t, attrs.Validate())
	})
}
