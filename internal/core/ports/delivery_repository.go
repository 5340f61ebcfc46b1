// Package ports defines the contracts between the delivery engine's core
// and its infrastructure: the delivery store, the rider directory, the
// notification sink and the unit-of-work transaction boundary.
package ports

import (
	"context"

	"courier/internal/core/domain/model/delivery"
	"courier/internal/core/domain/model/kernel"
)

// ListFilter narrows a delivery listing. Nil fields match everything,
// so the zero value lists all deliveries.
type ListFilter struct {
	CustomerID *kernel.UUID
	RiderID    *kernel.UUID
	Status     *delivery.Status
}

// DeliveryRepository is the authoritative store of delivery aggregates.
//
// Writes follow a compare-and-set discipline keyed on (id, version): Update
// persists the aggregate only if the stored version is exactly one behind
// the aggregate's in-memory version (the mutation that produced it bumped
// the counter). A stale write fails with a VersionConflict error and leaves
// the stored record untouched. This is the engine's only concurrency
// control; no in-process locks are held.
//
// Store calls may block on I/O and honor context cancellation; on timeout
// they report an Unavailable error without partial mutation.
type DeliveryRepository interface {
	// Add persists a freshly created aggregate at version 1.
	Add(ctx context.Context, aggregate *delivery.Delivery) error

	// Update persists a mutated aggregate using compare-and-set on the
	// version counter. Fails with VersionConflict when the stored version
	// no longer matches, NotFound when the record does not exist.
	Update(ctx context.Context, aggregate *delivery.Delivery) error

	// Get retrieves a delivery by its identifier.
	Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error)

	// GetOldestPending retrieves the pending delivery that has waited the
	// longest for assignment. Used by the auto-assignment job.
	GetOldestPending(ctx context.Context) (*delivery.Delivery, error)

	// List retrieves deliveries matching the filter, newest first.
	List(ctx context.Context, filter ListFilter) ([]*delivery.Delivery, error)
}
