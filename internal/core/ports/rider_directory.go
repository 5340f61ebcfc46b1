package ports

import (
	"context"

	"courier/internal/core/domain/model/kernel"
)

// RiderStatus is the directory's answer for one rider: whether the
// identifier is registered at all, and whether the rider currently accepts
// deliveries. An unregistered rider is never available.
type RiderStatus struct {
	Registered bool
	Available  bool
}

// RiderDirectory is the external collaborator owning rider records.
// The engine consults it for identity and availability only; rider
// lifecycle is out of its hands.
//
// Directory calls may block on I/O; on timeout or cancellation they report
// an Unavailable error.
type RiderDirectory interface {
	// Status reports registration and availability in a single lookup.
	Status(ctx context.Context, riderID kernel.UUID) (RiderStatus, error)

	// ListAvailable returns the identifiers of all riders currently
	// accepting deliveries. Used by the auto-assignment job.
	ListAvailable(ctx context.Context) ([]kernel.UUID, error)
}
