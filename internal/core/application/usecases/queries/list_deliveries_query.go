package queries

import (
	"errors"

	"courier/internal/core/domain/model/delivery"
	"courier/internal/core/domain/model/kernel"
	"courier/internal/pkg/guard"
)

var ErrListDeliveriesQueryIsNotConstructed = errors.New(
	"ListDeliveriesQuery must be created via NewListDeliveriesQuery constructor",
)

// ListDeliveriesQuery requests deliveries matching optional filters.
// Nil filters match everything.
type ListDeliveriesQuery struct { //nolint:recvcheck //using for validation
	customerID *kernel.UUID
	riderID    *kernel.UUID
	status     *delivery.Status

	guard guard.ConstructorGuard
}

// NewListDeliveriesQuery validates and creates the query.
func NewListDeliveriesQuery(
	customerID *kernel.UUID,
	riderID *kernel.UUID,
	status *delivery.Status,
) (ListDeliveriesQuery, error) {
	if customerID != nil {
		if err := customerID.Validate(); err != nil {
			return ListDeliveriesQuery{}, err
		}
	}
	if riderID != nil {
		if err := riderID.Validate(); err != nil {
			return ListDeliveriesQuery{}, err
		}
	}
	if status != nil {
		if err := status.Validate(); err != nil {
			return ListDeliveriesQuery{}, err
		}
	}

	return ListDeliveriesQuery{
		customerID: customerID,
		riderID:    riderID,
		status:     status,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrListDeliveriesQueryIsNotConstructed)
}

// CustomerID returns the customer filter, or nil.
func (q ListDeliveriesQuery) CustomerID() *kernel.UUID {
	return q.customerID
}

// RiderID returns the rider filter, or nil.
func (q ListDeliveriesQuery) RiderID() *kernel.UUID {
	return q.riderID
}

// Status returns the status filter, or nil.
func (q ListDeliveriesQuery) Status() *delivery.Status {
	return q.status
}
