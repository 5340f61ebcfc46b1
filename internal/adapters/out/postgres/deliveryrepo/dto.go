// Package deliveryrepo provides data transfer objects and mapping functions
// for delivery persistence. It implements the repository pattern for the
// delivery aggregate, converting between domain entities and database rows.
package deliveryrepo

import (
	"time"

	"courier/internal/core/domain/model/delivery"
	"courier/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DeliveryDTO represents the database structure for persisting delivery
// aggregates. Indexed by customer, rider and status to serve the common
// listings, with a version column backing the compare-and-set writes.
type DeliveryDTO struct {
	ID                      uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CustomerID              uuid.UUID  `gorm:"type:uuid;index"`
	RiderID                 *uuid.UUID `gorm:"type:uuid;index"`
	OrderName               string
	PickupLocation          string
	DropOffLocation         string
	PreviousDropOffLocation *string
	DestinationChangedAt    *time.Time
	DistanceKm              float64
	WeightKg                float64
	SizeCm                  float64
	Price                   int64
	Status                  int `gorm:"index"`
	Version                 int64
	CreatedAt               time.Time `gorm:"index"`
	DeliveredAt             *time.Time
	CancelledBy             *int
	CancelledAt             *time.Time
	CancellationReason      *string
}

// TableName specifies the database table name for delivery records.
func (DeliveryDTO) TableName() string {
	return "deliveries"
}

// fromDomain converts a delivery aggregate to its database representation.
func fromDomain(aggregate *delivery.Delivery) DeliveryDTO {
	var riderID *uuid.UUID
	if id := aggregate.RiderID(); id != nil {
		raw := id.Bytes()
		riderID = &raw
	}

	var cancelledBy *int
	if role := aggregate.CancelledBy(); role != nil {
		raw := int(*role)
		cancelledBy = &raw
	}

	return DeliveryDTO{
		ID:                      aggregate.ID().Bytes(),
		CustomerID:              aggregate.CustomerID().Bytes(),
		RiderID:                 riderID,
		OrderName:               aggregate.OrderName(),
		PickupLocation:          aggregate.PickupLocation(),
		DropOffLocation:         aggregate.DropOffLocation(),
		PreviousDropOffLocation: aggregate.PreviousDropOffLocation(),
		DestinationChangedAt:    aggregate.DestinationChangedAt(),
		DistanceKm:              aggregate.Attributes().DistanceKm(),
		WeightKg:                aggregate.Attributes().WeightKg(),
		SizeCm:                  aggregate.Attributes().SizeCm(),
		Price:                   aggregate.Price(),
		Status:                  int(aggregate.Status()),
		Version:                 aggregate.Version(),
		CreatedAt:               aggregate.CreatedAt(),
		DeliveredAt:             aggregate.DeliveredAt(),
		CancelledBy:             cancelledBy,
		CancelledAt:             aggregate.CancelledAt(),
		CancellationReason:      aggregate.CancellationReason(),
	}
}

// toDomain converts a database row back to a delivery aggregate using
// RestoreDelivery, which revalidates the persisted invariants.
func toDomain(dto DeliveryDTO) (*delivery.Delivery, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	var riderID *kernel.UUID
	if dto.RiderID != nil {
		rID, riderErr := kernel.UUIDFromBytes((*dto.RiderID)[:])
		if riderErr != nil {
			return nil, riderErr
		}
		riderID = &rID
	}

	attributes, err := delivery.NewPhysicalAttributes(dto.DistanceKm, dto.WeightKg, dto.SizeCm)
	if err != nil {
		return nil, err
	}

	var cancelledBy *delivery.Role
	if dto.CancelledBy != nil {
		role := delivery.Role(*dto.CancelledBy)
		cancelledBy = &role
	}

	return delivery.RestoreDelivery(
		id,
		customerID,
		riderID,
		dto.OrderName,
		dto.PickupLocation,
		dto.DropOffLocation,
		dto.PreviousDropOffLocation,
		dto.DestinationChangedAt,
		attributes,
		dto.Price,
		delivery.Status(dto.Status),
		dto.Version,
		dto.CreatedAt,
		dto.DeliveredAt,
		cancelledBy,
		dto.CancelledAt,
		dto.CancellationReason,
	)
}
