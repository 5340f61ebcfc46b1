package queries

import (
	"time"

	"courier/internal/core/domain/model/delivery"
	"courier/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DeliveryResponse is the read model of a delivery record.
type DeliveryResponse struct {
	ID                      kernel.UUID
	CustomerID              kernel.UUID
	RiderID                 *kernel.UUID
	OrderName               string
	PickupLocation          string
	DropOffLocation         string
	PreviousDropOffLocation *string
	DestinationChangedAt    *time.Time
	DistanceKm              float64
	WeightKg                float64
	SizeCm                  float64
	Price                   int64
	Status                  delivery.Status
	Version                 int64
	CreatedAt               time.Time
	DeliveredAt             *time.Time
	CancelledBy             *string
	CancelledAt             *time.Time
	CancellationReason      *string
}

// deliveryRow mirrors the deliveries table for read queries.
type deliveryRow struct {
	ID                      uuid.UUID
	CustomerID              uuid.UUID
	RiderID                 *uuid.UUID
	OrderName               string
	PickupLocation          string
	DropOffLocation         string
	PreviousDropOffLocation *string
	DestinationChangedAt    *time.Time
	DistanceKm              float64
	WeightKg                float64
	SizeCm                  float64
	Price                   int64
	Status                  int
	Version                 int64
	CreatedAt               time.Time
	DeliveredAt             *time.Time
	CancelledBy             *int
	CancelledAt             *time.Time
	CancellationReason      *string
}

func (deliveryRow) TableName() string {
	return "deliveries"
}

func toResponse(row deliveryRow) (DeliveryResponse, error) {
	id, err := kernel.UUIDFromBytes(row.ID[:])
	if err != nil {
		return DeliveryResponse{}, err
	}

	customerID, err := kernel.UUIDFromBytes(row.CustomerID[:])
	if err != nil {
		return DeliveryResponse{}, err
	}

	var riderID *kernel.UUID
	if row.RiderID != nil {
		rID, riderErr := kernel.UUIDFromBytes((*row.RiderID)[:])
		if riderErr != nil {
			return DeliveryResponse{}, riderErr
		}
		riderID = &rID
	}

	var cancelledBy *string
	if row.CancelledBy != nil {
		role := delivery.Role(*row.CancelledBy).String()
		cancelledBy = &role
	}

	return DeliveryResponse{
		ID:                      id,
		CustomerID:              customerID,
		RiderID:                 riderID,
		OrderName:               row.OrderName,
		PickupLocation:          row.PickupLocation,
		DropOffLocation:         row.DropOffLocation,
		PreviousDropOffLocation: row.PreviousDropOffLocation,
		DestinationChangedAt:    row.DestinationChangedAt,
		DistanceKm:              row.DistanceKm,
		WeightKg:                row.WeightKg,
		SizeCm:                  row.SizeCm,
		Price:                   row.Price,
		Status:                  delivery.Status(row.Status),
		Version:                 row.Version,
		CreatedAt:               row.CreatedAt,
		DeliveredAt:             row.DeliveredAt,
		CancelledBy:             cancelledBy,
		CancelledAt:             row.CancelledAt,
		CancellationReason:      row.CancellationReason,
	}, nil
}
