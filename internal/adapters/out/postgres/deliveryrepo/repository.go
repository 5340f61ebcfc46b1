package deliveryrepo

import (
	"context"
	"database/sql/driver"
	"errors"

	"courier/internal/core/domain/model/delivery"
	"courier/internal/core/domain/model/kernel"
	"courier/internal/core/ports"
	"courier/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormDeliveryRepository implements DeliveryRepository using GORM.
//
// Update uses compare-and-set on the version column: the row is written only
// when the stored version still matches the version the aggregate was loaded
// at. Concurrent writers race on the same row and exactly one wins; the loser
// gets a VersionConflict error and must re-read.
type GormDeliveryRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormDeliveryRepository creates a new GORM delivery repository.
func NewGormDeliveryRepository(db *gorm.DB, tracker aggregateTracker) *GormDeliveryRepository {
	return &GormDeliveryRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new delivery to the database.
func (r *GormDeliveryRepository) Add(ctx context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return wrapUnavailable("delivery insert", err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves a mutated delivery using compare-and-set on the version
// column. The aggregate bumps its version on every applied mutation, so the
// stored row is expected to be exactly one version behind.
func (r *GormDeliveryRepository) Update(ctx context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	expectedVersion := dto.Version - 1

	result := r.db.WithContext(ctx).
		Model(&DeliveryDTO{}).
		Where("id = ? AND version = ?", dto.ID, expectedVersion).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return wrapUnavailable("delivery update", result.Error)
	}

	if result.RowsAffected == 0 {
		// Distinguish a stale write from a missing row.
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&DeliveryDTO{}).
			Where("id = ?", dto.ID).
			Count(&count).Error; err != nil {
			return wrapUnavailable("delivery lookup", err)
		}
		if count == 0 {
			return errs.NewNotFoundError("deliveryId", aggregate.ID().String())
		}
		return errs.NewVersionConflictError(aggregate.ID().String(), expectedVersion)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a delivery by ID.
func (r *GormDeliveryRepository) Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DeliveryDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewNotFoundError("deliveryId", id.String())
		}
		return nil, wrapUnavailable("delivery lookup", err)
	}

	return toDomain(dto)
}

// GetOldestPending retrieves the pending delivery that has waited the
// longest for assignment.
func (r *GormDeliveryRepository) GetOldestPending(ctx context.Context) (*delivery.Delivery, error) {
	var dto DeliveryDTO
	err := r.db.WithContext(ctx).
		Where("status = ?", int(delivery.Pending)).
		Order("created_at ASC").
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewNotFoundError("delivery", "oldest pending")
		}
		return nil, wrapUnavailable("delivery lookup", err)
	}

	return toDomain(dto)
}

// List retrieves deliveries matching the filter, newest first.
func (r *GormDeliveryRepository) List(ctx context.Context, filter ports.ListFilter) ([]*delivery.Delivery, error) {
	tx := r.db.WithContext(ctx).Order("created_at DESC")
	if filter.CustomerID != nil {
		tx = tx.Where("customer_id = ?", filter.CustomerID.Bytes())
	}
	if filter.RiderID != nil {
		tx = tx.Where("rider_id = ?", filter.RiderID.Bytes())
	}
	if filter.Status != nil {
		tx = tx.Where("status = ?", int(*filter.Status))
	}

	var dtos []DeliveryDTO
	if err := tx.Find(&dtos).Error; err != nil {
		return nil, wrapUnavailable("delivery listing", err)
	}

	deliveries := make([]*delivery.Delivery, 0, len(dtos))
	for _, dto := range dtos {
		d, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		deliveries = append(deliveries, d)
	}

	return deliveries, nil
}

// wrapUnavailable classifies timeouts, cancellations and dead connections
// as the Unavailable kind; domain-meaningful errors pass through untouched.
// The failed statement never partially applies: single-row writes are
// atomic and everything else runs inside the caller's transaction.
func wrapUnavailable(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, driver.ErrBadConn) {
		return errs.NewUnavailableError(op, err)
	}
	return err
}
