// Package riderdir implements the rider directory on the riders table.
// The engine only reads from it: rider registration and availability are
// maintained elsewhere.
package riderdir

import (
	"context"
	"database/sql/driver"
	"errors"

	"courier/internal/core/domain/model/kernel"
	"courier/internal/core/ports"
	"courier/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RiderDTO represents the database structure of a rider record.
type RiderDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string
	IsAvailable bool `gorm:"index"`
}

// TableName specifies the database table name for rider records.
func (RiderDTO) TableName() string {
	return "riders"
}

// GormRiderDirectory implements RiderDirectory using GORM.
type GormRiderDirectory struct {
	db *gorm.DB
}

// NewGormRiderDirectory creates a new GORM rider directory.
func NewGormRiderDirectory(db *gorm.DB) *GormRiderDirectory {
	return &GormRiderDirectory{db: db}
}

// Status reports registration and availability with one lookup.
// An unknown identifier yields the zero status, not an error.
func (d *GormRiderDirectory) Status(ctx context.Context, riderID kernel.UUID) (ports.RiderStatus, error) {
	if err := riderID.Validate(); err != nil {
		return ports.RiderStatus{}, err
	}

	var dto RiderDTO
	err := d.db.WithContext(ctx).First(&dto, "id = ?", riderID.Bytes()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ports.RiderStatus{}, nil
	}
	if err != nil {
		return ports.RiderStatus{}, wrapUnavailable("rider lookup", err)
	}

	return ports.RiderStatus{
		Registered: true,
		Available:  dto.IsAvailable,
	}, nil
}

// ListAvailable returns the identifiers of all riders currently accepting
// deliveries, in stable identifier order.
func (d *GormRiderDirectory) ListAvailable(ctx context.Context) ([]kernel.UUID, error) {
	var dtos []RiderDTO
	err := d.db.WithContext(ctx).
		Where("is_available = ?", true).
		Order("id ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, wrapUnavailable("rider listing", err)
	}

	riders := make([]kernel.UUID, 0, len(dtos))
	for _, dto := range dtos {
		id, idErr := kernel.UUIDFromBytes(dto.ID[:])
		if idErr != nil {
			return nil, idErr
		}
		riders = append(riders, id)
	}

	return riders, nil
}

// wrapUnavailable classifies timeouts, cancellations and dead connections
// as the Unavailable kind; domain-meaningful errors pass through untouched.
func wrapUnavailable(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, driver.ErrBadConn) {
		return errs.NewUnavailableError(op, err)
	}
	return err
}
