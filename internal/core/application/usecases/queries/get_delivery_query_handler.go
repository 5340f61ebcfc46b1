package queries

import (
	"context"
	"errors"

	"courier/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetDeliveryQueryHandler retrieves a single delivery record.
type GetDeliveryQueryHandler struct {
	db *gorm.DB
}

// NewGetDeliveryQueryHandler creates a handler for single-record reads.
func NewGetDeliveryQueryHandler(db *gorm.DB) GetDeliveryQueryHandler {
	return GetDeliveryQueryHandler{db: db}
}

// Handle executes the query. Fails with NotFound when no such delivery
// exists.
func (h GetDeliveryQueryHandler) Handle(ctx context.Context, query GetDeliveryQuery) (DeliveryResponse, error) {
	if err := query.Validate(); err != nil {
		return DeliveryResponse{}, err
	}

	var row deliveryRow
	err := h.db.WithContext(ctx).First(&row, "id = ?", query.DeliveryID().Bytes()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return DeliveryResponse{}, errs.NewNotFoundError("deliveryId", query.DeliveryID().String())
	}
	if err != nil {
		return DeliveryResponse{}, err
	}

	return toResponse(row)
}
