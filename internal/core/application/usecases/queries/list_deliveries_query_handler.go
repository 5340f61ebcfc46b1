package queries

import (
	"context"

	"gorm.io/gorm"
)

// ListDeliveriesQueryHandler retrieves delivery records matching a filter,
// newest first. The secondary indexes on customer_id and rider_id back the
// two common listings: a customer's own deliveries and a rider's workload.
type ListDeliveriesQueryHandler struct {
	db *gorm.DB
}

// NewListDeliveriesQueryHandler creates a handler for filtered listings.
func NewListDeliveriesQueryHandler(db *gorm.DB) ListDeliveriesQueryHandler {
	return ListDeliveriesQueryHandler{db: db}
}

// Handle executes the query.
func (h ListDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query ListDeliveriesQuery,
) ([]DeliveryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	tx := h.db.WithContext(ctx).Order("created_at DESC")
	if query.CustomerID() != nil {
		tx = tx.Where("customer_id = ?", query.CustomerID().Bytes())
	}
	if query.RiderID() != nil {
		tx = tx.Where("rider_id = ?", query.RiderID().Bytes())
	}
	if query.Status() != nil {
		tx = tx.Where("status = ?", int(*query.Status()))
	}

	var rows []deliveryRow
	if err := tx.Find(&rows).Error; err != nil {
		return nil, err
	}

	responses := make([]DeliveryResponse, 0, len(rows))
	for _, row := range rows {
		response, err := toResponse(row)
		if err != nil {
			return nil, err
		}
		responses = append(responses, response)
	}

	return responses, nil
}
