// Package http exposes the delivery engine over a REST API.
//
// The caller's identity travels in the X-Actor-Id and X-Actor-Role headers;
// authentication happens upstream and the values are trusted here. Mutating
// requests carry the version the caller observed, and a stale version is
// answered with 409 without side effects.
package http

import (
	"errors"
	"net/http"
	"time"

	"courier/internal/core/application/engine"
	"courier/internal/core/application/usecases/queries"
	"courier/internal/core/domain/model/delivery"
	"courier/internal/core/domain/model/kernel"
	"courier/internal/core/ports"
	"courier/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server handles HTTP requests by dispatching them to the engine facade.
type Server struct {
	engine *engine.Engine
}

// NewServer creates an HTTP server over the engine.
func NewServer(eng *engine.Engine) *Server {
	return &Server{engine: eng}
}

// RegisterRoutes mounts the API under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	v1 := e.Group("/api/v1")

	v1.POST("/deliveries", s.CreateDelivery)
	v1.GET("/deliveries", s.ListDeliveries)
	v1.GET("/deliveries/:id", s.GetDelivery)
	v1.POST("/deliveries/:id/assign", s.AssignRider)
	v1.POST("/deliveries/:id/transition", s.Transition)
	v1.PATCH("/deliveries/:id/destination", s.UpdateDestination)
	v1.POST("/deliveries/:id/cancel", s.CancelDelivery)
}

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type createDeliveryRequest struct {
	OrderName       string  `json:"order_name"`
	PickupLocation  string  `json:"pickup_location"`
	DropOffLocation string  `json:"drop_off_location"`
	DistanceKm      float64 `json:"distance_km"`
	WeightKg        float64 `json:"weight_kg"`
	SizeCm          float64 `json:"size_cm"`
}

type assignRiderRequest struct {
	RiderID string `json:"rider_id"`
	Version int64  `json:"version"`
}

type transitionRequest struct {
	TargetStatus string  `json:"target_status"`
	Version      int64   `json:"version"`
	RiderID      *string `json:"rider_id,omitempty"`
	Reason       string  `json:"reason,omitempty"`
}

type updateDestinationRequest struct {
	DropOffLocation string `json:"drop_off_location"`
	Version         int64  `json:"version"`
}

type cancelRequest struct {
	Reason  string `json:"reason"`
	Version int64  `json:"version"`
}

type deliveryJSON struct {
	ID                      string     `json:"id"`
	CustomerID              string     `json:"customer_id"`
	RiderID                 *string    `json:"rider_id"`
	OrderName               string     `json:"order_name,omitempty"`
	PickupLocation          string     `json:"pickup_location"`
	DropOffLocation         string     `json:"drop_off_location"`
	PreviousDropOffLocation *string    `json:"previous_drop_off_location,omitempty"`
	DestinationChangedAt    *time.Time `json:"destination_changed_at,omitempty"`
	DistanceKm              float64    `json:"distance_km"`
	WeightKg                float64    `json:"weight_kg"`
	SizeCm                  float64    `json:"size_cm"`
	Price                   int64      `json:"price"`
	Status                  string     `json:"status"`
	Version                 int64      `json:"version"`
	CreatedAt               time.Time  `json:"created_at"`
	DeliveredAt             *time.Time `json:"delivered_at,omitempty"`
	CancelledBy             *string    `json:"cancelled_by,omitempty"`
	CancelledAt             *time.Time `json:"cancelled_at,omitempty"`
	CancellationReason      *string    `json:"cancellation_reason,omitempty"`
}

func fromAggregate(d *delivery.Delivery) deliveryJSON {
	var riderID *string
	if id := d.RiderID(); id != nil {
		s := id.String()
		riderID = &s
	}

	var cancelledBy *string
	if role := d.CancelledBy(); role != nil {
		s := role.String()
		cancelledBy = &s
	}

	return deliveryJSON{
		ID:                      d.ID().String(),
		CustomerID:              d.CustomerID().String(),
		RiderID:                 riderID,
		OrderName:               d.OrderName(),
		PickupLocation:          d.PickupLocation(),
		DropOffLocation:         d.DropOffLocation(),
		PreviousDropOffLocation: d.PreviousDropOffLocation(),
		DestinationChangedAt:    d.DestinationChangedAt(),
		DistanceKm:              d.Attributes().DistanceKm(),
		WeightKg:                d.Attributes().WeightKg(),
		SizeCm:                  d.Attributes().SizeCm(),
		Price:                   d.Price(),
		Status:                  d.Status().String(),
		Version:                 d.Version(),
		CreatedAt:               d.CreatedAt(),
		DeliveredAt:             d.DeliveredAt(),
		CancelledBy:             cancelledBy,
		CancelledAt:             d.CancelledAt(),
		CancellationReason:      d.CancellationReason(),
	}
}

func fromReadModel(r queries.DeliveryResponse) deliveryJSON {
	var riderID *string
	if r.RiderID != nil {
		s := r.RiderID.String()
		riderID = &s
	}

	return deliveryJSON{
		ID:                      r.ID.String(),
		CustomerID:              r.CustomerID.String(),
		RiderID:                 riderID,
		OrderName:               r.OrderName,
		PickupLocation:          r.PickupLocation,
		DropOffLocation:         r.DropOffLocation,
		PreviousDropOffLocation: r.PreviousDropOffLocation,
		DestinationChangedAt:    r.DestinationChangedAt,
		DistanceKm:              r.DistanceKm,
		WeightKg:                r.WeightKg,
		SizeCm:                  r.SizeCm,
		Price:                   r.Price,
		Status:                  r.Status.String(),
		Version:                 r.Version,
		CreatedAt:               r.CreatedAt,
		DeliveredAt:             r.DeliveredAt,
		CancelledBy:             r.CancelledBy,
		CancelledAt:             r.CancelledAt,
		CancellationReason:      r.CancellationReason,
	}
}

// actorFromHeaders builds the acting identity from the trusted headers.
func actorFromHeaders(ctx echo.Context) (delivery.Actor, error) {
	id, err := kernel.UUIDFromString(ctx.Request().Header.Get("X-Actor-Id"))
	if err != nil {
		return delivery.Actor{}, errs.NewInvalidInputErrorWithCause("X-Actor-Id", err)
	}

	role, err := delivery.RoleFromString(ctx.Request().Header.Get("X-Actor-Role"))
	if err != nil {
		return delivery.Actor{}, err
	}

	return delivery.NewActor(id, role)
}

func deliveryIDFromPath(ctx echo.Context) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return kernel.UUID{}, errs.NewInvalidInputErrorWithCause("id", err)
	}
	return id, nil
}

// writeError maps the error taxonomy to HTTP status codes.
func writeError(ctx echo.Context, err error) error {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrInvalidInput):
		code = http.StatusBadRequest
	case errors.Is(err, errs.ErrForbidden):
		code = http.StatusForbidden
	case errors.Is(err, errs.ErrNotFound):
		code = http.StatusNotFound
	case errors.Is(err, errs.ErrInvalidTransition):
		code = http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrTerminalState):
		code = http.StatusConflict
	case errors.Is(err, errs.ErrRiderUnavailable):
		code = http.StatusConflict
	case errors.Is(err, errs.ErrVersionConflict):
		code = http.StatusConflict
	case errors.Is(err, errs.ErrUnavailable):
		code = http.StatusServiceUnavailable
	}

	return ctx.JSON(code, errorResponse{
		Code:    code,
		Message: err.Error(),
	})
}

// CreateDelivery handles POST /api/v1/deliveries.
// The acting customer becomes the owner of the new delivery.
func (s *Server) CreateDelivery(ctx echo.Context) error {
	actor, err := actorFromHeaders(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req createDeliveryRequest
	if err = ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewInvalidInputErrorWithCause("body", err))
	}

	attributes, err := delivery.NewPhysicalAttributes(req.DistanceKm, req.WeightKg, req.SizeCm)
	if err != nil {
		return writeError(ctx, err)
	}

	created, err := s.engine.CreateDelivery(
		ctx.Request().Context(),
		actor.ID(),
		req.OrderName,
		req.PickupLocation,
		req.DropOffLocation,
		attributes,
	)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, fromAggregate(created))
}

// GetDelivery handles GET /api/v1/deliveries/:id.
func (s *Server) GetDelivery(ctx echo.Context) error {
	id, err := deliveryIDFromPath(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	record, err := s.engine.GetDelivery(ctx.Request().Context(), id)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, fromReadModel(record))
}

// ListDeliveries handles GET /api/v1/deliveries with optional customer_id,
// rider_id and status query filters.
func (s *Server) ListDeliveries(ctx echo.Context) error {
	var filter ports.ListFilter

	if raw := ctx.QueryParam("customer_id"); raw != "" {
		id, err := kernel.UUIDFromString(raw)
		if err != nil {
			return writeError(ctx, errs.NewInvalidInputErrorWithCause("customer_id", err))
		}
		filter.CustomerID = &id
	}
	if raw := ctx.QueryParam("rider_id"); raw != "" {
		id, err := kernel.UUIDFromString(raw)
		if err != nil {
			return writeError(ctx, errs.NewInvalidInputErrorWithCause("rider_id", err))
		}
		filter.RiderID = &id
	}
	if raw := ctx.QueryParam("status"); raw != "" {
		status, err := delivery.StatusFromString(raw)
		if err != nil {
			return writeError(ctx, err)
		}
		filter.Status = &status
	}

	records, err := s.engine.ListDeliveries(ctx.Request().Context(), filter)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]deliveryJSON, 0, len(records))
	for _, record := range records {
		response = append(response, fromReadModel(record))
	}

	return ctx.JSON(http.StatusOK, response)
}

// AssignRider handles POST /api/v1/deliveries/:id/assign.
func (s *Server) AssignRider(ctx echo.Context) error {
	actor, err := actorFromHeaders(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	id, err := deliveryIDFromPath(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req assignRiderRequest
	if err = ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewInvalidInputErrorWithCause("body", err))
	}

	riderID, err := kernel.UUIDFromString(req.RiderID)
	if err != nil {
		return writeError(ctx, errs.NewInvalidInputErrorWithCause("rider_id", err))
	}

	updated, err := s.engine.AssignRider(ctx.Request().Context(), id, riderID, actor, req.Version)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, fromAggregate(updated))
}

// Transition handles POST /api/v1/deliveries/:id/transition, the generic
// transition entry point selected by target status.
func (s *Server) Transition(ctx echo.Context) error {
	actor, err := actorFromHeaders(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	id, err := deliveryIDFromPath(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req transitionRequest
	if err = ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewInvalidInputErrorWithCause("body", err))
	}

	target, err := delivery.StatusFromString(req.TargetStatus)
	if err != nil {
		return writeError(ctx, err)
	}

	engineReq := engine.TransitionRequest{
		DeliveryID: id,
		Target:     target,
		Actor:      actor,
		Version:    req.Version,
		Reason:     req.Reason,
	}
	if req.RiderID != nil {
		riderID, riderErr := kernel.UUIDFromString(*req.RiderID)
		if riderErr != nil {
			return writeError(ctx, errs.NewInvalidInputErrorWithCause("rider_id", riderErr))
		}
		engineReq.RiderID = &riderID
	}

	updated, err := s.engine.Transition(ctx.Request().Context(), engineReq)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, fromAggregate(updated))
}

// UpdateDestination handles PATCH /api/v1/deliveries/:id/destination.
func (s *Server) UpdateDestination(ctx echo.Context) error {
	actor, err := actorFromHeaders(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	id, err := deliveryIDFromPath(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req updateDestinationRequest
	if err = ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewInvalidInputErrorWithCause("body", err))
	}

	updated, err := s.engine.UpdateDestination(ctx.Request().Context(), id, actor, req.Version, req.DropOffLocation)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, fromAggregate(updated))
}

// CancelDelivery handles POST /api/v1/deliveries/:id/cancel.
func (s *Server) CancelDelivery(ctx echo.Context) error {
	actor, err := actorFromHeaders(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	id, err := deliveryIDFromPath(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req cancelRequest
	if err = ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewInvalidInputErrorWithCause("body", err))
	}

	updated, err := s.engine.Cancel(ctx.Request().Context(), id, actor, req.Version, req.Reason)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, fromAggregate(updated))
}
