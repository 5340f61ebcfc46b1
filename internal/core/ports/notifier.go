package ports

import (
	"context"

	"courier/internal/core/domain/model/kernel"
)

// Event types emitted after committed transitions.
const (
	EventDeliveryCreated    = "created"
	EventRiderAssigned      = "assigned"
	EventTransitStarted     = "in_transit"
	EventDeliveryCompleted  = "delivered"
	EventDeliveryCancelled  = "cancelled"
	EventDestinationChanged = "destination_changed"
)

// NotificationEvent describes a committed state transition for the external
// notification collaborator.
type NotificationEvent struct {
	DeliveryID kernel.UUID
	EventType  string
	Payload    map[string]string
}

// Notifier is the fire-and-forget notification sink. Notify is called only
// after the transition is durably committed; a failure is logged by the
// caller and never rolls back or surfaces to the API client.
type Notifier interface {
	Notify(ctx context.Context, event NotificationEvent) error
}
