package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"courier/internal/core/ports"

	"github.com/streadway/amqp"
)

// notificationMessage is the wire format of a published lifecycle event.
type notificationMessage struct {
	DeliveryID string            `json:"delivery_id"`
	EventType  string            `json:"event_type"`
	Payload    map[string]string `json:"payload,omitempty"`
	OccurredAt time.Time         `json:"occurred_at"`
}

// Notifier publishes delivery lifecycle events to the topic exchange with
// routing keys of the form "delivery.<event_type>".
type Notifier struct {
	client *Client
}

// NewNotifier creates a notifier over a connected client.
func NewNotifier(client *Client) *Notifier {
	return &Notifier{client: client}
}

// Notify publishes one event as a persistent JSON message.
func (n *Notifier) Notify(_ context.Context, event ports.NotificationEvent) error {
	if !n.client.IsConnected() {
		return fmt.Errorf("rabbitmq connection is not open")
	}

	message := notificationMessage{
		DeliveryID: event.DeliveryID.String(),
		EventType:  event.EventType,
		Payload:    event.Payload,
		OccurredAt: time.Now().UTC(),
	}

	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	routingKey := fmt.Sprintf("delivery.%s", event.EventType)

	err = n.client.Channel().Publish(
		n.client.Exchange(),
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    message.OccurredAt,
			Headers: amqp.Table{
				"delivery_id": message.DeliveryID,
				"event_type":  event.EventType,
			},
		},
	)
	if err != nil {
		return fmt.Errorf("publish %s: %w", routingKey, err)
	}

	return nil
}
