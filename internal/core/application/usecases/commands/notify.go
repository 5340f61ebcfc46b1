package commands

import (
	"context"
	"log/slog"

	"courier/internal/core/ports"
)

// notifyCommitted dispatches a notification for an already committed
// transition. Failures are logged and swallowed: the notification sink is
// best-effort and must never roll back or block a committed state change.
func notifyCommitted(ctx context.Context, logger *slog.Logger, notifier ports.Notifier, event ports.NotificationEvent) {
	if notifier == nil {
		return
	}
	if err := notifier.Notify(ctx, event); err != nil && logger != nil {
		logger.WarnContext(ctx, "notification dispatch failed",
			"delivery_id", event.DeliveryID.String(),
			"event_type", event.EventType,
			"error", err,
		)
	}
}
