package ports

import (
	"context"

	"github.com/hostcraft/platform-api/internal/core/domain"
)

// OrderNotification is the payload handed to the outbound webhook pipeline.
// Credential carries the plaintext VPS panel credential for redacted display;
// it exists only in memory between checkout and delivery.
type OrderNotification struct {
	Order      *domain.Order
	Credential string
}

// OrderNotifier delivers a single order notification. Failures are the
// notifier's problem (logged, counted), never the caller's.
type OrderNotifier interface {
	NotifyOrderCreated(ctx context.Context, n OrderNotification) error
}
