package repository

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// OrderEventRepository stores the order audit trail written by the order worker.
type OrderEventRepository interface {
	// Append stores the event unless its MessageID was already recorded.
	// It reports whether a new row was written.
	Append(ctx context.Context, event *entity.OrderEvent) (bool, error)

	// ListByOrderID returns an order's events, oldest first.
	ListByOrderID(ctx context.Context, orderID uuid.UUID) ([]*entity.OrderEvent, error)
}
