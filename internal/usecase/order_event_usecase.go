package usecase

import (
	"context"

	"storefront/internal/domain/service"
)

// OrderEventUsecase records published order events into the audit trail.
type OrderEventUsecase interface {
	// RecordOrderEvent stores event under messageID. It reports false for a redelivery.
	RecordOrderEvent(ctx context.Context, messageID string, event *service.OrderEvent) (bool, error)
}
