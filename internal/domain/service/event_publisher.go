package service

import (
	"context"
	"time"
)

// OrderEvent is the message published when an order changes.
type OrderEvent struct {
	RequestID     string    `json:"request_id,omitempty"` // For distributed tracing
	Type          string    `json:"type"`
	OrderID       string    `json:"order_id"`
	OrderNumber   string    `json:"order_number"`
	UserID        string    `json:"user_id"`
	ActorID       string    `json:"actor_id,omitempty"` // Who caused the change
	OrderStatus   string    `json:"order_status"`
	PaymentStatus string    `json:"payment_status"`
	Total         int64     `json:"total"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishOrderEvent publishes an order event for async processing
	PublishOrderEvent(ctx context.Context, event *OrderEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
