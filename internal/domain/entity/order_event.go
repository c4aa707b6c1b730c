package entity

import (
	"time"

	"github.com/google/uuid"
)

// OrderEventType names something that happened to an order.
type OrderEventType string

const (
	OrderEventCreated              OrderEventType = "order.created"
	OrderEventStatusChanged        OrderEventType = "order.status_changed"
	OrderEventPaymentProofUploaded OrderEventType = "order.payment_proof_uploaded"
	OrderEventDeleted              OrderEventType = "order.deleted"
)

// OrderEvent is one entry of an order's history, recorded by the order worker.
type OrderEvent struct {
	ID            uuid.UUID
	MessageID     string // Publisher message ID, unique to make redelivery idempotent.
	Type          OrderEventType
	OrderID       uuid.UUID
	OrderNumber   string
	ActorID       uuid.UUID
	OrderStatus   OrderStatus
	PaymentStatus PaymentStatus
	Total         int64
	OccurredAt    time.Time
	CreatedAt     time.Time
}
