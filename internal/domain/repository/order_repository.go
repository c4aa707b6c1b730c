package repository

import (
	"context"
	"time"

	"storefront/internal/domain/entity"
	"storefront/internal/errors"

	"github.com/google/uuid"
)

var (
	// ErrOrderNotFound is returned when an order does not exist.
	ErrOrderNotFound = errors.New("order not found")
	// ErrOrderNumberTaken is returned when a generated order number collides.
	ErrOrderNumberTaken = errors.New("order number already exists")
)

// OrderFilter narrows an order listing.
type OrderFilter struct {
	UserID        *uuid.UUID           // Restrict to one buyer.
	Status        entity.OrderStatus   // Canonical; completed also matches legacy rows.
	PaymentStatus entity.PaymentStatus // Empty means any.
	From          *time.Time
	To            *time.Time
	WithCustomer  bool // Join the owner's name and email.
	Page          Page
}

// OrderRepository defines persistence operations for orders and their items.
type OrderRepository interface {
	// Create persists the order and its items, assigning IDs and timestamps.
	Create(ctx context.Context, order *entity.Order) error

	// FindByID loads an order with its items and customer.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// List returns one page of orders, newest first, and the total match count.
	List(ctx context.Context, filter OrderFilter) ([]*entity.Order, int64, error)

	// FindByIDForUpdate loads an order and takes a row lock on it. Only meaningful inside a transaction.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// UpdateStatus writes the order status, payment status, tracking number and paid-at stamp only.
	UpdateStatus(ctx context.Context, order *entity.Order) error

	// UpdatePaymentDetails writes the transaction id and payment proof columns only.
	UpdatePaymentDetails(ctx context.Context, order *entity.Order) error

	// Delete removes the order. Its items go with it through the foreign key cascade.
	Delete(ctx context.Context, id uuid.UUID) error

	// CountNonCanonicalStatuses counts rows whose stored order status is not canonical.
	CountNonCanonicalStatuses(ctx context.Context) (int64, error)

	// NormalizeStatuses rewrites non-canonical stored order statuses and returns the rows changed.
	NormalizeStatuses(ctx context.Context) (int64, error)
}
