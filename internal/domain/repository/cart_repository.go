package repository

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/errors"

	"github.com/google/uuid"
)

// ErrCartNotFound is returned when a user has no cart yet.
var ErrCartNotFound = errors.New("cart not found")

// CartRepository persists the one cart each user owns.
type CartRepository interface {
	// FindByUserID loads the cart with its items.
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Cart, error)

	// FindByUserIDForUpdate loads the cart and locks its row until the transaction ends.
	FindByUserIDForUpdate(ctx context.Context, userID uuid.UUID) (*entity.Cart, error)

	// Create persists an empty cart, assigning its ID.
	Create(ctx context.Context, cart *entity.Cart) error

	// Save replaces the stored items with cart.Items.
	Save(ctx context.Context, cart *entity.Cart) error

	// ClearItems deletes every item of a cart.
	ClearItems(ctx context.Context, cartID uuid.UUID) error
}
