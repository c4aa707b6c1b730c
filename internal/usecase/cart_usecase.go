package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// CartItemInput identifies a product line and a quantity.
type CartItemInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// CartUsecase manages the single cart of each user. The cart is created on first use.
type CartUsecase interface {
	GetCart(ctx context.Context, userID uuid.UUID) (*entity.Cart, error)
	// AddItem adds quantity (default 1) of a product, snapshotting its name, price and image.
	AddItem(ctx context.Context, userID uuid.UUID, input *CartItemInput) (*entity.Cart, error)
	// UpdateItem sets the quantity of a line. Zero or less removes it.
	UpdateItem(ctx context.Context, userID uuid.UUID, input *CartItemInput) (*entity.Cart, error)
	RemoveItem(ctx context.Context, userID uuid.UUID, productID uuid.UUID) (*entity.Cart, error)
}
