package repository

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/errors"

	"github.com/google/uuid"
)

var (
	// ErrProductNotFound is returned when a product does not exist.
	ErrProductNotFound = errors.New("product not found")
	// ErrInsufficientStock is returned when a conditional stock decrement matches no row.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// ProductSort orders a product listing.
type ProductSort string

const (
	ProductSortNewest    ProductSort = "newest"
	ProductSortPriceAsc  ProductSort = "price_asc"
	ProductSortPriceDesc ProductSort = "price_desc"
	ProductSortName      ProductSort = "name"
)

// ProductFilter narrows a product listing.
type ProductFilter struct {
	Category    string // Normalized category; empty means all.
	Search      string // Case-insensitive match on name.
	SearchDesc  bool   // Also match Search against the description.
	ActiveOnly  bool
	InStockOnly bool
	MinPrice    *int64
	MaxPrice    *int64
	Sort        ProductSort
	Page        Page
}

// ProductRepository defines persistence operations for the catalog.
type ProductRepository interface {
	// FindByID retrieves a product regardless of its active flag.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// List returns one page of products and the total match count.
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, int64, error)

	// Create persists a new product.
	Create(ctx context.Context, product *entity.Product) error

	// Update overwrites every mutable column of a product.
	Update(ctx context.Context, product *entity.Product) error

	// DecrementStock subtracts quantity only while stock >= quantity.
	// It returns ErrProductNotFound for an unknown id and ErrInsufficientStock when stock is short.
	DecrementStock(ctx context.Context, id uuid.UUID, quantity int) error
}
