package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// ListProductsInput filters the shop catalog and the admin catalog.
type ListProductsInput struct {
	Category string // "SEMUA" or empty means every category.
	Search   string
	Page     PageRequest
}

// SearchProductsInput drives the catalog search box.
type SearchProductsInput struct {
	Query    string
	Category string
	MinPrice *int64
	MaxPrice *int64
	Sort     string
	Limit    int
}

// CreateProductInput defines a new catalog entry.
type CreateProductInput struct {
	Name        string
	Description string
	Price       int64
	Category    string
	Images      []string
	Stock       int
	IsActive    *bool // Defaults to true.
}

// UpdateProductInput holds a partial product update. Nil fields are left untouched.
type UpdateProductInput struct {
	Name        *string
	Description *string
	Price       *int64
	Category    *string
	Images      []string // Replaces the gallery when non-nil.
	Stock       *int
	IsActive    *bool
}

// ProductPage is one page of products.
type ProductPage struct {
	Products   []*entity.Product
	Pagination Pagination
}

// ProductUsecase serves the catalog to shoppers and its maintenance to admins.
type ProductUsecase interface {
	ListProducts(ctx context.Context, input *ListProductsInput) (*ProductPage, error)
	SearchProducts(ctx context.Context, input *SearchProductsInput) ([]*entity.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	AdminListProducts(ctx context.Context, input *ListProductsInput) (*ProductPage, error)
	CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, input *UpdateProductInput) (*entity.Product, error)
	// DeleteProduct hides the product from the shop. Existing carts and orders keep their snapshots.
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}
