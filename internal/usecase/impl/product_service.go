package impl

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/constants"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	defaultProductPageLimit      = 10
	defaultAdminProductPageLimit = 100
	maxProductPageLimit          = 100
	maxProductSearchLimit        = 50
)

type productService struct {
	productRepo repository.ProductRepository
	logger      *slog.Logger
}

// ProductServiceParams holds dependencies for ProductService, injected by Fx.
type ProductServiceParams struct {
	fx.In

	ProductRepo repository.ProductRepository
	Logger      *slog.Logger
}

// NewProductService is the constructor for productService.
func NewProductService(params ProductServiceParams) usecase.ProductUsecase {
	return &productService{
		productRepo: params.ProductRepo,
		logger:      params.Logger,
	}
}

func (srv *productService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *productService) ListProducts(ctx context.Context, input *usecase.ListProductsInput) (*usecase.ProductPage, error) {
	return srv.list(ctx, input, true, defaultProductPageLimit)
}

func (srv *productService) AdminListProducts(ctx context.Context, input *usecase.ListProductsInput) (*usecase.ProductPage, error) {
	return srv.list(ctx, input, false, defaultAdminProductPageLimit)
}

func (srv *productService) list(ctx context.Context, input *usecase.ListProductsInput, activeOnly bool, defaultLimit int) (*usecase.ProductPage, error) {
	page := input.Page.Normalize(defaultLimit, maxProductPageLimit)

	products, total, err := srv.productRepo.List(ctx, repository.ProductFilter{
		Category:   categoryFilter(input.Category),
		Search:     strings.TrimSpace(input.Search),
		ActiveOnly: activeOnly,
		Sort:       repository.ProductSortNewest,
		Page:       page.Repository(),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	return &usecase.ProductPage{Products: products, Pagination: usecase.NewPagination(page, total)}, nil
}

// SearchProducts matches name or description among active, in-stock products.
func (srv *productService) SearchProducts(ctx context.Context, input *usecase.SearchProductsInput) ([]*entity.Product, error) {
	limit := input.Limit
	if limit <= 0 || limit > maxProductSearchLimit {
		limit = maxProductSearchLimit
	}

	products, _, err := srv.productRepo.List(ctx, repository.ProductFilter{
		Category:    categoryFilter(input.Category),
		Search:      strings.TrimSpace(input.Query),
		SearchDesc:  true,
		ActiveOnly:  true,
		InStockOnly: true,
		MinPrice:    input.MinPrice,
		MaxPrice:    input.MaxPrice,
		Sort:        parseProductSort(input.Sort),
		Page:        repository.Page{Limit: limit},
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to search products")
	}

	return products, nil
}

// GetProduct returns an active product.
func (srv *productService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := srv.findProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, domainerrors.ErrProductNotFound
	}

	return product, nil
}

func (srv *productService) CreateProduct(ctx context.Context, input *usecase.CreateProductInput) (*entity.Product, error) {
	product := &entity.Product{
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		Price:       input.Price,
		Category:    entity.NormalizeCategory(input.Category),
		Images:      cleanImages(input.Images),
		Stock:       input.Stock,
		IsActive:    true,
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	if err := validateProduct(product); err != nil {
		return nil, err
	}

	if err := srv.productRepo.Create(ctx, product); err != nil {
		return nil, errors.Wrap(err, "failed to create product")
	}
	srv.log(ctx).Info("Product created", slog.String("productID", product.ID.String()), slog.String("name", product.Name))

	return product, nil
}

// UpdateProduct applies a partial update. A stock value overwrites whatever checkout left behind.
func (srv *productService) UpdateProduct(ctx context.Context, id uuid.UUID, input *usecase.UpdateProductInput) (*entity.Product, error) {
	product, err := srv.findProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		product.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		product.Description = strings.TrimSpace(*input.Description)
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.Category != nil {
		product.Category = entity.NormalizeCategory(*input.Category)
	}
	if input.Images != nil {
		product.Images = cleanImages(input.Images)
	}
	if input.Stock != nil {
		product.Stock = *input.Stock
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	if err := validateProduct(product); err != nil {
		return nil, err
	}

	if err := srv.productRepo.Update(ctx, product); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to update product")
	}
	srv.log(ctx).Info("Product updated", slog.String("productID", product.ID.String()))

	return product, nil
}

func (srv *productService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	product, err := srv.findProduct(ctx, id)
	if err != nil {
		return err
	}
	if !product.IsActive {
		return nil
	}

	product.IsActive = false
	if err := srv.productRepo.Update(ctx, product); err != nil {
		return errors.Wrap(err, "failed to deactivate product")
	}
	srv.log(ctx).Info("Product deactivated", slog.String("productID", product.ID.String()))

	return nil
}

func (srv *productService) findProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := srv.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product")
	}

	return product, nil
}

func validateProduct(product *entity.Product) error {
	switch {
	case product.Name == "":
		return domainerrors.ErrValidationFailed.WithDetails("name is required")
	case utf8.RuneCountInString(product.Name) > entity.ProductNameMaxLength:
		return domainerrors.ErrValidationFailed.WithDetails("name is too long")
	case utf8.RuneCountInString(product.Description) > entity.ProductDescriptionMaxLength:
		return domainerrors.ErrValidationFailed.WithDetails("description is too long")
	case product.Price < 0:
		return domainerrors.ErrValidationFailed.WithDetails("price must not be negative")
	case product.Stock < 0:
		return domainerrors.ErrValidationFailed.WithDetails("stock must not be negative")
	default:
		return nil
	}
}

func categoryFilter(raw string) string {
	category := entity.NormalizeCategory(raw)
	if category == constants.CategoryAll {
		return ""
	}

	return category
}

func parseProductSort(raw string) repository.ProductSort {
	switch sort := repository.ProductSort(strings.ToLower(strings.TrimSpace(raw))); sort {
	case repository.ProductSortPriceAsc, repository.ProductSortPriceDesc, repository.ProductSortName:
		return sort
	default:
		return repository.ProductSortNewest
	}
}

func cleanImages(images []string) []string {
	cleaned := make([]string, 0, len(images))
	for _, image := range images {
		if image = strings.TrimSpace(image); image != "" {
			cleaned = append(cleaned, image)
		}
	}

	return cleaned
}
