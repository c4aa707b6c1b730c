package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"storefront/internal/delivery/http/response"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"go.uber.org/fx"
)

// ProductHandlerParams holds dependencies for ProductHandler, injected by Fx.
type ProductHandlerParams struct {
	fx.In

	ProductUC usecase.ProductUsecase
	Logger    *slog.Logger
}

// ProductHandler serves the catalog and its admin maintenance.
type ProductHandler struct {
	productUC usecase.ProductUsecase
	logger    *slog.Logger
}

// NewProductHandler is the constructor for ProductHandler.
func NewProductHandler(params ProductHandlerParams) *ProductHandler {
	return &ProductHandler{
		productUC: params.ProductUC,
		logger:    params.Logger,
	}
}

// CreateProductRequest is the body of POST /admin/products. Image is the legacy single image field.
type CreateProductRequest struct {
	Name        string   `json:"name" validate:"required,max=100"`
	Description string   `json:"description" validate:"max=1000"`
	Price       int64    `json:"price" validate:"gte=0"`
	Category    string   `json:"category" validate:"required"`
	Image       string   `json:"image"`
	Images      []string `json:"images"`
	Stock       int      `json:"stock" validate:"gte=0"`
	IsActive    *bool    `json:"isActive"`
}

// UpdateProductRequest is the body of PUT /admin/products/:id. Omitted fields are left untouched.
type UpdateProductRequest struct {
	Name        *string  `json:"name" validate:"omitempty,max=100"`
	Description *string  `json:"description" validate:"omitempty,max=1000"`
	Price       *int64   `json:"price" validate:"omitempty,gte=0"`
	Category    *string  `json:"category"`
	Image       *string  `json:"image"`
	Images      []string `json:"images"`
	Stock       *int     `json:"stock" validate:"omitempty,gte=0"`
	IsActive    *bool    `json:"isActive"`
}

// mergeImages puts the single image field in front of the gallery.
func mergeImages(image string, images []string) []string {
	image = strings.TrimSpace(image)
	if image == "" {
		return images
	}

	merged := []string{image}
	for _, candidate := range images {
		if candidate != image {
			merged = append(merged, candidate)
		}
	}

	return merged
}

func listProductsInput(c echo.Context) *usecase.ListProductsInput {
	return &usecase.ListProductsInput{
		Category: c.QueryParam("category"),
		Search:   c.QueryParam("search"),
		Page:     pageRequest(c),
	}
}

// ListProducts lists active products for the shop.
func (h *ProductHandler) ListProducts(c echo.Context) error {
	page, err := h.productUC.ListProducts(c.Request().Context(), listProductsInput(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Paginated(c, toProductResponses(page.Products), page.Pagination, "")
}

// SearchProducts serves the catalog search box.
func (h *ProductHandler) SearchProducts(c echo.Context) error {
	products, err := h.productUC.SearchProducts(c.Request().Context(), &usecase.SearchProductsInput{
		Query:    c.QueryParam("q"),
		Category: c.QueryParam("category"),
		MinPrice: optionalInt64(c.QueryParam("minPrice")),
		MaxPrice: optionalInt64(c.QueryParam("maxPrice")),
		Sort:     c.QueryParam("sort"),
		Limit:    cast.ToInt(strings.TrimSpace(c.QueryParam("limit"))),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toProductResponses(products), "")
}

// GetProduct returns one active product.
func (h *ProductHandler) GetProduct(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	product, err := h.productUC.GetProduct(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toProductResponse(product), "")
}

// AdminListProducts lists every product including inactive ones.
func (h *ProductHandler) AdminListProducts(c echo.Context) error {
	page, err := h.productUC.AdminListProducts(c.Request().Context(), listProductsInput(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Paginated(c, toProductResponses(page.Products), page.Pagination, "")
}

// CreateProduct adds a catalog entry.
func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req CreateProductRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	product, err := h.productUC.CreateProduct(c.Request().Context(), &usecase.CreateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Images:      mergeImages(req.Image, req.Images),
		Stock:       req.Stock,
		IsActive:    req.IsActive,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toProductResponse(product), "Product created successfully")
}

// UpdateProduct applies a partial update.
func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req UpdateProductRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	images := req.Images
	if req.Image != nil {
		images = mergeImages(*req.Image, req.Images)
	}

	product, err := h.productUC.UpdateProduct(c.Request().Context(), id, &usecase.UpdateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Images:      images,
		Stock:       req.Stock,
		IsActive:    req.IsActive,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toProductResponse(product), "Product updated successfully")
}

// DeleteProduct hides a product from the shop.
func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.productUC.DeleteProduct(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Product deleted successfully")
}
