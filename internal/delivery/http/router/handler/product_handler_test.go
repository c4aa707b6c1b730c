package handler

import (
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	mockUC "storefront/internal/mocks/usecase"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newProductHandler(t *testing.T) (*ProductHandler, *mockUC.MockProductUsecase) {
	productUC := mockUC.NewMockProductUsecase(t)

	return NewProductHandler(ProductHandlerParams{
		ProductUC: productUC,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}), productUC
}

func TestMergeImages(t *testing.T) {
	tests := []struct {
		name   string
		image  string
		images []string
		want   []string
	}{
		{name: "no single image", images: []string{"/a.jpg"}, want: []string{"/a.jpg"}},
		{name: "prepends single image", image: "/main.jpg", images: []string{"/a.jpg"}, want: []string{"/main.jpg", "/a.jpg"}},
		{name: "drops duplicate", image: "/a.jpg", images: []string{"/b.jpg", "/a.jpg"}, want: []string{"/a.jpg", "/b.jpg"}},
		{name: "blank single image", image: "  ", images: nil, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mergeImages(tt.image, tt.images))
		})
	}
}

func TestProductHandler_ListProducts(t *testing.T) {
	h, productUC := newProductHandler(t)

	c, rec := newContext(t, http.MethodGet, "/products?category=KOPI&search=arabika&page=1&limit=12", nil)

	productUC.On("ListProducts", mock.Anything, &usecase.ListProductsInput{
		Category: "KOPI",
		Search:   "arabika",
		Page:     usecase.PageRequest{Page: 1, Limit: 12},
	}).Return(&usecase.ProductPage{
		Products:   []*entity.Product{{ID: uuid.New(), Name: "Arabika", Price: 30000, Category: "KOPI", IsActive: true}},
		Pagination: usecase.NewPagination(usecase.PageRequest{Page: 1, Limit: 12}, 1),
	}, nil).Once()

	require.NoError(t, h.ListProducts(c))

	var data []ProductResponse
	envelope := decodeData(t, rec, &data)
	require.Len(t, data, 1)
	assert.NotNil(t, data[0].Images)
	assert.NotEmpty(t, data[0].Image)
	require.NotNil(t, envelope.Pagination)
	assert.Equal(t, 1, envelope.Pagination.Pages)
}

func TestProductHandler_SearchProducts(t *testing.T) {
	h, productUC := newProductHandler(t)

	c, _ := newContext(t, http.MethodGet, "/products/search?q=teh&minPrice=abc&maxPrice=50000&sort=price_asc&limit=5", nil)

	productUC.On("SearchProducts", mock.Anything, mock.MatchedBy(func(input *usecase.SearchProductsInput) bool {
		return input.Query == "teh" &&
			input.MinPrice == nil &&
			input.MaxPrice != nil && *input.MaxPrice == 50000 &&
			input.Sort == "price_asc" &&
			input.Limit == 5
	})).Return([]*entity.Product{}, nil).Once()

	require.NoError(t, h.SearchProducts(c))
}

func TestProductHandler_CreateProduct(t *testing.T) {
	t.Run("validation failure lists every field", func(t *testing.T) {
		h, _ := newProductHandler(t)

		c, _ := newContext(t, http.MethodPost, "/admin/products", map[string]any{
			"name":  strings.Repeat("x", 101),
			"price": -1,
		})
		asAdmin(c)

		err := h.CreateProduct(c)
		assertErrorCode(t, err, "VALIDATION_FAILED")

		var appErr domainerrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Contains(t, appErr.Details(), "name must be at most 100")
		assert.Contains(t, appErr.Details(), "price must be greater than or equal to 0")
		assert.Contains(t, appErr.Details(), "category is required")
	})

	t.Run("creates with merged images", func(t *testing.T) {
		h, productUC := newProductHandler(t)

		c, rec := newContext(t, http.MethodPost, "/admin/products", map[string]any{
			"name":     "Teh Melati",
			"price":    15000,
			"category": "TEH",
			"image":    "/main.jpg",
			"images":   []string{"/side.jpg"},
			"stock":    10,
		})
		asAdmin(c)

		productUC.On("CreateProduct", mock.Anything, &usecase.CreateProductInput{
			Name:     "Teh Melati",
			Price:    15000,
			Category: "TEH",
			Images:   []string{"/main.jpg", "/side.jpg"},
			Stock:    10,
		}).Return(&entity.Product{
			ID: uuid.New(), Name: "Teh Melati", Price: 15000, Category: "TEH",
			Images: []string{"/main.jpg", "/side.jpg"}, Stock: 10, IsActive: true,
		}, nil).Once()

		require.NoError(t, h.CreateProduct(c))

		assert.Equal(t, http.StatusCreated, rec.Code)
		var data ProductResponse
		decodeData(t, rec, &data)
		assert.Equal(t, "/main.jpg", data.Image)
		assert.True(t, data.IsActive)
	})
}

func TestProductHandler_UpdateProduct(t *testing.T) {
	h, productUC := newProductHandler(t)
	id := uuid.New()

	c, _ := newContext(t, http.MethodPut, "/admin/products/"+id.String(), map[string]any{"stock": 4, "isActive": false})
	asAdmin(withID(c, id.String()))

	productUC.On("UpdateProduct", mock.Anything, id, mock.MatchedBy(func(input *usecase.UpdateProductInput) bool {
		return input.Name == nil &&
			input.Images == nil &&
			input.Stock != nil && *input.Stock == 4 &&
			input.IsActive != nil && !*input.IsActive
	})).Return(&entity.Product{ID: id, Stock: 4}, nil).Once()

	require.NoError(t, h.UpdateProduct(c))
}

func TestProductHandler_GetProduct_NotFound(t *testing.T) {
	h, productUC := newProductHandler(t)
	id := uuid.New()

	c, _ := newContext(t, http.MethodGet, "/products/"+id.String(), nil)
	withID(c, id.String())

	productUC.On("GetProduct", mock.Anything, id).Return(nil, domainerrors.ErrProductNotFound).Once()

	assertErrorCode(t, h.GetProduct(c), "PRODUCT_NOT_FOUND")
}
