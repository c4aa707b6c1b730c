package handler

import (
	"io"
	"log/slog"
	"net/http"
	"testing"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	mockUC "storefront/internal/mocks/usecase"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCartHandler(t *testing.T) (*CartHandler, *mockUC.MockCartUsecase) {
	cartUC := mockUC.NewMockCartUsecase(t)

	return NewCartHandler(CartHandlerParams{
		CartUC: cartUC,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}), cartUC
}

func TestCartHandler_AddItem(t *testing.T) {
	productID := uuid.New()

	t.Run("adds item and returns subtotal", func(t *testing.T) {
		h, cartUC := newCartHandler(t)

		c, rec := newContext(t, http.MethodPost, "/cart", map[string]any{"productId": productID.String(), "quantity": 3})
		asShopper(c)

		cartUC.On("AddItem", mock.Anything, shopperID, &usecase.CartItemInput{ProductID: productID, Quantity: 3}).
			Return(&entity.Cart{
				ID:     uuid.New(),
				UserID: shopperID,
				Items:  []entity.CartItem{{ProductID: productID, Name: "Kopi", Price: 12000, Quantity: 3}},
			}, nil).Once()

		require.NoError(t, h.AddItem(c))

		var data CartResponse
		envelope := decodeData(t, rec, &data)
		assert.Equal(t, "Item added to cart", envelope.Message)
		assert.Equal(t, int64(36000), data.Subtotal)
		require.Len(t, data.Items, 1)
		assert.Equal(t, int64(36000), data.Items[0].LineTotal)
	})

	t.Run("missing product id reaches the use case as nil", func(t *testing.T) {
		h, cartUC := newCartHandler(t)

		c, _ := newContext(t, http.MethodPost, "/cart", map[string]any{"quantity": 1})
		asShopper(c)

		cartUC.On("AddItem", mock.Anything, shopperID, &usecase.CartItemInput{ProductID: uuid.Nil, Quantity: 1}).
			Return(nil, domainerrors.ErrProductIDRequired).Once()

		assertErrorCode(t, h.AddItem(c), "PRODUCT_ID_REQUIRED")
	})

	t.Run("malformed product id", func(t *testing.T) {
		h, _ := newCartHandler(t)

		c, _ := newContext(t, http.MethodPost, "/cart", map[string]any{"productId": "abc", "quantity": 1})
		asShopper(c)

		assertErrorCode(t, h.AddItem(c), "VALIDATION_FAILED")
	})

	t.Run("unauthenticated", func(t *testing.T) {
		h, _ := newCartHandler(t)

		c, _ := newContext(t, http.MethodPost, "/cart", map[string]any{"productId": productID.String()})

		assertErrorCode(t, h.AddItem(c), "UNAUTHORIZED")
	})
}

func TestCartHandler_UpdateItem(t *testing.T) {
	h, cartUC := newCartHandler(t)
	productID := uuid.New()

	c, rec := newContext(t, http.MethodPut, "/cart", map[string]any{"productId": productID.String(), "quantity": 0})
	asShopper(c)

	cartUC.On("UpdateItem", mock.Anything, shopperID, &usecase.CartItemInput{ProductID: productID, Quantity: 0}).
		Return(&entity.Cart{ID: uuid.New(), UserID: shopperID}, nil).Once()

	require.NoError(t, h.UpdateItem(c))

	var data CartResponse
	decodeData(t, rec, &data)
	assert.Empty(t, data.Items)
	assert.NotNil(t, data.Items)
	assert.Zero(t, data.Subtotal)
}

func TestCartHandler_RemoveItem(t *testing.T) {
	h, cartUC := newCartHandler(t)
	productID := uuid.New()

	c, rec := newContext(t, http.MethodDelete, "/cart?productId="+productID.String(), nil)
	asShopper(c)

	cartUC.On("RemoveItem", mock.Anything, shopperID, productID).
		Return(&entity.Cart{ID: uuid.New(), UserID: shopperID}, nil).Once()

	require.NoError(t, h.RemoveItem(c))
	assert.Equal(t, "Item removed from cart", decodeEnvelope(t, rec).Message)
}

func TestCartHandler_GetCart(t *testing.T) {
	h, cartUC := newCartHandler(t)
	productID := uuid.New()

	c, rec := newContext(t, http.MethodGet, "/cart", nil)
	asShopper(c)

	cartUC.On("GetCart", mock.Anything, shopperID).Return(&entity.Cart{
		ID:     uuid.New(),
		UserID: shopperID,
		Items: []entity.CartItem{{
			ProductID: productID, Name: "Kopi", Price: 10000, Quantity: 1, Image: "/old.jpg",
			Product: &entity.Product{ID: productID, Name: "Kopi Baru", Price: 15000, Images: []string{"/new.jpg"}, IsActive: true},
		}},
	}, nil).Once()

	require.NoError(t, h.GetCart(c))

	var data CartResponse
	decodeData(t, rec, &data)
	require.Len(t, data.Items, 1)
	assert.Equal(t, int64(10000), data.Items[0].Price)
	require.NotNil(t, data.Items[0].Product)
	assert.Equal(t, "/new.jpg", data.Items[0].Product.Image)
	assert.Equal(t, int64(15000), data.Items[0].Product.Price)
}
