package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"storefront/internal/delivery/http/response"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// CartHandlerParams holds dependencies for CartHandler, injected by Fx.
type CartHandlerParams struct {
	fx.In

	CartUC usecase.CartUsecase
	Logger *slog.Logger
}

// CartHandler serves the caller's cart.
type CartHandler struct {
	cartUC usecase.CartUsecase
	logger *slog.Logger
}

// NewCartHandler is the constructor for CartHandler.
func NewCartHandler(params CartHandlerParams) *CartHandler {
	return &CartHandler{
		cartUC: params.CartUC,
		logger: params.Logger,
	}
}

// CartItemRequest is the body of POST and PUT /cart.
type CartItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// parseProductID maps an empty id to uuid.Nil so the use case reports it as missing.
func parseProductID(raw string) (uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return uuid.Nil, nil
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, domainerrors.ErrValidationFailed.WithDetails("invalid productId: " + raw)
	}

	return id, nil
}

func (h *CartHandler) bindItem(c echo.Context) (*usecase.CartItemInput, error) {
	var req CartItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return nil, err
	}

	productID, err := parseProductID(req.ProductID)
	if err != nil {
		return nil, err
	}

	return &usecase.CartItemInput{ProductID: productID, Quantity: req.Quantity}, nil
}

// GetCart returns the caller's cart, creating it on first use.
func (h *CartHandler) GetCart(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	cart, err := h.cartUC.GetCart(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toCartResponse(cart), "")
}

// AddItem adds a product to the cart.
func (h *CartHandler) AddItem(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	input, err := h.bindItem(c)
	if err != nil {
		return err
	}

	cart, err := h.cartUC.AddItem(c.Request().Context(), userID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toCartResponse(cart), "Item added to cart")
}

// UpdateItem sets the quantity of a line. Zero or less removes it.
func (h *CartHandler) UpdateItem(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	input, err := h.bindItem(c)
	if err != nil {
		return err
	}

	cart, err := h.cartUC.UpdateItem(c.Request().Context(), userID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toCartResponse(cart), "Cart updated")
}

// RemoveItem drops the line named by the productId query value.
func (h *CartHandler) RemoveItem(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	productID, err := parseProductID(c.QueryParam("productId"))
	if err != nil {
		return err
	}

	cart, err := h.cartUC.RemoveItem(c.Request().Context(), userID, productID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toCartResponse(cart), "Item removed from cart")
}
