package handler

import (
	"log/slog"
	"mime"
	"net/http"

	"storefront/internal/delivery/http/response"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// OrderHandlerParams holds dependencies for OrderHandler, injected by Fx.
type OrderHandlerParams struct {
	fx.In

	OrderUC usecase.OrderUsecase
	Logger  *slog.Logger
}

// OrderHandler serves checkout, buyer order reads and the admin order console.
type OrderHandler struct {
	orderUC usecase.OrderUsecase
	logger  *slog.Logger
}

// NewOrderHandler is the constructor for OrderHandler.
func NewOrderHandler(params OrderHandlerParams) *OrderHandler {
	return &OrderHandler{
		orderUC: params.OrderUC,
		logger:  params.Logger,
	}
}

// PaymentDetailsPayload is the payment evidence a client may submit.
type PaymentDetailsPayload struct {
	TransactionID            string `json:"transactionId"`
	PaymentProof             string `json:"paymentProof"`
	PaymentProofMime         string `json:"paymentProofMime"`
	PaymentProofOriginalName string `json:"paymentProofOriginalName"`
}

func (p *PaymentDetailsPayload) toInput() *usecase.PaymentDetailsInput {
	if p == nil {
		return nil
	}

	return &usecase.PaymentDetailsInput{
		TransactionID:            p.TransactionID,
		PaymentProof:             p.PaymentProof,
		PaymentProofMime:         p.PaymentProofMime,
		PaymentProofOriginalName: p.PaymentProofOriginalName,
	}
}

// CreateOrderRequest is the body of POST /orders.
type CreateOrderRequest struct {
	ShippingAddress *ShippingAddressPayload `json:"shippingAddress"`
	PaymentMethod   string                  `json:"paymentMethod"`
	PaymentDetails  *PaymentDetailsPayload  `json:"paymentDetails"`
	Notes           string                  `json:"notes"`
}

// UpdateOrderRequest is the body of PUT /orders/:id. Status fields only apply for admins.
type UpdateOrderRequest struct {
	OrderStatus    *string                `json:"orderStatus"`
	PaymentStatus  *string                `json:"paymentStatus"`
	TrackingNumber *string                `json:"trackingNumber"`
	PaymentDetails *PaymentDetailsPayload `json:"paymentDetails"`
}

// UpdateOrderStatusRequest is the body of PUT /admin/orders/:id.
type UpdateOrderStatusRequest struct {
	OrderStatus    *string `json:"orderStatus"`
	PaymentStatus  *string `json:"paymentStatus"`
	TrackingNumber *string `json:"trackingNumber"`
}

// CreateOrder checks out the caller's cart.
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	var req CreateOrderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	order, err := h.orderUC.Checkout(c.Request().Context(), &usecase.CheckoutInput{
		UserID:          userID,
		ShippingAddress: req.ShippingAddress.toEntity(),
		PaymentMethod:   req.PaymentMethod,
		PaymentDetails:  req.PaymentDetails.toInput(),
		Notes:           req.Notes,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toOrderResponse(order), "Order created successfully")
}

// ListMyOrders lists the caller's orders, newest first.
func (h *OrderHandler) ListMyOrders(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	page, err := h.orderUC.ListMyOrders(c.Request().Context(), userID, pageRequest(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Paginated(c, toOrderResponses(page.Orders), page.Pagination, "")
}

// ListStatuses returns the status labels used by both consoles.
func (h *OrderHandler) ListStatuses(c echo.Context) error {
	return response.Success(c, http.StatusOK, newStatusesResponse(), "")
}

// GetOrder returns one order. Buyers only see their own.
func (h *OrderHandler) GetOrder(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}

	id, err := pathID(c)
	if err != nil {
		return err
	}

	order, err := h.orderUC.GetOrder(c.Request().Context(), actor, id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toOrderResponse(order), "")
}

// UpdateOrder lets buyers attach payment details and admins change statuses.
func (h *OrderHandler) UpdateOrder(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}

	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req UpdateOrderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	order, err := h.orderUC.UpdateOrder(c.Request().Context(), actor, id, &usecase.UpdateOrderInput{
		OrderStatus:    req.OrderStatus,
		PaymentStatus:  req.PaymentStatus,
		TrackingNumber: req.TrackingNumber,
		PaymentDetails: req.PaymentDetails.toInput(),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toOrderResponse(order), "Order updated successfully")
}

// DeleteOrder removes an order. Admin only.
func (h *OrderHandler) DeleteOrder(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}

	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.orderUC.DeleteOrder(c.Request().Context(), actor, id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Order deleted successfully")
}

// OrderQRCode renders the tracking QR code of an order as PNG.
func (h *OrderHandler) OrderQRCode(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}

	id, err := pathID(c)
	if err != nil {
		return err
	}

	png, err := h.orderUC.OrderQRCode(c.Request().Context(), actor, id)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}

// PaymentProof streams a proof kept in the proof bucket.
func (h *OrderHandler) PaymentProof(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}

	id, err := pathID(c)
	if err != nil {
		return err
	}

	file, err := h.orderUC.PaymentProof(c.Request().Context(), actor, id)
	if err != nil {
		return errors.WithStack(err)
	}
	defer file.Body.Close()

	return c.Stream(http.StatusOK, file.ContentType, file.Body)
}

func listOrdersInput(c echo.Context) *usecase.ListOrdersInput {
	status := c.QueryParam("status")
	if status == "" {
		status = c.QueryParam("orderStatus")
	}

	return &usecase.ListOrdersInput{
		Status:        status,
		PaymentStatus: c.QueryParam("paymentStatus"),
		From:          c.QueryParam("from"),
		To:            c.QueryParam("to"),
		Page:          pageRequest(c),
	}
}

// AdminListOrders is the filtered, paginated admin order listing.
func (h *OrderHandler) AdminListOrders(c echo.Context) error {
	page, err := h.orderUC.ListOrders(c.Request().Context(), listOrdersInput(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Paginated(c, toOrderResponses(page.Orders), page.Pagination, "")
}

// AdminUpdateOrderStatus is the admin status mutation.
func (h *OrderHandler) AdminUpdateOrderStatus(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}

	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req UpdateOrderStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	order, err := h.orderUC.UpdateOrderStatus(c.Request().Context(), actor, id, &usecase.UpdateOrderStatusInput{
		OrderStatus:    req.OrderStatus,
		PaymentStatus:  req.PaymentStatus,
		TrackingNumber: req.TrackingNumber,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toOrderResponse(order), "Order updated successfully")
}

// AdminExportOrders downloads the filtered orders as a file.
func (h *OrderHandler) AdminExportOrders(c echo.Context) error {
	export, err := h.orderUC.ExportOrders(c.Request().Context(), listOrdersInput(c))
	if err != nil {
		return errors.WithStack(err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		mime.FormatMediaType("attachment", map[string]string{"filename": export.Filename}))

	return c.Blob(http.StatusOK, export.ContentType, export.Body)
}

// AdminOrderHistory lists the recorded events of an order, oldest first.
func (h *OrderHandler) AdminOrderHistory(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	events, err := h.orderUC.OrderHistory(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toOrderEventResponses(events), "")
}
