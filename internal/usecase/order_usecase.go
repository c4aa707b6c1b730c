package usecase

import (
	"context"
	"io"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// Actor is the authenticated caller of an order operation.
type Actor struct {
	UserID  uuid.UUID
	IsAdmin bool
}

// PaymentDetailsInput is the payment evidence a client may submit.
type PaymentDetailsInput struct {
	TransactionID            string
	PaymentProof             string // Data URL or URL.
	PaymentProofMime         string
	PaymentProofOriginalName string
}

// CheckoutInput turns the caller's cart into an order.
type CheckoutInput struct {
	UserID          uuid.UUID
	ShippingAddress *entity.ShippingAddress
	PaymentMethod   string
	PaymentDetails  *PaymentDetailsInput // Only kept for bank transfer.
	Notes           string
}

// UpdateOrderInput is the body of PUT /orders/{id}. Status fields only apply for admins.
type UpdateOrderInput struct {
	OrderStatus    *string
	PaymentStatus  *string
	TrackingNumber *string
	PaymentDetails *PaymentDetailsInput
}

// UpdateOrderStatusInput is the admin status mutation. One of the statuses is required.
type UpdateOrderStatusInput struct {
	OrderStatus    *string
	PaymentStatus  *string
	TrackingNumber *string
}

// ListOrdersInput filters the admin order listing and export.
type ListOrdersInput struct {
	Status        string
	PaymentStatus string
	From          string // Any common date layout.
	To            string // A date without time covers the whole day.
	Page          PageRequest
}

// OrderPage is one page of orders.
type OrderPage struct {
	Orders     []*entity.Order
	Pagination Pagination
}

// OrderExport is a rendered export file.
type OrderExport struct {
	ContentType string
	Filename    string
	Body        []byte
}

// PaymentProofFile is a stored proof opened for download. The caller closes Body.
type PaymentProofFile struct {
	ContentType string
	Body        io.ReadCloser
}

// OrderUsecase is the order workflow: checkout, buyer reads and proof upload, admin mutation.
type OrderUsecase interface {
	Checkout(ctx context.Context, input *CheckoutInput) (*entity.Order, error)
	ListMyOrders(ctx context.Context, userID uuid.UUID, page PageRequest) (*OrderPage, error)
	GetOrder(ctx context.Context, actor Actor, id uuid.UUID) (*entity.Order, error)
	UpdateOrder(ctx context.Context, actor Actor, id uuid.UUID, input *UpdateOrderInput) (*entity.Order, error)
	UpdateOrderStatus(ctx context.Context, actor Actor, id uuid.UUID, input *UpdateOrderStatusInput) (*entity.Order, error)
	DeleteOrder(ctx context.Context, actor Actor, id uuid.UUID) error

	ListOrders(ctx context.Context, input *ListOrdersInput) (*OrderPage, error)
	ExportOrders(ctx context.Context, input *ListOrdersInput) (*OrderExport, error)
	OrderHistory(ctx context.Context, id uuid.UUID) ([]*entity.OrderEvent, error)

	OrderQRCode(ctx context.Context, actor Actor, id uuid.UUID) ([]byte, error)
	PaymentProof(ctx context.Context, actor Actor, id uuid.UUID) (*PaymentProofFile, error)
}
