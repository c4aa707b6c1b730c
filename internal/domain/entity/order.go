package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// orderNumberTimeLayout is the compact timestamp inside order numbers.
	orderNumberTimeLayout = "20060102150405"

	// PaymentProofKeyPrefix marks proofs kept in the blob bucket rather than inline.
	PaymentProofKeyPrefix = "proofs/"
)

// OrderItem is a frozen copy of a cart line taken at checkout.
type OrderItem struct {
	ProductID uuid.UUID
	Name      string
	Price     int64
	Quantity  int
	Image     string
	Product   *Product // Live product, only populated for display.
}

// LineTotal returns price times quantity.
func (i OrderItem) LineTotal() int64 {
	return i.Price * int64(i.Quantity)
}

// ShippingAddress is captured at checkout and never changed afterwards.
type ShippingAddress struct {
	FullName   string
	Phone      string
	Address    string
	City       string
	Province   string
	PostalCode string
	Notes      string
}

// IsComplete reports whether every field except Notes is filled.
func (a *ShippingAddress) IsComplete() bool {
	if a == nil {
		return false
	}

	for _, field := range []string{a.FullName, a.Phone, a.Address, a.City, a.Province, a.PostalCode} {
		if strings.TrimSpace(field) == "" {
			return false
		}
	}

	return true
}

// PaymentDetails holds bank transfer evidence and gateway references.
type PaymentDetails struct {
	TransactionID            string
	PaymentProof             string // Data URL, URL, or blob reference.
	PaymentProofMime         string
	PaymentProofOriginalName string
	PaymentProofUploadedAt   *time.Time
	PaidAt                   *time.Time
}

// HasProof reports whether a proof has been attached.
func (d *PaymentDetails) HasProof() bool {
	return d != nil && d.PaymentProof != ""
}

// HasStoredProof reports whether the proof is a bucket key.
func (d *PaymentDetails) HasStoredProof() bool {
	return d.HasProof() && strings.HasPrefix(d.PaymentProof, PaymentProofKeyPrefix)
}

// OrderCustomer is the owner summary shown in admin listings.
type OrderCustomer struct {
	Name  string
	Email string
}

// Order is a checked-out cart. Totals are computed once at creation.
type Order struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	OrderNumber     string
	Items           []OrderItem
	ShippingAddress ShippingAddress
	PaymentMethod   PaymentMethod
	PaymentStatus   PaymentStatus
	OrderStatus     OrderStatus
	Subtotal        int64
	ShippingCost    int64
	Total           int64
	PaymentDetails  *PaymentDetails
	TrackingNumber  string
	Notes           string
	Customer        *OrderCustomer // Populated on reads that join the owner.
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewOrderNumber builds prefix + yyyyMMddHHmmss + a zero-padded three digit suffix.
func NewOrderNumber(prefix string, now time.Time, suffix int) string {
	return fmt.Sprintf("%s%s%03d", prefix, now.Format(orderNumberTimeLayout), suffix%1000)
}

// NewOrderFromCart snapshots every cart line into a pending order.
func NewOrderFromCart(cart *Cart, address ShippingAddress, method PaymentMethod, shippingCost int64, notes string) *Order {
	items := make([]OrderItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		items = append(items, OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
			Image:     item.Image,
		})
	}

	subtotal := cart.Subtotal()

	return &Order{
		UserID:          cart.UserID,
		Items:           items,
		ShippingAddress: address,
		PaymentMethod:   method,
		PaymentStatus:   PaymentStatusPending,
		OrderStatus:     OrderStatusPending,
		Subtotal:        subtotal,
		ShippingCost:    shippingCost,
		Total:           subtotal + shippingCost,
		Notes:           notes,
	}
}

// IsOwnedBy reports whether userID placed the order.
func (o *Order) IsOwnedBy(userID uuid.UUID) bool {
	return o.UserID == userID
}

// AcceptsPaymentProof reports whether a buyer may attach transfer evidence.
func (o *Order) AcceptsPaymentProof() bool {
	return o.PaymentMethod == PaymentMethodBankTransfer
}

// MergePaymentDetails overwrites the fields set in update and keeps the rest.
// A new proof stamps PaymentProofUploadedAt with now.
func (o *Order) MergePaymentDetails(update PaymentDetails, now time.Time) {
	merged := PaymentDetails{}
	if o.PaymentDetails != nil {
		merged = *o.PaymentDetails
	}

	if update.TransactionID != "" {
		merged.TransactionID = update.TransactionID
	}
	if update.PaymentProofMime != "" {
		merged.PaymentProofMime = update.PaymentProofMime
	}
	if update.PaymentProofOriginalName != "" {
		merged.PaymentProofOriginalName = update.PaymentProofOriginalName
	}
	if update.PaidAt != nil {
		merged.PaidAt = update.PaidAt
	}
	if update.PaymentProof != "" {
		merged.PaymentProof = update.PaymentProof
		uploadedAt := now
		merged.PaymentProofUploadedAt = &uploadedAt
	}

	o.PaymentDetails = &merged
}

// Normalize rewrites legacy status values into canonical ones.
func (o *Order) Normalize() {
	o.OrderStatus = CanonicalOrderStatus(string(o.OrderStatus))
}
