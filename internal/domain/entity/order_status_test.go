package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalOrderStatus(t *testing.T) {
	tests := []struct {
		raw  string
		want OrderStatus
	}{
		{raw: "", want: OrderStatusPending},
		{raw: "  ", want: OrderStatusPending},
		{raw: "delivered", want: OrderStatusCompleted},
		{raw: "Delivered", want: OrderStatusCompleted},
		{raw: " SHIPPED ", want: OrderStatusShipped},
		{raw: "cancelled", want: OrderStatusCancelled},
		{raw: "lost", want: OrderStatus("lost")},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, CanonicalOrderStatus(tt.raw))
		})
	}
}

func TestParseOrderStatus(t *testing.T) {
	status, ok := ParseOrderStatus("DELIVERED")
	assert.True(t, ok)
	assert.Equal(t, OrderStatusCompleted, status)

	_, ok = ParseOrderStatus("refunded")
	assert.False(t, ok)
}

func TestOrderStatus_StoredForms(t *testing.T) {
	assert.ElementsMatch(t, []string{"completed", "delivered"}, OrderStatusCompleted.StoredForms())
	assert.ElementsMatch(t, []string{"pending", ""}, OrderStatusPending.StoredForms())
	assert.Equal(t, []string{"shipped"}, OrderStatusShipped.StoredForms())
}

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from OrderStatus
		to   OrderStatus
		want bool
	}{
		{from: OrderStatusPending, to: OrderStatusProcessing, want: true},
		{from: OrderStatusProcessing, to: OrderStatusShipped, want: true},
		{from: OrderStatusShipped, to: OrderStatusCompleted, want: true},
		{from: OrderStatusShipped, to: "delivered", want: true},
		{from: OrderStatusPending, to: OrderStatusShipped, want: false},
		{from: OrderStatusProcessing, to: OrderStatusPending, want: false},
		{from: OrderStatusPending, to: OrderStatusCancelled, want: true},
		{from: OrderStatusShipped, to: OrderStatusCancelled, want: true},
		{from: OrderStatusCompleted, to: OrderStatusCancelled, want: false},
		{from: "delivered", to: OrderStatusCancelled, want: false},
		{from: OrderStatusCancelled, to: OrderStatusPending, want: false},
		{from: OrderStatusCompleted, to: OrderStatusCompleted, want: true},
		{from: "", to: OrderStatusProcessing, want: true},
		{from: OrderStatusPending, to: "lost", want: false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestOrderStatus_Badge(t *testing.T) {
	assert.Equal(t, StatusBadge{Label: "Completed", Color: "green"}, OrderStatus("delivered").Badge())
	assert.Equal(t, StatusBadge{Label: "Shipped", Color: "purple"}, OrderStatusShipped.Badge())
	assert.Equal(t, "Pending", OrderStatus("unknown").Label())
}

func TestPaymentStatus(t *testing.T) {
	status, ok := ParsePaymentStatus(" Paid ")
	assert.True(t, ok)
	assert.Equal(t, PaymentStatusPaid, status)
	assert.Equal(t, "Sudah dibayar", status.Label())

	_, ok = ParsePaymentStatus("partial")
	assert.False(t, ok)
	assert.Equal(t, StatusBadge{Label: "partial", Color: "gray"}, PaymentStatus("partial").Badge())

	assert.Equal(t, "Pesanan dibatalkan", PaymentStatusFailed.Label())
}

func TestParsePaymentMethod(t *testing.T) {
	for _, raw := range []string{"cod", "BANK_TRANSFER", " midtrans "} {
		_, ok := ParsePaymentMethod(raw)
		assert.True(t, ok, raw)
	}

	_, ok := ParsePaymentMethod("paypal")
	assert.False(t, ok)
}
