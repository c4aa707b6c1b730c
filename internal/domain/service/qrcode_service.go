package service

import (
	"github.com/google/uuid"
)

// OrderQRPayload is the JSON encoded in an order tracking QR code.
type OrderQRPayload struct {
	Type        string `json:"type"`
	OrderID     string `json:"order_id"`
	OrderNumber string `json:"order_number"`
	URL         string `json:"url"`
}

// QRCodeService defines the interface for QR code generation and parsing services
type QRCodeService interface {
	// GenerateOrderQR renders a PNG QR code that links to the order page
	GenerateOrderQR(orderID uuid.UUID, orderNumber string) ([]byte, error)

	// ParseOrderQR parses QR code data and returns the order ID
	ParseOrderQR(qrData string) (uuid.UUID, error)
}
