package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"storefront/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVOrderExporter_Export(t *testing.T) {
	exporter := NewCSVOrderExporter()
	orders := []*entity.Order{
		{
			OrderNumber: "AJ20240102030405007",
			ShippingAddress: entity.ShippingAddress{
				FullName: "Siti Aminah",
				Phone:    "08123456789",
				City:     "Bandung",
			},
			PaymentMethod:  entity.PaymentMethodBankTransfer,
			PaymentStatus:  entity.PaymentStatusPaid,
			OrderStatus:    entity.OrderStatus("Delivered"),
			Subtotal:       65000,
			ShippingCost:   5000,
			Total:          70000,
			TrackingNumber: "JNE123",
			CreatedAt:      time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		},
		{
			OrderNumber:   "AJ20240103030405008",
			Customer:      &entity.OrderCustomer{Name: "Budi", Email: "budi@example.com"},
			PaymentMethod: entity.PaymentMethodCOD,
			PaymentStatus: entity.PaymentStatusPending,
			OrderStatus:   entity.OrderStatusPending,
			CreatedAt:     time.Date(2024, 1, 3, 3, 4, 5, 0, time.UTC),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, exporter.Export(&buf, orders))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "Order Number", records[0][0])
	assert.Equal(t, "Tracking Number", records[0][11])

	first := records[1]
	assert.Equal(t, "AJ20240102030405007", first[0])
	assert.Equal(t, "2024-01-02 10:04", first[1])
	assert.Equal(t, "Siti Aminah", first[2])
	assert.Equal(t, "bank_transfer", first[5])
	assert.Equal(t, "Sudah dibayar", first[6])
	assert.Equal(t, "completed", first[7])
	assert.Equal(t, "Rp65.000", first[8])
	assert.Equal(t, "Rp70.000", first[10])
	assert.Equal(t, "JNE123", first[11])

	assert.Equal(t, "Budi", records[2][2])
	assert.Equal(t, "Belum dibayar", records[2][6])
}

func TestCSVOrderExporter_EmptyKeepsHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewCSVOrderExporter().Export(&buf, nil))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Len(t, records[0], 12)
	assert.Equal(t, "text/csv; charset=utf-8", NewCSVOrderExporter().ContentType())
}
