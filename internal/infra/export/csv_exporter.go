// Package export renders orders into downloadable files.
package export

import (
	"io"
	"time"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"
	"storefront/internal/errors"

	"github.com/gocarina/gocsv"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	csvContentType  = "text/csv; charset=utf-8"
	createdAtLayout = "2006-01-02 15:04"
)

// storeTimezone is Western Indonesia Time, where the shop operates.
var storeTimezone = time.FixedZone("WIB", 7*60*60)

type orderRow struct {
	OrderNumber   string `csv:"Order Number"`
	CreatedAt     string `csv:"Created At"`
	CustomerName  string `csv:"Customer"`
	Phone         string `csv:"Phone"`
	City          string `csv:"City"`
	PaymentMethod string `csv:"Payment Method"`
	PaymentStatus string `csv:"Payment Status"`
	OrderStatus   string `csv:"Order Status"`
	Subtotal      string `csv:"Subtotal"`
	ShippingCost  string `csv:"Shipping Cost"`
	Total         string `csv:"Total"`
	Tracking      string `csv:"Tracking Number"`
}

type csvOrderExporter struct {
	printer *message.Printer
}

// NewCSVOrderExporter returns an exporter that formats amounts as Rupiah.
func NewCSVOrderExporter() service.OrderExporter {
	return &csvOrderExporter{printer: message.NewPrinter(language.Indonesian)}
}

func (e *csvOrderExporter) ContentType() string {
	return csvContentType
}

func (e *csvOrderExporter) Export(w io.Writer, orders []*entity.Order) error {
	rows := make([]*orderRow, 0, len(orders))
	for _, order := range orders {
		rows = append(rows, e.toRow(order))
	}

	if err := gocsv.Marshal(rows, w); err != nil {
		return errors.Wrap(err, "failed to write csv")
	}

	return nil
}

func (e *csvOrderExporter) toRow(order *entity.Order) *orderRow {
	customer := order.ShippingAddress.FullName
	if order.Customer != nil && order.Customer.Name != "" {
		customer = order.Customer.Name
	}

	return &orderRow{
		OrderNumber:   order.OrderNumber,
		CreatedAt:     order.CreatedAt.In(storeTimezone).Format(createdAtLayout),
		CustomerName:  customer,
		Phone:         order.ShippingAddress.Phone,
		City:          order.ShippingAddress.City,
		PaymentMethod: string(order.PaymentMethod),
		PaymentStatus: order.PaymentStatus.Label(),
		OrderStatus:   string(entity.CanonicalOrderStatus(string(order.OrderStatus))),
		Subtotal:      e.rupiah(order.Subtotal),
		ShippingCost:  e.rupiah(order.ShippingCost),
		Total:         e.rupiah(order.Total),
		Tracking:      order.TrackingNumber,
	}
}

func (e *csvOrderExporter) rupiah(amount int64) string {
	return e.printer.Sprintf("Rp%d", amount)
}
