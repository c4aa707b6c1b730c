package service

import (
	"io"

	"storefront/internal/domain/entity"
)

// OrderExporter writes orders as a spreadsheet-friendly file.
type OrderExporter interface {
	// ContentType is the MIME type of the produced file.
	ContentType() string

	// Export writes one row per order to w.
	Export(w io.Writer, orders []*entity.Order) error
}
