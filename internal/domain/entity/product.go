package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// ProductNameMaxLength bounds Product.Name.
	ProductNameMaxLength = 100
	// ProductDescriptionMaxLength bounds Product.Description.
	ProductDescriptionMaxLength = 1000
	// productImagePlaceholder is snapshotted into carts when a product has no image.
	productImagePlaceholder = "/gambarProduct/placeholder.jpg"
)

// Product is a catalog entry. Price is in minor currency units.
type Product struct {
	ID          uuid.UUID
	Name        string
	Description string
	Price       int64
	Category    string
	Images      []string
	Stock       int
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NormalizeCategory trims and upper-cases a category name.
func NormalizeCategory(category string) string {
	return strings.ToUpper(strings.TrimSpace(category))
}

// PrimaryImage returns the first image or the placeholder.
func (p *Product) PrimaryImage() string {
	for _, image := range p.Images {
		if strings.TrimSpace(image) != "" {
			return image
		}
	}

	return productImagePlaceholder
}

// IsLowStock reports whether stock is under threshold.
func (p *Product) IsLowStock(threshold int) bool {
	return p.Stock < threshold
}
