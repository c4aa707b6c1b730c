package model

import (
	"time"

	"github.com/google/uuid"
)

// ProductModel mirrors the 'products' table. Images are stored as a JSON array.
type ProductModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"type:varchar(100);not null"`
	Description string    `gorm:"type:text"`
	Price       int64     `gorm:"not null;check:chk_products_price,price >= 0"`
	Category    string    `gorm:"type:varchar(50);not null;index"`
	Images      []string  `gorm:"type:jsonb;serializer:json"`
	Stock       int       `gorm:"not null;check:chk_products_stock,stock >= 0"`
	IsActive    bool      `gorm:"not null;index"`
	CreatedAt   time.Time `gorm:"index"`
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}
