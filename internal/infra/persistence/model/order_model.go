package model

import (
	"time"

	"github.com/google/uuid"
)

// ShippingAddressColumns are embedded into 'orders' with the shipping_ prefix.
type ShippingAddressColumns struct {
	FullName   string `gorm:"type:varchar(100)"`
	Phone      string `gorm:"type:varchar(30)"`
	Address    string `gorm:"type:text"`
	City       string `gorm:"type:varchar(100)"`
	Province   string `gorm:"type:varchar(100)"`
	PostalCode string `gorm:"type:varchar(20)"`
	Notes      string `gorm:"type:text"`
}

// PaymentColumns are embedded into 'orders' with the payment_ prefix.
type PaymentColumns struct {
	TransactionID     string `gorm:"type:varchar(100)"`
	Proof             string `gorm:"type:text"`
	ProofMime         string `gorm:"type:varchar(100)"`
	ProofOriginalName string `gorm:"type:varchar(255)"`
	ProofUploadedAt   *time.Time
	PaidAt            *time.Time
}

// OrderModel mirrors the 'orders' table.
type OrderModel struct {
	ID              uuid.UUID              `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID          uuid.UUID              `gorm:"type:uuid;not null;index"`
	OrderNumber     string                 `gorm:"type:varchar(40);not null;uniqueIndex"`
	ShippingAddress ShippingAddressColumns `gorm:"embedded;embeddedPrefix:shipping_"`
	PaymentMethod   string                 `gorm:"type:varchar(30);not null"`
	PaymentStatus   string                 `gorm:"type:varchar(20);not null;index"`
	OrderStatus     string                 `gorm:"type:varchar(20);not null;index"`
	Subtotal        int64                  `gorm:"not null"`
	ShippingCost    int64                  `gorm:"not null"`
	Total           int64                  `gorm:"not null"`
	Payment         PaymentColumns         `gorm:"embedded;embeddedPrefix:payment_"`
	TrackingNumber  string                 `gorm:"type:varchar(100)"`
	Notes           string                 `gorm:"type:text"`
	CreatedAt       time.Time              `gorm:"index"`
	UpdatedAt       time.Time

	Items []OrderItemModel `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	User  *UserModel       `gorm:"foreignKey:UserID"`
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel mirrors the 'order_items' table, a frozen copy of a cart line.
type OrderItemModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"type:varchar(100);not null"`
	Price     int64     `gorm:"not null"`
	Quantity  int       `gorm:"not null"`
	Image     string    `gorm:"type:text"`
	Position  int       `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (OrderItemModel) TableName() string {
	return "order_items"
}

// OrderEventModel mirrors the 'order_events' audit table.
type OrderEventModel struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MessageID     string     `gorm:"type:varchar(100);not null;uniqueIndex"`
	Type          string     `gorm:"type:varchar(50);not null"`
	OrderID       uuid.UUID  `gorm:"type:uuid;not null;index"`
	OrderNumber   string     `gorm:"type:varchar(40)"`
	ActorID       *uuid.UUID `gorm:"type:uuid"`
	OrderStatus   string     `gorm:"type:varchar(20)"`
	PaymentStatus string     `gorm:"type:varchar(20)"`
	Total         int64
	OccurredAt    time.Time `gorm:"not null"`
	CreatedAt     time.Time
}

// TableName explicitly sets the table name for GORM.
func (OrderEventModel) TableName() string {
	return "order_events"
}
