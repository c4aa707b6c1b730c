package entity

import (
	"time"

	"github.com/google/uuid"
)

// CartItem freezes the product name, price and image at the moment it was added.
type CartItem struct {
	ProductID uuid.UUID
	Name      string
	Price     int64
	Quantity  int
	Image     string
	Product   *Product // Live product, only populated for display.
}

// LineTotal returns price times quantity.
func (i CartItem) LineTotal() int64 {
	return i.Price * int64(i.Quantity)
}

// Cart is the single shopping cart of a user.
type Cart struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Items     []CartItem
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return c == nil || len(c.Items) == 0
}

// Subtotal sums the snapshot prices of all lines.
func (c *Cart) Subtotal() int64 {
	if c == nil {
		return 0
	}

	var subtotal int64
	for _, item := range c.Items {
		subtotal += item.LineTotal()
	}

	return subtotal
}

// AddItem increments an existing line or appends a new one snapshotting product.
// An existing line keeps the snapshot taken when it was first added.
func (c *Cart) AddItem(product *Product, quantity int) {
	for i := range c.Items {
		if c.Items[i].ProductID == product.ID {
			c.Items[i].Quantity += quantity

			return
		}
	}

	c.Items = append(c.Items, CartItem{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		Quantity:  quantity,
		Image:     product.PrimaryImage(),
	})
}

// SetQuantity overwrites the quantity of a line, removing it when quantity <= 0.
// It returns false when the product is not in the cart.
func (c *Cart) SetQuantity(productID uuid.UUID, quantity int) bool {
	for i := range c.Items {
		if c.Items[i].ProductID != productID {
			continue
		}

		if quantity <= 0 {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
		} else {
			c.Items[i].Quantity = quantity
		}

		return true
	}

	return false
}

// RemoveItem drops the line for productID if present.
func (c *Cart) RemoveItem(productID uuid.UUID) {
	kept := c.Items[:0]
	for _, item := range c.Items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	c.Items = kept
}

// Clear empties the cart but keeps the cart itself.
func (c *Cart) Clear() {
	c.Items = []CartItem{}
}
