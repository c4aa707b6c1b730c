package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCart_AddItem(t *testing.T) {
	product := &Product{ID: uuid.New(), Name: "Kopi", Price: 20000, Images: []string{"", "/kopi.jpg"}}
	cart := &Cart{}

	cart.AddItem(product, 1)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "/kopi.jpg", cart.Items[0].Image)

	// The first snapshot wins even when the product changes.
	product.Price = 25000
	cart.AddItem(product, 2)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)
	assert.Equal(t, int64(20000), cart.Items[0].Price)
	assert.Equal(t, int64(60000), cart.Subtotal())
}

func TestCart_AddItemWithoutImage(t *testing.T) {
	cart := &Cart{}
	cart.AddItem(&Product{ID: uuid.New(), Name: "Teh", Price: 1000}, 1)

	assert.Equal(t, productImagePlaceholder, cart.Items[0].Image)
}

func TestCart_SetQuantity(t *testing.T) {
	first, second := uuid.New(), uuid.New()
	cart := &Cart{Items: []CartItem{
		{ProductID: first, Price: 1000, Quantity: 1},
		{ProductID: second, Price: 2000, Quantity: 1},
	}}

	assert.True(t, cart.SetQuantity(first, 4))
	assert.Equal(t, 4, cart.Items[0].Quantity)

	assert.True(t, cart.SetQuantity(first, 0))
	require.Len(t, cart.Items, 1)
	assert.Equal(t, second, cart.Items[0].ProductID)

	assert.False(t, cart.SetQuantity(uuid.New(), 1))
}

func TestCart_RemoveAndClear(t *testing.T) {
	first, second := uuid.New(), uuid.New()
	cart := &Cart{Items: []CartItem{{ProductID: first}, {ProductID: second}}}

	cart.RemoveItem(first)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, second, cart.Items[0].ProductID)

	cart.RemoveItem(uuid.New())
	assert.Len(t, cart.Items, 1)

	cart.Clear()
	assert.True(t, cart.IsEmpty())
	assert.NotNil(t, cart.Items)

	var missing *Cart
	assert.True(t, missing.IsEmpty())
	assert.Zero(t, missing.Subtotal())
}

func TestRolesFromStrings(t *testing.T) {
	roles := RolesFromStrings([]string{"user", "root", "admin"})

	assert.Equal(t, Roles{RoleUser, RoleAdmin}, roles)
	assert.True(t, roles.Contains(RoleAdmin))
	assert.Equal(t, []string{"user", "admin"}, roles.ToStrings())
	assert.Equal(t, Roles{RoleUser, RoleAdmin}, (&User{Role: RoleAdmin}).Roles())
	assert.Equal(t, Roles{RoleUser}, (&User{Role: RoleUser}).Roles())
}
