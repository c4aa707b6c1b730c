// Package model holds the GORM persistence models of the storefront schema.
package model

// All returns every model in dependency order, for AutoMigrate.
func All() []any {
	return []any{
		&UserModel{},
		&AuthenticationModel{},
		&RefreshTokenModel{},
		&ProductModel{},
		&CartModel{},
		&CartItemModel{},
		&OrderModel{},
		&OrderItemModel{},
		&OrderEventModel{},
		&ContactMessageModel{},
		&NewsletterSubscriberModel{},
	}
}
