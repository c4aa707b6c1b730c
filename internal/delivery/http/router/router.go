// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"storefront/internal/delivery/http/middleware"
	"storefront/internal/delivery/http/router/handler"
	"storefront/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	ProductHandler *handler.ProductHandler
	CartHandler    *handler.CartHandler
	OrderHandler   *handler.OrderHandler
	ContactHandler *handler.ContactHandler
	UserHandler    *handler.UserHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	productHandler *handler.ProductHandler
	cartHandler    *handler.CartHandler
	orderHandler   *handler.OrderHandler
	contactHandler *handler.ContactHandler
	userHandler    *handler.UserHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		productHandler: params.ProductHandler,
		cartHandler:    params.CartHandler,
		orderHandler:   params.OrderHandler,
		contactHandler: params.ContactHandler,
		userHandler:    params.UserHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.POST("/google", r.authHandler.GoogleLogin)
		authGroup.POST("/refresh", r.authHandler.RefreshToken)
		authGroup.POST("/logout", r.authHandler.Logout)
		authGroup.GET("/me", r.authHandler.Me, r.authMiddleware.Authenticate)
	}

	// Public storefront
	productsGroup := e.Group("/products")
	{
		productsGroup.GET("", r.productHandler.ListProducts)
		productsGroup.GET("/search", r.productHandler.SearchProducts)
		productsGroup.GET("/:id", r.productHandler.GetProduct)
	}
	e.POST("/contact", r.contactHandler.SubmitContact)
	e.POST("/newsletter/subscribe", r.contactHandler.Subscribe)

	cartGroup := e.Group("/cart")
	cartGroup.Use(r.authMiddleware.Authenticate)
	{
		cartGroup.GET("", r.cartHandler.GetCart)
		cartGroup.POST("", r.cartHandler.AddItem)
		cartGroup.PUT("", r.cartHandler.UpdateItem)
		cartGroup.DELETE("", r.cartHandler.RemoveItem)
	}

	// Ownership and the admin-only delete are enforced by the order use case.
	ordersGroup := e.Group("/orders")
	ordersGroup.Use(r.authMiddleware.Authenticate)
	{
		ordersGroup.POST("", r.orderHandler.CreateOrder)
		ordersGroup.GET("", r.orderHandler.ListMyOrders)
		ordersGroup.GET("/statuses", r.orderHandler.ListStatuses)
		ordersGroup.GET("/:id", r.orderHandler.GetOrder)
		ordersGroup.PUT("/:id", r.orderHandler.UpdateOrder)
		ordersGroup.DELETE("/:id", r.orderHandler.DeleteOrder)
		ordersGroup.GET("/:id/qrcode", r.orderHandler.OrderQRCode)
		ordersGroup.GET("/:id/payment-proof", r.orderHandler.PaymentProof)
	}

	adminGroup := e.Group("/admin")
	adminGroup.Use(r.authMiddleware.Authenticate)
	adminGroup.Use(r.authMiddleware.RequireRole(entity.RoleAdmin))
	{
		adminGroup.GET("/stats", r.userHandler.DashboardStats)
		adminGroup.GET("/dashboard/stats", r.userHandler.DashboardStats)

		adminGroup.GET("/orders", r.orderHandler.AdminListOrders)
		adminGroup.GET("/orders/export", r.orderHandler.AdminExportOrders)
		adminGroup.PUT("/orders/:id", r.orderHandler.AdminUpdateOrderStatus)
		adminGroup.GET("/orders/:id/history", r.orderHandler.AdminOrderHistory)

		adminGroup.GET("/products", r.productHandler.AdminListProducts)
		adminGroup.POST("/products", r.productHandler.CreateProduct)
		adminGroup.PUT("/products/:id", r.productHandler.UpdateProduct)
		adminGroup.DELETE("/products/:id", r.productHandler.DeleteProduct)

		adminGroup.GET("/contacts", r.contactHandler.ListContacts)
		adminGroup.PUT("/contacts/:id", r.contactHandler.UpdateContactStatus)
		adminGroup.DELETE("/contacts/:id", r.contactHandler.DeleteContact)

		adminGroup.GET("/users", r.userHandler.ListUsers)
		adminGroup.GET("/users/:id", r.userHandler.GetUser)
		adminGroup.PUT("/users/:id", r.userHandler.UpdateUser)
		adminGroup.DELETE("/users/:id", r.userHandler.DeleteUser)
	}
}
