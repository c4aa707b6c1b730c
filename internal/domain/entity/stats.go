package entity

import "github.com/google/uuid"

// DashboardOverview holds the headline counters of the admin dashboard.
type DashboardOverview struct {
	TotalOrders      int64
	PendingOrders    int64
	CompletedOrders  int64
	CancelledOrders  int64
	TotalRevenue     int64
	TotalProducts    int64
	LowStockProducts int64
	TotalCustomers   int64
	NewCustomers     int64
	NewMessages      int64
	TotalSubscribers int64
}

// TopProduct is a best seller by quantity.
type TopProduct struct {
	ProductID uuid.UUID
	Name      string
	TotalSold int64
	Revenue   int64
}

// MonthlyRevenue is paid revenue grouped by calendar month.
type MonthlyRevenue struct {
	Year    int
	Month   int
	Revenue int64
	Orders  int64
}

// StatusCount is the number of orders in one canonical status.
type StatusCount struct {
	Status OrderStatus
	Count  int64
}

// DashboardStats aggregates orders, products, users, contacts and subscribers.
type DashboardStats struct {
	Overview       DashboardOverview
	RecentOrders   []*Order
	TopProducts    []TopProduct
	RevenueByMonth []MonthlyRevenue
	OrdersByStatus []StatusCount
}
