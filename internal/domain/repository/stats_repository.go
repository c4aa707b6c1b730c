package repository

import (
	"context"
	"time"

	"storefront/internal/domain/entity"
)

// OverviewQuery parameterizes the dashboard counters.
type OverviewQuery struct {
	NewCustomersSince time.Time
	LowStockThreshold int
}

// StatsRepository runs the read-only aggregations behind the admin dashboard.
type StatsRepository interface {
	Overview(ctx context.Context, query OverviewQuery) (*entity.DashboardOverview, error)
	RecentOrders(ctx context.Context, limit int) ([]*entity.Order, error)
	TopProducts(ctx context.Context, limit int) ([]entity.TopProduct, error)
	// RevenueByMonth groups paid orders created since the given time, oldest month first.
	RevenueByMonth(ctx context.Context, since time.Time) ([]entity.MonthlyRevenue, error)
	// OrdersByStatus counts orders per canonical status.
	OrdersByStatus(ctx context.Context) ([]entity.StatusCount, error)
}
