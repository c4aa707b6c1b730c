package postgres

import (
	"context"
	"time"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type statsRepository struct {
	db *gorm.DB
}

// NewStatsRepository is the constructor for statsRepository.
func NewStatsRepository(db *gorm.DB) repository.StatsRepository {
	return &statsRepository{db: db}
}

type overviewRow struct {
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

const overviewSQL = `
SELECT
	(SELECT COUNT(*) FROM orders) AS total_orders,
	(SELECT COUNT(*) FROM orders WHERE LOWER(TRIM(order_status)) IN @pending) AS pending_orders,
	(SELECT COUNT(*) FROM orders WHERE LOWER(TRIM(order_status)) IN @completed) AS completed_orders,
	(SELECT COUNT(*) FROM orders WHERE LOWER(TRIM(order_status)) IN @cancelled) AS cancelled_orders,
	(SELECT COALESCE(SUM(total), 0) FROM orders WHERE payment_status = @paid) AS total_revenue,
	(SELECT COUNT(*) FROM products) AS total_products,
	(SELECT COUNT(*) FROM products WHERE stock < @threshold) AS low_stock_products,
	(SELECT COUNT(*) FROM users WHERE role = @customer) AS total_customers,
	(SELECT COUNT(*) FROM users WHERE role = @customer AND created_at >= @since) AS new_customers,
	(SELECT COUNT(*) FROM contact_messages WHERE status = @unread) AS new_messages,
	(SELECT COUNT(*) FROM newsletter_subscribers WHERE is_active) AS total_subscribers`

// Overview gathers every counter in one round trip.
func (repo *statsRepository) Overview(ctx context.Context, query repository.OverviewQuery) (*entity.DashboardOverview, error) {
	var row overviewRow
	err := repo.db.WithContext(ctx).Raw(overviewSQL, map[string]any{
		"pending":   entity.OrderStatusPending.StoredForms(),
		"completed": entity.OrderStatusCompleted.StoredForms(),
		"cancelled": entity.OrderStatusCancelled.StoredForms(),
		"paid":      string(entity.PaymentStatusPaid),
		"threshold": query.LowStockThreshold,
		"customer":  string(entity.RoleUser),
		"since":     query.NewCustomersSince,
		"unread":    string(entity.ContactStatusNew),
	}).Scan(&row).Error
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to load dashboard overview")
	}

	overview := entity.DashboardOverview(row)

	return &overview, nil
}

func (repo *statsRepository) RecentOrders(ctx context.Context, limit int) ([]*entity.Order, error) {
	var rows []model.OrderModel
	err := repo.db.WithContext(ctx).
		Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to load recent orders")
	}

	orders := make([]*entity.Order, 0, len(rows))
	for i := range rows {
		orders = append(orders, toOrderDomain(&rows[i]))
	}

	return orders, nil
}

type topProductRow struct {
	ProductID uuid.UUID
	Name      string
	TotalSold int64
	Revenue   int64
}

// TopProducts ranks products by quantity across orders that were not cancelled.
func (repo *statsRepository) TopProducts(ctx context.Context, limit int) ([]entity.TopProduct, error) {
	var rows []topProductRow
	err := repo.db.WithContext(ctx).
		Table("order_items AS oi").
		Select(`oi.product_id AS product_id,
			COALESCE(MAX(p.name), MAX(oi.name)) AS name,
			SUM(oi.quantity) AS total_sold,
			SUM(oi.price * oi.quantity) AS revenue`).
		Joins("JOIN orders o ON o.id = oi.order_id").
		Joins("LEFT JOIN products p ON p.id = oi.product_id").
		Where("LOWER(TRIM(o.order_status)) NOT IN ?", entity.OrderStatusCancelled.StoredForms()).
		Group("oi.product_id").
		Order("total_sold DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to load top products")
	}

	products := make([]entity.TopProduct, 0, len(rows))
	for _, row := range rows {
		products = append(products, entity.TopProduct(row))
	}

	return products, nil
}

type monthlyRevenueRow struct {
	Year    int
	Month   int
	Revenue int64
	Orders  int64
}

func (repo *statsRepository) RevenueByMonth(ctx context.Context, since time.Time) ([]entity.MonthlyRevenue, error) {
	var rows []monthlyRevenueRow
	err := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Select(`CAST(EXTRACT(YEAR FROM created_at) AS INTEGER) AS year,
			CAST(EXTRACT(MONTH FROM created_at) AS INTEGER) AS month,
			SUM(total) AS revenue,
			COUNT(*) AS orders`).
		Where("payment_status = ? AND created_at >= ?", string(entity.PaymentStatusPaid), since).
		Group("year, month").
		Order("year ASC, month ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to load monthly revenue")
	}

	months := make([]entity.MonthlyRevenue, 0, len(rows))
	for _, row := range rows {
		months = append(months, entity.MonthlyRevenue(row))
	}

	return months, nil
}

type statusCountRow struct {
	OrderStatus string
	Count       int64
}

// OrdersByStatus folds raw stored values into canonical buckets, listed in admin order.
func (repo *statsRepository) OrdersByStatus(ctx context.Context) ([]entity.StatusCount, error) {
	var rows []statusCountRow
	err := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Select("order_status, COUNT(*) AS count").
		Group("order_status").
		Scan(&rows).Error
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to count orders by status")
	}

	return foldStatusCounts(rows), nil
}

func foldStatusCounts(rows []statusCountRow) []entity.StatusCount {
	buckets := make(map[entity.OrderStatus]int64)
	for _, row := range rows {
		buckets[entity.CanonicalOrderStatus(row.OrderStatus)] += row.Count
	}

	counts := make([]entity.StatusCount, 0, len(entity.OrderStatuses()))
	for _, status := range entity.OrderStatuses() {
		counts = append(counts, entity.StatusCount{Status: status, Count: buckets[status]})
	}

	return counts
}

