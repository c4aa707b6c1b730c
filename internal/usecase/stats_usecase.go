package usecase

import (
	"context"

	"storefront/internal/domain/entity"
)

// StatsUsecase assembles the admin dashboard.
type StatsUsecase interface {
	DashboardStats(ctx context.Context) (*entity.DashboardStats, error)
}

// MaintenanceUsecase holds operator tasks run from storectl.
type MaintenanceUsecase interface {
	// NormalizeOrderStatuses rewrites legacy stored statuses. With dryRun it only counts them.
	NormalizeOrderStatuses(ctx context.Context, dryRun bool) (int64, error)
	// PurgeExpiredSessions deletes refresh tokens that are past their expiry.
	PurgeExpiredSessions(ctx context.Context) (int64, error)
}
