package impl

import (
	"context"
	"log/slog"
	"time"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"golang.org/x/sync/errgroup"
)

const (
	dashboardRecentOrders = 5
	dashboardTopProducts  = 5
	dashboardRevenueMonth = 6
	newCustomerWindow     = 30 * 24 * time.Hour
)

type statsService struct {
	statsRepo repository.StatsRepository
	store     *config.StoreConfig
	logger    *slog.Logger
	now       func() time.Time
}

// StatsServiceParams holds dependencies for StatsService, injected by Fx.
type StatsServiceParams struct {
	fx.In

	StatsRepo repository.StatsRepository
	Config    *config.Config
	Logger    *slog.Logger
}

func NewStatsService(params StatsServiceParams) usecase.StatsUsecase {
	return &statsService{
		statsRepo: params.StatsRepo,
		store:     params.Config.Store,
		logger:    params.Logger,
		now:       time.Now,
	}
}

// DashboardStats runs the dashboard aggregates concurrently. Any failure fails the whole call.
func (srv *statsService) DashboardStats(ctx context.Context) (*entity.DashboardStats, error) {
	now := srv.now()
	stats := &entity.DashboardStats{}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		overview, err := srv.statsRepo.Overview(groupCtx, repository.OverviewQuery{
			NewCustomersSince: now.Add(-newCustomerWindow),
			LowStockThreshold: srv.store.LowStockThreshold,
		})
		if err != nil {
			return errors.Wrap(err, "failed to load overview")
		}
		stats.Overview = *overview

		return nil
	})
	group.Go(func() error {
		orders, err := srv.statsRepo.RecentOrders(groupCtx, dashboardRecentOrders)
		if err != nil {
			return errors.Wrap(err, "failed to load recent orders")
		}
		stats.RecentOrders = orders

		return nil
	})
	group.Go(func() error {
		products, err := srv.statsRepo.TopProducts(groupCtx, dashboardTopProducts)
		if err != nil {
			return errors.Wrap(err, "failed to load top products")
		}
		stats.TopProducts = products

		return nil
	})
	group.Go(func() error {
		revenue, err := srv.statsRepo.RevenueByMonth(groupCtx, revenueWindowStart(now, dashboardRevenueMonth))
		if err != nil {
			return errors.Wrap(err, "failed to load monthly revenue")
		}
		stats.RevenueByMonth = revenue

		return nil
	})
	group.Go(func() error {
		counts, err := srv.statsRepo.OrdersByStatus(groupCtx)
		if err != nil {
			return errors.Wrap(err, "failed to load status counts")
		}
		stats.OrdersByStatus = counts

		return nil
	})

	if err := group.Wait(); err != nil {
		deliverycontext.GetLoggerOrDefault(ctx, srv.logger).Error("Failed to build dashboard stats", slog.Any("error", err))

		return nil, err
	}

	return stats, nil
}

// revenueWindowStart is the first day of the month, months-1 months before now.
func revenueWindowStart(now time.Time, months int) time.Time {
	return time.Date(now.Year(), now.Month()-time.Month(months-1), 1, 0, 0, 0, 0, now.Location())
}
