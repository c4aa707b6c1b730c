package impl

import (
	"context"
	"log/slog"
	"time"

	"storefront/internal/domain/repository"
	"storefront/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type maintenanceService struct {
	orderRepo        repository.OrderRepository
	refreshTokenRepo repository.RefreshTokenRepository
	logger           *slog.Logger
	now              func() time.Time
}

// MaintenanceServiceParams holds dependencies for MaintenanceService, injected by Fx.
type MaintenanceServiceParams struct {
	fx.In

	OrderRepo        repository.OrderRepository
	RefreshTokenRepo repository.RefreshTokenRepository
	Logger           *slog.Logger
}

func NewMaintenanceService(params MaintenanceServiceParams) usecase.MaintenanceUsecase {
	return &maintenanceService{
		orderRepo:        params.OrderRepo,
		refreshTokenRepo: params.RefreshTokenRepo,
		logger:           params.Logger,
		now:              time.Now,
	}
}

func (srv *maintenanceService) NormalizeOrderStatuses(ctx context.Context, dryRun bool) (int64, error) {
	if dryRun {
		count, err := srv.orderRepo.CountNonCanonicalStatuses(ctx)
		if err != nil {
			return 0, errors.Wrap(err, "failed to count legacy order statuses")
		}
		srv.logger.Info("Legacy order statuses found", slog.Int64("orders", count))

		return count, nil
	}

	updated, err := srv.orderRepo.NormalizeStatuses(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "failed to normalize order statuses")
	}
	srv.logger.Info("Order statuses normalized", slog.Int64("orders", updated))

	return updated, nil
}

func (srv *maintenanceService) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	deleted, err := srv.refreshTokenRepo.DeleteExpiredRefreshTokens(ctx, srv.now())
	if err != nil {
		return 0, errors.Wrap(err, "failed to purge expired sessions")
	}
	srv.logger.Info("Expired sessions purged", slog.Int64("sessions", deleted))

	return deleted, nil
}
