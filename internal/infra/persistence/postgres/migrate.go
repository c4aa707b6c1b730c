package postgres

import (
	"context"
	"log/slog"

	"storefront/config"
	"storefront/internal/errors"
	"storefront/internal/infra/persistence/model"

	"go.uber.org/fx"
	"gorm.io/gorm"
)

// Migrate creates or updates every storefront table.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(model.All()...); err != nil {
		return errors.Wrap(err, "failed to migrate schema")
	}

	return nil
}

// MigrateParams defines the dependencies of RegisterAutoMigrate.
type MigrateParams struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
	DB     *gorm.DB
}

// RegisterAutoMigrate migrates on start when database.autoMigrate is enabled.
func RegisterAutoMigrate(params MigrateParams) {
	if params.Config.Database == nil || !params.Config.Database.AutoMigrate {
		return
	}

	params.Append(fx.StartHook(func(ctx context.Context) error {
		if err := Migrate(ctx, params.DB); err != nil {
			return err
		}
		params.Logger.InfoContext(ctx, "Database schema migrated")

		return nil
	}))
}
