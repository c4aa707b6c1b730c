package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/config"
	logs "storefront/internal/infra/log"
	"storefront/internal/infra/persistence/postgres"
	"storefront/internal/usecase"
	"storefront/internal/usecase/impl"
	"storefront/internal/util"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// Supported subcommands:
// - migrate:            Create or update the database schema
// - normalize-statuses: Rewrite legacy order statuses to their canonical form
// - purge-sessions:     Delete expired refresh tokens

type storectlFlags struct {
	Migrate   *flag.FlagSet
	Normalize normalizeFlags
	Purge     *flag.FlagSet
}

type normalizeFlags struct {
	cmd    *flag.FlagSet
	dryRun *bool
}

// deps are the parts of the storefront graph the subcommands need.
type deps struct {
	app         *fx.App
	db          *gorm.DB
	maintenance usecase.MaintenanceUsecase
}

func main() {
	normalizeCmd := flag.NewFlagSet("normalize-statuses", flag.ExitOnError)

	flags := storectlFlags{
		Migrate: flag.NewFlagSet("migrate", flag.ExitOnError),
		Normalize: normalizeFlags{
			cmd:    normalizeCmd,
			dryRun: normalizeCmd.Bool("dry-run", false, "Only count orders with legacy statuses"),
		},
		Purge: flag.NewFlagSet("purge-sessions", flag.ExitOnError),
	}

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := runSubcommand(ctx, &flags); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runSubcommand(ctx context.Context, flags *storectlFlags) error {
	switch os.Args[1] {
	case "migrate":
		return handleMigrate(ctx, flags)
	case "normalize-statuses":
		return handleNormalize(ctx, flags)
	case "purge-sessions":
		return handlePurge(ctx, flags)
	default:
		printUsage()

		return errors.New("unknown subcommand")
	}
}

// start builds the dependency graph and opens the database.
func start(ctx context.Context) (*deps, error) {
	d := &deps{}
	d.app = fx.New(
		fx.NopLogger,
		fx.Provide(
			config.New,
			logs.New,
			context.Background,
			postgres.New,
			postgres.NewOrderRepository,
			postgres.NewRefreshTokenRepository,
			impl.NewMaintenanceService,
		),
		fx.Populate(&d.db, &d.maintenance),
	)
	if err := d.app.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to build dependencies")
	}

	if err := d.app.Start(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to start dependencies")
	}

	return d, nil
}

func (d *deps) stop() {
	if err := d.app.Stop(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to stop cleanly: %v\n", err)
	}
}

func handleMigrate(ctx context.Context, flags *storectlFlags) error {
	if err := flags.Migrate.Parse(os.Args[2:]); err != nil {
		return errors.Wrap(err, "failed to parse migrate flags")
	}

	d, err := start(ctx)
	if err != nil {
		return err
	}
	defer d.stop()

	started := time.Now()
	if err := postgres.Migrate(ctx, d.db); err != nil {
		return err
	}
	fmt.Printf("Schema migrated in %s\n", util.FormatDuration(time.Since(started)))

	return nil
}

func handleNormalize(ctx context.Context, flags *storectlFlags) error {
	if err := flags.Normalize.cmd.Parse(os.Args[2:]); err != nil {
		return errors.Wrap(err, "failed to parse normalize-statuses flags")
	}

	d, err := start(ctx)
	if err != nil {
		return err
	}
	defer d.stop()

	started := time.Now()
	count, err := d.maintenance.NormalizeOrderStatuses(ctx, *flags.Normalize.dryRun)
	if err != nil {
		return err
	}

	if *flags.Normalize.dryRun {
		fmt.Printf("%d orders have legacy statuses\n", count)

		return nil
	}
	fmt.Printf("Normalized %d orders in %s\n", count, util.FormatDuration(time.Since(started)))

	return nil
}

func handlePurge(ctx context.Context, flags *storectlFlags) error {
	if err := flags.Purge.Parse(os.Args[2:]); err != nil {
		return errors.Wrap(err, "failed to parse purge-sessions flags")
	}

	d, err := start(ctx)
	if err != nil {
		return err
	}
	defer d.stop()

	started := time.Now()
	count, err := d.maintenance.PurgeExpiredSessions(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Deleted %d expired sessions in %s\n", count, util.FormatDuration(time.Since(started)))

	return nil
}

func printUsage() {
	fmt.Println("Usage: storectl <command> [options]")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  migrate               Create or update the database schema")
	fmt.Println("  normalize-statuses    Rewrite legacy order statuses (use -dry-run to only count)")
	fmt.Println("  purge-sessions        Delete expired refresh tokens")
	fmt.Println("")
	fmt.Println("Use 'storectl <command> -h' for more information about a command.")
}
