package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/kinext-api/services/platform-service/internal/config"
	"github.com/vasapolrittideah/kinext-api/services/platform-service/internal/repository"
	"github.com/vasapolrittideah/kinext-api/shared/database"
	"github.com/vasapolrittideah/kinext-api/shared/logger"
	"github.com/vasapolrittideah/kinext-api/shared/validation"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand(connect).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// connect loads the service configuration from the environment and opens
// the admin database.
func connect(ctx context.Context, log *zerolog.Logger) (*deps, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	databases := database.NewManager(cfg.Database, log)
	if err := databases.Connect(ctx); err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		if err := databases.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("failed to disconnect from MongoDB")
		}
	}

	admin := databases.Admin()
	if err := repository.EnsureAdminIndexes(ctx, admin); err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("failed to create admin indexes: %w", err)
	}

	return &deps{
		databases: databases,
		users:     repository.NewUserMongoRepository(admin),
		instances: repository.NewInstanceMongoRepository(admin),
		tenants:   repository.NewTenantMongoStore(),
		validator: validation.New(),
		prefix:    cfg.Tenancy.DatabasePrefix,
		strict:    cfg.Tenancy.StrictResolution,
	}, closeFn, nil
}

func newLogger(level string) *zerolog.Logger {
	if level == "" {
		return logger.Nop()
	}
	return logger.New(level, true)
}
