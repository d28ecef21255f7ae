package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health/grpc_health_v1"

	"github.com/vasapolrittideah/kinext-api/services/platform-service/internal/config"
	"github.com/vasapolrittideah/kinext-api/services/platform-service/internal/handler"
	"github.com/vasapolrittideah/kinext-api/services/platform-service/internal/repository"
	"github.com/vasapolrittideah/kinext-api/services/platform-service/internal/tenancy"
	"github.com/vasapolrittideah/kinext-api/services/platform-service/internal/usecase"
	"github.com/vasapolrittideah/kinext-api/shared/auth"
	"github.com/vasapolrittideah/kinext-api/shared/database"
	"github.com/vasapolrittideah/kinext-api/shared/discovery"
	"github.com/vasapolrittideah/kinext-api/shared/interceptor"
	"github.com/vasapolrittideah/kinext-api/shared/logger"
	"github.com/vasapolrittideah/kinext-api/shared/mailer"
	"github.com/vasapolrittideah/kinext-api/shared/utilities"
	"github.com/vasapolrittideah/kinext-api/shared/validation"
)

const (
	tokenAudience  = "kinext-api"
	healthInterval = 15 * time.Second
	shutdownGrace  = 10 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel, cfg.LogPretty)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("platform service stopped")
	}
}

func run(ctx context.Context, cfg *config.PlatformServiceConfig, log *zerolog.Logger) error {
	databases := database.NewManager(cfg.Database, log)
	if err := databases.Connect(ctx); err != nil {
		return err
	}
	defer func() {
		if err := databases.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("failed to disconnect from MongoDB")
		}
	}()

	admin := databases.Admin()
	if err := repository.EnsureAdminIndexes(ctx, admin); err != nil {
		return fmt.Errorf("failed to create admin indexes: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	users := repository.NewUserMongoRepository(admin)
	instances := repository.NewInstanceMongoRepository(admin)
	tenants := repository.NewTenantMongoStore()
	validator := validation.New()
	jwtAuth := auth.NewJWTAuthenticator(tokenAudience, cfg.Token.Issuer)

	resolverOpts := []tenancy.ResolverOption{
		tenancy.WithStrictResolution(cfg.Tenancy.StrictResolution),
		tenancy.WithMetrics(tenancy.NewMetrics(registry)),
	}
	if cfg.Redis.Enabled() {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer client.Close()

		if err := client.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis is unreachable, registry lookups will hit MongoDB")
		}
		resolverOpts = append(resolverOpts, tenancy.WithRegistryCache(tenancy.NewRedisRegistryCache(client, cfg.Redis.CacheTTL)))
	}
	resolver := tenancy.NewResolver(databases, instances, log, resolverOpts...)

	var registration usecase.RegistrationUsecase = usecase.NewRegistrationUsecase(
		databases,
		users,
		instances,
		tenants,
		validator,
		cfg.Tenancy.DatabasePrefix,
		log,
	)
	if cfg.Mailer.Enabled() {
		registration = usecase.NewRegistrationNotifier(mailer.NewMailer(cfg.Mailer), log, registration)
	}
	registration = usecase.NewRegistrationMetrics(registry, registration)
	registration = usecase.NewRegistrationLogger(log, registration)

	login := usecase.NewAuthUsecase(users, jwtAuth, cfg.Token)

	h := handler.NewHandler(log, validator, registration, login, tenants)
	httpServer := &http.Server{
		Addr: cfg.HTTPAddr,
		Handler: h.Routes(handler.RouterConfig{
			JWTAuth:     jwtAuth,
			TokenSecret: cfg.Token.AccessTokenSecret,
			Resolver:    resolver,
			Metrics:     handler.NewHTTPMetrics(registry),
			Gatherer:    registry,
			Ping:        databases.Ping,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	grpcServer := grpc.NewServer(grpc.UnaryInterceptor(interceptor.NewJWTInterceptor(
		jwtAuth,
		cfg.Token.AccessTokenSecret,
		[]string{grpc_health_v1.Health_Check_FullMethodName},
	)))
	healthServer := utilities.RegisterHealthServer(grpcServer)
	go utilities.WatchHealth(ctx, healthServer, cfg.Consul.ServiceName, healthInterval, databases.Ping)

	lis, err := net.Listen("tcp", cfg.GRPCHealthAddr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", cfg.GRPCHealthAddr, err)
	}

	errCh := make(chan error, 2)
	go func() {
		log.Info().Str("addr", cfg.GRPCHealthAddr).Msg("gRPC health server listening")
		if err := grpcServer.Serve(lis); err != nil {
			errCh <- fmt.Errorf("gRPC health server: %w", err)
		}
	}()
	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("HTTP server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server: %w", err)
		}
	}()

	if cfg.Consul.Enabled() {
		deregister, err := discovery.Register(cfg.Consul, log)
		if err != nil {
			log.Error().Err(err).Msg("failed to register with consul")
		} else {
			defer func() {
				if err := deregister(); err != nil {
					log.Error().Err(err).Msg("failed to deregister from consul")
				}
			}()
		}
	}

	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	case err = <-errCh:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	if shutdownErr := httpServer.Shutdown(shutdownCtx); shutdownErr != nil {
		log.Error().Err(shutdownErr).Msg("failed to shut down HTTP server")
	}
	grpcServer.GracefulStop()

	return err
}
