// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the userdesk HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Open the account store (PostgreSQL with migrations, or in-memory).
//  4. Connect to Redis when REDIS_URL is set.
//  5. Build the security primitives (bcrypt hasher, HS256 token service).
//  6. Wire domain services and HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/userdesk/internal/api"
	"github.com/taibuivan/userdesk/internal/platform/config"
	"github.com/taibuivan/userdesk/internal/platform/constants"
	"github.com/taibuivan/userdesk/internal/platform/migration"
	pgstore "github.com/taibuivan/userdesk/internal/platform/postgres"
	redisstore "github.com/taibuivan/userdesk/internal/platform/redis"
	"github.com/taibuivan/userdesk/internal/platform/sec"
	"github.com/taibuivan/userdesk/internal/users/account"
	"github.com/taibuivan/userdesk/internal/users/address"
	"github.com/taibuivan/userdesk/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("store_driver", cfg.StoreDriver),
	)

	// Root context for startup. The deadline surfaces misconfiguration quickly.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), constants.StartupTimeout)
	defer startupCancel()

	var health api.HealthDependencies

	// ── 3. Account Store ──────────────────────────────────────────────────
	var (
		accounts  auth.AccountRepository
		profiles  account.ProfileRepository
		addresses address.Repository
	)

	switch cfg.StoreDriver {
	case config.StoreDriverPostgres:
		must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log, cfg.Debug), "run migrations")

		var pool *pgxpool.Pool
		pool, err = pgstore.NewPool(startupCtx, cfg.DatabaseURL, pgstore.PoolOptions{
			MaxConns:         cfg.DBMaxConns,
			MinConns:         cfg.DBMinConns,
			StatementTimeout: cfg.DBStatementTimeout,
		}, log)
		must(log, err, "connect to postgres")
		defer func() {
			log.Info("closing postgres pool")
			pool.Close()
		}()

		accountRepository := auth.NewPostgresAccountRepository(pool)
		accounts, profiles = accountRepository, accountRepository
		addresses = address.NewPostgresRepository(pool)

		health.CheckDatabase = func(context context.Context) error {
			return pgstore.Ping(context, pool)
		}

	default:
		log.Warn("using in-memory store, data is lost on restart")
		accountRepository := auth.NewMemoryAccountRepository()
		accounts, profiles = accountRepository, accountRepository
		addresses = address.NewMemoryRepository()
	}

	// ── 4. Redis (optional) ───────────────────────────────────────────────
	var notifier auth.VerificationNotifier = auth.NewLogNotifier(log)

	if cfg.RedisURL != "" {
		var rdb *redis.Client
		rdb, err = redisstore.NewClient(startupCtx, cfg.RedisURL, cfg.RedisPoolSize, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing redis client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis close error", slog.Any("error", cerr))
			}
		}()

		notifier = auth.NewRedisOutboxNotifier(rdb)
		health.CheckCache = func(context context.Context) error {
			return redisstore.Ping(context, rdb)
		}
	}

	// ── 5. Security ───────────────────────────────────────────────────────
	tokenService, err := sec.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer)
	must(log, err, "initialize token service")

	hasher := sec.NewPasswordHasher(cfg.BcryptCost)

	// ── 6. Domain Wiring ──────────────────────────────────────────────────
	authService := auth.NewService(accounts, hasher, tokenService, notifier, auth.ServiceConfig{
		AccessTTL:       cfg.AccessTTL,
		VerificationTTL: cfg.VerifyTTL,
		VerificationURL: cfg.AppBaseURL + "/verify-account",
	}, log)

	liveness, readiness := api.NewHealthHandlers(health, log)

	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      auth.NewHandler(authService),
		Account:   account.NewHandler(account.NewService(profiles, log)),
		Address:   address.NewHandler(address.NewService(addresses, log)),
	}

	server := api.NewServer(cfg, log, tokenService, handlers)

	// ── 7. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, step string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("step", step),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
