package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpAdapter "github.com/yucheng-ou/kaleido-coin/internal/adapter/http"
	"github.com/yucheng-ou/kaleido-coin/internal/adapter/http/handler"
	"github.com/yucheng-ou/kaleido-coin/internal/adapter/http/middleware"
	postgresRepo "github.com/yucheng-ou/kaleido-coin/internal/adapter/repository/postgres"
	redisRepo "github.com/yucheng-ou/kaleido-coin/internal/adapter/repository/redis"
	"github.com/yucheng-ou/kaleido-coin/internal/infrastructure/config"
	"github.com/yucheng-ou/kaleido-coin/internal/infrastructure/logger"
	"github.com/yucheng-ou/kaleido-coin/internal/infrastructure/metrics"
	"github.com/yucheng-ou/kaleido-coin/internal/infrastructure/postgres"
	"github.com/yucheng-ou/kaleido-coin/internal/infrastructure/redis"
	"github.com/yucheng-ou/kaleido-coin/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	amounts := bizAmounts(cfg)
	if err := amounts.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid coin amount configuration")
	}

	ctx := context.Background()

	// Run migrations
	if err := postgres.RunMigrations(log, cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	m := metrics.New()

	// Initialize repositories and adapters
	idGen, err := postgresRepo.NewSnowflakeGenerator(cfg.SnowflakeNode)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create id generator")
	}
	txManager := postgresRepo.NewTxManager(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool, idGen)
	entryRepo := postgresRepo.NewEntryRepository(pool)
	retrier := postgresRepo.NewRetrier(log)
	locker := redisRepo.NewAccountLocker(redisClient, cfg.AccountLockTTL, cfg.AccountLockWait)
	cache := redisRepo.NewBalanceCache(redisClient, cfg.BalanceCacheTTL)

	// Initialize use cases
	accountUC := usecase.NewAccountUseCase(
		txManager, accountRepo, entryRepo, locker, cache, idGen, cfg.InitialBalance, log, m)
	ledgerUC := usecase.NewLedgerUseCase(
		txManager, accountRepo, entryRepo, locker, retrier, cache, amounts, log, m)

	// Initialize handlers
	accountHandler := handler.NewAccountHandler(accountUC)
	ledgerHandler := handler.NewLedgerHandler(ledgerUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AccountHandler: accountHandler,
		LedgerHandler:  ledgerHandler,
		HealthHandler:  healthHandler,
		Logging:        middleware.NewLoggingMiddleware(log),
		Metrics:        middleware.NewMetricsMiddleware(m),
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

func bizAmounts(cfg *config.Config) usecase.BizAmounts {
	return usecase.BizAmounts{
		InviteReward: cfg.InviteReward,
		LocationCost: cfg.LocationCost,
		OutfitCost:   cfg.OutfitCost,
	}
}
