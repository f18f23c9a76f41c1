package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/iho/ubiledger/internal/adapter/http"
	"github.com/iho/ubiledger/internal/adapter/http/handler"
	postgresRepo "github.com/iho/ubiledger/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/ubiledger/internal/adapter/repository/redis"
	"github.com/iho/ubiledger/internal/domain"
	"github.com/iho/ubiledger/internal/infrastructure/auth"
	"github.com/iho/ubiledger/internal/infrastructure/clock"
	"github.com/iho/ubiledger/internal/infrastructure/config"
	"github.com/iho/ubiledger/internal/infrastructure/eventpublisher"
	"github.com/iho/ubiledger/internal/infrastructure/logger"
	"github.com/iho/ubiledger/internal/infrastructure/metrics"
	"github.com/iho/ubiledger/internal/infrastructure/postgres"
	"github.com/iho/ubiledger/internal/infrastructure/redis"
	"github.com/iho/ubiledger/internal/usecase"
)

func main() {
	// Setup bootstrap logger
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Switch to the configured logger
	log.Logger = logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	zerolog.SetGlobalLevel(log.Logger.GetLevel())

	ctx := context.Background()

	// Run migrations
	if cfg.AutoMigrate {
		if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}
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

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	balanceRepo := postgresRepo.NewBalanceRepository(pool)
	statsRepo := postgresRepo.NewStatsRepository(pool)
	shareRepo := postgresRepo.NewShareRepository(pool)
	outboxRepo := postgresRepo.NewOutboxRepository(pool)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	cache := redisRepo.NewCache(redisClient)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier()

	// Authorization: JWT-backed when a secret is configured, otherwise open.
	var (
		jwtManager *auth.JWTManager
		authorizer usecase.Authorizer
	)
	if cfg.AuthEnabled && cfg.JWTSecret != "" {
		jwtManager = auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)
		authorizer = auth.NewContextAuthorizer()
	} else {
		authorizer = auth.NewAllowAllAuthorizer()
		log.Warn().Msg("authentication disabled; every request holds authority for every account")
	}

	// Initialize use cases
	policy := incomePolicy(cfg)
	sysClock := clock.SystemClock{}
	appMetrics := metrics.New()
	engine := usecase.NewIncomeEngine(balanceRepo, statsRepo, shareRepo, outboxRepo, sysClock, nil, idGen, policy).
		WithMetrics(appMetrics)
	claimUC := usecase.NewClaimUseCase(txManager, balanceRepo, statsRepo, engine, authorizer, sysClock, retrier, policy)
	transferUC := usecase.NewTransferUseCase(txManager, balanceRepo, statsRepo, outboxRepo, engine, authorizer, idGen, retrier, policy)
	tokenUC := usecase.NewTokenUseCase(txManager, balanceRepo, statsRepo, outboxRepo, authorizer, idGen).
		WithCache(cache)
	shareUC := usecase.NewShareUseCase(txManager, shareRepo, authorizer)
	auditUC := usecase.NewSupplyAuditUseCase(balanceRepo, statsRepo)

	// Initialize handlers
	tokenHandler := handler.NewTokenHandler(tokenUC)
	claimHandler := handler.NewClaimHandler(claimUC)
	shareHandler := handler.NewShareHandler(shareUC)
	transferHandler := handler.NewTransferHandler(transferUC)
	supplyHandler := handler.NewSupplyHandler(auditUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		TokenHandler:     tokenHandler,
		ClaimHandler:     claimHandler,
		ShareHandler:     shareHandler,
		TransferHandler:  transferHandler,
		SupplyHandler:    supplyHandler,
		HealthHandler:    healthHandler,
		IdempotencyStore: idempotencyStore,
		JWTManager:       jwtManager,
	})

	// Start the outbox publisher
	publisherCtx, stopPublisher := context.WithCancel(ctx)
	defer stopPublisher()

	publisher := eventpublisher.NewEventPublisher(eventpublisher.Config{
		OutboxRepo: outboxRepo,
		Publisher:  eventpublisher.NewLogPublisher(nil),
		BatchSize:  cfg.PublishBatchSize,
		Interval:   cfg.PublishInterval,
	})
	go func() {
		if err := publisher.Start(publisherCtx); err != nil && err != context.Canceled {
			log.Error().Err(err).Msg("event publisher stopped")
		}
	}()

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
		log.Info().Str("port", cfg.HTTPPort).Str("symbol", policy.Symbol).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")
	stopPublisher()

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

// incomePolicy assembles the income knobs from configuration. A flat bonus
// takes precedence over a signup window when both are set.
func incomePolicy(cfg *config.Config) usecase.UBIPolicy {
	policy := usecase.DefaultUBIPolicy()
	policy.Symbol = cfg.UBISymbol
	policy.MaxPastClaimDays = cfg.UBIMaxPastDays
	policy.Decay.AnnualRate = cfg.UBIDecayRate

	switch {
	case cfg.UBIBonusFlatDays > 0:
		policy.Bonus = domain.FlatBonus{Days: cfg.UBIBonusFlatDays}
	case cfg.UBIBonusMaxDays > 0 && cfg.UBIBonusLastDay > 0:
		policy.Bonus = domain.SignupWindowBonus{
			LastRewardDay: cfg.UBIBonusLastDay,
			MaxDays:       cfg.UBIBonusMaxDays,
		}
	}

	return policy
}
