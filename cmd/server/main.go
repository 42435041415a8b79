package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	httpAdapter "github.com/iho/custodyledger/internal/adapter/http"
	"github.com/iho/custodyledger/internal/adapter/http/handler"
	"github.com/iho/custodyledger/internal/adapter/http/middleware"
	"github.com/iho/custodyledger/internal/adapter/repository/memory"
	postgresRepo "github.com/iho/custodyledger/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/custodyledger/internal/adapter/repository/redis"
	"github.com/iho/custodyledger/internal/infrastructure/config"
	"github.com/iho/custodyledger/internal/infrastructure/eventpublisher"
	"github.com/iho/custodyledger/internal/infrastructure/logger"
	"github.com/iho/custodyledger/internal/infrastructure/metrics"
	"github.com/iho/custodyledger/internal/infrastructure/postgres"
	"github.com/iho/custodyledger/internal/infrastructure/redis"
	"github.com/iho/custodyledger/internal/usecase"
)

// visitorIdleTimeout is how long a client may stay quiet before its rate
// limiter is dropped.
const visitorIdleTimeout = 10 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log.Logger = appLogger

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, appLogger); err != nil {
		appLogger.Fatal().Err(err).Msg("server failed")
	}

	appLogger.Info().Msg("server stopped")
}

// storage bundles the repositories of one storage driver.
type storage struct {
	txManager    usecase.TransactionManager
	holders      usecase.HolderRepository
	merchants    usecase.MerchantRepository
	transactions usecase.TransactionRepository
	outbox       usecase.OutboxRepository
	ledger       usecase.LedgerRepository
	retrier      usecase.Retrier
	ping         handler.Pinger
	close        func()
}

// openStorage connects the configured storage driver.
func openStorage(ctx context.Context, cfg *config.Config, logger zerolog.Logger, m *metrics.Metrics) (*storage, error) {
	switch cfg.StorageDriver {
	case config.StorageMemory:
		store := memory.NewStore(cfg.LockTimeout)
		logger.Warn().Msg("using in-memory storage, data is lost on restart")
		return &storage{
			txManager:    memory.NewTxManager(store),
			holders:      memory.NewHolderRepository(store),
			merchants:    memory.NewMerchantRepository(store),
			transactions: memory.NewTransactionRepository(store),
			outbox:       memory.NewOutboxRepository(store),
			ledger:       memory.NewLedgerRepository(store),
			close:        func() {},
		}, nil

	case config.StoragePostgres:
		connectCtx, cancel := context.WithTimeout(ctx, cfg.DatabaseTimeout)
		defer cancel()

		pool, err := postgres.NewPool(connectCtx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
		if err != nil {
			return nil, fmt.Errorf("connect to postgres: %w", err)
		}
		logger.Info().Msg("connected to postgres")

		if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
			pool.Close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}

		return &storage{
			txManager:    postgresRepo.NewTxManager(pool, cfg.LockTimeout),
			holders:      postgresRepo.NewHolderRepository(pool),
			merchants:    postgresRepo.NewMerchantRepository(pool),
			transactions: postgresRepo.NewTransactionRepository(pool),
			outbox:       postgresRepo.NewOutboxRepository(pool),
			ledger:       postgresRepo.NewLedgerRepository(pool),
			retrier:      postgresRepo.NewRetrier(logger, m),
			ping:         handler.PingerFunc(pool.Ping),
			close:        pool.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

// app is the assembled service.
type app struct {
	handler     http.Handler
	publisher   *eventpublisher.EventPublisher
	rateLimiter *middleware.RateLimiter
	closers     []func()
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// build wires storage, use cases and transport together.
func build(ctx context.Context, cfg *config.Config, logger zerolog.Logger, m *metrics.Metrics) (*app, error) {
	feeRate, err := cfg.FeeRate()
	if err != nil {
		return nil, err
	}

	store, err := openStorage(ctx, cfg, logger, m)
	if err != nil {
		return nil, err
	}
	a := &app{closers: []func(){store.close}}

	checks := map[string]handler.Pinger{}
	if store.ping != nil {
		checks[cfg.StorageDriver] = store.ping
	}

	var (
		idempotencyStore usecase.IdempotencyStore
		cache            usecase.Cache
	)
	if cfg.RedisURL != "" {
		redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		a.closers = append(a.closers, func() { _ = redisClient.Close() })
		logger.Info().Msg("connected to redis")

		idempotencyStore = redisRepo.NewIdempotencyStore(redisClient)
		cache = redisRepo.NewCache(redisClient)
		checks["redis"] = handler.PingerFunc(func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		})
	} else {
		logger.Warn().Msg("REDIS_URL not set, idempotency keys and summary cache disabled")
	}

	idGen := postgresRepo.NewULIDGenerator()

	holderUC := usecase.NewHolderUseCase(store.txManager, store.holders, store.outbox, idGen, m)
	merchantUC := usecase.NewMerchantUseCase(store.txManager, store.merchants, store.outbox, idGen, feeRate, m)
	ledgerUC := usecase.NewLedgerUseCase(store.ledger, cache, cfg.SummaryCacheTTL)
	transactionUC := usecase.NewTransactionUseCase(
		store.txManager, store.holders, store.merchants, store.transactions, store.outbox,
		store.retrier, idGen, m,
	).WithSummaryInvalidator(ledgerUC)

	var publisher eventpublisher.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher := eventpublisher.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
		a.closers = append(a.closers, func() {
			if err := kafkaPublisher.Close(); err != nil {
				logger.Error().Err(err).Msg("failed to close kafka publisher")
			}
		})
		publisher = kafkaPublisher
	} else {
		publisher = eventpublisher.NewLogPublisher(logger)
	}

	a.publisher = eventpublisher.NewEventPublisher(eventpublisher.Config{
		OutboxRepo: store.outbox,
		Publisher:  publisher,
		Logger:     logger,
		Metrics:    m,
		BatchSize:  cfg.OutboxBatchSize,
		Interval:   cfg.OutboxPollInterval,
		Retention:  cfg.OutboxRetention,
	})

	if cfg.RateLimitRPS > 0 {
		a.rateLimiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, m)
	}

	a.handler = httpAdapter.NewRouter(httpAdapter.RouterConfig{
		HolderHandler:      handler.NewHolderHandler(holderUC),
		MerchantHandler:    handler.NewMerchantHandler(merchantUC),
		TransactionHandler: handler.NewTransactionHandler(transactionUC),
		LedgerHandler:      handler.NewLedgerHandler(ledgerUC),
		HealthHandler:      handler.NewHealthHandler(checks),
		Logger:             logger,
		Metrics:            m,
		MetricsHandler:     promhttp.Handler(),
		RateLimiter:        a.rateLimiter,
		IdempotencyStore:   idempotencyStore,
		IdempotencyTTL:     cfg.IdempotencyTTL,
	})

	return a, nil
}

// run serves HTTP and drains the outbox until ctx is cancelled.
func run(ctx context.Context, cfg *config.Config, logger zerolog.Logger) error {
	a, err := build(ctx, cfg, logger, metrics.New())
	if err != nil {
		return err
	}
	defer a.Close()

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      a.handler,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info().Str("port", cfg.HTTPPort).Str("storage", cfg.StorageDriver).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		if err := a.publisher.Start(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})

	if a.rateLimiter != nil {
		g.Go(func() error {
			ticker := time.NewTicker(time.Minute)
			defer ticker.Stop()
			for {
				select {
				case <-gctx.Done():
					return nil
				case <-ticker.C:
					a.rateLimiter.CleanupVisitors(visitorIdleTimeout)
				}
			}
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info().Msg("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
