package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"gitlab.com/umaxship/console/internal/cache"
	"gitlab.com/umaxship/console/internal/config"
	"gitlab.com/umaxship/console/internal/db"
	"gitlab.com/umaxship/console/internal/kafka"
	"gitlab.com/umaxship/console/internal/logger"
	"gitlab.com/umaxship/console/internal/payment"
	"gitlab.com/umaxship/console/internal/postal"
	"gitlab.com/umaxship/console/internal/repository/postgresql"
	"gitlab.com/umaxship/console/internal/server"
	"gitlab.com/umaxship/console/internal/session"
	"gitlab.com/umaxship/console/internal/storage"
)

const shutdownTimeout = 5 * time.Second

func main() {
	envFile := config.LoadEnv()
	cfg := config.Load()

	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	defer func() { _ = log.Sync() }()
	if envFile != "" {
		log.Info("loaded environment file", zap.String("path", envFile))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal("console stopped with error", zap.Error(err))
	}
	log.Info("console stopped")
}

func run(ctx context.Context, cfg config.Config, log *zap.Logger) error {
	database, err := db.NewDb(ctx, cfg.DB.DSN())
	if err != nil {
		return err
	}
	defer database.Close()

	orderRepo := postgresql.NewOrderRepo(database)
	userRepo := postgresql.NewUserRepo(database)
	outboxRepo := postgresql.NewOutboxTaskRepo(cfg.Kafka.MaxAttempts)

	if cfg.Admin.Email != "" && cfg.Admin.Password != "" {
		if _, err := userRepo.EnsureUser(ctx, cfg.Admin.Email, "Administrator", cfg.Admin.Password); err != nil {
			return err
		}
		log.Info("admin user ensured", zap.String("email", cfg.Admin.Email))
	}

	orderCache := cache.NewOrderCache(orderRepo, log.Named("cache"))
	if err := orderCache.LoadInitialData(ctx); err != nil {
		log.Warn("failed to warm order cache", zap.Error(err))
	}

	var sessions session.Store
	if cfg.Redis.Addr != "" {
		redisStore, err := session.NewRedisStore(ctx, session.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		defer redisStore.Close()
		sessions = redisStore
		log.Info("using redis session store", zap.String("addr", cfg.Redis.Addr))
	} else {
		sessions = session.NewMemoryStore()
		log.Info("no redis configured, sessions are kept in memory")
	}

	var producer kafka.Producer
	if len(cfg.Kafka.Brokers) > 0 {
		producer = kafka.NewWriterProducer(cfg.Kafka.Brokers, log.Named("kafka"))
	} else {
		producer = kafka.NewLogProducer(log.Named("kafka"))
	}
	publisher := kafka.NewPublisher(database, outboxRepo, producer, kafka.PublisherConfig{
		PollInterval: cfg.Kafka.PollInterval,
		BatchSize:    cfg.Kafka.BatchSize,
		MaxAttempts:  cfg.Kafka.MaxAttempts,
	}, log.Named("outbox"))

	stg := storage.NewStorage(database,
		storage.Repositories{
			Orders:     orderRepo,
			Warehouses: postgresql.NewWarehouseRepo(database),
			Complaints: postgresql.NewComplaintRepo(database),
			Wallets:    postgresql.NewWalletRepo(database),
			Outbox:     outboxRepo,
		},
		storage.Services{
			Resolver: postal.NewClient(cfg.Postal.BaseURL, cfg.Postal.Timeout),
			Payments: payment.NewClient(payment.Config{
				BaseURL:   cfg.Payment.BaseURL,
				AppID:     cfg.Payment.AppID,
				SecretKey: cfg.Payment.SecretKey,
				Timeout:   cfg.Payment.Timeout,
			}),
		},
		orderCache,
		cfg.Kafka.Topic,
		log.Named("storage"),
	)

	srv := server.New(stg, userRepo, sessions, server.Config{SessionTTL: cfg.Session.TTL}, log.Named("http"))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		publisher.Run(gctx)
		return nil
	})
	g.Go(func() error {
		return srv.Run(gctx, cfg.HTTPPort)
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		var errs []error
		if err := srv.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, err)
		}
		publisher.Shutdown(shutdownCtx)
		return errors.Join(errs...)
	})

	return g.Wait()
}
