package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"gitlab.com/umaxship/console/internal/apperrors"
	"gitlab.com/umaxship/console/internal/db"
	"gitlab.com/umaxship/console/internal/metrics"
	"gitlab.com/umaxship/console/internal/repository"
	"gitlab.com/umaxship/console/internal/warehouse"
)

type Repositories struct {
	Orders     OrderRepository
	Warehouses WarehouseRepository
	Complaints ComplaintRepository
	Wallets    WalletRepository
	Outbox     OutboxTaskRepository
}

type Services struct {
	Resolver warehouse.Resolver
	Payments PaymentGateway
}

// Storage is the console's data facade. Each write commits its rows together
// with an outbox event describing the change.
type Storage struct {
	db            db.DB
	orderRepo     OrderRepository
	warehouseRepo WarehouseRepository
	complaintRepo ComplaintRepository
	walletRepo    WalletRepository
	outboxRepo    OutboxTaskRepository
	cache         OrderCache
	resolver      warehouse.Resolver
	payments      PaymentGateway
	topic         string
	logger        *zap.Logger
	timeNow       func() time.Time
}

func NewStorage(database db.DB, repos Repositories, services Services, cache OrderCache, topic string, logger *zap.Logger) *Storage {
	return &Storage{
		db:            database,
		orderRepo:     repos.Orders,
		warehouseRepo: repos.Warehouses,
		complaintRepo: repos.Complaints,
		walletRepo:    repos.Wallets,
		outboxRepo:    repos.Outbox,
		cache:         cache,
		resolver:      services.Resolver,
		payments:      services.Payments,
		topic:         topic,
		logger:        logger,
		timeNow:       time.Now,
	}
}

func (s *Storage) inTx(ctx context.Context, fn func(tx db.Tx) error) error {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			s.logger.Warn("rollback failed", zap.Error(rbErr))
		}
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *Storage) enqueueTx(ctx context.Context, tx db.Tx, event repository.EventPayload) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode %s event: %w", event.Type, err)
	}
	task := &repository.OutboxTask{Topic: s.topic, Payload: payload}
	if err := s.outboxRepo.CreateTx(ctx, tx, task); err != nil {
		return fmt.Errorf("failed to enqueue %s event: %w", event.Type, err)
	}
	return nil
}

// lookupErr maps a repository miss to apperrors.ErrNotFound.
func lookupErr(kind, id string, err error) error {
	if errors.Is(err, repository.ErrObjectNotFound) {
		return fmt.Errorf("%s %s: %w", kind, id, apperrors.ErrNotFound)
	}
	return fmt.Errorf("failed to get %s %s: %w", kind, id, err)
}

func (s *Storage) fail(operation string, err error) error {
	metrics.OperationErrorsTotal.WithLabelValues(operation).Inc()
	return err
}
