//go:generate mockgen -source ./repositories.go -destination=./mocks/repositories.go -package=mock_storage
package storage

import (
	"context"
	"time"

	"github.com/google/uuid"

	"gitlab.com/umaxship/console/internal/db"
	"gitlab.com/umaxship/console/internal/order"
	"gitlab.com/umaxship/console/internal/payment"
	"gitlab.com/umaxship/console/internal/repository"
)

type OrderRepository interface {
	CreateTx(ctx context.Context, tx db.Tx, order *repository.Order) error
	GetByID(ctx context.Context, userID, id string) (*repository.Order, error)
	GetByUserID(ctx context.Context, userID string) ([]*repository.Order, error)
}

type WarehouseRepository interface {
	CreateTx(ctx context.Context, tx db.Tx, w *repository.Warehouse) error
	GetByID(ctx context.Context, userID, key string) (*repository.Warehouse, error)
	GetByUserID(ctx context.Context, userID string) ([]*repository.Warehouse, error)
	DeleteTx(ctx context.Context, tx db.Tx, userID, key string) error
}

type ComplaintRepository interface {
	CreateTx(ctx context.Context, tx db.Tx, c *repository.Complaint) error
	GetByID(ctx context.Context, userID, id string) (*repository.Complaint, error)
	GetByUserID(ctx context.Context, userID string) ([]*repository.Complaint, error)
	AppendReplyTx(ctx context.Context, tx db.Tx, userID, id string, reply []byte) error
	UpdateStatusTx(ctx context.Context, tx db.Tx, userID, id, from, to string) error
}

type WalletRepository interface {
	GetByUserID(ctx context.Context, userID string) (*repository.Wallet, error)
	CreateRechargeTx(ctx context.Context, tx db.Tx, rc *repository.Recharge) error
	GetRecharges(ctx context.Context, userID string) ([]*repository.Recharge, error)
}

type OutboxTaskRepository interface {
	CreateTx(ctx context.Context, tx db.Tx, task *repository.OutboxTask) error
	GetProcessableTasksTx(ctx context.Context, tx db.Tx, limit int) ([]*repository.OutboxTask, error)
	UpdateTaskStatusTx(ctx context.Context, tx db.Tx, id uuid.UUID, status repository.TaskStatus, attempts int, lastError *string, completedAt *time.Time) error
	UpdateTaskStatus(ctx context.Context, db db.DB, id uuid.UUID, status repository.TaskStatus, attempts int, lastError *string, completedAt *time.Time) error
}

type OrderCache interface {
	Get(userID, id string) (order.Order, bool)
	Set(o order.Order)
}

type PaymentGateway interface {
	CreateSession(ctx context.Context, req payment.SessionRequest) (payment.Session, error)
}
