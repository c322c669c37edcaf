package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"

	"gitlab.com/umaxship/console/internal/db"
	"gitlab.com/umaxship/console/internal/repository"
)

type WalletRepo struct {
	db db.DB
}

func NewWalletRepo(db db.DB) *WalletRepo {
	return &WalletRepo{db: db}
}

func (r *WalletRepo) GetByUserID(ctx context.Context, userID string) (*repository.Wallet, error) {
	var w repository.Wallet
	err := r.db.Get(ctx, &w, "SELECT user_id, balance::text AS balance, plan FROM wallets WHERE user_id = $1", userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &w, nil
}

func (r *WalletRepo) CreateRechargeTx(ctx context.Context, tx db.Tx, rc *repository.Recharge) error {
	_, err := tx.Exec(ctx, `
        INSERT INTO wallet_recharges (id, user_id, amount, status, payment_session_id, created_at)
        VALUES ($1, $2, $3::numeric, $4, $5, $6)
    `, rc.ID, rc.UserID, rc.Amount, rc.Status, rc.PaymentSessionID, rc.CreatedAt)
	return err
}

func (r *WalletRepo) GetRecharges(ctx context.Context, userID string) ([]*repository.Recharge, error) {
	var list []*repository.Recharge
	err := r.db.Select(ctx, &list, `
        SELECT id, user_id, amount::text AS amount, status, payment_session_id, created_at
        FROM wallet_recharges WHERE user_id = $1 ORDER BY created_at DESC
    `, userID)
	return list, err
}
