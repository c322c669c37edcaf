package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"

	"gitlab.com/umaxship/console/internal/db"
	"gitlab.com/umaxship/console/internal/repository"
)

const orderColumns = `id, user_id, order_type, current_status, created_at, data, return_location, awb_id, courier_charges::text AS courier_charges`

type OrderRepo struct {
	db db.DB
}

func NewOrderRepo(db db.DB) *OrderRepo {
	return &OrderRepo{db: db}
}

func (r *OrderRepo) CreateTx(ctx context.Context, tx db.Tx, order *repository.Order) error {
	_, err := tx.Exec(ctx, `
        INSERT INTO orders (
            id, user_id, order_type, current_status, created_at, data, return_location
        ) VALUES ($1, $2, $3, $4, $5, $6::jsonb, $7::jsonb)
    `, order.ID, order.UserID, order.OrderType, order.CurrentStatus, order.CreatedAt, order.Data, order.ReturnLocation)
	return err
}

func (r *OrderRepo) GetByID(ctx context.Context, userID, id string) (*repository.Order, error) {
	var order repository.Order
	err := r.db.Get(ctx, &order, "SELECT "+orderColumns+" FROM orders WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &order, nil
}

// GetByUserID returns the user's orders in insertion order; projections do
// their own sorting.
func (r *OrderRepo) GetByUserID(ctx context.Context, userID string) ([]*repository.Order, error) {
	var orders []*repository.Order
	err := r.db.Select(ctx, &orders, "SELECT "+orderColumns+" FROM orders WHERE user_id = $1 ORDER BY seq", userID)
	if err != nil {
		return nil, fmt.Errorf("select orders of %s: %w", userID, err)
	}
	return orders, nil
}

// GetActive returns every order across users whose status is not terminal.
func (r *OrderRepo) GetActive(ctx context.Context) ([]*repository.Order, error) {
	var orders []*repository.Order
	err := r.db.Select(ctx, &orders, "SELECT "+orderColumns+" FROM orders WHERE current_status NOT IN ('DELIVERED', 'RTO', 'CANCELLED') ORDER BY seq")
	if err != nil {
		return nil, fmt.Errorf("select active orders: %w", err)
	}
	return orders, nil
}
