package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v4"

	"gitlab.com/umaxship/console/internal/db"
	"gitlab.com/umaxship/console/internal/repository"
)

const warehouseColumns = `pickup_location, user_id, name, email, phone, address, address_2, city, state, country, pin_code, created_at`

type WarehouseRepo struct {
	db db.DB
}

func NewWarehouseRepo(db db.DB) *WarehouseRepo {
	return &WarehouseRepo{db: db}
}

func (r *WarehouseRepo) CreateTx(ctx context.Context, tx db.Tx, w *repository.Warehouse) error {
	_, err := tx.Exec(ctx, `
        INSERT INTO warehouses (
            pickup_location, user_id, name, email, phone, address, address_2, city, state, country, pin_code, created_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
    `, w.PickupLocation, w.UserID, w.Name, w.Email, w.Phone, w.Address, w.Address2, w.City, w.State, w.Country, w.PinCode, w.CreatedAt)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return fmt.Errorf("warehouse %s: %w", w.PickupLocation, repository.ErrDuplicateKey)
	}
	return err
}

func (r *WarehouseRepo) GetByID(ctx context.Context, userID, key string) (*repository.Warehouse, error) {
	var w repository.Warehouse
	err := r.db.Get(ctx, &w, "SELECT "+warehouseColumns+" FROM warehouses WHERE pickup_location = $1 AND user_id = $2", key, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &w, nil
}

func (r *WarehouseRepo) GetByUserID(ctx context.Context, userID string) ([]*repository.Warehouse, error) {
	var list []*repository.Warehouse
	err := r.db.Select(ctx, &list, "SELECT "+warehouseColumns+" FROM warehouses WHERE user_id = $1 ORDER BY created_at", userID)
	if err != nil {
		return nil, fmt.Errorf("select warehouses of %s: %w", userID, err)
	}
	return list, nil
}

func (r *WarehouseRepo) DeleteTx(ctx context.Context, tx db.Tx, userID, key string) error {
	tag, err := tx.Exec(ctx, "DELETE FROM warehouses WHERE pickup_location = $1 AND user_id = $2", key, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrObjectNotFound
	}
	return nil
}
