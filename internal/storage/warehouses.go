package storage

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"gitlab.com/umaxship/console/internal/apperrors"
	"gitlab.com/umaxship/console/internal/db"
	"gitlab.com/umaxship/console/internal/metrics"
	"gitlab.com/umaxship/console/internal/repository"
	"gitlab.com/umaxship/console/internal/warehouse"
)

const maxKeyAttempts = 3

// CreateWarehouse validates the form, fills the locality from the postal
// lookup and stores the new pickup location.
func (s *Storage) CreateWarehouse(ctx context.Context, userID string, form warehouse.Form) (warehouse.Warehouse, error) {
	now := s.timeNow().UTC()
	w, err := warehouse.Prepare(ctx, form, userID, s.resolver, now)
	if err != nil {
		if errors.Is(err, apperrors.ErrExternalService) {
			return warehouse.Warehouse{}, s.fail("create_warehouse", err)
		}
		return warehouse.Warehouse{}, err
	}

	for attempt := 1; ; attempt++ {
		err = s.inTx(ctx, func(tx db.Tx) error {
			if err := s.warehouseRepo.CreateTx(ctx, tx, repository.FromWarehouse(w, now)); err != nil {
				return fmt.Errorf("failed to add warehouse: %w", err)
			}
			return s.enqueueTx(ctx, tx, repository.EventPayload{
				Type:       repository.EventWarehouseCreated,
				Timestamp:  now,
				UserID:     userID,
				EntityID:   w.PickupLocation,
				EntityType: "warehouse",
				Details:    w.PinCode,
			})
		})
		if !errors.Is(err, repository.ErrDuplicateKey) || attempt == maxKeyAttempts {
			break
		}
		s.logger.Warn("pickup location key taken, retrying", zap.String("pickup_location", w.PickupLocation))
		w.PickupLocation = warehouse.NewKey(now)
	}
	if err != nil {
		return warehouse.Warehouse{}, s.fail("create_warehouse", err)
	}

	metrics.WarehousesCreatedTotal.Inc()
	s.logger.Info("warehouse created", zap.String("pickup_location", w.PickupLocation), zap.String("user_id", userID))
	return w, nil
}

func (s *Storage) ListWarehouses(ctx context.Context, userID string) ([]warehouse.Warehouse, error) {
	rows, err := s.warehouseRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, s.fail("list_warehouses", err)
	}
	list := make([]warehouse.Warehouse, 0, len(rows))
	for _, row := range rows {
		list = append(list, row.ToWarehouse())
	}
	return list, nil
}

// DeleteWarehouse removes the pickup location. Orders that shipped from it
// keep their own snapshot.
func (s *Storage) DeleteWarehouse(ctx context.Context, userID, key string) error {
	err := s.inTx(ctx, func(tx db.Tx) error {
		if err := s.warehouseRepo.DeleteTx(ctx, tx, userID, key); err != nil {
			if errors.Is(err, repository.ErrObjectNotFound) {
				return fmt.Errorf("warehouse %s: %w", key, apperrors.ErrNotFound)
			}
			return fmt.Errorf("failed to delete warehouse: %w", err)
		}
		return s.enqueueTx(ctx, tx, repository.EventPayload{
			Type:       repository.EventWarehouseDeleted,
			Timestamp:  s.timeNow().UTC(),
			UserID:     userID,
			EntityID:   key,
			EntityType: "warehouse",
		})
	})
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return s.fail("delete_warehouse", err)
	}
	return err
}
