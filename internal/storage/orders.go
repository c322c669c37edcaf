package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"gitlab.com/umaxship/console/internal/apperrors"
	"gitlab.com/umaxship/console/internal/db"
	"gitlab.com/umaxship/console/internal/metrics"
	"gitlab.com/umaxship/console/internal/order"
	"gitlab.com/umaxship/console/internal/projection"
	"gitlab.com/umaxship/console/internal/repository"
)

// CreateOrder validates the draft, snapshots its pickup location and stores
// the order as UNSHIPPED.
func (s *Storage) CreateOrder(ctx context.Context, userID string, draft order.Draft) (order.Order, error) {
	if err := draft.Validate(); err != nil {
		return order.Order{}, err
	}

	row, err := s.warehouseRepo.GetByID(ctx, userID, draft.PickupLocation)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return order.Order{}, apperrors.NewValidationError("pickup_location")
		}
		return order.Order{}, s.fail("create_order", fmt.Errorf("failed to load pickup location: %w", err))
	}

	now := s.timeNow().UTC()
	o, err := draft.Build(order.NewID(now), userID, row.ToWarehouse())
	if err != nil {
		return order.Order{}, s.fail("create_order", err)
	}
	o.Timestamp = now

	err = s.inTx(ctx, func(tx db.Tx) error {
		if err := s.orderRepo.CreateTx(ctx, tx, repository.FromOrder(o)); err != nil {
			return fmt.Errorf("failed to add order: %w", err)
		}
		return s.enqueueTx(ctx, tx, repository.EventPayload{
			Type:       repository.EventOrderCreated,
			Timestamp:  now,
			UserID:     userID,
			EntityID:   o.ID,
			EntityType: "order",
			NewStatus:  string(o.CurrentStatus),
			Details:    string(o.Type),
		})
	})
	if err != nil {
		return order.Order{}, s.fail("create_order", err)
	}

	s.cache.Set(o)
	metrics.OrdersCreatedTotal.WithLabelValues(string(o.Type)).Inc()
	s.logger.Info("order created", zap.String("order_id", o.ID), zap.String("user_id", userID), zap.String("order_type", string(o.Type)))
	return o, nil
}

// GetOrder reads the stored row and refreshes the cache with it; status,
// AWB and charges are written outside this service. The cached copy is
// served only while the database is unavailable.
func (s *Storage) GetOrder(ctx context.Context, userID, id string) (order.Order, error) {
	row, err := s.orderRepo.GetByID(ctx, userID, id)
	if err != nil {
		if !errors.Is(err, repository.ErrObjectNotFound) {
			if o, ok := s.cache.Get(userID, id); ok {
				s.logger.Warn("serving cached order", zap.String("order_id", id), zap.Error(err))
				return o, nil
			}
		}
		return order.Order{}, lookupErr("order", id, err)
	}
	o, err := row.ToOrder()
	if err != nil {
		return order.Order{}, err
	}
	s.cache.Set(o)
	return o, nil
}

// Orders returns the user's orders in stored order together with the rows
// that could not be read.
func (s *Storage) Orders(ctx context.Context, userID string) ([]order.Order, []projection.RecordError, error) {
	rows, err := s.orderRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, nil, s.fail("list_orders", err)
	}

	orders := make([]order.Order, 0, len(rows))
	var errs []projection.RecordError
	for _, row := range rows {
		o, err := row.ToOrder()
		if err != nil {
			errs = append(errs, projection.NewRecordError(row.ID, err))
			continue
		}
		orders = append(orders, o)
	}
	return orders, errs, nil
}

func (s *Storage) ListOrders(ctx context.Context, userID string, f projection.Filter, page, size int) (projection.Page, error) {
	orders, rowErrs, err := s.Orders(ctx, userID)
	if err != nil {
		return projection.Page{}, err
	}
	p := projection.List(orders, f, page, size, s.timeNow())
	p.Errors = append(rowErrs, p.Errors...)
	s.reportInvalid(userID, p.Errors)
	return p, nil
}

// Dashboard summarizes the user's orders relative to now; a zero now means
// the current time.
func (s *Storage) Dashboard(ctx context.Context, userID string, now time.Time) (projection.Dashboard, error) {
	if now.IsZero() {
		now = s.timeNow()
	}
	orders, rowErrs, err := s.Orders(ctx, userID)
	if err != nil {
		return projection.Dashboard{}, err
	}
	d := projection.Summarize(orders, now)
	d.Errors = append(rowErrs, d.Errors...)
	s.reportInvalid(userID, d.Errors)
	return d, nil
}

// ExportOrders returns every order matching f, newest first.
func (s *Storage) ExportOrders(ctx context.Context, userID string, f projection.Filter) ([]order.Order, []projection.RecordError, error) {
	orders, rowErrs, err := s.Orders(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	filtered, errs := f.Apply(orders)
	errs = append(rowErrs, errs...)
	s.reportInvalid(userID, errs)
	return projection.SortByTimestamp(filtered, s.timeNow()), errs, nil
}

func (s *Storage) reportInvalid(userID string, errs []projection.RecordError) {
	n := projection.InvalidRecords(errs)
	if n == 0 {
		return
	}
	metrics.InvalidRecordsTotal.Add(float64(n))
	s.logger.Warn("orders with unreadable documents", zap.String("user_id", userID), zap.Int("count", n))
}
