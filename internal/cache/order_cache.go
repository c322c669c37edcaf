package cache

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"gitlab.com/umaxship/console/internal/metrics"
	"gitlab.com/umaxship/console/internal/order"
	"gitlab.com/umaxship/console/internal/repository"
)

type OrderRepository interface {
	GetActive(ctx context.Context) ([]*repository.Order, error)
}

// OrderCache keeps orders that are still moving. Terminal orders are never
// cached; reads of those go to the database.
type OrderCache struct {
	mu     sync.RWMutex
	cache  map[string]order.Order
	repo   OrderRepository
	logger *zap.Logger
}

func NewOrderCache(repo OrderRepository, logger *zap.Logger) *OrderCache {
	return &OrderCache{
		cache:  make(map[string]order.Order),
		repo:   repo,
		logger: logger,
	}
}

func (c *OrderCache) LoadInitialData(ctx context.Context) error {
	c.logger.Info("loading active orders into cache")
	rows, err := c.repo.GetActive(ctx)
	if err != nil {
		return fmt.Errorf("load active orders: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, row := range rows {
		o, err := row.ToOrder()
		if err != nil {
			c.logger.Warn("skipping unreadable order", zap.String("order_id", row.ID), zap.Error(err))
			continue
		}
		c.cache[o.ID] = o
	}
	metrics.OrderCacheItems.Set(float64(len(c.cache)))
	c.logger.Info("order cache loaded", zap.Int("orders", len(c.cache)))
	return nil
}

// Get returns the cached order with id if it belongs to userID.
func (c *OrderCache) Get(userID, id string) (order.Order, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	o, found := c.cache[id]
	if !found || o.UserID != userID {
		return order.Order{}, false
	}
	return o, true
}

func (c *OrderCache) Set(o order.Order) {
	if o.CurrentStatus.Terminal() {
		c.Delete(o.ID)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache[o.ID] = o
	metrics.OrderCacheItems.Set(float64(len(c.cache)))
	c.logger.Debug("cache: set order", zap.String("order_id", o.ID), zap.String("status", string(o.CurrentStatus)))
}

func (c *OrderCache) Delete(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, found := c.cache[id]; found {
		delete(c.cache, id)
		metrics.OrderCacheItems.Set(float64(len(c.cache)))
		c.logger.Debug("cache: deleted order", zap.String("order_id", id))
	}
}

func (c *OrderCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cache)
}
