package inventory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shopledger/backend/internal/domain/catalog"
	"github.com/shopledger/backend/internal/domain/inventory"
	"github.com/shopledger/backend/internal/domain/shared"
	"github.com/shopledger/backend/internal/infrastructure/logger"
)

// Metrics receives the low-stock count of a shop
type Metrics interface {
	RecordLowStock(ctx context.Context, shopID uuid.UUID, count int)
}

type nopMetrics struct{}

func (nopMetrics) RecordLowStock(context.Context, uuid.UUID, int) {}

// Monitor keeps the low-stock set of every shop current. It listens to
// items-changed and recomputes from the catalog on each event.
type Monitor struct {
	items   catalog.ItemRepository
	metrics Metrics

	mu     sync.RWMutex
	alerts map[uuid.UUID][]inventory.Alert
}

// NewMonitor creates a new low-stock monitor; metrics may be nil
func NewMonitor(items catalog.ItemRepository, metrics Metrics) *Monitor {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &Monitor{
		items:   items,
		metrics: metrics,
		alerts:  make(map[uuid.UUID][]inventory.Alert),
	}
}

// EventTypes returns the channels the monitor listens to
func (m *Monitor) EventTypes() []string {
	return []string{shared.ChannelItemsChanged}
}

// Handle recomputes the low-stock set of the event's shop
func (m *Monitor) Handle(ctx context.Context, event shared.DomainEvent) error {
	alerts, err := m.Refresh(ctx, event.ShopID())
	if err != nil {
		return err
	}
	if len(alerts) > 0 {
		logger.L(ctx).Debug("low stock items",
			zap.String("shop_id", event.ShopID().String()),
			zap.Int("count", len(alerts)),
		)
	}
	return nil
}

// Refresh recomputes and stores the low-stock set of a shop from its active
// catalog
func (m *Monitor) Refresh(ctx context.Context, shopID uuid.UUID) ([]inventory.Alert, error) {
	items, err := m.items.FindActive(ctx, shopID)
	if err != nil {
		return nil, err
	}
	alerts := inventory.Alerts(items)

	m.mu.Lock()
	m.alerts[shopID] = alerts
	m.mu.Unlock()

	m.metrics.RecordLowStock(ctx, shopID, len(alerts))
	return alerts, nil
}

// Alerts returns the last computed low-stock set of a shop. Shops the monitor
// has not seen yet are computed on demand.
func (m *Monitor) Alerts(ctx context.Context, shopID uuid.UUID) ([]inventory.Alert, error) {
	m.mu.RLock()
	alerts, ok := m.alerts[shopID]
	m.mu.RUnlock()
	if ok {
		out := make([]inventory.Alert, len(alerts))
		copy(out, alerts)
		return out, nil
	}
	return m.Refresh(ctx, shopID)
}

var _ shared.EventHandler = (*Monitor)(nil)
