package report

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shopledger/backend/internal/domain/ledger"
	"github.com/shopledger/backend/internal/domain/report"
	"github.com/shopledger/backend/internal/domain/shared"
	"github.com/shopledger/backend/internal/domain/staff"
	"github.com/shopledger/backend/internal/infrastructure/logger"
)

// ErrInvalidDate is returned for a report date that is not YYYY-MM-DD
var ErrInvalidDate = shared.NewValidationError("INVALID_DATE", "Date must be formatted as YYYY-MM-DD")

// SnapshotStore shares report snapshots across processes
type SnapshotStore interface {
	Save(ctx context.Context, r report.DailySalesReport) error
	Load(ctx context.Context, shopID uuid.UUID, date string) (report.DailySalesReport, bool, error)
}

// Metrics receives report computation timings
type Metrics interface {
	RecordReportComputed(ctx context.Context, shopID uuid.UUID, took time.Duration)
}

type nopMetrics struct{}

func (nopMetrics) RecordReportComputed(context.Context, uuid.UUID, time.Duration) {}

// Engine keeps each shop's current-day report up to date. It is subscribed to
// the transactions-changed and staff-changed channels and recomputes the
// whole day from the repositories on every event.
type Engine struct {
	txRepo    ledger.TransactionRepository
	staffRepo staff.StaffRepository
	location  *time.Location
	now       func() time.Time
	store     SnapshotStore
	metrics   Metrics
	log       *zap.Logger

	mu     sync.RWMutex
	latest map[uuid.UUID]report.DailySalesReport
}

// EngineOption configures an Engine
type EngineOption func(*Engine)

// WithLocation sets the time zone that defines a shop day
func WithLocation(loc *time.Location) EngineOption {
	return func(e *Engine) {
		if loc != nil {
			e.location = loc
		}
	}
}

// WithClock overrides the clock that decides which day is today
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithSnapshotStore publishes every computed snapshot to store
func WithSnapshotStore(store SnapshotStore) EngineOption {
	return func(e *Engine) {
		e.store = store
	}
}

// WithMetrics sets the metrics sink
func WithMetrics(m Metrics) EngineOption {
	return func(e *Engine) {
		if m != nil {
			e.metrics = m
		}
	}
}

// WithLogger sets the logger used for background recomputation
func WithLogger(l *zap.Logger) EngineOption {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// NewEngine creates a new report engine
func NewEngine(txRepo ledger.TransactionRepository, staffRepo staff.StaffRepository, opts ...EngineOption) *Engine {
	e := &Engine{
		txRepo:    txRepo,
		staffRepo: staffRepo,
		location:  time.UTC,
		now:       time.Now,
		metrics:   nopMetrics{},
		log:       zap.NewNop(),
		latest:    make(map[uuid.UUID]report.DailySalesReport),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// EventTypes returns the channels the engine listens to
func (e *Engine) EventTypes() []string {
	return []string{shared.ChannelTransactionsChanged, shared.ChannelStaffChanged}
}

// Handle recomputes the current day of the shop the event belongs to
func (e *Engine) Handle(ctx context.Context, event shared.DomainEvent) error {
	r, err := e.Today(ctx, event.ShopID())
	if err != nil {
		return err
	}
	e.log.Debug("daily report refreshed",
		zap.String("shop_id", r.ShopID.String()),
		zap.String("date", r.Date),
		zap.String("event_type", event.EventType()),
		zap.String("total_sales", r.TotalSales.String()),
	)
	return nil
}

// Today computes the current day's report and stores it as the shop's latest
// snapshot
func (e *Engine) Today(ctx context.Context, shopID uuid.UUID) (report.DailySalesReport, error) {
	r, err := e.compute(ctx, shopID, e.now())
	if err != nil {
		return report.DailySalesReport{}, err
	}

	e.mu.Lock()
	if prev, ok := e.latest[shopID]; !ok || !prev.GeneratedAt.After(r.GeneratedAt) {
		e.latest[shopID] = r
	}
	e.mu.Unlock()

	if e.store != nil {
		if err := e.store.Save(ctx, r); err != nil {
			logger.L(ctx).Warn("failed to share report snapshot",
				zap.String("shop_id", shopID.String()),
				zap.Error(err),
			)
		}
	}
	return r, nil
}

// Latest returns the last snapshot computed for the shop. When this process
// has none it falls back to the snapshot store for today's date.
func (e *Engine) Latest(ctx context.Context, shopID uuid.UUID) (report.DailySalesReport, bool) {
	e.mu.RLock()
	r, ok := e.latest[shopID]
	e.mu.RUnlock()
	if ok || e.store == nil {
		return r, ok
	}

	start, _ := shared.DayRange(e.now(), e.location)
	cached, found, err := e.store.Load(ctx, shopID, start.Format(shared.DateLayout))
	if err != nil {
		logger.L(ctx).Warn("failed to load report snapshot", zap.Error(err))
		return report.DailySalesReport{}, false
	}
	return cached, found
}

// ForDate computes the report of any day given as YYYY-MM-DD in the shop's
// time zone. An empty date means today.
func (e *Engine) ForDate(ctx context.Context, shopID uuid.UUID, date string) (report.DailySalesReport, error) {
	if date == "" {
		return e.Today(ctx, shopID)
	}
	day, err := shared.ParseDay(date, e.location)
	if err != nil {
		return report.DailySalesReport{}, ErrInvalidDate
	}
	return e.compute(ctx, shopID, day)
}

// Location returns the time zone that defines a shop day
func (e *Engine) Location() *time.Location {
	return e.location
}

func (e *Engine) compute(ctx context.Context, shopID uuid.UUID, day time.Time) (report.DailySalesReport, error) {
	started := time.Now()

	from, to := shared.DayRange(day, e.location)
	txns, err := e.txRepo.FindByFilter(ctx, shopID, ledger.TransactionFilter{From: &from, To: &to})
	if err != nil {
		return report.DailySalesReport{}, err
	}
	members, err := e.staffRepo.FindAllForShop(ctx, shopID)
	if err != nil {
		return report.DailySalesReport{}, err
	}

	r := report.Compute(shopID, day, e.location, txns, members)
	e.metrics.RecordReportComputed(ctx, shopID, time.Since(started))
	return r, nil
}

var _ shared.EventHandler = (*Engine)(nil)
