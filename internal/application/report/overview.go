package report

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopledger/backend/internal/domain/catalog"
	"github.com/shopledger/backend/internal/domain/inventory"
	"github.com/shopledger/backend/internal/domain/ledger"
	"github.com/shopledger/backend/internal/domain/report"
	"github.com/shopledger/backend/internal/domain/shop"
	"github.com/shopledger/backend/internal/domain/staff"
)

// DailyReportResponse is a daily report with its display rendering
type DailyReportResponse struct {
	Report    report.DailySalesReport `json:"report"`
	Formatted report.FormattedReport  `json:"formatted"`
}

// OverviewResponse is the owner's dashboard: today's report plus catalog,
// staff and credit figures
type OverviewResponse struct {
	Today              DailyReportResponse `json:"today"`
	ActiveItems        int64               `json:"active_items"`
	ActiveStaff        int64               `json:"active_staff"`
	PendingCredit      decimal.Decimal     `json:"pending_credit"`
	PendingCreditCount int64               `json:"pending_credit_count"`
	LowStock           []inventory.Alert   `json:"low_stock"`
}

// OverviewService assembles report views for the API
type OverviewService struct {
	engine    *Engine
	items     catalog.ItemRepository
	members   staff.StaffRepository
	txRepo    ledger.TransactionRepository
	formatter *report.Formatter
}

// NewOverviewService creates a new OverviewService
func NewOverviewService(
	engine *Engine,
	items catalog.ItemRepository,
	members staff.StaffRepository,
	txRepo ledger.TransactionRepository,
	settings shop.Settings,
) *OverviewService {
	return &OverviewService{
		engine:    engine,
		items:     items,
		members:   members,
		txRepo:    txRepo,
		formatter: report.NewFormatter(settings),
	}
}

// Daily returns the report of date (YYYY-MM-DD), or today when date is empty
func (s *OverviewService) Daily(ctx context.Context, shopID uuid.UUID, date string) (*DailyReportResponse, error) {
	r, err := s.engine.ForDate(ctx, shopID, date)
	if err != nil {
		return nil, err
	}
	return &DailyReportResponse{Report: r, Formatted: s.formatter.Format(r)}, nil
}

// Overview returns the dashboard of a shop
func (s *OverviewService) Overview(ctx context.Context, shopID uuid.UUID) (*OverviewResponse, error) {
	today, err := s.Daily(ctx, shopID, "")
	if err != nil {
		return nil, err
	}

	activeItems, err := s.items.FindActive(ctx, shopID)
	if err != nil {
		return nil, err
	}
	activeStaff, err := s.members.CountActive(ctx, shopID)
	if err != nil {
		return nil, err
	}
	credit, err := s.txRepo.SumOutstandingCredit(ctx, shopID)
	if err != nil {
		return nil, err
	}

	return &OverviewResponse{
		Today:              *today,
		ActiveItems:        int64(len(activeItems)),
		ActiveStaff:        activeStaff,
		PendingCredit:      credit.Amount,
		PendingCreditCount: credit.Count,
		LowStock:           inventory.Alerts(activeItems),
	}, nil
}
