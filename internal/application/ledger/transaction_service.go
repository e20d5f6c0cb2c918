package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/shopledger/backend/internal/domain/catalog"
	"github.com/shopledger/backend/internal/domain/ledger"
	"github.com/shopledger/backend/internal/domain/shared"
	"github.com/shopledger/backend/internal/domain/staff"
	"github.com/shopledger/backend/internal/infrastructure/logger"
	"github.com/shopledger/backend/internal/infrastructure/telemetry"
)

// Validation errors of the search parameters
var (
	ErrInvalidDate    = shared.NewValidationError("INVALID_DATE", "Date must be formatted as YYYY-MM-DD")
	ErrInvalidStaffID = shared.NewValidationError("INVALID_STAFF_ID", "Staff ID must be a UUID")
)

// TransactionService records sales and answers ledger queries
type TransactionService struct {
	txRepo    ledger.TransactionRepository
	itemRepo  catalog.ItemRepository
	staffRepo staff.StaffRepository
	events    shared.EventPublisher
	metrics   Metrics

	now         func() time.Time
	location    *time.Location
	recentLimit int
	maxRecent   int
}

// Option configures a TransactionService
type Option func(*TransactionService)

// WithClock overrides the settlement clock
func WithClock(now func() time.Time) Option {
	return func(s *TransactionService) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLocation sets the time zone that defines a shop day
func WithLocation(loc *time.Location) Option {
	return func(s *TransactionService) {
		if loc != nil {
			s.location = loc
		}
	}
}

// WithRecentLimits sets the default and maximum page size of ListRecent
func WithRecentLimits(defaultLimit, maxLimit int) Option {
	return func(s *TransactionService) {
		if defaultLimit > 0 {
			s.recentLimit = defaultLimit
		}
		if maxLimit > 0 {
			s.maxRecent = maxLimit
		}
	}
}

// WithMetrics sets the business metrics sink
func WithMetrics(m Metrics) Option {
	return func(s *TransactionService) {
		if m != nil {
			s.metrics = m
		}
	}
}

// NewTransactionService creates a new TransactionService
func NewTransactionService(
	txRepo ledger.TransactionRepository,
	itemRepo catalog.ItemRepository,
	staffRepo staff.StaffRepository,
	events shared.EventPublisher,
	opts ...Option,
) *TransactionService {
	s := &TransactionService{
		txRepo:      txRepo,
		itemRepo:    itemRepo,
		staffRepo:   staffRepo,
		events:      events,
		metrics:     nopMetrics{},
		now:         time.Now,
		location:    time.UTC,
		recentLimit: shared.DefaultRecentLimit,
		maxRecent:   500,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RecordSale validates and appends a sale.
//
// Checks run in this order and the first failure is returned: amount, staff,
// candidate item and its discount limit, discount range, payment mode.
// Nothing is written or published when a check fails.
func (s *TransactionService) RecordSale(ctx context.Context, shopID uuid.UUID, req RecordSaleRequest) (resp *TransactionResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "ledger", "record_sale",
		attribute.String(telemetry.SpanAttrShopID, shopID.String()),
		attribute.String(telemetry.SpanAttrPaymentMode, req.PaymentMode),
	)
	defer func() { telemetry.EndSpan(span, err) }()

	tx, member, item, err := s.validateSale(ctx, shopID, req)
	if err != nil {
		s.rejected(ctx, shopID, err)
		return nil, err
	}

	if err := s.txRepo.Create(ctx, tx); err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String(telemetry.SpanAttrTransactionID, tx.ID.String()))

	if err := shared.PublishPending(ctx, s.events, tx); err != nil {
		logger.L(ctx).Warn("failed to publish sale",
			zap.String("transaction_id", tx.ID.String()),
			zap.Error(err),
		)
	}
	s.metrics.RecordSale(ctx, shopID, tx.PaymentMode.String(), tx.EnteredAmount, tx.DiscountAmount, tx.DiscountIsOverride)

	logger.L(ctx).Info("sale recorded",
		zap.String("transaction_id", tx.ID.String()),
		zap.String("payment_mode", tx.PaymentMode.String()),
		zap.String("amount", tx.EnteredAmount.String()),
		zap.Bool("override", tx.DiscountIsOverride),
	)

	itemName := ""
	if item != nil {
		itemName = item.Name
	}
	out := ToTransactionResponse(tx, member.Name, itemName)
	return &out, nil
}

func (s *TransactionService) validateSale(ctx context.Context, shopID uuid.UUID, req RecordSaleRequest) (*ledger.Transaction, *staff.Staff, *catalog.Item, error) {
	if err := ledger.CheckAmount(req.EnteredAmount); err != nil {
		return nil, nil, nil, err
	}

	member, err := s.activeStaff(ctx, shopID, req.StaffID)
	if err != nil {
		return nil, nil, nil, err
	}

	var item *catalog.Item
	if req.CandidateItemID != nil {
		item, err = s.itemRepo.FindByIDForShop(ctx, shopID, *req.CandidateItemID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, nil, nil, ledger.ErrItemNotFound
			}
			return nil, nil, nil, err
		}
		if err := ledger.CheckDiscountPolicy(item, req.DiscountAmount, req.IsOverride); err != nil {
			return nil, nil, nil, err
		}
	}

	if err := ledger.CheckDiscount(req.DiscountAmount, req.EnteredAmount); err != nil {
		return nil, nil, nil, err
	}

	mode, err := ledger.ParsePaymentMode(req.PaymentMode)
	if err != nil {
		return nil, nil, nil, err
	}

	tx, err := ledger.NewTransaction(ledger.Sale{
		ShopID:         shopID,
		EnteredAmount:  req.EnteredAmount,
		ItemID:         req.CandidateItemID,
		StaffID:        member.ID,
		PaymentMode:    mode,
		DiscountAmount: req.DiscountAmount,
		IsOverride:     req.IsOverride,
	})
	if err != nil {
		return nil, nil, nil, err
	}
	return tx, member, item, nil
}

func (s *TransactionService) activeStaff(ctx context.Context, shopID, staffID uuid.UUID) (*staff.Staff, error) {
	if staffID == uuid.Nil {
		return nil, ledger.ErrUnknownStaff
	}
	member, err := s.staffRepo.FindByIDForShop(ctx, shopID, staffID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ledger.ErrUnknownStaff
		}
		return nil, err
	}
	if !member.IsActive {
		return nil, ledger.ErrUnknownStaff
	}
	return member, nil
}

func (s *TransactionService) rejected(ctx context.Context, shopID uuid.UUID, err error) {
	var de *shared.DomainError
	if !errors.As(err, &de) {
		return
	}
	s.metrics.RecordSaleRejected(ctx, shopID, de.Code)
	logger.L(ctx).Info("sale rejected", zap.String("code", de.Code))
}

// SettleCredit marks an outstanding credit sale as paid. Of two concurrent
// settlements of the same sale exactly one succeeds; the other gets
// ALREADY_SETTLED.
func (s *TransactionService) SettleCredit(ctx context.Context, shopID, id uuid.UUID) (resp *TransactionResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "ledger", "settle_credit",
		attribute.String(telemetry.SpanAttrShopID, shopID.String()),
		attribute.String(telemetry.SpanAttrTransactionID, id.String()),
	)
	defer func() { telemetry.EndSpan(span, err) }()

	tx, err := s.find(ctx, shopID, id)
	if err != nil {
		return nil, err
	}

	at := s.now()
	if err := tx.SettleCredit(at); err != nil {
		return nil, err
	}

	changed, err := s.txRepo.MarkCreditSettled(ctx, shopID, id, at)
	if err != nil {
		return nil, err
	}
	if !changed {
		tx.ClearDomainEvents()
		return nil, ledger.ErrAlreadySettled
	}

	if err := shared.PublishPending(ctx, s.events, tx); err != nil {
		logger.L(ctx).Warn("failed to publish settlement",
			zap.String("transaction_id", tx.ID.String()),
			zap.Error(err),
		)
	}
	s.metrics.RecordCreditSettled(ctx, shopID, tx.EnteredAmount)

	out, err := s.withNames(ctx, shopID, []ledger.Transaction{*tx})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

// ListRecent returns transactions newest first
func (s *TransactionService) ListRecent(ctx context.Context, shopID uuid.UUID, req ListRecentRequest) ([]TransactionResponse, error) {
	txns, err := s.txRepo.FindRecent(ctx, shopID, s.RecentPage(req))
	if err != nil {
		return nil, err
	}
	return s.withNames(ctx, shopID, txns)
}

// RecentPage is the window ListRecent reads for req: the default limit when
// none is given, clamped to the configured maximum
func (s *TransactionService) RecentPage(req ListRecentRequest) shared.Page {
	page := shared.Page{Limit: req.Limit, Offset: req.Offset}
	if page.Limit <= 0 {
		page.Limit = s.recentLimit
	}
	return page.Normalize(s.maxRecent)
}

// Filter returns the transactions matching every given criterion, newest first
func (s *TransactionService) Filter(ctx context.Context, shopID uuid.UUID, req FilterRequest) ([]TransactionResponse, error) {
	filter, err := s.toFilter(req)
	if err != nil {
		return nil, err
	}
	txns, err := s.txRepo.FindByFilter(ctx, shopID, filter)
	if err != nil {
		return nil, err
	}
	return s.withNames(ctx, shopID, txns)
}

func (s *TransactionService) toFilter(req FilterRequest) (ledger.TransactionFilter, error) {
	var filter ledger.TransactionFilter

	if req.Date != "" {
		day, err := shared.ParseDay(req.Date, s.location)
		if err != nil {
			return filter, ErrInvalidDate
		}
		from, to := shared.DayRange(day, s.location)
		filter.From = &from
		filter.To = &to
	}
	if req.PaymentMode != "" {
		mode, err := ledger.ParsePaymentMode(req.PaymentMode)
		if err != nil {
			return filter, err
		}
		filter.PaymentMode = &mode
	}
	if req.StaffID != "" {
		id, err := uuid.Parse(req.StaffID)
		if err != nil {
			return filter, ErrInvalidStaffID
		}
		filter.StaffID = &id
	}
	return filter, nil
}

// Get returns one transaction
func (s *TransactionService) Get(ctx context.Context, shopID, id uuid.UUID) (*TransactionResponse, error) {
	tx, err := s.find(ctx, shopID, id)
	if err != nil {
		return nil, err
	}
	out, err := s.withNames(ctx, shopID, []ledger.Transaction{*tx})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

// OutstandingCredit totals the unsettled credit sales of a shop
func (s *TransactionService) OutstandingCredit(ctx context.Context, shopID uuid.UUID) (*OutstandingCreditResponse, error) {
	sum, err := s.txRepo.SumOutstandingCredit(ctx, shopID)
	if err != nil {
		return nil, err
	}
	return &OutstandingCreditResponse{Amount: sum.Amount, Count: sum.Count}, nil
}

func (s *TransactionService) find(ctx context.Context, shopID, id uuid.UUID) (*ledger.Transaction, error) {
	tx, err := s.txRepo.FindByIDForShop(ctx, shopID, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ledger.ErrTransactionNotFound
		}
		return nil, err
	}
	return tx, nil
}

// withNames joins staff and item display names onto txns
func (s *TransactionService) withNames(ctx context.Context, shopID uuid.UUID, txns []ledger.Transaction) ([]TransactionResponse, error) {
	out := make([]TransactionResponse, 0, len(txns))
	if len(txns) == 0 {
		return out, nil
	}

	members, err := s.staffRepo.FindAllForShop(ctx, shopID)
	if err != nil {
		return nil, err
	}
	staffNames := make(map[uuid.UUID]string, len(members))
	for _, m := range members {
		staffNames[m.ID] = m.Name
	}

	seen := make(map[uuid.UUID]struct{})
	itemIDs := make([]uuid.UUID, 0)
	for _, tx := range txns {
		if tx.InferredItemID == nil {
			continue
		}
		if _, ok := seen[*tx.InferredItemID]; ok {
			continue
		}
		seen[*tx.InferredItemID] = struct{}{}
		itemIDs = append(itemIDs, *tx.InferredItemID)
	}
	itemNames := make(map[uuid.UUID]string, len(itemIDs))
	if len(itemIDs) > 0 {
		items, err := s.itemRepo.FindByIDs(ctx, shopID, itemIDs)
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			itemNames[item.ID] = item.Name
		}
	}

	for i := range txns {
		itemName := ""
		if id := txns[i].InferredItemID; id != nil {
			itemName = itemNames[*id]
		}
		out = append(out, ToTransactionResponse(&txns[i], staffNames[txns[i].StaffID], itemName))
	}
	return out, nil
}
