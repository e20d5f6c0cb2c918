package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shopledger/backend/internal/domain/ledger"
	"github.com/shopledger/backend/internal/domain/shared"
	"github.com/shopledger/backend/internal/infrastructure/persistence/models"
)

// GormTransactionRepository implements ledger.TransactionRepository using GORM.
// Rows are only ever inserted, apart from the credit settlement flag.
type GormTransactionRepository struct {
	db *gorm.DB
}

// NewGormTransactionRepository creates a new GormTransactionRepository
func NewGormTransactionRepository(db *gorm.DB) *GormTransactionRepository {
	return &GormTransactionRepository{db: db}
}

// Create appends a new transaction
func (r *GormTransactionRepository) Create(ctx context.Context, tx *ledger.Transaction) error {
	return r.db.WithContext(ctx).Create(models.TransactionModelFromDomain(tx)).Error
}

// FindByIDForShop finds a transaction by ID within a shop
func (r *GormTransactionRepository) FindByIDForShop(ctx context.Context, shopID, id uuid.UUID) (*ledger.Transaction, error) {
	var model models.TransactionModel
	if err := r.db.WithContext(ctx).
		Where("shop_id = ? AND id = ?", shopID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindRecent returns transactions newest first
func (r *GormTransactionRepository) FindRecent(ctx context.Context, shopID uuid.UUID, page shared.Page) ([]ledger.Transaction, error) {
	page = page.Normalize(0)
	return r.find(r.db.WithContext(ctx).
		Where("shop_id = ?", shopID).
		Limit(page.Limit).
		Offset(page.Offset))
}

// FindByFilter returns the transactions matching filter, newest first
func (r *GormTransactionRepository) FindByFilter(ctx context.Context, shopID uuid.UUID, filter ledger.TransactionFilter) ([]ledger.Transaction, error) {
	query := r.db.WithContext(ctx).Where("shop_id = ?", shopID)
	if filter.From != nil {
		query = query.Where("created_at >= ?", filter.From.UTC())
	}
	if filter.To != nil {
		query = query.Where("created_at < ?", filter.To.UTC())
	}
	if filter.PaymentMode != nil {
		query = query.Where("payment_mode = ?", string(*filter.PaymentMode))
	}
	if filter.StaffID != nil {
		query = query.Where("staff_id = ?", *filter.StaffID)
	}
	return r.find(query)
}

// MarkCreditSettled flips the settlement flag of an unsettled credit sale.
// The guard lives in the WHERE clause so concurrent settlements race on the
// row and only one of them changes it.
func (r *GormTransactionRepository) MarkCreditSettled(ctx context.Context, shopID, id uuid.UUID, settledAt time.Time) (bool, error) {
	at := settledAt.UTC()
	result := r.db.WithContext(ctx).Model(&models.TransactionModel{}).
		Where("shop_id = ? AND id = ? AND payment_mode = ? AND is_credit_settled = ?",
			shopID, id, string(ledger.PaymentModeCredit), false).
		Updates(map[string]any{
			"is_credit_settled": true,
			"credit_settled_at": at,
			"updated_at":        at,
			"version":           gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// SumOutstandingCredit totals the unsettled credit sales of a shop. The sum
// is taken over decimals in Go; SQLite keeps amounts as text and its SUM
// would go through a float.
func (r *GormTransactionRepository) SumOutstandingCredit(ctx context.Context, shopID uuid.UUID) (ledger.OutstandingCredit, error) {
	var amounts []models.Decimal
	if err := r.db.WithContext(ctx).Model(&models.TransactionModel{}).
		Where("shop_id = ? AND payment_mode = ? AND is_credit_settled = ?",
			shopID, string(ledger.PaymentModeCredit), false).
		Pluck("entered_amount", &amounts).Error; err != nil {
		return ledger.OutstandingCredit{}, err
	}

	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a.Decimal)
	}
	return ledger.OutstandingCredit{Amount: total, Count: int64(len(amounts))}, nil
}

func (r *GormTransactionRepository) find(query *gorm.DB) ([]ledger.Transaction, error) {
	var rows []models.TransactionModel
	if err := query.Order("created_at DESC, id DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	txns := make([]ledger.Transaction, len(rows))
	for i := range rows {
		txns[i] = *rows[i].ToDomain()
	}
	return txns, nil
}

var _ ledger.TransactionRepository = (*GormTransactionRepository)(nil)
