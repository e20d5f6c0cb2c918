package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopledger/backend/internal/domain/shared"
)

// TransactionFilter narrows a transaction query. Nil fields are ignored and
// the remaining ones are combined with AND. The time range is half-open.
type TransactionFilter struct {
	From        *time.Time
	To          *time.Time
	PaymentMode *PaymentMode
	StaffID     *uuid.UUID
}

// OutstandingCredit summarizes unsettled credit sales
type OutstandingCredit struct {
	Amount decimal.Decimal
	Count  int64
}

// TransactionRepository defines the interface for ledger persistence.
// There is no delete operation.
type TransactionRepository interface {
	// Create appends a new transaction
	Create(ctx context.Context, tx *Transaction) error

	// FindByIDForShop finds a transaction by ID within a shop
	FindByIDForShop(ctx context.Context, shopID, id uuid.UUID) (*Transaction, error)

	// FindRecent returns transactions newest first
	FindRecent(ctx context.Context, shopID uuid.UUID, page shared.Page) ([]Transaction, error)

	// FindByFilter returns the transactions matching filter, newest first
	FindByFilter(ctx context.Context, shopID uuid.UUID, filter TransactionFilter) ([]Transaction, error)

	// MarkCreditSettled flips is_credit_settled to true for an unsettled
	// credit sale. It returns false when no row was changed.
	MarkCreditSettled(ctx context.Context, shopID, id uuid.UUID, settledAt time.Time) (bool, error)

	// SumOutstandingCredit totals the unsettled credit sales of a shop
	SumOutstandingCredit(ctx context.Context, shopID uuid.UUID) (OutstandingCredit, error)
}
