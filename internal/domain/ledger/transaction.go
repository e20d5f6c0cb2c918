package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopledger/backend/internal/domain/shared"
)

// Transaction is one recorded sale. It is append-only: the only mutation
// after creation is settling a credit sale.
type Transaction struct {
	shared.ShopAggregateRoot
	EnteredAmount      decimal.Decimal
	InferredItemID     *uuid.UUID
	StaffID            uuid.UUID
	PaymentMode        PaymentMode
	DiscountAmount     decimal.Decimal
	DiscountIsOverride bool
	IsCreditSettled    bool
	CreditSettledAt    *time.Time
}

// Sale holds the already-resolved inputs of a sale
type Sale struct {
	ShopID         uuid.UUID
	EnteredAmount  decimal.Decimal
	ItemID         *uuid.UUID
	StaffID        uuid.UUID
	PaymentMode    PaymentMode
	DiscountAmount decimal.Decimal
	IsOverride     bool
}

// NewTransaction creates a transaction from a sale whose staff and discount
// policy have been checked by the caller. Amount, discount and payment mode
// are re-checked here.
func NewTransaction(sale Sale) (*Transaction, error) {
	if err := CheckAmount(sale.EnteredAmount); err != nil {
		return nil, err
	}
	if err := CheckDiscount(sale.DiscountAmount, sale.EnteredAmount); err != nil {
		return nil, err
	}
	if !sale.PaymentMode.IsValid() {
		return nil, ErrInvalidPaymentMode
	}
	if sale.StaffID == uuid.Nil {
		return nil, ErrUnknownStaff
	}

	tx := &Transaction{
		ShopAggregateRoot:  shared.NewShopAggregateRoot(sale.ShopID),
		EnteredAmount:      sale.EnteredAmount,
		InferredItemID:     sale.ItemID,
		StaffID:            sale.StaffID,
		PaymentMode:        sale.PaymentMode,
		DiscountAmount:     sale.DiscountAmount,
		DiscountIsOverride: sale.IsOverride,
		IsCreditSettled:    false,
	}

	tx.AddDomainEvent(NewTransactionChangedEvent(tx, TransactionActionRecorded))

	return tx, nil
}

// IsCredit reports whether the sale was made on credit
func (t *Transaction) IsCredit() bool {
	return t.PaymentMode == PaymentModeCredit
}

// IsOutstanding reports whether the sale is an unsettled credit sale
func (t *Transaction) IsOutstanding() bool {
	return t.IsCredit() && !t.IsCreditSettled
}

// SettleCredit marks a credit sale as paid. The flag only moves false to true.
func (t *Transaction) SettleCredit(at time.Time) error {
	if !t.IsCredit() {
		return ErrNotCreditSale
	}
	if t.IsCreditSettled {
		return ErrAlreadySettled
	}

	t.IsCreditSettled = true
	t.CreditSettledAt = &at
	t.Touch(at)

	t.AddDomainEvent(NewTransactionChangedEvent(t, TransactionActionCreditSettled))

	return nil
}
