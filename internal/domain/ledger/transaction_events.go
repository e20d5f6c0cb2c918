package ledger

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopledger/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeTransaction = "Transaction"

// Transaction change actions
const (
	TransactionActionRecorded      = "recorded"
	TransactionActionCreditSettled = "credit_settled"
)

// TransactionChangedEvent is published on the transactions-changed channel
type TransactionChangedEvent struct {
	shared.BaseDomainEvent
	TransactionID      uuid.UUID       `json:"transaction_id"`
	StaffID            uuid.UUID       `json:"staff_id"`
	PaymentMode        PaymentMode     `json:"payment_mode"`
	EnteredAmount      decimal.Decimal `json:"entered_amount"`
	DiscountAmount     decimal.Decimal `json:"discount_amount"`
	DiscountIsOverride bool            `json:"discount_is_override"`
	IsCreditSettled    bool            `json:"is_credit_settled"`
}

// NewTransactionChangedEvent creates a new TransactionChangedEvent
func NewTransactionChangedEvent(t *Transaction, action string) *TransactionChangedEvent {
	return &TransactionChangedEvent{
		BaseDomainEvent:    shared.NewBaseDomainEvent(shared.ChannelTransactionsChanged, action, AggregateTypeTransaction, t.ID, t.ShopID),
		TransactionID:      t.ID,
		StaffID:            t.StaffID,
		PaymentMode:        t.PaymentMode,
		EnteredAmount:      t.EnteredAmount,
		DiscountAmount:     t.DiscountAmount,
		DiscountIsOverride: t.DiscountIsOverride,
		IsCreditSettled:    t.IsCreditSettled,
	}
}
