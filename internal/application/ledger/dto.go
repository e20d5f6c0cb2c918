package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopledger/backend/internal/domain/ledger"
)

// RecordSaleRequest is one sale as entered at the counter. Fields are checked
// by the service in a fixed order, so none of them carry binding rules.
type RecordSaleRequest struct {
	EnteredAmount   decimal.Decimal `json:"entered_amount"`
	CandidateItemID *uuid.UUID      `json:"candidate_item_id,omitempty"`
	StaffID         uuid.UUID       `json:"staff_id"`
	PaymentMode     string          `json:"payment_mode"`
	DiscountAmount  decimal.Decimal `json:"discount_amount"`
	IsOverride      bool            `json:"is_override"`
}

// FilterRequest narrows the transaction search. Empty fields are ignored.
type FilterRequest struct {
	Date        string `form:"date" json:"date"`
	PaymentMode string `form:"payment_mode" json:"payment_mode"`
	StaffID     string `form:"staff_id" json:"staff_id"`
}

// ListRecentRequest pages the recent transactions list
type ListRecentRequest struct {
	Limit  int `form:"limit" json:"limit" binding:"omitempty,min=1"`
	Offset int `form:"offset" json:"offset" binding:"omitempty,min=0"`
}

// TransactionResponse represents a transaction in API responses, with the
// staff and item display names joined in. Names are empty when the referenced
// record no longer exists.
type TransactionResponse struct {
	ID                 uuid.UUID       `json:"id"`
	ShopID             uuid.UUID       `json:"shop_id"`
	EnteredAmount      decimal.Decimal `json:"entered_amount"`
	InferredItemID     *uuid.UUID      `json:"inferred_item_id,omitempty"`
	ItemName           string          `json:"item_name"`
	StaffID            uuid.UUID       `json:"staff_id"`
	StaffName          string          `json:"staff_name"`
	PaymentMode        string          `json:"payment_mode"`
	DiscountAmount     decimal.Decimal `json:"discount_amount"`
	DiscountIsOverride bool            `json:"discount_is_override"`
	IsCreditSettled    bool            `json:"is_credit_settled"`
	CreditSettledAt    *time.Time      `json:"credit_settled_at,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
}

// OutstandingCreditResponse summarizes unsettled credit sales
type OutstandingCreditResponse struct {
	Amount decimal.Decimal `json:"amount"`
	Count  int64           `json:"count"`
}

// ToTransactionResponse converts a domain Transaction to a response
func ToTransactionResponse(tx *ledger.Transaction, staffName, itemName string) TransactionResponse {
	return TransactionResponse{
		ID:                 tx.ID,
		ShopID:             tx.ShopID,
		EnteredAmount:      tx.EnteredAmount,
		InferredItemID:     tx.InferredItemID,
		ItemName:           itemName,
		StaffID:            tx.StaffID,
		StaffName:          staffName,
		PaymentMode:        tx.PaymentMode.String(),
		DiscountAmount:     tx.DiscountAmount,
		DiscountIsOverride: tx.DiscountIsOverride,
		IsCreditSettled:    tx.IsCreditSettled,
		CreditSettledAt:    tx.CreditSettledAt,
		CreatedAt:          tx.CreatedAt,
	}
}
