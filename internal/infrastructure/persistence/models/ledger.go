package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/shopledger/backend/internal/domain/ledger"
)

// TransactionModel is the persistence model for the ledger Transaction
type TransactionModel struct {
	ShopAggregateModel
	EnteredAmount      Decimal    `gorm:"precision:18;scale:4;not null"`
	InferredItemID     *uuid.UUID `gorm:"type:uuid;index"`
	StaffID            uuid.UUID  `gorm:"type:uuid;not null;index"`
	PaymentMode        string     `gorm:"type:varchar(10);not null;index"`
	DiscountAmount     Decimal    `gorm:"precision:18;scale:4;not null"`
	DiscountIsOverride bool       `gorm:"not null"`
	IsCreditSettled    bool       `gorm:"not null"`
	CreditSettledAt    *time.Time
}

// TableName returns the table name for GORM
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToDomain converts the persistence model to a domain Transaction
func (m *TransactionModel) ToDomain() *ledger.Transaction {
	return &ledger.Transaction{
		ShopAggregateRoot:  m.ToDomainShopAggregateRoot(),
		EnteredAmount:      m.EnteredAmount.Decimal,
		InferredItemID:     m.InferredItemID,
		StaffID:            m.StaffID,
		PaymentMode:        ledger.PaymentMode(m.PaymentMode),
		DiscountAmount:     m.DiscountAmount.Decimal,
		DiscountIsOverride: m.DiscountIsOverride,
		IsCreditSettled:    m.IsCreditSettled,
		CreditSettledAt:    m.CreditSettledAt,
	}
}

// FromDomain populates the persistence model from a domain Transaction
func (m *TransactionModel) FromDomain(t *ledger.Transaction) {
	m.FromDomainShopAggregateRoot(t.ShopAggregateRoot)
	m.EnteredAmount = NewDecimal(t.EnteredAmount)
	m.InferredItemID = t.InferredItemID
	m.StaffID = t.StaffID
	m.PaymentMode = string(t.PaymentMode)
	m.DiscountAmount = NewDecimal(t.DiscountAmount)
	m.DiscountIsOverride = t.DiscountIsOverride
	m.IsCreditSettled = t.IsCreditSettled
	m.CreditSettledAt = t.CreditSettledAt
}

// TransactionModelFromDomain creates a new persistence model from a domain Transaction
func TransactionModelFromDomain(t *ledger.Transaction) *TransactionModel {
	m := &TransactionModel{}
	m.FromDomain(t)
	return m
}

// AllModels lists every persistence model, in dependency order, for AutoMigrate
func AllModels() []any {
	return []any{
		&ItemModel{},
		&StaffModel{},
		&TransactionModel{},
	}
}
