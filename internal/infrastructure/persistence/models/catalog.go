package models

import (
	"github.com/shopledger/backend/internal/domain/catalog"
)

// ItemModel is the persistence model for the Item domain entity
type ItemModel struct {
	ShopAggregateModel
	Name                  string  `gorm:"type:varchar(200);not null"`
	BasePrice             Decimal `gorm:"precision:18;scale:4;not null"`
	StockQuantity         int     `gorm:"not null"`
	MinStockAlert         int     `gorm:"not null"`
	MaxDiscountPercentage Decimal `gorm:"precision:5;scale:2;not null"`
	MaxDiscountFixed      Decimal `gorm:"precision:18;scale:4;not null"`
	IsActive              bool    `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (ItemModel) TableName() string {
	return "items"
}

// ToDomain converts the persistence model to a domain Item
func (m *ItemModel) ToDomain() *catalog.Item {
	return &catalog.Item{
		ShopAggregateRoot:     m.ToDomainShopAggregateRoot(),
		Name:                  m.Name,
		BasePrice:             m.BasePrice.Decimal,
		StockQuantity:         m.StockQuantity,
		MinStockAlert:         m.MinStockAlert,
		MaxDiscountPercentage: m.MaxDiscountPercentage.Decimal,
		MaxDiscountFixed:      m.MaxDiscountFixed.Decimal,
		IsActive:              m.IsActive,
	}
}

// FromDomain populates the persistence model from a domain Item
func (m *ItemModel) FromDomain(i *catalog.Item) {
	m.FromDomainShopAggregateRoot(i.ShopAggregateRoot)
	m.Name = i.Name
	m.BasePrice = NewDecimal(i.BasePrice)
	m.StockQuantity = i.StockQuantity
	m.MinStockAlert = i.MinStockAlert
	m.MaxDiscountPercentage = NewDecimal(i.MaxDiscountPercentage)
	m.MaxDiscountFixed = NewDecimal(i.MaxDiscountFixed)
	m.IsActive = i.IsActive
}

// ItemModelFromDomain creates a new persistence model from a domain Item
func ItemModelFromDomain(i *catalog.Item) *ItemModel {
	m := &ItemModel{}
	m.FromDomain(i)
	return m
}
