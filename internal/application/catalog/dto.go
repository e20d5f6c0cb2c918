package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopledger/backend/internal/domain/catalog"
)

// UpsertItemRequest creates an item when ID is nil and updates it otherwise.
// Optional fields left nil take the creation defaults, or keep their current
// value on update.
type UpsertItemRequest struct {
	ID                    *uuid.UUID       `json:"-"`
	Name                  string           `json:"name" binding:"required,min=1,max=200"`
	BasePrice             *decimal.Decimal `json:"base_price" binding:"required"`
	StockQuantity         *int             `json:"stock_quantity" binding:"omitempty,min=0"`
	MinStockAlert         *int             `json:"min_stock_alert" binding:"omitempty,min=0"`
	MaxDiscountPercentage *decimal.Decimal `json:"max_discount_percentage"`
	MaxDiscountFixed      *decimal.Decimal `json:"max_discount_fixed"`
}

// ItemResponse represents an item in API responses
type ItemResponse struct {
	ID                    uuid.UUID       `json:"id"`
	ShopID                uuid.UUID       `json:"shop_id"`
	Name                  string          `json:"name"`
	BasePrice             decimal.Decimal `json:"base_price"`
	StockQuantity         int             `json:"stock_quantity"`
	MinStockAlert         int             `json:"min_stock_alert"`
	MaxDiscountPercentage decimal.Decimal `json:"max_discount_percentage"`
	MaxDiscountFixed      decimal.Decimal `json:"max_discount_fixed"`
	MaxAllowedDiscount    decimal.Decimal `json:"max_allowed_discount"`
	IsActive              bool            `json:"is_active"`
	IsLowStock            bool            `json:"is_low_stock"`
	CreatedAt             time.Time       `json:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at"`
	Version               int             `json:"version"`
}

// ToItemResponse converts a domain Item to a response
func ToItemResponse(item *catalog.Item) ItemResponse {
	return ItemResponse{
		ID:                    item.ID,
		ShopID:                item.ShopID,
		Name:                  item.Name,
		BasePrice:             item.BasePrice,
		StockQuantity:         item.StockQuantity,
		MinStockAlert:         item.MinStockAlert,
		MaxDiscountPercentage: item.MaxDiscountPercentage,
		MaxDiscountFixed:      item.MaxDiscountFixed,
		MaxAllowedDiscount:    item.MaxAllowedDiscount(),
		IsActive:              item.IsActive,
		IsLowStock:            item.IsLowStock(),
		CreatedAt:             item.CreatedAt,
		UpdatedAt:             item.UpdatedAt,
		Version:               item.Version,
	}
}

// ToItemResponses converts a slice of domain Items
func ToItemResponses(items []catalog.Item) []ItemResponse {
	out := make([]ItemResponse, len(items))
	for i := range items {
		out[i] = ToItemResponse(&items[i])
	}
	return out
}
