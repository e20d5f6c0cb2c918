package catalog

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopledger/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeItem = "Item"

// Item change actions
const (
	ItemActionCreated     = "created"
	ItemActionUpdated     = "updated"
	ItemActionDeactivated = "deactivated"
	ItemActionActivated   = "activated"
)

// ItemChangedEvent is published on the items-changed channel after every
// catalog mutation
type ItemChangedEvent struct {
	shared.BaseDomainEvent
	ItemID        uuid.UUID       `json:"item_id"`
	Name          string          `json:"name"`
	BasePrice     decimal.Decimal `json:"base_price"`
	StockQuantity int             `json:"stock_quantity"`
	MinStockAlert int             `json:"min_stock_alert"`
	IsActive      bool            `json:"is_active"`
}

// NewItemChangedEvent creates a new ItemChangedEvent
func NewItemChangedEvent(item *Item, action string) *ItemChangedEvent {
	return &ItemChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(shared.ChannelItemsChanged, action, AggregateTypeItem, item.ID, item.ShopID),
		ItemID:          item.ID,
		Name:            item.Name,
		BasePrice:       item.BasePrice,
		StockQuantity:   item.StockQuantity,
		MinStockAlert:   item.MinStockAlert,
		IsActive:        item.IsActive,
	}
}
