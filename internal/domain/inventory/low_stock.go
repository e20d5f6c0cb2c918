package inventory

import (
	"github.com/google/uuid"

	"github.com/shopledger/backend/internal/domain/catalog"
)

// LowStock returns the items whose stock has reached their alert threshold,
// keeping the catalog order.
func LowStock(items []catalog.Item) []catalog.Item {
	low := make([]catalog.Item, 0)
	for _, item := range items {
		if item.IsLowStock() {
			low = append(low, item)
		}
	}
	return low
}

// Alert is a low-stock entry as shown to the owner
type Alert struct {
	ItemID        uuid.UUID `json:"item_id"`
	Name          string    `json:"name"`
	StockQuantity int       `json:"stock_quantity"`
	MinStockAlert int       `json:"min_stock_alert"`
	OutOfStock    bool      `json:"out_of_stock"`
}

// Alerts converts low-stock items to alerts
func Alerts(items []catalog.Item) []Alert {
	low := LowStock(items)
	alerts := make([]Alert, 0, len(low))
	for _, item := range low {
		alerts = append(alerts, Alert{
			ItemID:        item.ID,
			Name:          item.Name,
			StockQuantity: item.StockQuantity,
			MinStockAlert: item.MinStockAlert,
			OutOfStock:    item.StockQuantity == 0,
		})
	}
	return alerts
}
