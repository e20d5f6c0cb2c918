package router

import (
	"github.com/gin-gonic/gin"

	"github.com/shopledger/backend/internal/interfaces/http/handler"
)

// Handlers are the resource handlers mounted under the API prefix
type Handlers struct {
	Items        *handler.ItemHandler
	Staff        *handler.StaffHandler
	Transactions *handler.TransactionHandler
	Reports      *handler.ReportHandler
}

// ShopRoutes returns the domain groups of the shop API. saleLimit guards
// sale recording and may be nil.
func ShopRoutes(h Handlers, saleLimit gin.HandlerFunc) []*DomainGroup {
	items := NewDomainGroup("items", "/items")
	items.GET("", h.Items.List).
		GET("/active", h.Items.ListActive).
		GET("/low-stock", h.Items.LowStock).
		GET("/:id", h.Items.Get).
		POST("", h.Items.Create).
		PUT("/:id", h.Items.Update).
		POST("/:id/deactivate", h.Items.Deactivate).
		POST("/:id/activate", h.Items.Activate)

	staff := NewDomainGroup("staff", "/staff")
	staff.GET("", h.Staff.List).
		GET("/active", h.Staff.ListActive).
		GET("/:id", h.Staff.Get).
		POST("", h.Staff.Create).
		POST("/lookup", h.Staff.Lookup).
		PUT("/:id", h.Staff.Update).
		POST("/:id/deactivate", h.Staff.Deactivate).
		POST("/:id/activate", h.Staff.Activate)

	record := []gin.HandlerFunc{h.Transactions.Record}
	if saleLimit != nil {
		record = append([]gin.HandlerFunc{saleLimit}, record...)
	}
	transactions := NewDomainGroup("transactions", "/transactions")
	transactions.POST("", record...).
		GET("", h.Transactions.ListRecent).
		GET("/search", h.Transactions.Search).
		GET("/outstanding-credit", h.Transactions.OutstandingCredit).
		GET("/:id", h.Transactions.Get).
		POST("/:id/settle", h.Transactions.Settle)

	reports := NewDomainGroup("reports", "/reports")
	reports.GET("/daily", h.Reports.Daily).
		GET("/overview", h.Reports.Overview)

	return []*DomainGroup{items, staff, transactions, reports}
}
