package handler

import (
	"github.com/gin-gonic/gin"

	catalogapp "github.com/shopledger/backend/internal/application/catalog"
	inventoryapp "github.com/shopledger/backend/internal/application/inventory"
)

// ItemHandler serves the catalog endpoints
type ItemHandler struct {
	BaseHandler
	items   *catalogapp.ItemService
	monitor *inventoryapp.Monitor
}

// NewItemHandler creates a new ItemHandler
func NewItemHandler(items *catalogapp.ItemService, monitor *inventoryapp.Monitor) *ItemHandler {
	return &ItemHandler{items: items, monitor: monitor}
}

// List returns every item of the shop, active or not, by name.
// GET /items
func (h *ItemHandler) List(c *gin.Context) {
	shopID, ok := h.shopID(c)
	if !ok {
		return
	}
	items, err := h.items.List(c.Request.Context(), shopID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// ListActive returns the items offered for sale.
// GET /items/active
func (h *ItemHandler) ListActive(c *gin.Context) {
	shopID, ok := h.shopID(c)
	if !ok {
		return
	}
	items, err := h.items.ListActive(c.Request.Context(), shopID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// Get returns one item.
// GET /items/:id
func (h *ItemHandler) Get(c *gin.Context) {
	shopID, ok := h.shopID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	item, err := h.items.Get(c.Request.Context(), shopID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// Create adds an item.
// POST /items
func (h *ItemHandler) Create(c *gin.Context) {
	shopID, ok := h.shopID(c)
	if !ok {
		return
	}
	var req catalogapp.UpsertItemRequest
	if !h.bindJSON(c, &req) {
		return
	}
	req.ID = nil

	item, err := h.items.UpsertItem(c.Request.Context(), shopID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, item)
}

// Update replaces the attributes of an item; omitted optional fields keep
// their current value.
// PUT /items/:id
func (h *ItemHandler) Update(c *gin.Context) {
	shopID, ok := h.shopID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req catalogapp.UpsertItemRequest
	if !h.bindJSON(c, &req) {
		return
	}
	req.ID = &id

	item, err := h.items.UpsertItem(c.Request.Context(), shopID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// Deactivate takes an item off sale.
// POST /items/:id/deactivate
func (h *ItemHandler) Deactivate(c *gin.Context) {
	shopID, ok := h.shopID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	if err := h.items.Deactivate(c.Request.Context(), shopID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"id": id, "is_active": false})
}

// Activate puts a deactivated item back on sale.
// POST /items/:id/activate
func (h *ItemHandler) Activate(c *gin.Context) {
	shopID, ok := h.shopID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	if err := h.items.Activate(c.Request.Context(), shopID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"id": id, "is_active": true})
}

// LowStock returns the active items at or below their alert threshold.
// GET /items/low-stock
func (h *ItemHandler) LowStock(c *gin.Context) {
	shopID, ok := h.shopID(c)
	if !ok {
		return
	}
	alerts, err := h.monitor.Alerts(c.Request.Context(), shopID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, alerts)
}
