package handler

import (
	"github.com/gin-gonic/gin"

	ledgerapp "github.com/shopledger/backend/internal/application/ledger"
)

// TransactionHandler serves the ledger endpoints
type TransactionHandler struct {
	BaseHandler
	ledger *ledgerapp.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(ledger *ledgerapp.TransactionService) *TransactionHandler {
	return &TransactionHandler{ledger: ledger}
}

// Record validates and appends a sale.
// POST /transactions
func (h *TransactionHandler) Record(c *gin.Context) {
	shopID, ok := h.shopID(c)
	if !ok {
		return
	}
	var req ledgerapp.RecordSaleRequest
	if !h.bindJSON(c, &req) {
		return
	}
	tx, err := h.ledger.RecordSale(c.Request.Context(), shopID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, tx)
}

// ListRecent pages through the ledger, newest first.
// GET /transactions?limit=&offset=
func (h *TransactionHandler) ListRecent(c *gin.Context) {
	shopID, ok := h.shopID(c)
	if !ok {
		return
	}
	var req ledgerapp.ListRecentRequest
	if !h.bindQuery(c, &req) {
		return
	}
	txns, err := h.ledger.ListRecent(c.Request.Context(), shopID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	page := h.ledger.RecentPage(req)
	h.SuccessWithMeta(c, txns, len(txns), page.Limit, page.Offset)
}

// Search returns the transactions matching every given filter.
// GET /transactions/search?date=&payment_mode=&staff_id=
func (h *TransactionHandler) Search(c *gin.Context) {
	shopID, ok := h.shopID(c)
	if !ok {
		return
	}
	var req ledgerapp.FilterRequest
	if !h.bindQuery(c, &req) {
		return
	}
	txns, err := h.ledger.Filter(c.Request.Context(), shopID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, txns)
}

// Get returns one transaction.
// GET /transactions/:id
func (h *TransactionHandler) Get(c *gin.Context) {
	shopID, ok := h.shopID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	tx, err := h.ledger.Get(c.Request.Context(), shopID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tx)
}

// Settle marks a credit sale as paid.
// POST /transactions/:id/settle
func (h *TransactionHandler) Settle(c *gin.Context) {
	shopID, ok := h.shopID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	tx, err := h.ledger.SettleCredit(c.Request.Context(), shopID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tx)
}

// OutstandingCredit sums the unsettled credit sales.
// GET /transactions/outstanding-credit
func (h *TransactionHandler) OutstandingCredit(c *gin.Context) {
	shopID, ok := h.shopID(c)
	if !ok {
		return
	}
	credit, err := h.ledger.OutstandingCredit(c.Request.Context(), shopID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, credit)
}
