package handler

import (
	"github.com/gin-gonic/gin"

	reportapp "github.com/shopledger/backend/internal/application/report"
)

// DailyReportQuery selects the report day
type DailyReportQuery struct {
	Date string `form:"date"`
}

// ReportHandler serves the report endpoints
type ReportHandler struct {
	BaseHandler
	overview *reportapp.OverviewService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(overview *reportapp.OverviewService) *ReportHandler {
	return &ReportHandler{overview: overview}
}

// Daily returns the sales report of one shop day, today by default.
// GET /reports/daily?date=YYYY-MM-DD
func (h *ReportHandler) Daily(c *gin.Context) {
	shopID, ok := h.shopID(c)
	if !ok {
		return
	}
	var q DailyReportQuery
	if !h.bindQuery(c, &q) {
		return
	}
	daily, err := h.overview.Daily(c.Request.Context(), shopID, q.Date)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, daily)
}

// Overview returns the owner's dashboard figures.
// GET /reports/overview
func (h *ReportHandler) Overview(c *gin.Context) {
	shopID, ok := h.shopID(c)
	if !ok {
		return
	}
	overview, err := h.overview.Overview(c.Request.Context(), shopID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, overview)
}
