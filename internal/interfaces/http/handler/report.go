package handler

import (
	"github.com/gin-gonic/gin"

	appreport "github.com/ims/backend/internal/application/report"
)

// ReportHandler handles reporting HTTP requests
type ReportHandler struct {
	BaseHandler
	reportService *appreport.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *appreport.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Dashboard handles GET /reports/dashboard
func (h *ReportHandler) Dashboard(c *gin.Context) {
	dashboard, err := h.reportService.GetDashboard(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dashboard)
}

// StockSummary handles GET /reports/stock-summary
func (h *ReportHandler) StockSummary(c *gin.Context) {
	summary, err := h.reportService.GetStockSummary(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// MovementSummary handles GET /reports/movement-summary
func (h *ReportHandler) MovementSummary(c *gin.Context) {
	var filter appreport.MovementReportFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	summary, err := h.reportService.GetMovementSummary(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// DailyMovementTrend handles GET /reports/movement-trend
func (h *ReportHandler) DailyMovementTrend(c *gin.Context) {
	var filter appreport.MovementReportFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	trend, err := h.reportService.GetDailyMovementTrend(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, trend)
}

// TopOutboundProducts handles GET /reports/top-outbound
func (h *ReportHandler) TopOutboundProducts(c *gin.Context) {
	var filter appreport.MovementReportFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	rankings, err := h.reportService.GetTopOutboundProducts(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rankings)
}

// StockValueByCategory handles GET /reports/stock-value-by-category
func (h *ReportHandler) StockValueByCategory(c *gin.Context) {
	values, err := h.reportService.GetStockValueByCategory(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, values)
}

// LowStock handles GET /reports/low-stock
func (h *ReportHandler) LowStock(c *gin.Context) {
	items, err := h.reportService.GetLowStockReport(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}
