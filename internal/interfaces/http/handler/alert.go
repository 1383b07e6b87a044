package handler

import (
	"github.com/gin-gonic/gin"

	appinventory "github.com/ims/backend/internal/application/inventory"
)

// AlertHandler handles low-stock alert HTTP requests
type AlertHandler struct {
	BaseHandler
	alertService *appinventory.AlertService
}

// NewAlertHandler creates a new AlertHandler
func NewAlertHandler(alertService *appinventory.AlertService) *AlertHandler {
	return &AlertHandler{alertService: alertService}
}

// ListActive handles GET /alerts
func (h *AlertHandler) ListActive(c *gin.Context) {
	alerts, err := h.alertService.ListActive(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, alerts)
}

// ListByProduct handles GET /products/:id/alerts
func (h *AlertHandler) ListByProduct(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	alerts, err := h.alertService.ListByProduct(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, alerts)
}

// Get handles GET /alerts/:id
func (h *AlertHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid alert ID")
		return
	}

	alert, err := h.alertService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, alert)
}

// Acknowledge handles POST /alerts/:id/acknowledge
func (h *AlertHandler) Acknowledge(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid alert ID")
		return
	}

	by := getActor(c)
	var req appinventory.AcknowledgeAlertRequest
	if err := c.ShouldBindJSON(&req); err == nil && req.AcknowledgedBy != "" {
		by = req.AcknowledgedBy
	}
	if by == "" {
		h.BadRequest(c, "Acknowledging user is required")
		return
	}

	alert, err := h.alertService.Acknowledge(c.Request.Context(), id, by)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, alert)
}

// Resolve handles POST /alerts/:id/resolve
func (h *AlertHandler) Resolve(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid alert ID")
		return
	}

	alert, err := h.alertService.Resolve(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, alert)
}
