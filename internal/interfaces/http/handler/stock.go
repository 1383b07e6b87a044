package handler

import (
	"github.com/gin-gonic/gin"

	appinventory "github.com/ims/backend/internal/application/inventory"
)

// StockHandler handles stock ledger HTTP requests
type StockHandler struct {
	BaseHandler
	ledgerService *appinventory.LedgerService
}

// NewStockHandler creates a new StockHandler
func NewStockHandler(ledgerService *appinventory.LedgerService) *StockHandler {
	return &StockHandler{ledgerService: ledgerService}
}

// RecordIn handles POST /stock/in
func (h *StockHandler) RecordIn(c *gin.Context) {
	var req appinventory.StockInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	movement, err := h.ledgerService.RecordIn(c.Request.Context(), req, getActor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, movement)
}

// RecordOut handles POST /stock/out
func (h *StockHandler) RecordOut(c *gin.Context) {
	var req appinventory.StockOutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	movement, err := h.ledgerService.RecordOut(c.Request.Context(), req, getActor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, movement)
}

// RecordAdjustment handles POST /stock/adjust
func (h *StockHandler) RecordAdjustment(c *gin.Context) {
	var req appinventory.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	movement, err := h.ledgerService.RecordAdjustment(c.Request.Context(), req, getActor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, movement)
}

// GetMovement handles GET /stock/movements/:id
func (h *StockHandler) GetMovement(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid movement ID")
		return
	}

	movement, err := h.ledgerService.GetMovement(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, movement)
}

// ListMovements handles GET /stock/movements
func (h *StockHandler) ListMovements(c *gin.Context) {
	var filter appinventory.MovementListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	movements, total, err := h.ledgerService.ListMovements(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}
	h.SuccessWithMeta(c, movements, total, page, pageSize)
}
