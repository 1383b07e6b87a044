package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/ims/backend/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

// StockInRequest is the request to receive stock for a product
type StockInRequest struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Quantity  int64           `json:"quantity" binding:"required"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Reference string          `json:"reference"`
	Notes     string          `json:"notes"`
}

// StockOutRequest is the request to issue stock for a product.
// UnitPrice is accepted for API symmetry with stock-in but outbound
// movements are valued at the product's selling price.
type StockOutRequest struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Quantity  int64           `json:"quantity" binding:"required"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Reference string          `json:"reference"`
	Notes     string          `json:"notes"`
}

// AdjustStockRequest sets a product's on-hand quantity to a counted
// absolute value
type AdjustStockRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int64     `json:"quantity"`
	Reason    string    `json:"reason" binding:"required"`
}

// MovementResponse is the API representation of a movement record
type MovementResponse struct {
	ID            uuid.UUID       `json:"id"`
	Sequence      int64           `json:"sequence"`
	ProductID     uuid.UUID       `json:"product_id"`
	Type          string          `json:"type"`
	Quantity      int64           `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	BalanceBefore int64           `json:"balance_before"`
	BalanceAfter  int64           `json:"balance_after"`
	Reference     string          `json:"reference,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	PerformedBy   string          `json:"performed_by,omitempty"`
	OccurredAt    time.Time       `json:"occurred_at"`
}

// MovementListFilter narrows movement history queries
type MovementListFilter struct {
	ProductID *uuid.UUID `form:"product_id"`
	Type      string     `form:"type"`
	From      *time.Time `form:"from" time_format:"2006-01-02T15:04:05Z07:00"`
	To        *time.Time `form:"to" time_format:"2006-01-02T15:04:05Z07:00"`
	Page      int        `form:"page"`
	PageSize  int        `form:"page_size"`
}

// AlertResponse is the API representation of a low-stock alert
type AlertResponse struct {
	ID             uuid.UUID  `json:"id"`
	ProductID      uuid.UUID  `json:"product_id"`
	CurrentStock   int64      `json:"current_stock"`
	ThresholdUsed  int64      `json:"threshold_used"`
	Status         string     `json:"status"`
	FirstRaisedAt  time.Time  `json:"first_raised_at"`
	LastEvaluated  time.Time  `json:"last_evaluated"`
	AcknowledgedAt *time.Time `json:"acknowledged_at,omitempty"`
	AcknowledgedBy string     `json:"acknowledged_by,omitempty"`
	ResolvedAt     *time.Time `json:"resolved_at,omitempty"`
}

// AcknowledgeAlertRequest acknowledges an active alert
type AcknowledgeAlertRequest struct {
	AcknowledgedBy string `json:"acknowledged_by" binding:"required"`
}

// ToMovementResponse converts a movement to its API representation
func ToMovementResponse(movement *inventory.Movement) MovementResponse {
	return MovementResponse{
		ID:            movement.ID,
		Sequence:      movement.Sequence,
		ProductID:     movement.ProductID,
		Type:          movement.Type.String(),
		Quantity:      movement.Quantity,
		UnitPrice:     movement.UnitPrice,
		BalanceBefore: movement.BalanceBefore,
		BalanceAfter:  movement.BalanceAfter,
		Reference:     movement.Reference,
		Notes:         movement.Notes,
		PerformedBy:   movement.PerformedBy,
		OccurredAt:    movement.OccurredAt,
	}
}

// ToMovementResponses converts a slice of movements
func ToMovementResponses(movements []inventory.Movement) []MovementResponse {
	responses := make([]MovementResponse, len(movements))
	for i := range movements {
		responses[i] = ToMovementResponse(&movements[i])
	}
	return responses
}

// ToAlertResponse converts an alert to its API representation
func ToAlertResponse(alert *inventory.Alert) AlertResponse {
	return AlertResponse{
		ID:             alert.ID,
		ProductID:      alert.ProductID,
		CurrentStock:   alert.CurrentStock,
		ThresholdUsed:  alert.ThresholdUsed,
		Status:         string(alert.Status),
		FirstRaisedAt:  alert.FirstRaisedAt,
		LastEvaluated:  alert.LastEvaluated,
		AcknowledgedAt: alert.AcknowledgedAt,
		AcknowledgedBy: alert.AcknowledgedBy,
		ResolvedAt:     alert.ResolvedAt,
	}
}

// ToAlertResponses converts a slice of alerts
func ToAlertResponses(alerts []inventory.Alert) []AlertResponse {
	responses := make([]AlertResponse, len(alerts))
	for i := range alerts {
		responses[i] = ToAlertResponse(&alerts[i])
	}
	return responses
}
