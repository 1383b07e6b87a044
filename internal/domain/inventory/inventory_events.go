package inventory

import (
	"github.com/google/uuid"
	"github.com/ims/backend/internal/domain/shared"
)

// Aggregate type constants
const (
	AggregateTypeMovement = "Movement"
	AggregateTypeAlert    = "Alert"
)

// Event type constants
const (
	EventTypeMovementRecorded    = "MovementRecorded"
	EventTypeLowStockAlertRaised = "LowStockAlertRaised"
	EventTypeAlertAcknowledged   = "AlertAcknowledged"
	EventTypeAlertResolved       = "AlertResolved"
)

// MovementRecordedEvent is published after a stock movement commits
type MovementRecordedEvent struct {
	shared.BaseDomainEvent
	MovementID    uuid.UUID    `json:"movement_id"`
	ProductID     uuid.UUID    `json:"product_id"`
	MovementType  MovementType `json:"movement_type"`
	Quantity      int64        `json:"quantity"`
	BalanceBefore int64        `json:"balance_before"`
	BalanceAfter  int64        `json:"balance_after"`
}

// NewMovementRecordedEvent creates a new MovementRecordedEvent
func NewMovementRecordedEvent(movement *Movement) *MovementRecordedEvent {
	return &MovementRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeMovementRecorded, AggregateTypeMovement, movement.ID),
		MovementID:      movement.ID,
		ProductID:       movement.ProductID,
		MovementType:    movement.Type,
		Quantity:        movement.Quantity,
		BalanceBefore:   movement.BalanceBefore,
		BalanceAfter:    movement.BalanceAfter,
	}
}

// LowStockAlertRaisedEvent is published when a new alert cycle starts
type LowStockAlertRaisedEvent struct {
	shared.BaseDomainEvent
	AlertID       uuid.UUID `json:"alert_id"`
	ProductID     uuid.UUID `json:"product_id"`
	CurrentStock  int64     `json:"current_stock"`
	ThresholdUsed int64     `json:"threshold_used"`
}

// NewLowStockAlertRaisedEvent creates a new LowStockAlertRaisedEvent
func NewLowStockAlertRaisedEvent(alert *Alert) *LowStockAlertRaisedEvent {
	return &LowStockAlertRaisedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLowStockAlertRaised, AggregateTypeAlert, alert.ID),
		AlertID:         alert.ID,
		ProductID:       alert.ProductID,
		CurrentStock:    alert.CurrentStock,
		ThresholdUsed:   alert.ThresholdUsed,
	}
}

// AlertAcknowledgedEvent is published when a user acknowledges an alert
type AlertAcknowledgedEvent struct {
	shared.BaseDomainEvent
	AlertID        uuid.UUID `json:"alert_id"`
	ProductID      uuid.UUID `json:"product_id"`
	AcknowledgedBy string    `json:"acknowledged_by"`
}

// NewAlertAcknowledgedEvent creates a new AlertAcknowledgedEvent
func NewAlertAcknowledgedEvent(alert *Alert) *AlertAcknowledgedEvent {
	return &AlertAcknowledgedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAlertAcknowledged, AggregateTypeAlert, alert.ID),
		AlertID:         alert.ID,
		ProductID:       alert.ProductID,
		AcknowledgedBy:  alert.AcknowledgedBy,
	}
}

// AlertResolvedEvent is published when an alert is closed
type AlertResolvedEvent struct {
	shared.BaseDomainEvent
	AlertID   uuid.UUID `json:"alert_id"`
	ProductID uuid.UUID `json:"product_id"`
}

// NewAlertResolvedEvent creates a new AlertResolvedEvent
func NewAlertResolvedEvent(alert *Alert) *AlertResolvedEvent {
	return &AlertResolvedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAlertResolved, AggregateTypeAlert, alert.ID),
		AlertID:         alert.ID,
		ProductID:       alert.ProductID,
	}
}
