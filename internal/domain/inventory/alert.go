package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/ims/backend/internal/domain/shared"
)

// AlertStatus represents the lifecycle status of a low-stock alert
type AlertStatus string

const (
	// AlertStatusPending is a raised alert nobody has looked at yet
	AlertStatusPending AlertStatus = "pending"
	// AlertStatusAcknowledged is a raised alert a user has taken ownership of
	AlertStatusAcknowledged AlertStatus = "acknowledged"
	// AlertStatusResolved is a closed alert, either because stock
	// recovered or because a user dismissed it
	AlertStatusResolved AlertStatus = "resolved"
)

// IsValid returns true if the alert status is valid
func (s AlertStatus) IsValid() bool {
	switch s {
	case AlertStatusPending, AlertStatusAcknowledged, AlertStatusResolved:
		return true
	}
	return false
}

// Alert records that a product's on-hand quantity dropped to or below
// its effective reorder threshold. At most one non-resolved alert
// exists per product at any time; each new low-stock cycle creates a
// fresh record.
type Alert struct {
	shared.BaseAggregateRoot
	ProductID      uuid.UUID   `gorm:"type:uuid;not null;index:idx_alert_product_status,priority:1"`
	CurrentStock   int64       `gorm:"not null"`
	ThresholdUsed  int64       `gorm:"not null"`
	Status         AlertStatus `gorm:"type:varchar(20);not null;default:'pending';index:idx_alert_product_status,priority:2"`
	FirstRaisedAt  time.Time   `gorm:"type:timestamptz;not null"`
	LastEvaluated  time.Time   `gorm:"type:timestamptz;not null"`
	AcknowledgedAt *time.Time  `gorm:"type:timestamptz"`
	AcknowledgedBy string      `gorm:"type:varchar(100)"`
	ResolvedAt     *time.Time  `gorm:"type:timestamptz"`
}

// TableName returns the table name for GORM
func (Alert) TableName() string {
	return "low_stock_alerts"
}

// NewAlert raises a new pending alert for the product
func NewAlert(productID uuid.UUID, currentStock, thresholdUsed int64) (*Alert, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}

	now := time.Now()
	alert := &Alert{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProductID:         productID,
		CurrentStock:      currentStock,
		ThresholdUsed:     thresholdUsed,
		Status:            AlertStatusPending,
		FirstRaisedAt:     now,
		LastEvaluated:     now,
	}

	alert.AddDomainEvent(NewLowStockAlertRaisedEvent(alert))

	return alert, nil
}

// IsActive returns true while the alert has not been resolved
func (a *Alert) IsActive() bool {
	return a.Status != AlertStatusResolved
}

// Refresh updates the stock snapshot while the product remains low.
// The status is left untouched so an acknowledgement survives further
// stock drops within the same cycle.
func (a *Alert) Refresh(currentStock, thresholdUsed int64) error {
	if !a.IsActive() {
		return shared.NewDomainError("INVALID_STATE", "Cannot refresh a resolved alert")
	}

	a.CurrentStock = currentStock
	a.ThresholdUsed = thresholdUsed
	a.LastEvaluated = time.Now()
	a.UpdatedAt = a.LastEvaluated
	a.IncrementVersion()

	return nil
}

// Acknowledge marks the alert as seen by the given user
func (a *Alert) Acknowledge(by string) error {
	if a.Status == AlertStatusResolved {
		return shared.NewDomainError("INVALID_STATE", "Cannot acknowledge a resolved alert")
	}
	if a.Status == AlertStatusAcknowledged {
		return shared.NewDomainError("INVALID_STATE", "Alert is already acknowledged")
	}

	now := time.Now()
	a.Status = AlertStatusAcknowledged
	a.AcknowledgedAt = &now
	a.AcknowledgedBy = by
	a.UpdatedAt = now
	a.IncrementVersion()

	a.AddDomainEvent(NewAlertAcknowledgedEvent(a))

	return nil
}

// Resolve closes the alert. Used both when stock recovers above the
// threshold and for manual dismissal.
func (a *Alert) Resolve() error {
	if a.Status == AlertStatusResolved {
		return shared.NewDomainError("INVALID_STATE", "Alert is already resolved")
	}

	now := time.Now()
	a.Status = AlertStatusResolved
	a.ResolvedAt = &now
	a.UpdatedAt = now
	a.IncrementVersion()

	a.AddDomainEvent(NewAlertResolvedEvent(a))

	return nil
}
