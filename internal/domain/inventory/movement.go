package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/ims/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// MovementType represents the direction of a stock movement
type MovementType string

const (
	// MovementTypeIn represents stock coming into inventory (receiving, returns)
	MovementTypeIn MovementType = "IN"
	// MovementTypeOut represents stock leaving inventory (sales, consumption)
	MovementTypeOut MovementType = "OUT"
	// MovementTypeAdjustment represents a correction to an absolute quantity
	// (physical count); Quantity holds the counted value, not a delta
	MovementTypeAdjustment MovementType = "ADJUSTMENT"
)

// String returns the string representation of MovementType
func (t MovementType) String() string {
	return string(t)
}

// IsValid returns true if the movement type is valid
func (t MovementType) IsValid() bool {
	switch t {
	case MovementTypeIn, MovementTypeOut, MovementTypeAdjustment:
		return true
	}
	return false
}

// Movement is an immutable record of a single stock mutation. Once
// written it is never updated or deleted; corrections are recorded as
// new movements. Sequence is assigned by the database and reflects
// commit order.
type Movement struct {
	shared.BaseEntity
	Sequence      int64           `gorm:"autoIncrement;uniqueIndex"`
	ProductID     uuid.UUID       `gorm:"type:uuid;not null;index:idx_movement_product_time,priority:1"`
	Type          MovementType    `gorm:"type:varchar(20);not null;index"`
	Quantity      int64           `gorm:"not null"`
	UnitPrice     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	BalanceBefore int64           `gorm:"not null"`
	BalanceAfter  int64           `gorm:"not null"`
	Reference     string          `gorm:"type:varchar(100)"`
	Notes         string          `gorm:"type:varchar(255)"`
	PerformedBy   string          `gorm:"type:varchar(100)"`
	OccurredAt    time.Time       `gorm:"type:timestamptz;not null;index:idx_movement_product_time,priority:2"`
}

// TableName returns the table name for GORM
func (Movement) TableName() string {
	return "stock_movements"
}

// NewMovement creates a new movement record. For IN and OUT movements
// quantity is the moved amount; for ADJUSTMENT it is the counted
// absolute quantity, which must not be negative.
func NewMovement(
	productID uuid.UUID,
	movementType MovementType,
	quantity int64,
	balanceBefore, balanceAfter int64,
) (*Movement, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if !movementType.IsValid() {
		return nil, shared.NewDomainError("INVALID_MOVEMENT_TYPE", "Invalid movement type")
	}
	if movementType == MovementTypeAdjustment {
		if quantity < 0 {
			return nil, shared.NewDomainError("INVALID_QUANTITY", "Adjusted quantity cannot be negative")
		}
	} else if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	return &Movement{
		BaseEntity:    shared.NewBaseEntity(),
		ProductID:     productID,
		Type:          movementType,
		Quantity:      quantity,
		UnitPrice:     decimal.Zero,
		BalanceBefore: balanceBefore,
		BalanceAfter:  balanceAfter,
		OccurredAt:    time.Now(),
	}, nil
}

// WithUnitPrice sets the unit price recorded with the movement
func (m *Movement) WithUnitPrice(price decimal.Decimal) *Movement {
	m.UnitPrice = price
	return m
}

// WithReference sets the reference number for the movement
func (m *Movement) WithReference(reference string) *Movement {
	m.Reference = reference
	return m
}

// WithNotes sets free-form notes on the movement
func (m *Movement) WithNotes(notes string) *Movement {
	m.Notes = notes
	return m
}

// WithPerformedBy records who performed the movement
func (m *Movement) WithPerformedBy(actor string) *Movement {
	m.PerformedBy = actor
	return m
}

// QuantityChange returns the net effect on the on-hand balance
func (m *Movement) QuantityChange() int64 {
	return m.BalanceAfter - m.BalanceBefore
}

// IsInbound returns true if the movement increased the balance
func (m *Movement) IsInbound() bool {
	return m.QuantityChange() > 0
}

// IsOutbound returns true if the movement decreased the balance
func (m *Movement) IsOutbound() bool {
	return m.QuantityChange() < 0
}

// TotalValue returns the movement value at the recorded unit price.
// For adjustments this is the value of the net change.
func (m *Movement) TotalValue() decimal.Decimal {
	qty := m.Quantity
	if m.Type == MovementTypeAdjustment {
		qty = m.QuantityChange()
		if qty < 0 {
			qty = -qty
		}
	}
	return m.UnitPrice.Mul(decimal.NewFromInt(qty))
}
