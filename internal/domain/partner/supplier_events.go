package partner

import (
	"github.com/google/uuid"
	"github.com/ims/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeSupplier = "Supplier"

// Event type constants
const (
	EventTypeSupplierCreated       = "SupplierCreated"
	EventTypeSupplierUpdated       = "SupplierUpdated"
	EventTypeSupplierStatusChanged = "SupplierStatusChanged"
	EventTypeSupplierDeleted       = "SupplierDeleted"
)

// SupplierCreatedEvent is published when a new supplier is created
type SupplierCreatedEvent struct {
	shared.BaseDomainEvent
	SupplierID uuid.UUID `json:"supplier_id"`
	Code       string    `json:"code"`
	Name       string    `json:"name"`
}

// NewSupplierCreatedEvent creates a new SupplierCreatedEvent
func NewSupplierCreatedEvent(supplier *Supplier) *SupplierCreatedEvent {
	return &SupplierCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSupplierCreated, AggregateTypeSupplier, supplier.ID),
		SupplierID:      supplier.ID,
		Code:            supplier.Code,
		Name:            supplier.Name,
	}
}

// SupplierUpdatedEvent is published when a supplier is updated
type SupplierUpdatedEvent struct {
	shared.BaseDomainEvent
	SupplierID uuid.UUID `json:"supplier_id"`
	Code       string    `json:"code"`
	Name       string    `json:"name"`
}

// NewSupplierUpdatedEvent creates a new SupplierUpdatedEvent
func NewSupplierUpdatedEvent(supplier *Supplier) *SupplierUpdatedEvent {
	return &SupplierUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSupplierUpdated, AggregateTypeSupplier, supplier.ID),
		SupplierID:      supplier.ID,
		Code:            supplier.Code,
		Name:            supplier.Name,
	}
}

// SupplierStatusChangedEvent is published when a supplier's status changes
type SupplierStatusChangedEvent struct {
	shared.BaseDomainEvent
	SupplierID uuid.UUID      `json:"supplier_id"`
	Code       string         `json:"code"`
	OldStatus  SupplierStatus `json:"old_status"`
	NewStatus  SupplierStatus `json:"new_status"`
}

// NewSupplierStatusChangedEvent creates a new SupplierStatusChangedEvent
func NewSupplierStatusChangedEvent(supplier *Supplier, oldStatus, newStatus SupplierStatus) *SupplierStatusChangedEvent {
	return &SupplierStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSupplierStatusChanged, AggregateTypeSupplier, supplier.ID),
		SupplierID:      supplier.ID,
		Code:            supplier.Code,
		OldStatus:       oldStatus,
		NewStatus:       newStatus,
	}
}

// SupplierDeletedEvent is published when a supplier is deleted
type SupplierDeletedEvent struct {
	shared.BaseDomainEvent
	SupplierID uuid.UUID `json:"supplier_id"`
	Code       string    `json:"code"`
}

// NewSupplierDeletedEvent creates a new SupplierDeletedEvent
func NewSupplierDeletedEvent(supplier *Supplier) *SupplierDeletedEvent {
	return &SupplierDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSupplierDeleted, AggregateTypeSupplier, supplier.ID),
		SupplierID:      supplier.ID,
		Code:            supplier.Code,
	}
}
