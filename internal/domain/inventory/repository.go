package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ims/backend/internal/domain/shared"
)

// MovementFilter narrows movement history queries
type MovementFilter struct {
	ProductID *uuid.UUID
	Type      *MovementType
	From      *time.Time
	To        *time.Time
	shared.Filter
}

// MovementRepository defines the interface for the append-only movement log
type MovementRepository interface {
	// Append persists a new movement record
	Append(ctx context.Context, movement *Movement) error

	// FindByID finds a movement by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Movement, error)

	// FindAll finds movements matching the filter, newest first by sequence
	FindAll(ctx context.Context, filter MovementFilter) ([]Movement, error)

	// Count counts movements matching the filter
	Count(ctx context.Context, filter MovementFilter) (int64, error)

	// CountSince counts movements recorded at or after the given time
	CountSince(ctx context.Context, since time.Time) (int64, error)
}

// AlertRepository defines the interface for low-stock alert persistence
type AlertRepository interface {
	// FindByID finds an alert by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Alert, error)

	// FindActiveByProduct finds the product's non-resolved alert, if any
	FindActiveByProduct(ctx context.Context, productID uuid.UUID) (*Alert, error)

	// FindActive lists all non-resolved alerts
	FindActive(ctx context.Context, filter shared.Filter) ([]Alert, error)

	// FindByProduct lists all alerts for a product, newest first
	FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]Alert, error)

	// Save creates or updates an alert
	Save(ctx context.Context, alert *Alert) error

	// CountActive counts non-resolved alerts
	CountActive(ctx context.Context) (int64, error)
}
