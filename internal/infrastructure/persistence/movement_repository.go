package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ims/backend/internal/domain/inventory"
	"github.com/ims/backend/internal/domain/shared"
)

// GormMovementRepository implements the append-only MovementRepository
// using GORM. Movement rows are never updated or deleted once written.
type GormMovementRepository struct {
	db *gorm.DB
}

// NewGormMovementRepository creates a new GormMovementRepository
func NewGormMovementRepository(db *gorm.DB) *GormMovementRepository {
	return &GormMovementRepository{db: db}
}

// Append persists a new movement record
func (r *GormMovementRepository) Append(ctx context.Context, movement *inventory.Movement) error {
	return r.db.WithContext(ctx).Create(movement).Error
}

// FindByID finds a movement by its ID
func (r *GormMovementRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Movement, error) {
	var movement inventory.Movement
	if err := r.db.WithContext(ctx).First(&movement, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &movement, nil
}

// FindAll finds movements matching the filter, newest first by sequence
func (r *GormMovementRepository) FindAll(ctx context.Context, filter inventory.MovementFilter) ([]inventory.Movement, error) {
	var movements []inventory.Movement
	query := applyListFilter(r.applyMovementFilter(ctx, filter), filter.Filter, "sequence DESC")

	if err := query.Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}

// Count counts movements matching the filter
func (r *GormMovementRepository) Count(ctx context.Context, filter inventory.MovementFilter) (int64, error) {
	var count int64
	if err := r.applyMovementFilter(ctx, filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountSince counts movements recorded at or after the given time
func (r *GormMovementRepository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&inventory.Movement{}).
		Where("occurred_at >= ?", since).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormMovementRepository) applyMovementFilter(ctx context.Context, filter inventory.MovementFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&inventory.Movement{})

	if filter.ProductID != nil {
		query = query.Where("product_id = ?", *filter.ProductID)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.From != nil {
		query = query.Where("occurred_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("occurred_at <= ?", *filter.To)
	}
	return query
}

// Ensure GormMovementRepository implements MovementRepository
var _ inventory.MovementRepository = (*GormMovementRepository)(nil)
