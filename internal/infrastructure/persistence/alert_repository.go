package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ims/backend/internal/domain/inventory"
	"github.com/ims/backend/internal/domain/shared"
)

// GormAlertRepository implements AlertRepository using GORM
type GormAlertRepository struct {
	db *gorm.DB
}

// NewGormAlertRepository creates a new GormAlertRepository
func NewGormAlertRepository(db *gorm.DB) *GormAlertRepository {
	return &GormAlertRepository{db: db}
}

// FindByID finds an alert by its ID
func (r *GormAlertRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Alert, error) {
	var alert inventory.Alert
	if err := r.db.WithContext(ctx).First(&alert, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &alert, nil
}

// FindActiveByProduct finds the product's non-resolved alert, if any.
// At most one such row exists per product.
func (r *GormAlertRepository) FindActiveByProduct(ctx context.Context, productID uuid.UUID) (*inventory.Alert, error) {
	var alert inventory.Alert
	if err := r.db.WithContext(ctx).
		Where("product_id = ? AND status <> ?", productID, inventory.AlertStatusResolved).
		First(&alert).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &alert, nil
}

// FindActive lists all non-resolved alerts
func (r *GormAlertRepository) FindActive(ctx context.Context, filter shared.Filter) ([]inventory.Alert, error) {
	var alerts []inventory.Alert
	query := applyListFilter(
		r.db.WithContext(ctx).Model(&inventory.Alert{}).
			Where("status <> ?", inventory.AlertStatusResolved),
		filter, "first_raised_at DESC",
	)

	if err := query.Find(&alerts).Error; err != nil {
		return nil, err
	}
	return alerts, nil
}

// FindByProduct lists all alerts for a product, newest first
func (r *GormAlertRepository) FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]inventory.Alert, error) {
	var alerts []inventory.Alert
	query := applyListFilter(
		r.db.WithContext(ctx).Model(&inventory.Alert{}).
			Where("product_id = ?", productID),
		filter, "first_raised_at DESC",
	)

	if err := query.Find(&alerts).Error; err != nil {
		return nil, err
	}
	return alerts, nil
}

// Save creates or updates an alert
func (r *GormAlertRepository) Save(ctx context.Context, alert *inventory.Alert) error {
	return r.db.WithContext(ctx).Save(alert).Error
}

// CountActive counts non-resolved alerts
func (r *GormAlertRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&inventory.Alert{}).
		Where("status <> ?", inventory.AlertStatusResolved).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormAlertRepository implements AlertRepository
var _ inventory.AlertRepository = (*GormAlertRepository)(nil)
