package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/ims/backend/internal/domain/shared"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindByCode finds a product by its code
	FindByCode(ctx context.Context, code string) (*Product, error)

	// FindByBarcode finds a product by its barcode
	FindByBarcode(ctx context.Context, barcode string) (*Product, error)

	// FindAll finds all products matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)

	// FindByCategory finds all products in a specific category
	FindByCategory(ctx context.Context, categoryID uuid.UUID, filter shared.Filter) ([]Product, error)

	// FindByStatus finds products by status
	FindByStatus(ctx context.Context, status ProductStatus, filter shared.Filter) ([]Product, error)

	// FindLowStock finds active products whose on-hand quantity is at or
	// below their effective reorder level
	FindLowStock(ctx context.Context, defaultLevel int64) ([]Product, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// SaveWithLock updates a product with an optimistic version check
	SaveWithLock(ctx context.Context, product *Product) error

	// Delete deletes a product
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts products matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// CountByCategory counts products in a specific category
	CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error)

	// ExistsByCode checks if a product with the given code exists
	ExistsByCode(ctx context.Context, code string) (bool, error)
}
