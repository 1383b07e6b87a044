package catalog

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/ims/backend/internal/domain/catalog"
	"github.com/ims/backend/internal/domain/partner"
	"github.com/ims/backend/internal/domain/shared"
)

type memProductRepo struct {
	mu       sync.Mutex
	products map[uuid.UUID]catalog.Product
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{products: make(map[uuid.UUID]catalog.Product)}
}

func (r *memProductRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := p
	return &copied, nil
}

func (r *memProductRepo) FindByCode(_ context.Context, code string) (*catalog.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.Code == code {
			copied := p
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memProductRepo) FindByBarcode(_ context.Context, barcode string) (*catalog.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.Barcode == barcode {
			copied := p
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memProductRepo) FindAll(_ context.Context, _ shared.Filter) ([]catalog.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]catalog.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, p)
	}
	return out, nil
}

func (r *memProductRepo) FindByCategory(_ context.Context, categoryID uuid.UUID, _ shared.Filter) ([]catalog.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []catalog.Product
	for _, p := range r.products {
		if p.CategoryID != nil && *p.CategoryID == categoryID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memProductRepo) FindByStatus(_ context.Context, status catalog.ProductStatus, _ shared.Filter) ([]catalog.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []catalog.Product
	for _, p := range r.products {
		if p.Status == status {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memProductRepo) FindLowStock(_ context.Context, defaultLevel int64) ([]catalog.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []catalog.Product
	for _, p := range r.products {
		if p.Status == catalog.ProductStatusActive && p.IsLowStock(defaultLevel) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memProductRepo) Save(_ context.Context, product *catalog.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[product.ID] = *product
	return nil
}

func (r *memProductRepo) SaveWithLock(_ context.Context, product *catalog.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.products[product.ID]
	if !ok {
		return shared.ErrNotFound
	}
	if stored.Version != product.Version-1 {
		return shared.ErrConcurrencyConflict
	}
	r.products[product.ID] = *product
	return nil
}

func (r *memProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *memProductRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.products)), nil
}

func (r *memProductRepo) CountByCategory(_ context.Context, categoryID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, p := range r.products {
		if p.CategoryID != nil && *p.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

func (r *memProductRepo) ExistsByCode(_ context.Context, code string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.Code == code {
			return true, nil
		}
	}
	return false, nil
}

type memCategoryRepo struct {
	mu         sync.Mutex
	categories map[uuid.UUID]catalog.Category
}

func newMemCategoryRepo() *memCategoryRepo {
	return &memCategoryRepo{categories: make(map[uuid.UUID]catalog.Category)}
}

func (r *memCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.categories[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := c
	return &copied, nil
}

func (r *memCategoryRepo) FindByCode(_ context.Context, code string) (*catalog.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.categories {
		if c.Code == code {
			copied := c
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memCategoryRepo) FindAll(_ context.Context, _ shared.Filter) ([]catalog.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]catalog.Category, 0, len(r.categories))
	for _, c := range r.categories {
		out = append(out, c)
	}
	return out, nil
}

func (r *memCategoryRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.categories)), nil
}

func (r *memCategoryRepo) Save(_ context.Context, category *catalog.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.categories[category.ID] = *category
	return nil
}

func (r *memCategoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.categories[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.categories, id)
	return nil
}

func (r *memCategoryRepo) ExistsByCode(_ context.Context, code string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.categories {
		if c.Code == code {
			return true, nil
		}
	}
	return false, nil
}

type memSupplierRepo struct {
	mu        sync.Mutex
	suppliers map[uuid.UUID]partner.Supplier
}

func newMemSupplierRepo() *memSupplierRepo {
	return &memSupplierRepo{suppliers: make(map[uuid.UUID]partner.Supplier)}
}

func (r *memSupplierRepo) FindByID(_ context.Context, id uuid.UUID) (*partner.Supplier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.suppliers[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := s
	return &copied, nil
}

func (r *memSupplierRepo) FindByCode(_ context.Context, code string) (*partner.Supplier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.suppliers {
		if s.Code == code {
			copied := s
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memSupplierRepo) FindAll(_ context.Context, _ shared.Filter) ([]partner.Supplier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]partner.Supplier, 0, len(r.suppliers))
	for _, s := range r.suppliers {
		out = append(out, s)
	}
	return out, nil
}

func (r *memSupplierRepo) Save(_ context.Context, supplier *partner.Supplier) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.suppliers[supplier.ID] = *supplier
	return nil
}

func (r *memSupplierRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.suppliers[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.suppliers, id)
	return nil
}

func (r *memSupplierRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.suppliers)), nil
}

func (r *memSupplierRepo) ExistsByCode(_ context.Context, code string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.suppliers {
		if s.Code == code {
			return true, nil
		}
	}
	return false, nil
}
