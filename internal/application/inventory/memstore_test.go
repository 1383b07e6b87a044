package inventory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ims/backend/internal/domain/catalog"
	"github.com/ims/backend/internal/domain/inventory"
	"github.com/ims/backend/internal/domain/shared"
)

// memProductRepo is an in-memory product repository with the same
// optimistic-locking semantics as the database implementation: a save
// succeeds only when the stored row still has the version the caller
// loaded.
type memProductRepo struct {
	mu       sync.Mutex
	products map[uuid.UUID]catalog.Product
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{products: make(map[uuid.UUID]catalog.Product)}
}

func (r *memProductRepo) put(product *catalog.Product) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[product.ID] = *product
}

func (r *memProductRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.products[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := stored
	return &copied, nil
}

func (r *memProductRepo) FindByCode(_ context.Context, code string) (*catalog.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, stored := range r.products {
		if stored.Code == code {
			copied := stored
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memProductRepo) FindByBarcode(_ context.Context, barcode string) (*catalog.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, stored := range r.products {
		if stored.Barcode == barcode {
			copied := stored
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memProductRepo) FindAll(_ context.Context, _ shared.Filter) ([]catalog.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]catalog.Product, 0, len(r.products))
	for _, stored := range r.products {
		result = append(result, stored)
	}
	return result, nil
}

func (r *memProductRepo) FindByCategory(_ context.Context, categoryID uuid.UUID, _ shared.Filter) ([]catalog.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []catalog.Product
	for _, stored := range r.products {
		if stored.CategoryID != nil && *stored.CategoryID == categoryID {
			result = append(result, stored)
		}
	}
	return result, nil
}

func (r *memProductRepo) FindByStatus(_ context.Context, status catalog.ProductStatus, _ shared.Filter) ([]catalog.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []catalog.Product
	for _, stored := range r.products {
		if stored.Status == status {
			result = append(result, stored)
		}
	}
	return result, nil
}

func (r *memProductRepo) FindLowStock(_ context.Context, defaultLevel int64) ([]catalog.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []catalog.Product
	for _, stored := range r.products {
		if stored.IsActive() && stored.IsLowStock(defaultLevel) {
			result = append(result, stored)
		}
	}
	return result, nil
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
	delete(r.products, id)
	return nil
}

func (r *memProductRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.products)), nil
}

func (r *memProductRepo) CountByCategory(_ context.Context, categoryID uuid.UUID) (int64, error) {
	products, _ := r.FindByCategory(context.Background(), categoryID, shared.Filter{})
	return int64(len(products)), nil
}

func (r *memProductRepo) ExistsByCode(_ context.Context, code string) (bool, error) {
	_, err := r.FindByCode(context.Background(), code)
	if err != nil {
		return false, nil
	}
	return true, nil
}

var _ catalog.ProductRepository = (*memProductRepo)(nil)

// memMovementRepo is an in-memory append-only movement log that assigns
// sequence numbers in commit order.
type memMovementRepo struct {
	mu        sync.Mutex
	movements []inventory.Movement
	sequence  int64
}

func newMemMovementRepo() *memMovementRepo {
	return &memMovementRepo{}
}

func (r *memMovementRepo) Append(_ context.Context, movement *inventory.Movement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sequence++
	movement.Sequence = r.sequence
	r.movements = append(r.movements, *movement)
	return nil
}

func (r *memMovementRepo) FindByID(_ context.Context, id uuid.UUID) (*inventory.Movement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.movements {
		if r.movements[i].ID == id {
			copied := r.movements[i]
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memMovementRepo) FindAll(_ context.Context, filter inventory.MovementFilter) ([]inventory.Movement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []inventory.Movement
	for i := len(r.movements) - 1; i >= 0; i-- {
		if r.matches(&r.movements[i], filter) {
			result = append(result, r.movements[i])
		}
	}
	return result, nil
}

func (r *memMovementRepo) Count(_ context.Context, filter inventory.MovementFilter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for i := range r.movements {
		if r.matches(&r.movements[i], filter) {
			count++
		}
	}
	return count, nil
}

func (r *memMovementRepo) CountSince(_ context.Context, since time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for i := range r.movements {
		if !r.movements[i].OccurredAt.Before(since) {
			count++
		}
	}
	return count, nil
}

func (r *memMovementRepo) matches(movement *inventory.Movement, filter inventory.MovementFilter) bool {
	if filter.ProductID != nil && movement.ProductID != *filter.ProductID {
		return false
	}
	if filter.Type != nil && movement.Type != *filter.Type {
		return false
	}
	return true
}

var _ inventory.MovementRepository = (*memMovementRepo)(nil)

// memAlertRepo is an in-memory alert store.
type memAlertRepo struct {
	mu     sync.Mutex
	alerts map[uuid.UUID]inventory.Alert
}

func newMemAlertRepo() *memAlertRepo {
	return &memAlertRepo{alerts: make(map[uuid.UUID]inventory.Alert)}
}

func (r *memAlertRepo) FindByID(_ context.Context, id uuid.UUID) (*inventory.Alert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.alerts[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := stored
	return &copied, nil
}

func (r *memAlertRepo) FindActiveByProduct(_ context.Context, productID uuid.UUID) (*inventory.Alert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, stored := range r.alerts {
		if stored.ProductID == productID && stored.IsActive() {
			copied := stored
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memAlertRepo) FindActive(_ context.Context, _ shared.Filter) ([]inventory.Alert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []inventory.Alert
	for _, stored := range r.alerts {
		if stored.IsActive() {
			result = append(result, stored)
		}
	}
	return result, nil
}

func (r *memAlertRepo) FindByProduct(_ context.Context, productID uuid.UUID, _ shared.Filter) ([]inventory.Alert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []inventory.Alert
	for _, stored := range r.alerts {
		if stored.ProductID == productID {
			result = append(result, stored)
		}
	}
	return result, nil
}

func (r *memAlertRepo) Save(_ context.Context, alert *inventory.Alert) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.alerts[alert.ID] = *alert
	return nil
}

func (r *memAlertRepo) CountActive(_ context.Context) (int64, error) {
	alerts, _ := r.FindActive(context.Background(), shared.Filter{})
	return int64(len(alerts)), nil
}

var _ inventory.AlertRepository = (*memAlertRepo)(nil)

// mockEventPublisher collects published events for assertions.
type mockEventPublisher struct {
	mu     sync.Mutex
	events []shared.DomainEvent
}

func newMockEventPublisher() *mockEventPublisher {
	return &mockEventPublisher{}
}

func (m *mockEventPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, events...)
	return nil
}

func (m *mockEventPublisher) EventsByType(eventType string) []shared.DomainEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []shared.DomainEvent
	for _, e := range m.events {
		if e.EventType() == eventType {
			result = append(result, e)
		}
	}
	return result
}

var _ shared.EventPublisher = (*mockEventPublisher)(nil)
