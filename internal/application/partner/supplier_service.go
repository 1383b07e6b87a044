package partner

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/ims/backend/internal/domain/partner"
	"github.com/ims/backend/internal/domain/shared"
)

// SupplierService handles supplier management
type SupplierService struct {
	supplierRepo   partner.SupplierRepository
	eventPublisher shared.EventPublisher
}

// NewSupplierService creates a new SupplierService
func NewSupplierService(supplierRepo partner.SupplierRepository) *SupplierService {
	return &SupplierService{supplierRepo: supplierRepo}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *SupplierService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a new supplier
func (s *SupplierService) Create(ctx context.Context, req CreateSupplierRequest) (*SupplierResponse, error) {
	exists, err := s.supplierRepo.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Supplier with this code already exists")
	}

	supplier, err := partner.NewSupplier(req.Code, req.Name)
	if err != nil {
		return nil, err
	}
	if req.ContactName != "" || req.Phone != "" || req.Email != "" {
		if err := supplier.SetContact(req.ContactName, req.Phone, req.Email); err != nil {
			return nil, err
		}
	}
	if req.Address != "" {
		if err := supplier.SetAddress(req.Address); err != nil {
			return nil, err
		}
	}
	if req.Notes != "" {
		supplier.SetNotes(req.Notes)
	}

	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, supplier)

	response := ToSupplierResponse(supplier)
	return &response, nil
}

// Update updates a supplier
func (s *SupplierService) Update(ctx context.Context, id uuid.UUID, req UpdateSupplierRequest) (*SupplierResponse, error) {
	supplier, err := s.findSupplier(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := supplier.Update(req.Name); err != nil {
		return nil, err
	}
	if err := supplier.SetContact(req.ContactName, req.Phone, req.Email); err != nil {
		return nil, err
	}
	if err := supplier.SetAddress(req.Address); err != nil {
		return nil, err
	}
	supplier.SetNotes(req.Notes)

	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, supplier)

	response := ToSupplierResponse(supplier)
	return &response, nil
}

// GetByID retrieves a supplier by ID
func (s *SupplierService) GetByID(ctx context.Context, id uuid.UUID) (*SupplierResponse, error) {
	supplier, err := s.findSupplier(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToSupplierResponse(supplier)
	return &response, nil
}

// List returns suppliers with pagination
func (s *SupplierService) List(ctx context.Context, page, pageSize int) ([]SupplierResponse, int64, error) {
	filter := shared.DefaultFilter()
	if pageSize > 0 {
		filter.Limit = pageSize
	}
	if page > 1 {
		filter.Offset = (page - 1) * filter.Limit
	}

	suppliers, err := s.supplierRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.supplierRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return ToSupplierResponses(suppliers), total, nil
}

// Activate activates a supplier
func (s *SupplierService) Activate(ctx context.Context, id uuid.UUID) (*SupplierResponse, error) {
	return s.changeStatus(ctx, id, (*partner.Supplier).Activate)
}

// Deactivate deactivates a supplier
func (s *SupplierService) Deactivate(ctx context.Context, id uuid.UUID) (*SupplierResponse, error) {
	return s.changeStatus(ctx, id, (*partner.Supplier).Deactivate)
}

// Delete deletes a supplier
func (s *SupplierService) Delete(ctx context.Context, id uuid.UUID) error {
	supplier, err := s.findSupplier(ctx, id)
	if err != nil {
		return err
	}

	if err := s.supplierRepo.Delete(ctx, id); err != nil {
		return err
	}

	if s.eventPublisher != nil {
		_ = s.eventPublisher.Publish(ctx, partner.NewSupplierDeletedEvent(supplier))
	}
	return nil
}

func (s *SupplierService) changeStatus(ctx context.Context, id uuid.UUID, mutate func(*partner.Supplier) error) (*SupplierResponse, error) {
	supplier, err := s.findSupplier(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := mutate(supplier); err != nil {
		return nil, err
	}
	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, supplier)

	response := ToSupplierResponse(supplier)
	return &response, nil
}

func (s *SupplierService) findSupplier(ctx context.Context, id uuid.UUID) (*partner.Supplier, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("SUPPLIER_NOT_FOUND", "Supplier does not exist")
		}
		return nil, err
	}
	return supplier, nil
}

func (s *SupplierService) publishDomainEvents(ctx context.Context, supplier *partner.Supplier) {
	if s.eventPublisher == nil {
		supplier.ClearDomainEvents()
		return
	}
	events := supplier.GetDomainEvents()
	if len(events) > 0 {
		_ = s.eventPublisher.Publish(ctx, events...)
	}
	supplier.ClearDomainEvents()
}
