package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/ims/backend/internal/domain/catalog"
	"github.com/ims/backend/internal/domain/partner"
	"github.com/ims/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ProductService handles product catalog operations. Stock levels are
// read-only here; all balance mutations go through the stock ledger.
type ProductService struct {
	productRepo      catalog.ProductRepository
	categoryRepo     catalog.CategoryRepository
	supplierRepo     partner.SupplierRepository
	eventPublisher   shared.EventPublisher
	defaultThreshold int64
	logger           *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
	supplierRepo partner.SupplierRepository,
	defaultThreshold int64,
	logger *zap.Logger,
) *ProductService {
	return &ProductService{
		productRepo:      productRepo,
		categoryRepo:     categoryRepo,
		supplierRepo:     supplierRepo,
		defaultThreshold: defaultThreshold,
		logger:           logger,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *ProductService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	exists, err := s.productRepo.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Product with this code already exists")
	}

	if req.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *req.CategoryID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_CATEGORY", "Category not found")
			}
			return nil, err
		}
	}
	if req.SupplierID != nil {
		if _, err := s.supplierRepo.FindByID(ctx, *req.SupplierID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_SUPPLIER", "Supplier not found")
			}
			return nil, err
		}
	}

	product, err := catalog.NewProduct(req.Code, req.Name, req.Unit)
	if err != nil {
		return nil, err
	}

	if req.Description != "" {
		if err := product.Update(req.Name, req.Description); err != nil {
			return nil, err
		}
	}
	if req.Barcode != "" {
		if err := product.SetBarcode(req.Barcode); err != nil {
			return nil, err
		}
	}
	if req.CategoryID != nil {
		product.SetCategory(req.CategoryID)
	}
	if req.SupplierID != nil {
		product.SetSupplier(req.SupplierID)
	}
	if req.PurchasePrice != nil || req.SellingPrice != nil {
		purchasePrice := product.PurchasePrice
		sellingPrice := product.SellingPrice
		if req.PurchasePrice != nil {
			purchasePrice = *req.PurchasePrice
		}
		if req.SellingPrice != nil {
			sellingPrice = *req.SellingPrice
		}
		if err := product.SetPrices(purchasePrice, sellingPrice); err != nil {
			return nil, err
		}
	}
	if req.ReorderLevel != nil {
		if err := product.SetReorderLevel(req.ReorderLevel); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, product)

	response := ToProductResponse(product)
	return &response, nil
}

// Update updates a product's catalog information
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.findProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := product.Update(req.Name, req.Description); err != nil {
		return nil, err
	}
	if req.Barcode != nil {
		if err := product.SetBarcode(*req.Barcode); err != nil {
			return nil, err
		}
	}
	if req.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *req.CategoryID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_CATEGORY", "Category not found")
			}
			return nil, err
		}
		product.SetCategory(req.CategoryID)
	}
	if req.SupplierID != nil {
		if _, err := s.supplierRepo.FindByID(ctx, *req.SupplierID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_SUPPLIER", "Supplier not found")
			}
			return nil, err
		}
		product.SetSupplier(req.SupplierID)
	}
	if req.PurchasePrice != nil || req.SellingPrice != nil {
		purchasePrice := product.PurchasePrice
		sellingPrice := product.SellingPrice
		if req.PurchasePrice != nil {
			purchasePrice = *req.PurchasePrice
		}
		if req.SellingPrice != nil {
			sellingPrice = *req.SellingPrice
		}
		if err := product.SetPrices(purchasePrice, sellingPrice); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, product)

	response := ToProductResponse(product)
	return &response, nil
}

// SetReorderLevel sets or clears a product's explicit low-stock threshold
func (s *ProductService) SetReorderLevel(ctx context.Context, id uuid.UUID, req SetReorderLevelRequest) (*ProductResponse, error) {
	product, err := s.findProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := product.SetReorderLevel(req.ReorderLevel); err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.findProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// GetByCode retrieves a product by its code
func (s *ProductService) GetByCode(ctx context.Context, code string) (*ProductResponse, error) {
	product, err := s.productRepo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("PRODUCT_NOT_FOUND", "Product does not exist")
		}
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// GetQuantity returns the current on-hand quantity for a product
func (s *ProductService) GetQuantity(ctx context.Context, id uuid.UUID) (int64, error) {
	product, err := s.findProduct(ctx, id)
	if err != nil {
		return 0, err
	}
	return product.QuantityOnHand, nil
}

// List returns products matching the filter
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) ([]ProductResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.PageSize > 0 {
		domainFilter.Limit = filter.PageSize
	}
	if filter.Page > 1 {
		domainFilter.Offset = (filter.Page - 1) * domainFilter.Limit
	}

	var (
		products []catalog.Product
		err      error
	)
	switch {
	case filter.CategoryID != nil:
		products, err = s.productRepo.FindByCategory(ctx, *filter.CategoryID, domainFilter)
	case filter.Status != "":
		products, err = s.productRepo.FindByStatus(ctx, catalog.ProductStatus(filter.Status), domainFilter)
	default:
		products, err = s.productRepo.FindAll(ctx, domainFilter)
	}
	if err != nil {
		return nil, 0, err
	}

	total, err := s.productRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToProductResponses(products), total, nil
}

// ListLowStock returns active products at or below their effective threshold
func (s *ProductService) ListLowStock(ctx context.Context) ([]ProductResponse, error) {
	products, err := s.productRepo.FindLowStock(ctx, s.defaultThreshold)
	if err != nil {
		return nil, err
	}
	return ToProductResponses(products), nil
}

// Deactivate deactivates a product
func (s *ProductService) Deactivate(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.findProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := product.Deactivate(); err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, product)

	response := ToProductResponse(product)
	return &response, nil
}

// Activate activates a product
func (s *ProductService) Activate(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.findProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := product.Activate(); err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, product)

	response := ToProductResponse(product)
	return &response, nil
}

// Discontinue discontinues a product permanently
func (s *ProductService) Discontinue(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.findProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := product.Discontinue(); err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, product)

	response := ToProductResponse(product)
	return &response, nil
}

// Delete deletes a product. Products with recorded stock cannot be
// deleted; discontinue them instead so movement history stays intact.
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	product, err := s.findProduct(ctx, id)
	if err != nil {
		return err
	}

	if product.QuantityOnHand != 0 {
		return shared.NewDomainError("INVALID_STATE", "Cannot delete a product with stock on hand")
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}

	if s.eventPublisher != nil {
		_ = s.eventPublisher.Publish(ctx, catalog.NewProductDeletedEvent(product))
	}
	return nil
}

func (s *ProductService) findProduct(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("PRODUCT_NOT_FOUND", "Product does not exist")
		}
		return nil, err
	}
	return product, nil
}

func (s *ProductService) publishDomainEvents(ctx context.Context, product *catalog.Product) {
	if s.eventPublisher == nil {
		product.ClearDomainEvents()
		return
	}
	events := product.GetDomainEvents()
	if len(events) > 0 {
		if err := s.eventPublisher.Publish(ctx, events...); err != nil {
			s.logger.Warn("failed to publish product events",
				zap.String("product_id", product.ID.String()),
				zap.Error(err))
		}
	}
	product.ClearDomainEvents()
}
