package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/ims/backend/internal/domain/catalog"
	"github.com/ims/backend/internal/domain/shared"
)

// CategoryService handles category management
type CategoryService struct {
	categoryRepo catalog.CategoryRepository
	productRepo  catalog.ProductRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo catalog.CategoryRepository, productRepo catalog.ProductRepository) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
	}
}

// Create creates a new category
func (s *CategoryService) Create(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error) {
	exists, err := s.categoryRepo.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Category with this code already exists")
	}

	category, err := catalog.NewCategory(req.Code, req.Name)
	if err != nil {
		return nil, err
	}
	if req.Description != "" {
		if err := category.Update(req.Name, req.Description); err != nil {
			return nil, err
		}
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	response := ToCategoryResponse(category)
	return &response, nil
}

// Update updates a category
func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, req UpdateCategoryRequest) (*CategoryResponse, error) {
	category, err := s.findCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := category.Update(req.Name, req.Description); err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	response := ToCategoryResponse(category)
	return &response, nil
}

// GetByID retrieves a category by ID
func (s *CategoryService) GetByID(ctx context.Context, id uuid.UUID) (*CategoryResponse, error) {
	category, err := s.findCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToCategoryResponse(category)
	return &response, nil
}

// List returns all categories
func (s *CategoryService) List(ctx context.Context) ([]CategoryResponse, error) {
	filter := shared.DefaultFilter()
	filter.Limit = 500
	filter.OrderBy = "sort_order"

	categories, err := s.categoryRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return ToCategoryResponses(categories), nil
}

// Delete deletes a category. Categories still referenced by products
// cannot be removed.
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.findCategory(ctx, id); err != nil {
		return err
	}

	count, err := s.productRepo.CountByCategory(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.NewDomainError("INVALID_STATE", "Category is still assigned to products")
	}

	return s.categoryRepo.Delete(ctx, id)
}

func (s *CategoryService) findCategory(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("CATEGORY_NOT_FOUND", "Category does not exist")
		}
		return nil, err
	}
	return category, nil
}
