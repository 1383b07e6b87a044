package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/ims/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// CreateProductRequest is the request to create a product
type CreateProductRequest struct {
	Code          string           `json:"code" binding:"required"`
	Name          string           `json:"name" binding:"required"`
	Unit          string           `json:"unit" binding:"required"`
	Description   string           `json:"description"`
	Barcode       string           `json:"barcode"`
	CategoryID    *uuid.UUID       `json:"category_id"`
	SupplierID    *uuid.UUID       `json:"supplier_id"`
	PurchasePrice *decimal.Decimal `json:"purchase_price"`
	SellingPrice  *decimal.Decimal `json:"selling_price"`
	ReorderLevel  *int64           `json:"reorder_level"`
}

// UpdateProductRequest is the request to update a product
type UpdateProductRequest struct {
	Name          string           `json:"name" binding:"required"`
	Description   string           `json:"description"`
	Barcode       *string          `json:"barcode"`
	CategoryID    *uuid.UUID       `json:"category_id"`
	SupplierID    *uuid.UUID       `json:"supplier_id"`
	PurchasePrice *decimal.Decimal `json:"purchase_price"`
	SellingPrice  *decimal.Decimal `json:"selling_price"`
}

// SetReorderLevelRequest sets or clears a product's explicit threshold
type SetReorderLevelRequest struct {
	ReorderLevel *int64 `json:"reorder_level"`
}

// ProductListFilter narrows product list queries
type ProductListFilter struct {
	CategoryID *uuid.UUID `form:"category_id"`
	Status     string     `form:"status"`
	Page       int        `form:"page"`
	PageSize   int        `form:"page_size"`
}

// ProductResponse is the API representation of a product
type ProductResponse struct {
	ID             uuid.UUID       `json:"id"`
	Code           string          `json:"code"`
	Name           string          `json:"name"`
	Description    string          `json:"description,omitempty"`
	Barcode        string          `json:"barcode,omitempty"`
	CategoryID     *uuid.UUID      `json:"category_id,omitempty"`
	SupplierID     *uuid.UUID      `json:"supplier_id,omitempty"`
	Unit           string          `json:"unit"`
	PurchasePrice  decimal.Decimal `json:"purchase_price"`
	SellingPrice   decimal.Decimal `json:"selling_price"`
	QuantityOnHand int64           `json:"quantity_on_hand"`
	ReorderLevel   *int64          `json:"reorder_level,omitempty"`
	Status         string          `json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// CreateCategoryRequest is the request to create a category
type CreateCategoryRequest struct {
	Code        string `json:"code" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// UpdateCategoryRequest is the request to update a category
type UpdateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// CategoryResponse is the API representation of a category
type CategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToProductResponse converts a product to its API representation
func ToProductResponse(product *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:             product.ID,
		Code:           product.Code,
		Name:           product.Name,
		Description:    product.Description,
		Barcode:        product.Barcode,
		CategoryID:     product.CategoryID,
		SupplierID:     product.SupplierID,
		Unit:           product.Unit,
		PurchasePrice:  product.PurchasePrice,
		SellingPrice:   product.SellingPrice,
		QuantityOnHand: product.QuantityOnHand,
		ReorderLevel:   product.ReorderLevel,
		Status:         string(product.Status),
		CreatedAt:      product.CreatedAt,
		UpdatedAt:      product.UpdatedAt,
	}
}

// ToProductResponses converts a slice of products
func ToProductResponses(products []catalog.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses
}

// ToCategoryResponse converts a category to its API representation
func ToCategoryResponse(category *catalog.Category) CategoryResponse {
	return CategoryResponse{
		ID:          category.ID,
		Code:        category.Code,
		Name:        category.Name,
		Description: category.Description,
		Status:      string(category.Status),
		CreatedAt:   category.CreatedAt,
		UpdatedAt:   category.UpdatedAt,
	}
}

// ToCategoryResponses converts a slice of categories
func ToCategoryResponses(categories []catalog.Category) []CategoryResponse {
	responses := make([]CategoryResponse, len(categories))
	for i := range categories {
		responses[i] = ToCategoryResponse(&categories[i])
	}
	return responses
}
