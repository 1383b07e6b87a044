package partner

import (
	"time"

	"github.com/google/uuid"

	"github.com/ims/backend/internal/domain/partner"
)

// CreateSupplierRequest is the request to create a supplier
type CreateSupplierRequest struct {
	Code        string `json:"code" binding:"required"`
	Name        string `json:"name" binding:"required"`
	ContactName string `json:"contact_name"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Address     string `json:"address"`
	Notes       string `json:"notes"`
}

// UpdateSupplierRequest is the request to update a supplier
type UpdateSupplierRequest struct {
	Name        string `json:"name" binding:"required"`
	ContactName string `json:"contact_name"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Address     string `json:"address"`
	Notes       string `json:"notes"`
}

// SupplierResponse is the API representation of a supplier
type SupplierResponse struct {
	ID          uuid.UUID `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	ContactName string    `json:"contact_name,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Email       string    `json:"email,omitempty"`
	Address     string    `json:"address,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToSupplierResponse converts a supplier to its API representation
func ToSupplierResponse(supplier *partner.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:          supplier.ID,
		Code:        supplier.Code,
		Name:        supplier.Name,
		ContactName: supplier.ContactName,
		Phone:       supplier.Phone,
		Email:       supplier.Email,
		Address:     supplier.Address,
		Notes:       supplier.Notes,
		Status:      string(supplier.Status),
		CreatedAt:   supplier.CreatedAt,
		UpdatedAt:   supplier.UpdatedAt,
	}
}

// ToSupplierResponses converts a slice of suppliers
func ToSupplierResponses(suppliers []partner.Supplier) []SupplierResponse {
	responses := make([]SupplierResponse, len(suppliers))
	for i := range suppliers {
		responses[i] = ToSupplierResponse(&suppliers[i])
	}
	return responses
}
