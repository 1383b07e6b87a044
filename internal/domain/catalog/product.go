package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ims/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ProductStatus represents the status of a product
type ProductStatus string

const (
	ProductStatusActive       ProductStatus = "active"
	ProductStatusInactive     ProductStatus = "inactive"
	ProductStatusDiscontinued ProductStatus = "discontinued"
)

// Product represents a stocked item in the catalog.
// It is the aggregate root for product operations and carries the
// current on-hand quantity, which is only mutated through the stock
// ledger service.
type Product struct {
	shared.BaseAggregateRoot
	Code           string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name           string          `gorm:"type:varchar(200);not null"`
	Description    string          `gorm:"type:text"`
	Barcode        string          `gorm:"type:varchar(50);index"`
	CategoryID     *uuid.UUID      `gorm:"type:uuid;index"`
	SupplierID     *uuid.UUID      `gorm:"type:uuid;index"`
	Unit           string          `gorm:"type:varchar(20);not null"`
	PurchasePrice  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	SellingPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	QuantityOnHand int64           `gorm:"not null;default:0"`
	// ReorderLevel is the low-stock threshold. A nil value means the
	// product uses the configured default; an explicit zero alerts
	// only when the product is completely out of stock.
	ReorderLevel *int64        `gorm:"type:bigint"`
	Status       ProductStatus `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// InsufficientStockError is returned when a stock-out or sale would
// drive the on-hand quantity negative. It carries the quantity that was
// available at the time of the check.
type InsufficientStockError struct {
	*shared.DomainError
	ProductID uuid.UUID
	Available int64
	Requested int64
}

func (e *InsufficientStockError) Unwrap() error {
	return e.DomainError
}

// NewInsufficientStockError creates an InsufficientStockError for the product
func NewInsufficientStockError(productID uuid.UUID, available, requested int64) *InsufficientStockError {
	return &InsufficientStockError{
		DomainError: shared.NewDomainError("INSUFFICIENT_STOCK",
			fmt.Sprintf("Insufficient stock: requested %d, available %d", requested, available)),
		ProductID: productID,
		Available: available,
		Requested: requested,
	}
}

// NewProduct creates a new product with zero stock
func NewProduct(code, name, unit string) (*Product, error) {
	if err := validateProductCode(code); err != nil {
		return nil, err
	}
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if err := validateUnit(unit); err != nil {
		return nil, err
	}

	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(code),
		Name:              name,
		Unit:              unit,
		PurchasePrice:     decimal.Zero,
		SellingPrice:      decimal.Zero,
		Status:            ProductStatusActive,
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// Update updates the product's basic information
func (p *Product) Update(name, description string) error {
	if err := validateProductName(name); err != nil {
		return err
	}

	p.Name = name
	p.Description = description
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductUpdatedEvent(p))

	return nil
}

// SetBarcode sets the product barcode
func (p *Product) SetBarcode(barcode string) error {
	if barcode != "" && len(barcode) > 50 {
		return shared.NewDomainError("INVALID_BARCODE", "Barcode cannot exceed 50 characters")
	}

	p.Barcode = barcode
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetCategory sets the product category
func (p *Product) SetCategory(categoryID *uuid.UUID) {
	p.CategoryID = categoryID
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductUpdatedEvent(p))
}

// SetSupplier sets the preferred supplier for the product
func (p *Product) SetSupplier(supplierID *uuid.UUID) {
	p.SupplierID = supplierID
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// SetPrices sets both purchase and selling prices
func (p *Product) SetPrices(purchasePrice, sellingPrice decimal.Decimal) error {
	if purchasePrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Purchase price cannot be negative")
	}
	if sellingPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Selling price cannot be negative")
	}

	oldPurchasePrice := p.PurchasePrice
	oldSellingPrice := p.SellingPrice

	p.PurchasePrice = purchasePrice
	p.SellingPrice = sellingPrice
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductPriceChangedEvent(p, oldPurchasePrice, oldSellingPrice))

	return nil
}

// SetReorderLevel sets an explicit low-stock threshold for the product.
// Passing nil reverts the product to the configured default threshold.
func (p *Product) SetReorderLevel(level *int64) error {
	if level != nil && *level < 0 {
		return shared.NewDomainError("INVALID_REORDER_LEVEL", "Reorder level cannot be negative")
	}

	p.ReorderLevel = level
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// EffectiveReorderLevel resolves the low-stock threshold that applies
// to this product. An explicit level, including zero, always wins over
// the supplied default.
func (p *Product) EffectiveReorderLevel(defaultLevel int64) int64 {
	if p.ReorderLevel != nil {
		return *p.ReorderLevel
	}
	return defaultLevel
}

// IsLowStock reports whether the on-hand quantity is at or below the
// effective threshold. With a threshold of zero this only triggers
// when the product is completely out of stock.
func (p *Product) IsLowStock(defaultLevel int64) bool {
	return p.QuantityOnHand <= p.EffectiveReorderLevel(defaultLevel)
}

// IncreaseStock adds the given quantity to the on-hand balance
func (p *Product) IncreaseStock(quantity int64) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	before := p.QuantityOnHand
	p.QuantityOnHand += quantity
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductStockChangedEvent(p, before, p.QuantityOnHand))

	return nil
}

// DecreaseStock removes the given quantity from the on-hand balance.
// It fails with InsufficientStockError when the balance would go
// negative, reporting the quantity that was available.
func (p *Product) DecreaseStock(quantity int64) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if quantity > p.QuantityOnHand {
		return NewInsufficientStockError(p.ID, p.QuantityOnHand, quantity)
	}

	before := p.QuantityOnHand
	p.QuantityOnHand -= quantity
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductStockChangedEvent(p, before, p.QuantityOnHand))

	return nil
}

// SetQuantity replaces the on-hand balance with an absolute value,
// used for inventory count adjustments
func (p *Product) SetQuantity(quantity int64) error {
	if quantity < 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}

	before := p.QuantityOnHand
	p.QuantityOnHand = quantity
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductStockChangedEvent(p, before, p.QuantityOnHand))

	return nil
}

// StockValue returns the purchase value of the current on-hand quantity
func (p *Product) StockValue() decimal.Decimal {
	return p.PurchasePrice.Mul(decimal.NewFromInt(p.QuantityOnHand))
}

// Activate activates the product
func (p *Product) Activate() error {
	if p.Status == ProductStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Product is already active")
	}
	if p.Status == ProductStatusDiscontinued {
		return shared.NewDomainError("CANNOT_ACTIVATE", "Cannot activate a discontinued product")
	}

	oldStatus := p.Status
	p.Status = ProductStatusActive
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductStatusChangedEvent(p, oldStatus, ProductStatusActive))

	return nil
}

// Deactivate deactivates the product
func (p *Product) Deactivate() error {
	if p.Status == ProductStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Product is already inactive")
	}
	if p.Status == ProductStatusDiscontinued {
		return shared.NewDomainError("CANNOT_DEACTIVATE", "Cannot deactivate a discontinued product")
	}

	oldStatus := p.Status
	p.Status = ProductStatusInactive
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductStatusChangedEvent(p, oldStatus, ProductStatusInactive))

	return nil
}

// Discontinue marks the product as discontinued.
// A discontinued product cannot be reactivated.
func (p *Product) Discontinue() error {
	if p.Status == ProductStatusDiscontinued {
		return shared.NewDomainError("ALREADY_DISCONTINUED", "Product is already discontinued")
	}

	oldStatus := p.Status
	p.Status = ProductStatusDiscontinued
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductStatusChangedEvent(p, oldStatus, ProductStatusDiscontinued))

	return nil
}

// IsActive returns true if the product is active
func (p *Product) IsActive() bool {
	return p.Status == ProductStatusActive
}

// validateProductCode validates the product code (SKU)
func validateProductCode(code string) error {
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Product code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_CODE", "Product code cannot exceed 50 characters")
	}
	for _, r := range code {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-') {
			return shared.NewDomainError("INVALID_CODE", "Product code can only contain letters, numbers, underscores, and hyphens")
		}
	}
	return nil
}

// validateProductName validates the product name
func validateProductName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}

// validateUnit validates the unit of measure
func validateUnit(unit string) error {
	if unit == "" {
		return shared.NewDomainError("INVALID_UNIT", "Unit cannot be empty")
	}
	if len(unit) > 20 {
		return shared.NewDomainError("INVALID_UNIT", "Unit cannot exceed 20 characters")
	}
	return nil
}
