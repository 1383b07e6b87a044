package catalog

import (
	"errors"
	"testing"

	"github.com/ims/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	t.Run("creates product with valid input", func(t *testing.T) {
		product, err := NewProduct("sku-001", "Widget", "pcs")
		require.NoError(t, err)

		assert.Equal(t, "SKU-001", product.Code)
		assert.Equal(t, "Widget", product.Name)
		assert.Equal(t, "pcs", product.Unit)
		assert.Equal(t, int64(0), product.QuantityOnHand)
		assert.Nil(t, product.ReorderLevel)
		assert.Equal(t, ProductStatusActive, product.Status)
		assert.Equal(t, 1, product.GetVersion())
	})

	t.Run("publishes created event", func(t *testing.T) {
		product, err := NewProduct("SKU-001", "Widget", "pcs")
		require.NoError(t, err)

		events := product.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeProductCreated, events[0].EventType())
	})

	t.Run("rejects empty code", func(t *testing.T) {
		_, err := NewProduct("", "Widget", "pcs")
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CODE", domainErr.Code)
	})

	t.Run("rejects code with invalid characters", func(t *testing.T) {
		_, err := NewProduct("SKU 001", "Widget", "pcs")
		assert.Error(t, err)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewProduct("SKU-001", "", "pcs")
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_NAME", domainErr.Code)
	})

	t.Run("rejects empty unit", func(t *testing.T) {
		_, err := NewProduct("SKU-001", "Widget", "")
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_UNIT", domainErr.Code)
	})
}

func TestProductIncreaseStock(t *testing.T) {
	t.Run("adds to on-hand balance", func(t *testing.T) {
		product := mustNewProduct(t)

		err := product.IncreaseStock(25)
		require.NoError(t, err)
		assert.Equal(t, int64(25), product.QuantityOnHand)

		err = product.IncreaseStock(5)
		require.NoError(t, err)
		assert.Equal(t, int64(30), product.QuantityOnHand)
	})

	t.Run("increments version", func(t *testing.T) {
		product := mustNewProduct(t)
		before := product.GetVersion()

		require.NoError(t, product.IncreaseStock(10))
		assert.Equal(t, before+1, product.GetVersion())
	})

	t.Run("rejects zero quantity", func(t *testing.T) {
		product := mustNewProduct(t)

		err := product.IncreaseStock(0)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_QUANTITY", domainErr.Code)
	})

	t.Run("rejects negative quantity", func(t *testing.T) {
		product := mustNewProduct(t)
		assert.Error(t, product.IncreaseStock(-5))
	})
}

func TestProductDecreaseStock(t *testing.T) {
	t.Run("removes from on-hand balance", func(t *testing.T) {
		product := mustNewProduct(t)
		require.NoError(t, product.IncreaseStock(20))

		err := product.DecreaseStock(8)
		require.NoError(t, err)
		assert.Equal(t, int64(12), product.QuantityOnHand)
	})

	t.Run("allows draining balance to exactly zero", func(t *testing.T) {
		product := mustNewProduct(t)
		require.NoError(t, product.IncreaseStock(10))

		err := product.DecreaseStock(10)
		require.NoError(t, err)
		assert.Equal(t, int64(0), product.QuantityOnHand)
	})

	t.Run("fails when balance would go negative", func(t *testing.T) {
		product := mustNewProduct(t)
		require.NoError(t, product.IncreaseStock(5))

		err := product.DecreaseStock(6)
		var insufficientErr *InsufficientStockError
		require.ErrorAs(t, err, &insufficientErr)
		assert.Equal(t, int64(5), insufficientErr.Available)
		assert.Equal(t, int64(6), insufficientErr.Requested)
		assert.Equal(t, product.ID, insufficientErr.ProductID)

		// balance untouched on failure
		assert.Equal(t, int64(5), product.QuantityOnHand)
	})

	t.Run("insufficient stock unwraps to a domain error", func(t *testing.T) {
		product := mustNewProduct(t)

		err := product.DecreaseStock(1)
		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "INSUFFICIENT_STOCK", domainErr.Code)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		product := mustNewProduct(t)
		require.NoError(t, product.IncreaseStock(10))

		assert.Error(t, product.DecreaseStock(0))
		assert.Error(t, product.DecreaseStock(-3))
	})
}

func TestProductSetQuantity(t *testing.T) {
	t.Run("replaces balance with absolute value", func(t *testing.T) {
		product := mustNewProduct(t)
		require.NoError(t, product.IncreaseStock(50))

		err := product.SetQuantity(7)
		require.NoError(t, err)
		assert.Equal(t, int64(7), product.QuantityOnHand)
	})

	t.Run("allows setting to zero", func(t *testing.T) {
		product := mustNewProduct(t)
		require.NoError(t, product.IncreaseStock(3))

		require.NoError(t, product.SetQuantity(0))
		assert.Equal(t, int64(0), product.QuantityOnHand)
	})

	t.Run("rejects negative value", func(t *testing.T) {
		product := mustNewProduct(t)

		err := product.SetQuantity(-1)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_QUANTITY", domainErr.Code)
	})
}

func TestProductEffectiveReorderLevel(t *testing.T) {
	t.Run("uses default when unset", func(t *testing.T) {
		product := mustNewProduct(t)
		assert.Equal(t, int64(10), product.EffectiveReorderLevel(10))
	})

	t.Run("explicit level overrides default", func(t *testing.T) {
		product := mustNewProduct(t)
		level := int64(25)
		require.NoError(t, product.SetReorderLevel(&level))
		assert.Equal(t, int64(25), product.EffectiveReorderLevel(10))
	})

	t.Run("explicit zero wins over default and alerts only at empty", func(t *testing.T) {
		product := mustNewProduct(t)
		zero := int64(0)
		require.NoError(t, product.SetReorderLevel(&zero))

		assert.Equal(t, int64(0), product.EffectiveReorderLevel(10))
		assert.True(t, product.IsLowStock(10))

		require.NoError(t, product.IncreaseStock(1))
		assert.False(t, product.IsLowStock(10))
	})

	t.Run("rejects negative level", func(t *testing.T) {
		product := mustNewProduct(t)
		negative := int64(-1)
		assert.Error(t, product.SetReorderLevel(&negative))
	})
}

func TestProductIsLowStock(t *testing.T) {
	t.Run("low when at threshold", func(t *testing.T) {
		product := mustNewProduct(t)
		require.NoError(t, product.IncreaseStock(10))
		assert.True(t, product.IsLowStock(10))
	})

	t.Run("low when below threshold", func(t *testing.T) {
		product := mustNewProduct(t)
		require.NoError(t, product.IncreaseStock(3))
		assert.True(t, product.IsLowStock(10))
	})

	t.Run("not low when above threshold", func(t *testing.T) {
		product := mustNewProduct(t)
		require.NoError(t, product.IncreaseStock(11))
		assert.False(t, product.IsLowStock(10))
	})
}

func TestProductSetPrices(t *testing.T) {
	t.Run("sets both prices", func(t *testing.T) {
		product := mustNewProduct(t)

		err := product.SetPrices(decimal.NewFromFloat(4.50), decimal.NewFromFloat(9.99))
		require.NoError(t, err)
		assert.True(t, product.PurchasePrice.Equal(decimal.NewFromFloat(4.50)))
		assert.True(t, product.SellingPrice.Equal(decimal.NewFromFloat(9.99)))
	})

	t.Run("rejects negative prices", func(t *testing.T) {
		product := mustNewProduct(t)

		err := product.SetPrices(decimal.NewFromInt(-1), decimal.Zero)
		assert.Error(t, err)

		err = product.SetPrices(decimal.Zero, decimal.NewFromInt(-1))
		assert.Error(t, err)
	})
}

func TestProductStockValue(t *testing.T) {
	product := mustNewProduct(t)
	require.NoError(t, product.SetPrices(decimal.NewFromFloat(2.5), decimal.NewFromInt(5)))
	require.NoError(t, product.IncreaseStock(4))

	assert.True(t, product.StockValue().Equal(decimal.NewFromInt(10)))
}

func TestProductStatusTransitions(t *testing.T) {
	t.Run("deactivate then reactivate", func(t *testing.T) {
		product := mustNewProduct(t)

		require.NoError(t, product.Deactivate())
		assert.False(t, product.IsActive())

		require.NoError(t, product.Activate())
		assert.True(t, product.IsActive())
	})

	t.Run("cannot activate twice", func(t *testing.T) {
		product := mustNewProduct(t)
		assert.Error(t, product.Activate())
	})

	t.Run("discontinued product cannot be reactivated", func(t *testing.T) {
		product := mustNewProduct(t)
		require.NoError(t, product.Discontinue())

		err := product.Activate()
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "CANNOT_ACTIVATE", domainErr.Code)
	})
}

func mustNewProduct(t *testing.T) *Product {
	t.Helper()
	product, err := NewProduct("SKU-001", "Widget", "pcs")
	require.NoError(t, err)
	product.ClearDomainEvents()
	return product
}
