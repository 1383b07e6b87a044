package inventory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/ims/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMovement(t *testing.T) {
	productID := uuid.New()

	t.Run("creates inbound movement", func(t *testing.T) {
		movement, err := NewMovement(productID, MovementTypeIn, 10, 5, 15)
		require.NoError(t, err)

		assert.Equal(t, productID, movement.ProductID)
		assert.Equal(t, MovementTypeIn, movement.Type)
		assert.Equal(t, int64(10), movement.Quantity)
		assert.Equal(t, int64(5), movement.BalanceBefore)
		assert.Equal(t, int64(15), movement.BalanceAfter)
		assert.Equal(t, int64(10), movement.QuantityChange())
		assert.True(t, movement.IsInbound())
	})

	t.Run("creates outbound movement", func(t *testing.T) {
		movement, err := NewMovement(productID, MovementTypeOut, 4, 15, 11)
		require.NoError(t, err)

		assert.Equal(t, int64(-4), movement.QuantityChange())
		assert.True(t, movement.IsOutbound())
	})

	t.Run("adjustment stores the counted quantity", func(t *testing.T) {
		movement, err := NewMovement(productID, MovementTypeAdjustment, 3, 20, 3)
		require.NoError(t, err)

		assert.Equal(t, int64(3), movement.Quantity)
		assert.Equal(t, int64(-17), movement.QuantityChange())
	})

	t.Run("adjustment to zero is allowed", func(t *testing.T) {
		_, err := NewMovement(productID, MovementTypeAdjustment, 0, 4, 0)
		assert.NoError(t, err)
	})

	t.Run("rejects nil product", func(t *testing.T) {
		_, err := NewMovement(uuid.Nil, MovementTypeIn, 1, 0, 1)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_PRODUCT", domainErr.Code)
	})

	t.Run("rejects invalid type", func(t *testing.T) {
		_, err := NewMovement(productID, MovementType("TRANSFER"), 1, 0, 1)
		assert.Error(t, err)
	})

	t.Run("rejects non-positive quantity for in and out", func(t *testing.T) {
		for _, movementType := range []MovementType{MovementTypeIn, MovementTypeOut} {
			_, err := NewMovement(productID, movementType, 0, 10, 10)
			var domainErr *shared.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, "INVALID_QUANTITY", domainErr.Code)

			_, err = NewMovement(productID, movementType, -2, 10, 8)
			assert.Error(t, err)
		}
	})

	t.Run("rejects negative adjustment quantity", func(t *testing.T) {
		_, err := NewMovement(productID, MovementTypeAdjustment, -1, 10, 0)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_QUANTITY", domainErr.Code)
	})
}

func TestMovementTotalValue(t *testing.T) {
	productID := uuid.New()

	t.Run("in movement values the moved quantity", func(t *testing.T) {
		movement, err := NewMovement(productID, MovementTypeIn, 10, 0, 10)
		require.NoError(t, err)
		movement.WithUnitPrice(decimal.NewFromFloat(2.5))

		assert.True(t, movement.TotalValue().Equal(decimal.NewFromInt(25)))
	})

	t.Run("adjustment values the net change", func(t *testing.T) {
		movement, err := NewMovement(productID, MovementTypeAdjustment, 3, 20, 3)
		require.NoError(t, err)
		movement.WithUnitPrice(decimal.NewFromInt(2))

		assert.True(t, movement.TotalValue().Equal(decimal.NewFromInt(34)))
	})
}

func TestMovementMetadata(t *testing.T) {
	movement, err := NewMovement(uuid.New(), MovementTypeOut, 1, 5, 4)
	require.NoError(t, err)

	movement.WithReference("SO-1001").WithNotes("counter sale").WithPerformedBy("alice")

	assert.Equal(t, "SO-1001", movement.Reference)
	assert.Equal(t, "counter sale", movement.Notes)
	assert.Equal(t, "alice", movement.PerformedBy)
}
