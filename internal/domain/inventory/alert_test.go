package inventory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/ims/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAlert(t *testing.T) {
	t.Run("raises pending alert", func(t *testing.T) {
		productID := uuid.New()
		alert, err := NewAlert(productID, 8, 10)
		require.NoError(t, err)

		assert.Equal(t, productID, alert.ProductID)
		assert.Equal(t, int64(8), alert.CurrentStock)
		assert.Equal(t, int64(10), alert.ThresholdUsed)
		assert.Equal(t, AlertStatusPending, alert.Status)
		assert.True(t, alert.IsActive())
		assert.False(t, alert.FirstRaisedAt.IsZero())
		assert.Nil(t, alert.ResolvedAt)
	})

	t.Run("publishes raised event", func(t *testing.T) {
		alert, err := NewAlert(uuid.New(), 8, 10)
		require.NoError(t, err)

		events := alert.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeLowStockAlertRaised, events[0].EventType())
	})

	t.Run("rejects nil product", func(t *testing.T) {
		_, err := NewAlert(uuid.Nil, 8, 10)
		assert.Error(t, err)
	})
}

func TestAlertRefresh(t *testing.T) {
	t.Run("updates snapshot without changing status", func(t *testing.T) {
		alert, err := NewAlert(uuid.New(), 8, 10)
		require.NoError(t, err)
		require.NoError(t, alert.Acknowledge("bob"))

		require.NoError(t, alert.Refresh(3, 10))

		assert.Equal(t, int64(3), alert.CurrentStock)
		assert.Equal(t, AlertStatusAcknowledged, alert.Status)
	})

	t.Run("fails on resolved alert", func(t *testing.T) {
		alert, err := NewAlert(uuid.New(), 8, 10)
		require.NoError(t, err)
		require.NoError(t, alert.Resolve())

		err = alert.Refresh(3, 10)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
	})
}

func TestAlertAcknowledge(t *testing.T) {
	t.Run("pending to acknowledged", func(t *testing.T) {
		alert, err := NewAlert(uuid.New(), 8, 10)
		require.NoError(t, err)

		require.NoError(t, alert.Acknowledge("bob"))

		assert.Equal(t, AlertStatusAcknowledged, alert.Status)
		assert.Equal(t, "bob", alert.AcknowledgedBy)
		require.NotNil(t, alert.AcknowledgedAt)
		assert.True(t, alert.IsActive())
	})

	t.Run("fails when already acknowledged", func(t *testing.T) {
		alert, err := NewAlert(uuid.New(), 8, 10)
		require.NoError(t, err)
		require.NoError(t, alert.Acknowledge("bob"))

		assert.Error(t, alert.Acknowledge("carol"))
	})

	t.Run("fails when resolved", func(t *testing.T) {
		alert, err := NewAlert(uuid.New(), 8, 10)
		require.NoError(t, err)
		require.NoError(t, alert.Resolve())

		err = alert.Acknowledge("bob")
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
	})
}

func TestAlertResolve(t *testing.T) {
	t.Run("closes pending alert", func(t *testing.T) {
		alert, err := NewAlert(uuid.New(), 8, 10)
		require.NoError(t, err)

		require.NoError(t, alert.Resolve())

		assert.Equal(t, AlertStatusResolved, alert.Status)
		require.NotNil(t, alert.ResolvedAt)
		assert.False(t, alert.IsActive())
	})

	t.Run("closes acknowledged alert", func(t *testing.T) {
		alert, err := NewAlert(uuid.New(), 8, 10)
		require.NoError(t, err)
		require.NoError(t, alert.Acknowledge("bob"))

		assert.NoError(t, alert.Resolve())
	})

	t.Run("fails when already resolved", func(t *testing.T) {
		alert, err := NewAlert(uuid.New(), 8, 10)
		require.NoError(t, err)
		require.NoError(t, alert.Resolve())

		assert.Error(t, alert.Resolve())
	})
}
