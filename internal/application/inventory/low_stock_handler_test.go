package inventory

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/ims/backend/internal/domain/inventory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type captureNotifier struct {
	notifications []LowStockNotification
	err           error
}

func (n *captureNotifier) Notify(_ context.Context, notification LowStockNotification) error {
	n.notifications = append(n.notifications, notification)
	return n.err
}

func TestLowStockAlertHandler(t *testing.T) {
	ctx := context.Background()

	newRaisedEvent := func(t *testing.T, stock int64) *inventory.LowStockAlertRaisedEvent {
		t.Helper()
		alert, err := inventory.NewAlert(uuid.New(), stock, 10)
		require.NoError(t, err)
		return inventory.NewLowStockAlertRaisedEvent(alert)
	}

	t.Run("handles raised alert events only", func(t *testing.T) {
		handler := NewLowStockAlertHandler(zap.NewNop())

		assert.True(t, handler.CanHandle(inventory.EventTypeLowStockAlertRaised))
		assert.False(t, handler.CanHandle(inventory.EventTypeAlertResolved))
	})

	t.Run("delivers notification", func(t *testing.T) {
		notifier := &captureNotifier{}
		handler := NewLowStockAlertHandler(zap.NewNop()).WithNotifier(notifier)

		require.NoError(t, handler.Handle(ctx, newRaisedEvent(t, 3)))

		require.Len(t, notifier.notifications, 1)
		assert.Equal(t, int64(3), notifier.notifications[0].CurrentStock)
		assert.False(t, notifier.notifications[0].OutOfStock)
	})

	t.Run("flags out of stock", func(t *testing.T) {
		notifier := &captureNotifier{}
		handler := NewLowStockAlertHandler(zap.NewNop()).WithNotifier(notifier)

		require.NoError(t, handler.Handle(ctx, newRaisedEvent(t, 0)))

		require.Len(t, notifier.notifications, 1)
		assert.True(t, notifier.notifications[0].OutOfStock)
	})

	t.Run("swallows delivery failures", func(t *testing.T) {
		notifier := &captureNotifier{err: errors.New("smtp down")}
		handler := NewLowStockAlertHandler(zap.NewNop()).WithNotifier(notifier)

		assert.NoError(t, handler.Handle(ctx, newRaisedEvent(t, 3)))
	})

	t.Run("works without a notifier", func(t *testing.T) {
		handler := NewLowStockAlertHandler(zap.NewNop())
		assert.NoError(t, handler.Handle(ctx, newRaisedEvent(t, 3)))
	})
}
