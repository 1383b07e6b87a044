package event

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ims/backend/internal/domain/shared"
)

type recordingHandler struct {
	eventType string
	received  []shared.DomainEvent
	fail      bool
	panic     bool
}

func (h *recordingHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	if h.panic {
		panic("handler exploded")
	}
	if h.fail {
		return errors.New("handler failed")
	}
	h.received = append(h.received, event)
	return nil
}

func (h *recordingHandler) CanHandle(eventType string) bool {
	return eventType == h.eventType
}

func newTestEvent(eventType string) shared.DomainEvent {
	e := shared.NewBaseDomainEvent(eventType, "test", uuid.New())
	return &e
}

func TestInMemoryEventBusPublish(t *testing.T) {
	t.Run("delivers events to subscribed handlers", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		handler := &recordingHandler{eventType: "stock.low"}
		require.NoError(t, bus.Subscribe("stock.low", handler))

		err := bus.Publish(context.Background(), newTestEvent("stock.low"))

		assert.NoError(t, err)
		assert.Len(t, handler.received, 1)
	})

	t.Run("does not deliver events of other types", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		handler := &recordingHandler{eventType: "stock.low"}
		require.NoError(t, bus.Subscribe("stock.low", handler))

		err := bus.Publish(context.Background(), newTestEvent("product.created"))

		assert.NoError(t, err)
		assert.Empty(t, handler.received)
	})

	t.Run("continues after a failing handler", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		failing := &recordingHandler{eventType: "stock.low", fail: true}
		healthy := &recordingHandler{eventType: "stock.low"}
		require.NoError(t, bus.Subscribe("stock.low", failing))
		require.NoError(t, bus.Subscribe("stock.low", healthy))

		err := bus.Publish(context.Background(), newTestEvent("stock.low"))

		assert.NoError(t, err)
		assert.Len(t, healthy.received, 1)
	})

	t.Run("recovers from a panicking handler", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		panicking := &recordingHandler{eventType: "stock.low", panic: true}
		healthy := &recordingHandler{eventType: "stock.low"}
		require.NoError(t, bus.Subscribe("stock.low", panicking))
		require.NoError(t, bus.Subscribe("stock.low", healthy))

		err := bus.Publish(context.Background(), newTestEvent("stock.low"))

		assert.NoError(t, err)
		assert.Len(t, healthy.received, 1)
	})
}

func TestInMemoryEventBusSubscribe(t *testing.T) {
	t.Run("rejects nil handler", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())

		err := bus.Subscribe("stock.low", nil)

		assert.Error(t, err)
	})

	t.Run("unsubscribe stops delivery", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		handler := &recordingHandler{eventType: "stock.low"}
		require.NoError(t, bus.Subscribe("stock.low", handler))
		require.NoError(t, bus.Unsubscribe("stock.low", handler))

		err := bus.Publish(context.Background(), newTestEvent("stock.low"))

		assert.NoError(t, err)
		assert.Empty(t, handler.received)
	})

	t.Run("unsubscribing an unknown handler errors", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		handler := &recordingHandler{eventType: "stock.low"}

		err := bus.Unsubscribe("stock.low", handler)

		assert.Error(t, err)
	})
}
