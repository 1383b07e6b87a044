package inventory

import (
	"context"

	"github.com/ims/backend/internal/domain/inventory"
	"github.com/ims/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// LowStockNotifier is the interface for delivering low-stock
// notifications. Implementations can support different channels
// (in-app, email, webhook).
type LowStockNotifier interface {
	// Notify delivers a low-stock notification
	Notify(ctx context.Context, notification LowStockNotification) error
}

// LowStockNotification is the payload delivered to notifiers
type LowStockNotification struct {
	AlertID       string `json:"alert_id"`
	ProductID     string `json:"product_id"`
	CurrentStock  int64  `json:"current_stock"`
	ThresholdUsed int64  `json:"threshold_used"`
	OutOfStock    bool   `json:"out_of_stock"`
}

// LowStockAlertHandler reacts to raised low-stock alerts by notifying
// interested channels. Delivery failures are logged, never propagated;
// the alert record itself is already durable.
type LowStockAlertHandler struct {
	logger   *zap.Logger
	notifier LowStockNotifier
}

// NewLowStockAlertHandler creates a new handler for raised alerts
func NewLowStockAlertHandler(logger *zap.Logger) *LowStockAlertHandler {
	return &LowStockAlertHandler{logger: logger}
}

// WithNotifier sets the notifier for delivering alerts
func (h *LowStockAlertHandler) WithNotifier(notifier LowStockNotifier) *LowStockAlertHandler {
	h.notifier = notifier
	return h
}

// CanHandle returns true for raised low-stock alert events
func (h *LowStockAlertHandler) CanHandle(eventType string) bool {
	return eventType == inventory.EventTypeLowStockAlertRaised
}

// Handle processes a raised low-stock alert event
func (h *LowStockAlertHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	raised, ok := event.(*inventory.LowStockAlertRaisedEvent)
	if !ok {
		return nil
	}

	notification := LowStockNotification{
		AlertID:       raised.AlertID.String(),
		ProductID:     raised.ProductID.String(),
		CurrentStock:  raised.CurrentStock,
		ThresholdUsed: raised.ThresholdUsed,
		OutOfStock:    raised.CurrentStock <= 0,
	}

	h.logger.Info("low stock alert raised",
		zap.String("alert_id", notification.AlertID),
		zap.String("product_id", notification.ProductID),
		zap.Int64("current_stock", notification.CurrentStock),
		zap.Int64("threshold", notification.ThresholdUsed),
		zap.Bool("out_of_stock", notification.OutOfStock))

	if h.notifier == nil {
		return nil
	}
	if err := h.notifier.Notify(ctx, notification); err != nil {
		h.logger.Warn("low stock notification delivery failed",
			zap.String("alert_id", notification.AlertID),
			zap.Error(err))
	}
	return nil
}

var _ shared.EventHandler = (*LowStockAlertHandler)(nil)
