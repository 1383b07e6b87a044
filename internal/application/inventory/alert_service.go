package inventory

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/ims/backend/internal/domain/catalog"
	"github.com/ims/backend/internal/domain/inventory"
	"github.com/ims/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// AlertService maintains low-stock alert state. Evaluation is driven by
// ledger writes; the manual acknowledge/resolve operations are exposed
// to users.
type AlertService struct {
	alertRepo        inventory.AlertRepository
	productRepo      catalog.ProductRepository
	evaluator        *inventory.AlertEvaluator
	eventPublisher   shared.EventPublisher
	logger           *zap.Logger
	defaultThreshold int64
}

// NewAlertService creates a new AlertService. defaultThreshold is the
// reorder level applied to products without an explicit one.
func NewAlertService(
	alertRepo inventory.AlertRepository,
	productRepo catalog.ProductRepository,
	defaultThreshold int64,
	logger *zap.Logger,
) *AlertService {
	return &AlertService{
		alertRepo:        alertRepo,
		productRepo:      productRepo,
		evaluator:        inventory.NewAlertEvaluator(),
		logger:           logger,
		defaultThreshold: defaultThreshold,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *AlertService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// DefaultThreshold returns the configured default reorder level
func (s *AlertService) DefaultThreshold() int64 {
	return s.defaultThreshold
}

// EvaluateProduct re-derives the product's alert state from its current
// balance and persists the result. Returns the evaluation outcome.
func (s *AlertService) EvaluateProduct(ctx context.Context, product *catalog.Product) (inventory.EvaluationOutcome, error) {
	active, err := s.alertRepo.FindActiveByProduct(ctx, product.ID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return inventory.OutcomeNone, err
	}

	threshold := product.EffectiveReorderLevel(s.defaultThreshold)
	alert, outcome, err := s.evaluator.Evaluate(active, product.ID, product.QuantityOnHand, threshold)
	if err != nil {
		return inventory.OutcomeNone, err
	}
	if alert == nil {
		return outcome, nil
	}

	if err := s.alertRepo.Save(ctx, alert); err != nil {
		return inventory.OutcomeNone, err
	}

	s.publishDomainEvents(ctx, alert)

	s.logger.Info("alert state evaluated",
		zap.String("product_id", product.ID.String()),
		zap.Int64("quantity", product.QuantityOnHand),
		zap.Int64("threshold", threshold),
		zap.String("outcome", string(outcome)))

	return outcome, nil
}

// Acknowledge marks an active alert as seen by the given user
func (s *AlertService) Acknowledge(ctx context.Context, alertID uuid.UUID, by string) (*AlertResponse, error) {
	alert, err := s.findAlert(ctx, alertID)
	if err != nil {
		return nil, err
	}

	if err := alert.Acknowledge(by); err != nil {
		return nil, err
	}
	if err := s.alertRepo.Save(ctx, alert); err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, alert)

	response := ToAlertResponse(alert)
	return &response, nil
}

// Resolve manually dismisses an alert regardless of the stock level.
// Resolving an already-resolved alert is a no-op.
func (s *AlertService) Resolve(ctx context.Context, alertID uuid.UUID) (*AlertResponse, error) {
	alert, err := s.findAlert(ctx, alertID)
	if err != nil {
		return nil, err
	}

	if alert.IsActive() {
		if err := alert.Resolve(); err != nil {
			return nil, err
		}
		if err := s.alertRepo.Save(ctx, alert); err != nil {
			return nil, err
		}
		s.publishDomainEvents(ctx, alert)
	}

	response := ToAlertResponse(alert)
	return &response, nil
}

// GetByID retrieves a single alert
func (s *AlertService) GetByID(ctx context.Context, alertID uuid.UUID) (*AlertResponse, error) {
	alert, err := s.findAlert(ctx, alertID)
	if err != nil {
		return nil, err
	}
	response := ToAlertResponse(alert)
	return &response, nil
}

// ListActive lists all non-resolved alerts
func (s *AlertService) ListActive(ctx context.Context) ([]AlertResponse, error) {
	alerts, err := s.alertRepo.FindActive(ctx, shared.Filter{})
	if err != nil {
		return nil, err
	}
	return ToAlertResponses(alerts), nil
}

// ListByProduct lists all alerts for a product, newest first
func (s *AlertService) ListByProduct(ctx context.Context, productID uuid.UUID) ([]AlertResponse, error) {
	alerts, err := s.alertRepo.FindByProduct(ctx, productID, shared.DefaultFilter())
	if err != nil {
		return nil, err
	}
	return ToAlertResponses(alerts), nil
}

// CountActive counts non-resolved alerts
func (s *AlertService) CountActive(ctx context.Context) (int64, error) {
	return s.alertRepo.CountActive(ctx)
}

func (s *AlertService) findAlert(ctx context.Context, alertID uuid.UUID) (*inventory.Alert, error) {
	alert, err := s.alertRepo.FindByID(ctx, alertID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("ALERT_NOT_FOUND", "Alert does not exist")
		}
		return nil, err
	}
	return alert, nil
}

func (s *AlertService) publishDomainEvents(ctx context.Context, alert *inventory.Alert) {
	if s.eventPublisher == nil {
		alert.ClearDomainEvents()
		return
	}
	events := alert.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("failed to publish alert events",
			zap.String("alert_id", alert.ID.String()),
			zap.Error(err))
	}
	alert.ClearDomainEvents()
}
