package inventory

import (
	"github.com/google/uuid"
)

// EvaluationOutcome describes what the alert evaluation decided
type EvaluationOutcome string

const (
	// OutcomeNone means no alert change was needed
	OutcomeNone EvaluationOutcome = "none"
	// OutcomeRaised means a new alert cycle started
	OutcomeRaised EvaluationOutcome = "raised"
	// OutcomeRefreshed means an active alert had its snapshot updated
	OutcomeRefreshed EvaluationOutcome = "refreshed"
	// OutcomeResolved means an active alert was closed because stock recovered
	OutcomeResolved EvaluationOutcome = "resolved"
)

// AlertEvaluator derives the next alert state for a product from its
// current quantity and effective threshold. It is a pure transition
// function; persistence of the result is the caller's responsibility.
type AlertEvaluator struct{}

// NewAlertEvaluator creates a new alert evaluator
func NewAlertEvaluator() *AlertEvaluator {
	return &AlertEvaluator{}
}

// Evaluate applies the low-stock transition rules. The active argument
// is the product's current non-resolved alert, or nil when there is
// none. It returns the alert to persist (nil when nothing changed) and
// the outcome. A quantity at or below the threshold raises or
// refreshes; a quantity strictly above it resolves.
func (e *AlertEvaluator) Evaluate(active *Alert, productID uuid.UUID, quantity, threshold int64) (*Alert, EvaluationOutcome, error) {
	low := quantity <= threshold

	switch {
	case active == nil && low:
		alert, err := NewAlert(productID, quantity, threshold)
		if err != nil {
			return nil, OutcomeNone, err
		}
		return alert, OutcomeRaised, nil

	case active == nil && !low:
		return nil, OutcomeNone, nil

	case low:
		if err := active.Refresh(quantity, threshold); err != nil {
			return nil, OutcomeNone, err
		}
		return active, OutcomeRefreshed, nil

	default:
		if err := active.Resolve(); err != nil {
			return nil, OutcomeNone, err
		}
		return active, OutcomeResolved, nil
	}
}
