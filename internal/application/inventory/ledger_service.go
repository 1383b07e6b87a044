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

// DefaultMaxRetries bounds the optimistic-lock retry loop for ledger writes
const DefaultMaxRetries = 3

// LedgerService records stock movements. Every operation mutates the
// product balance and appends a movement record in one atomic unit,
// then re-evaluates the product's low-stock alert. The ledger is
// authoritative; alerting is best-effort and never rolls back a
// committed movement.
type LedgerService struct {
	txScope        TransactionScope
	movementRepo   inventory.MovementRepository
	alertService   *AlertService
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
	maxRetries     int
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(
	txScope TransactionScope,
	movementRepo inventory.MovementRepository,
	alertService *AlertService,
	logger *zap.Logger,
) *LedgerService {
	return &LedgerService{
		txScope:      txScope,
		movementRepo: movementRepo,
		alertService: alertService,
		logger:       logger,
		maxRetries:   DefaultMaxRetries,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *LedgerService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetMaxRetries overrides the optimistic-lock retry budget
func (s *LedgerService) SetMaxRetries(retries int) {
	if retries > 0 {
		s.maxRetries = retries
	}
}

// RecordIn receives stock for a product
func (s *LedgerService) RecordIn(ctx context.Context, req StockInRequest, actor string) (*MovementResponse, error) {
	if req.Quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if req.UnitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	return s.record(ctx, req.ProductID, func(product *catalog.Product) (*inventory.Movement, error) {
		before := product.QuantityOnHand
		if err := product.IncreaseStock(req.Quantity); err != nil {
			return nil, err
		}

		movement, err := inventory.NewMovement(product.ID, inventory.MovementTypeIn, req.Quantity, before, product.QuantityOnHand)
		if err != nil {
			return nil, err
		}
		movement.WithUnitPrice(req.UnitPrice).WithReference(req.Reference).WithNotes(req.Notes).WithPerformedBy(actor)
		return movement, nil
	})
}

// RecordOut issues stock for a product. The availability check runs
// against the same product snapshot that the optimistic save verifies,
// so two concurrent issues can never both succeed on the same units.
func (s *LedgerService) RecordOut(ctx context.Context, req StockOutRequest, actor string) (*MovementResponse, error) {
	if req.Quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if req.UnitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	return s.record(ctx, req.ProductID, func(product *catalog.Product) (*inventory.Movement, error) {
		before := product.QuantityOnHand
		if err := product.DecreaseStock(req.Quantity); err != nil {
			return nil, err
		}

		movement, err := inventory.NewMovement(product.ID, inventory.MovementTypeOut, req.Quantity, before, product.QuantityOnHand)
		if err != nil {
			return nil, err
		}
		movement.WithUnitPrice(product.SellingPrice).WithReference(req.Reference).WithNotes(req.Notes).WithPerformedBy(actor)
		return movement, nil
	})
}

// RecordAdjustment replaces a product's on-hand quantity with a counted
// absolute value, recording the correction as a movement
func (s *LedgerService) RecordAdjustment(ctx context.Context, req AdjustStockRequest, actor string) (*MovementResponse, error) {
	if req.Quantity < 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Adjusted quantity cannot be negative")
	}

	return s.record(ctx, req.ProductID, func(product *catalog.Product) (*inventory.Movement, error) {
		before := product.QuantityOnHand
		if err := product.SetQuantity(req.Quantity); err != nil {
			return nil, err
		}

		movement, err := inventory.NewMovement(product.ID, inventory.MovementTypeAdjustment, req.Quantity, before, product.QuantityOnHand)
		if err != nil {
			return nil, err
		}
		movement.WithUnitPrice(product.PurchasePrice).WithNotes(req.Reason).WithPerformedBy(actor)
		return movement, nil
	})
}

// record runs one ledger write with a bounded optimistic retry loop.
// The mutate callback works on a freshly loaded product each attempt
// and returns the movement to append. A version conflict reloads and
// retries; exhaustion surfaces as a persistence failure since nothing
// partial was committed.
func (s *LedgerService) record(
	ctx context.Context,
	productID uuid.UUID,
	mutate func(product *catalog.Product) (*inventory.Movement, error),
) (*MovementResponse, error) {
	var (
		movement *inventory.Movement
		product  *catalog.Product
	)

	for attempt := 0; attempt < s.maxRetries; attempt++ {
		err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
			loaded, err := repos.ProductRepo().FindByID(ctx, productID)
			if err != nil {
				if errors.Is(err, shared.ErrNotFound) {
					return shared.NewDomainError("PRODUCT_NOT_FOUND", "Product does not exist")
				}
				return err
			}

			m, err := mutate(loaded)
			if err != nil {
				return err
			}

			if err := repos.ProductRepo().SaveWithLock(ctx, loaded); err != nil {
				return err
			}
			if err := repos.MovementRepo().Append(ctx, m); err != nil {
				return err
			}

			movement = m
			product = loaded
			return nil
		})

		if err == nil {
			s.afterCommit(ctx, product, movement)
			response := ToMovementResponse(movement)
			return &response, nil
		}
		if !errors.Is(err, shared.ErrConcurrencyConflict) {
			return nil, err
		}

		s.logger.Debug("ledger write conflicted, retrying",
			zap.String("product_id", productID.String()),
			zap.Int("attempt", attempt+1))
	}

	s.logger.Warn("ledger write exhausted retry budget",
		zap.String("product_id", productID.String()),
		zap.Int("max_retries", s.maxRetries))

	return nil, shared.ErrPersistenceFailure
}

// afterCommit runs the best-effort post-commit work: event publication
// and alert re-evaluation. Failures here are logged and never unwind
// the ledger write.
func (s *LedgerService) afterCommit(ctx context.Context, product *catalog.Product, movement *inventory.Movement) {
	if s.eventPublisher != nil {
		events := append(product.GetDomainEvents(), inventory.NewMovementRecordedEvent(movement))
		if err := s.eventPublisher.Publish(ctx, events...); err != nil {
			s.logger.Warn("failed to publish movement events",
				zap.String("movement_id", movement.ID.String()),
				zap.Error(err))
		}
	}
	product.ClearDomainEvents()

	if s.alertService == nil {
		return
	}
	if _, err := s.alertService.EvaluateProduct(ctx, product); err != nil {
		s.logger.Error("alert evaluation failed after ledger write",
			zap.String("product_id", product.ID.String()),
			zap.Int64("quantity_on_hand", product.QuantityOnHand),
			zap.Error(err))
	}
}

// GetMovement retrieves a single movement record
func (s *LedgerService) GetMovement(ctx context.Context, id uuid.UUID) (*MovementResponse, error) {
	movement, err := s.movementRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToMovementResponse(movement)
	return &response, nil
}

// ListMovements returns movement history matching the filter, newest first
func (s *LedgerService) ListMovements(ctx context.Context, filter MovementListFilter) ([]MovementResponse, int64, error) {
	domainFilter := inventory.MovementFilter{
		ProductID: filter.ProductID,
		From:      filter.From,
		To:        filter.To,
		Filter:    shared.DefaultFilter(),
	}
	if filter.Type != "" {
		movementType := inventory.MovementType(filter.Type)
		if !movementType.IsValid() {
			return nil, 0, shared.NewDomainError("INVALID_MOVEMENT_TYPE", "Invalid movement type")
		}
		domainFilter.Type = &movementType
	}
	if filter.PageSize > 0 {
		domainFilter.Limit = filter.PageSize
	}
	if filter.Page > 1 {
		domainFilter.Offset = (filter.Page - 1) * domainFilter.Limit
	}

	movements, err := s.movementRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.movementRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToMovementResponses(movements), total, nil
}
