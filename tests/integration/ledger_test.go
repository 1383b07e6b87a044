package integration

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	inventoryapp "github.com/ims/backend/internal/application/inventory"
	"github.com/ims/backend/internal/domain/catalog"
	"github.com/ims/backend/internal/domain/inventory"
	"github.com/ims/backend/internal/infrastructure/persistence"
)

type ledgerStack struct {
	db            *gorm.DB
	productRepo   *persistence.GormProductRepository
	movementRepo  *persistence.GormMovementRepository
	alertRepo     *persistence.GormAlertRepository
	ledgerService *inventoryapp.LedgerService
	alertService  *inventoryapp.AlertService
}

func newLedgerStack(t *testing.T, db *gorm.DB) *ledgerStack {
	t.Helper()

	productRepo := persistence.NewGormProductRepository(db)
	movementRepo := persistence.NewGormMovementRepository(db)
	alertRepo := persistence.NewGormAlertRepository(db)
	txScope := persistence.NewGormTransactionScope(db)

	alertService := inventoryapp.NewAlertService(alertRepo, productRepo, 10, zap.NewNop())
	ledgerService := inventoryapp.NewLedgerService(txScope, movementRepo, alertService, zap.NewNop())

	return &ledgerStack{
		db:            db,
		productRepo:   productRepo,
		movementRepo:  movementRepo,
		alertRepo:     alertRepo,
		ledgerService: ledgerService,
		alertService:  alertService,
	}
}

func (s *ledgerStack) createProduct(t *testing.T, code string, quantity int64) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(code, "Product "+code, "pcs")
	require.NoError(t, err)
	if quantity > 0 {
		require.NoError(t, product.IncreaseStock(quantity))
	}
	require.NoError(t, s.productRepo.Save(context.Background(), product))
	return product
}

func TestLedgerRoundTrip(t *testing.T) {
	tdb := NewTestDB(t)
	stack := newLedgerStack(t, tdb.DB)
	ctx := context.Background()

	product := stack.createProduct(t, "SKU-100", 0)

	in, err := stack.ledgerService.RecordIn(ctx, inventoryapp.StockInRequest{
		ProductID: product.ID,
		Quantity:  100,
		Reference: "PO-2001",
	}, "tester")
	require.NoError(t, err)
	assert.Equal(t, int64(0), in.BalanceBefore)
	assert.Equal(t, int64(100), in.BalanceAfter)

	out, err := stack.ledgerService.RecordOut(ctx, inventoryapp.StockOutRequest{
		ProductID: product.ID,
		Quantity:  30,
	}, "tester")
	require.NoError(t, err)
	assert.Equal(t, int64(100), out.BalanceBefore)
	assert.Equal(t, int64(70), out.BalanceAfter)
	assert.Greater(t, out.Sequence, in.Sequence, "ledger sequence must be monotonic")

	adj, err := stack.ledgerService.RecordAdjustment(ctx, inventoryapp.AdjustStockRequest{
		ProductID: product.ID,
		Quantity:  65,
		Reason:    "cycle count",
	}, "tester")
	require.NoError(t, err)
	assert.Equal(t, int64(70), adj.BalanceBefore)
	assert.Equal(t, int64(65), adj.BalanceAfter)

	stored, err := stack.productRepo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(65), stored.QuantityOnHand)

	movements, total, err := stack.ledgerService.ListMovements(ctx, inventoryapp.MovementListFilter{
		ProductID: &product.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, movements, 3)
	// Newest first
	assert.Equal(t, "ADJUSTMENT", movements[0].Type)
	assert.Equal(t, "IN", movements[2].Type)
}

func TestLedgerInsufficientStockLeavesBalanceUntouched(t *testing.T) {
	tdb := NewTestDB(t)
	stack := newLedgerStack(t, tdb.DB)
	ctx := context.Background()

	product := stack.createProduct(t, "SKU-101", 5)

	_, err := stack.ledgerService.RecordOut(ctx, inventoryapp.StockOutRequest{
		ProductID: product.ID,
		Quantity:  50,
	}, "tester")
	require.Error(t, err)

	stored, err := stack.productRepo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), stored.QuantityOnHand)

	count, err := stack.movementRepo.Count(ctx, inventory.MovementFilter{ProductID: &product.ID})
	require.NoError(t, err)
	assert.Zero(t, count, "failed issue must not append a movement")
}

func TestLedgerConcurrentWrites(t *testing.T) {
	tdb := NewTestDB(t)
	stack := newLedgerStack(t, tdb.DB)
	ctx := context.Background()

	product := stack.createProduct(t, "SKU-102", 1000)

	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := stack.ledgerService.RecordOut(ctx, inventoryapp.StockOutRequest{
				ProductID: product.ID,
				Quantity:  10,
			}, "tester")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var succeeded int64
	for err := range errs {
		if err == nil {
			succeeded++
		}
	}
	require.Positive(t, succeeded)

	stored, err := stack.productRepo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 1000-succeeded*10, stored.QuantityOnHand,
		"balance must reflect exactly the committed movements")

	count, err := stack.movementRepo.Count(ctx, inventory.MovementFilter{ProductID: &product.ID})
	require.NoError(t, err)
	assert.Equal(t, succeeded, count)
}

func TestLedgerAlertLifecycle(t *testing.T) {
	tdb := NewTestDB(t)
	stack := newLedgerStack(t, tdb.DB)
	ctx := context.Background()

	product := stack.createProduct(t, "SKU-103", 50)

	// Drop below the default threshold of 10
	_, err := stack.ledgerService.RecordOut(ctx, inventoryapp.StockOutRequest{
		ProductID: product.ID,
		Quantity:  45,
	}, "tester")
	require.NoError(t, err)

	alert, err := stack.alertRepo.FindActiveByProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, inventory.AlertStatusPending, alert.Status)
	assert.Equal(t, int64(5), alert.CurrentStock)
	firstRaised := alert.FirstRaisedAt

	// Still low, the alert refreshes instead of duplicating
	_, err = stack.ledgerService.RecordOut(ctx, inventoryapp.StockOutRequest{
		ProductID: product.ID,
		Quantity:  2,
	}, "tester")
	require.NoError(t, err)

	refreshed, err := stack.alertRepo.FindActiveByProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, alert.ID, refreshed.ID)
	assert.Equal(t, int64(3), refreshed.CurrentStock)
	assert.WithinDuration(t, firstRaised, refreshed.FirstRaisedAt, 0)

	acknowledged, err := stack.alertService.Acknowledge(ctx, alert.ID, "warehouse.lead")
	require.NoError(t, err)
	assert.Equal(t, "acknowledged", acknowledged.Status)

	// Replenishing above the threshold resolves the alert
	_, err = stack.ledgerService.RecordIn(ctx, inventoryapp.StockInRequest{
		ProductID: product.ID,
		Quantity:  100,
	}, "tester")
	require.NoError(t, err)

	_, err = stack.alertRepo.FindActiveByProduct(ctx, product.ID)
	require.Error(t, err, "resolved alert must no longer be active")

	count, err := stack.alertRepo.CountActive(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestLedgerLowStockUsesEffectiveThreshold(t *testing.T) {
	tdb := NewTestDB(t)
	stack := newLedgerStack(t, tdb.DB)
	ctx := context.Background()

	// Explicit reorder level above the default
	custom := stack.createProduct(t, "SKU-104", 40)
	require.NoError(t, custom.SetReorderLevel(int64Ptr(30)))
	require.NoError(t, stack.productRepo.Save(ctx, custom))

	// No explicit level, default threshold of 10 applies
	fallback := stack.createProduct(t, "SKU-105", 25)

	_, err := stack.ledgerService.RecordOut(ctx, inventoryapp.StockOutRequest{
		ProductID: custom.ID,
		Quantity:  15,
	}, "tester")
	require.NoError(t, err)

	alert, err := stack.alertRepo.FindActiveByProduct(ctx, custom.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(30), alert.ThresholdUsed)

	low, err := stack.productRepo.FindLowStock(ctx, 10)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, custom.ID, low[0].ID)

	_, err = stack.alertRepo.FindActiveByProduct(ctx, fallback.ID)
	require.Error(t, err, "product above its effective threshold must not alert")
}

func int64Ptr(v int64) *int64 {
	return &v
}
