package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appinventory "github.com/ims/backend/internal/application/inventory"
	"github.com/ims/backend/internal/domain/catalog"
	"github.com/ims/backend/internal/domain/inventory"
	"github.com/ims/backend/internal/domain/shared"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// Mock repositories backing real application services. Handlers are
// exercised end to end through the gin engine.

type mockProductRepo struct {
	products map[uuid.UUID]*catalog.Product
}

func newMockProductRepo() *mockProductRepo {
	return &mockProductRepo{products: make(map[uuid.UUID]*catalog.Product)}
}

func (m *mockProductRepo) put(p *catalog.Product) {
	copied := *p
	m.products[p.ID] = &copied
}

func (m *mockProductRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.Product, error) {
	if p, ok := m.products[id]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (m *mockProductRepo) FindByCode(_ context.Context, code string) (*catalog.Product, error) {
	for _, p := range m.products {
		if p.Code == code {
			copied := *p
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (m *mockProductRepo) FindByBarcode(_ context.Context, barcode string) (*catalog.Product, error) {
	for _, p := range m.products {
		if p.Barcode == barcode {
			copied := *p
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (m *mockProductRepo) FindAll(_ context.Context, _ shared.Filter) ([]catalog.Product, error) {
	result := make([]catalog.Product, 0, len(m.products))
	for _, p := range m.products {
		result = append(result, *p)
	}
	return result, nil
}

func (m *mockProductRepo) FindByCategory(_ context.Context, categoryID uuid.UUID, _ shared.Filter) ([]catalog.Product, error) {
	var result []catalog.Product
	for _, p := range m.products {
		if p.CategoryID != nil && *p.CategoryID == categoryID {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (m *mockProductRepo) FindByStatus(_ context.Context, status catalog.ProductStatus, _ shared.Filter) ([]catalog.Product, error) {
	var result []catalog.Product
	for _, p := range m.products {
		if p.Status == status {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (m *mockProductRepo) FindLowStock(_ context.Context, defaultLevel int64) ([]catalog.Product, error) {
	var result []catalog.Product
	for _, p := range m.products {
		if p.IsActive() && p.IsLowStock(defaultLevel) {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (m *mockProductRepo) Save(_ context.Context, product *catalog.Product) error {
	m.put(product)
	return nil
}

func (m *mockProductRepo) SaveWithLock(_ context.Context, product *catalog.Product) error {
	stored, ok := m.products[product.ID]
	if !ok {
		return shared.ErrNotFound
	}
	if stored.Version != product.Version-1 {
		return shared.ErrConcurrencyConflict
	}
	m.put(product)
	return nil
}

func (m *mockProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.products[id]; !ok {
		return shared.ErrNotFound
	}
	delete(m.products, id)
	return nil
}

func (m *mockProductRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(m.products)), nil
}

func (m *mockProductRepo) CountByCategory(_ context.Context, categoryID uuid.UUID) (int64, error) {
	var count int64
	for _, p := range m.products {
		if p.CategoryID != nil && *p.CategoryID == categoryID {
			count++
		}
	}
	return count, nil
}

func (m *mockProductRepo) ExistsByCode(_ context.Context, code string) (bool, error) {
	_, err := m.FindByCode(context.Background(), code)
	return err == nil, nil
}

var _ catalog.ProductRepository = (*mockProductRepo)(nil)

type mockMovementRepo struct {
	movements []inventory.Movement
	sequence  int64
}

func newMockMovementRepo() *mockMovementRepo {
	return &mockMovementRepo{}
}

func (m *mockMovementRepo) Append(_ context.Context, movement *inventory.Movement) error {
	m.sequence++
	movement.Sequence = m.sequence
	m.movements = append(m.movements, *movement)
	return nil
}

func (m *mockMovementRepo) FindByID(_ context.Context, id uuid.UUID) (*inventory.Movement, error) {
	for i := range m.movements {
		if m.movements[i].ID == id {
			copied := m.movements[i]
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (m *mockMovementRepo) FindAll(_ context.Context, filter inventory.MovementFilter) ([]inventory.Movement, error) {
	var result []inventory.Movement
	for i := len(m.movements) - 1; i >= 0; i-- {
		if m.matches(&m.movements[i], filter) {
			result = append(result, m.movements[i])
		}
	}
	return result, nil
}

func (m *mockMovementRepo) Count(_ context.Context, filter inventory.MovementFilter) (int64, error) {
	var count int64
	for i := range m.movements {
		if m.matches(&m.movements[i], filter) {
			count++
		}
	}
	return count, nil
}

func (m *mockMovementRepo) CountSince(_ context.Context, since time.Time) (int64, error) {
	var count int64
	for i := range m.movements {
		if !m.movements[i].OccurredAt.Before(since) {
			count++
		}
	}
	return count, nil
}

func (m *mockMovementRepo) matches(movement *inventory.Movement, filter inventory.MovementFilter) bool {
	if filter.ProductID != nil && movement.ProductID != *filter.ProductID {
		return false
	}
	if filter.Type != nil && movement.Type != *filter.Type {
		return false
	}
	return true
}

var _ inventory.MovementRepository = (*mockMovementRepo)(nil)

type mockAlertRepo struct {
	alerts map[uuid.UUID]*inventory.Alert
}

func newMockAlertRepo() *mockAlertRepo {
	return &mockAlertRepo{alerts: make(map[uuid.UUID]*inventory.Alert)}
}

func (m *mockAlertRepo) FindByID(_ context.Context, id uuid.UUID) (*inventory.Alert, error) {
	if a, ok := m.alerts[id]; ok {
		copied := *a
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (m *mockAlertRepo) FindActiveByProduct(_ context.Context, productID uuid.UUID) (*inventory.Alert, error) {
	for _, a := range m.alerts {
		if a.ProductID == productID && a.IsActive() {
			copied := *a
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (m *mockAlertRepo) FindActive(_ context.Context, _ shared.Filter) ([]inventory.Alert, error) {
	var result []inventory.Alert
	for _, a := range m.alerts {
		if a.IsActive() {
			result = append(result, *a)
		}
	}
	return result, nil
}

func (m *mockAlertRepo) FindByProduct(_ context.Context, productID uuid.UUID, _ shared.Filter) ([]inventory.Alert, error) {
	var result []inventory.Alert
	for _, a := range m.alerts {
		if a.ProductID == productID {
			result = append(result, *a)
		}
	}
	return result, nil
}

func (m *mockAlertRepo) Save(_ context.Context, alert *inventory.Alert) error {
	copied := *alert
	m.alerts[alert.ID] = &copied
	return nil
}

func (m *mockAlertRepo) CountActive(_ context.Context) (int64, error) {
	alerts, _ := m.FindActive(context.Background(), shared.Filter{})
	return int64(len(alerts)), nil
}

var _ inventory.AlertRepository = (*mockAlertRepo)(nil)

// stockTestEnv wires real ledger and alert services over mock
// repositories and exposes them through a gin engine.
type stockTestEnv struct {
	engine       *gin.Engine
	productRepo  *mockProductRepo
	movementRepo *mockMovementRepo
	alertRepo    *mockAlertRepo
	alertService *appinventory.AlertService
}

func newStockTestEnv(t *testing.T) *stockTestEnv {
	t.Helper()

	productRepo := newMockProductRepo()
	movementRepo := newMockMovementRepo()
	alertRepo := newMockAlertRepo()

	alertService := appinventory.NewAlertService(alertRepo, productRepo, 10, zap.NewNop())
	scope := appinventory.NewNoOpTransactionScope(productRepo, movementRepo)
	ledgerService := appinventory.NewLedgerService(scope, movementRepo, alertService, zap.NewNop())

	stockHandler := NewStockHandler(ledgerService)
	alertHandler := NewAlertHandler(alertService)

	engine := gin.New()
	engine.POST("/stock/in", stockHandler.RecordIn)
	engine.POST("/stock/out", stockHandler.RecordOut)
	engine.POST("/stock/adjust", stockHandler.RecordAdjustment)
	engine.GET("/stock/movements", stockHandler.ListMovements)
	engine.GET("/stock/movements/:id", stockHandler.GetMovement)
	engine.GET("/alerts", alertHandler.ListActive)
	engine.GET("/alerts/:id", alertHandler.Get)
	engine.POST("/alerts/:id/acknowledge", alertHandler.Acknowledge)
	engine.POST("/alerts/:id/resolve", alertHandler.Resolve)
	engine.GET("/products/:id/alerts", alertHandler.ListByProduct)

	return &stockTestEnv{
		engine:       engine,
		productRepo:  productRepo,
		movementRepo: movementRepo,
		alertRepo:    alertRepo,
		alertService: alertService,
	}
}

func (e *stockTestEnv) addProduct(t *testing.T, code string, quantity int64) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(code, "Product "+code, "pcs")
	require.NoError(t, err)
	if quantity > 0 {
		require.NoError(t, product.IncreaseStock(quantity))
	}
	e.productRepo.put(product)
	return product
}

func (e *stockTestEnv) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func dataField(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	body := decodeResponse(t, w)
	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok, "response has no data object: %s", w.Body.String())
	return data
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	body := decodeResponse(t, w)
	errObj, ok := body["error"].(map[string]interface{})
	require.True(t, ok, "response has no error object: %s", w.Body.String())
	code, _ := errObj["code"].(string)
	return code
}
