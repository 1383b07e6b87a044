package report

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ims/backend/internal/domain/catalog"
	"github.com/ims/backend/internal/domain/inventory"
	"github.com/ims/backend/internal/domain/report"
	"github.com/ims/backend/internal/domain/shared"
)

// ReportService provides application-level reporting over the catalog
// and the movement ledger
type ReportService struct {
	reportRepo       report.InventoryReportRepository
	productRepo      catalog.ProductRepository
	movementRepo     inventory.MovementRepository
	alertRepo        inventory.AlertRepository
	defaultThreshold int64
}

// NewReportService creates a new ReportService
func NewReportService(
	reportRepo report.InventoryReportRepository,
	productRepo catalog.ProductRepository,
	movementRepo inventory.MovementRepository,
	alertRepo inventory.AlertRepository,
	defaultThreshold int64,
) *ReportService {
	return &ReportService{
		reportRepo:       reportRepo,
		productRepo:      productRepo,
		movementRepo:     movementRepo,
		alertRepo:        alertRepo,
		defaultThreshold: defaultThreshold,
	}
}

// MovementReportFilter defines the request filter for movement reports
type MovementReportFilter struct {
	StartDate time.Time  `form:"start_date" binding:"required"`
	EndDate   time.Time  `form:"end_date" binding:"required"`
	ProductID *uuid.UUID `form:"product_id"`
	TopN      int        `form:"top_n"`
}

// DashboardResponse is a snapshot of inventory health for the main view
type DashboardResponse struct {
	TotalProducts   int64           `json:"total_products"`
	ActiveProducts  int64           `json:"active_products"`
	TotalQuantity   int64           `json:"total_quantity"`
	TotalStockValue decimal.Decimal `json:"total_stock_value"`
	LowStockCount   int64           `json:"low_stock_count"`
	OutOfStockCount int64           `json:"out_of_stock_count"`
	ActiveAlerts    int64           `json:"active_alerts"`
	MovementsToday  int64           `json:"movements_today"`
}

// LowStockItem is one row of the low-stock report
type LowStockItem struct {
	ProductID          uuid.UUID `json:"product_id"`
	ProductCode        string    `json:"product_code"`
	ProductName        string    `json:"product_name"`
	QuantityOnHand     int64     `json:"quantity_on_hand"`
	EffectiveThreshold int64     `json:"effective_threshold"`
	Shortfall          int64     `json:"shortfall"`
}

// GetDashboard returns the inventory health snapshot
func (s *ReportService) GetDashboard(ctx context.Context) (*DashboardResponse, error) {
	summary, err := s.reportRepo.GetStockSummary(ctx, s.defaultThreshold)
	if err != nil {
		return nil, err
	}

	activeAlerts, err := s.alertRepo.CountActive(ctx)
	if err != nil {
		return nil, err
	}

	startOfDay := time.Now().Truncate(24 * time.Hour)
	movementsToday, err := s.movementRepo.CountSince(ctx, startOfDay)
	if err != nil {
		return nil, err
	}

	return &DashboardResponse{
		TotalProducts:   summary.TotalProducts,
		ActiveProducts:  summary.ActiveProducts,
		TotalQuantity:   summary.TotalQuantity,
		TotalStockValue: summary.TotalStockValue,
		LowStockCount:   summary.LowStockCount,
		OutOfStockCount: summary.OutOfStockCount,
		ActiveAlerts:    activeAlerts,
		MovementsToday:  movementsToday,
	}, nil
}

// GetStockSummary returns catalog-wide stock statistics
func (s *ReportService) GetStockSummary(ctx context.Context) (*report.StockSummary, error) {
	return s.reportRepo.GetStockSummary(ctx, s.defaultThreshold)
}

// GetMovementSummary aggregates ledger activity in the period
func (s *ReportService) GetMovementSummary(ctx context.Context, filter MovementReportFilter) (*report.MovementSummary, error) {
	if err := validatePeriod(filter.StartDate, filter.EndDate); err != nil {
		return nil, err
	}
	return s.reportRepo.GetMovementSummary(ctx, toDomainFilter(filter))
}

// GetDailyMovementTrend returns per-day ledger activity in the period
func (s *ReportService) GetDailyMovementTrend(ctx context.Context, filter MovementReportFilter) ([]report.DailyMovementTrend, error) {
	if err := validatePeriod(filter.StartDate, filter.EndDate); err != nil {
		return nil, err
	}
	return s.reportRepo.GetDailyMovementTrend(ctx, toDomainFilter(filter))
}

// GetTopOutboundProducts ranks products by outbound volume in the period
func (s *ReportService) GetTopOutboundProducts(ctx context.Context, filter MovementReportFilter) ([]report.ProductMovementRanking, error) {
	if err := validatePeriod(filter.StartDate, filter.EndDate); err != nil {
		return nil, err
	}
	if filter.TopN <= 0 {
		filter.TopN = 10
	}
	return s.reportRepo.GetTopOutboundProducts(ctx, toDomainFilter(filter))
}

// GetStockValueByCategory groups current stock value by category
func (s *ReportService) GetStockValueByCategory(ctx context.Context) ([]report.StockValueByCategory, error) {
	return s.reportRepo.GetStockValueByCategory(ctx)
}

// GetLowStockReport lists active products at or below their effective
// threshold, worst shortfall first
func (s *ReportService) GetLowStockReport(ctx context.Context) ([]LowStockItem, error) {
	products, err := s.productRepo.FindLowStock(ctx, s.defaultThreshold)
	if err != nil {
		return nil, err
	}

	items := make([]LowStockItem, len(products))
	for i := range products {
		p := &products[i]
		threshold := p.EffectiveReorderLevel(s.defaultThreshold)
		items[i] = LowStockItem{
			ProductID:          p.ID,
			ProductCode:        p.Code,
			ProductName:        p.Name,
			QuantityOnHand:     p.QuantityOnHand,
			EffectiveThreshold: threshold,
			Shortfall:          threshold - p.QuantityOnHand,
		}
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].Shortfall > items[j].Shortfall
	})

	return items, nil
}

func toDomainFilter(filter MovementReportFilter) report.MovementReportFilter {
	return report.MovementReportFilter{
		StartDate: filter.StartDate,
		EndDate:   filter.EndDate,
		ProductID: filter.ProductID,
		TopN:      filter.TopN,
	}
}

func validatePeriod(start, end time.Time) error {
	if end.Before(start) {
		return shared.NewDomainError("INVALID_PERIOD", "End date must not be before start date")
	}
	return nil
}
