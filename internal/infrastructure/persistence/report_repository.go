package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ims/backend/internal/domain/report"
)

// GormInventoryReportRepository implements InventoryReportRepository using GORM
type GormInventoryReportRepository struct {
	db *gorm.DB
}

// NewGormInventoryReportRepository creates a new GormInventoryReportRepository
func NewGormInventoryReportRepository(db *gorm.DB) *GormInventoryReportRepository {
	return &GormInventoryReportRepository{db: db}
}

// GetStockSummary returns catalog-wide stock statistics
func (r *GormInventoryReportRepository) GetStockSummary(ctx context.Context, defaultReorderLevel int64) (*report.StockSummary, error) {
	type summaryResult struct {
		TotalProducts   int64
		ActiveProducts  int64
		TotalQuantity   int64
		TotalStockValue decimal.Decimal
		LowStockCount   int64
		OutOfStockCount int64
	}

	var result summaryResult

	err := r.db.WithContext(ctx).Table("products p").
		Select(`
			COUNT(*) as total_products,
			SUM(CASE WHEN p.status = 'active' THEN 1 ELSE 0 END) as active_products,
			COALESCE(SUM(p.quantity_on_hand), 0) as total_quantity,
			COALESCE(SUM(p.quantity_on_hand * p.purchase_price), 0) as total_stock_value,
			SUM(CASE WHEN p.status = 'active' AND p.quantity_on_hand <= COALESCE(p.reorder_level, ?) THEN 1 ELSE 0 END) as low_stock_count,
			SUM(CASE WHEN p.quantity_on_hand = 0 THEN 1 ELSE 0 END) as out_of_stock_count
		`, defaultReorderLevel).
		Scan(&result).Error
	if err != nil {
		return nil, err
	}

	return &report.StockSummary{
		TotalProducts:   result.TotalProducts,
		ActiveProducts:  result.ActiveProducts,
		TotalQuantity:   result.TotalQuantity,
		TotalStockValue: result.TotalStockValue,
		LowStockCount:   result.LowStockCount,
		OutOfStockCount: result.OutOfStockCount,
	}, nil
}

// GetMovementSummary aggregates ledger activity in the period
func (r *GormInventoryReportRepository) GetMovementSummary(ctx context.Context, filter report.MovementReportFilter) (*report.MovementSummary, error) {
	type summaryResult struct {
		MovementCount    int64
		InboundQuantity  int64
		OutboundQuantity int64
		AdjustmentCount  int64
		InboundValue     decimal.Decimal
		OutboundValue    decimal.Decimal
	}

	var result summaryResult

	query := r.db.WithContext(ctx).Table("stock_movements m").
		Select(`
			COUNT(*) as movement_count,
			COALESCE(SUM(CASE WHEN m.type = 'IN' THEN m.quantity ELSE 0 END), 0) as inbound_quantity,
			COALESCE(SUM(CASE WHEN m.type = 'OUT' THEN m.quantity ELSE 0 END), 0) as outbound_quantity,
			SUM(CASE WHEN m.type = 'ADJUSTMENT' THEN 1 ELSE 0 END) as adjustment_count,
			COALESCE(SUM(CASE WHEN m.type = 'IN' THEN m.quantity * m.unit_price ELSE 0 END), 0) as inbound_value,
			COALESCE(SUM(CASE WHEN m.type = 'OUT' THEN m.quantity * m.unit_price ELSE 0 END), 0) as outbound_value
		`).
		Where("m.occurred_at BETWEEN ? AND ?", filter.StartDate, filter.EndDate)

	if filter.ProductID != nil {
		query = query.Where("m.product_id = ?", *filter.ProductID)
	}

	if err := query.Scan(&result).Error; err != nil {
		return nil, err
	}

	return &report.MovementSummary{
		PeriodStart:      filter.StartDate,
		PeriodEnd:        filter.EndDate,
		MovementCount:    result.MovementCount,
		InboundQuantity:  result.InboundQuantity,
		OutboundQuantity: result.OutboundQuantity,
		AdjustmentCount:  result.AdjustmentCount,
		InboundValue:     result.InboundValue,
		OutboundValue:    result.OutboundValue,
	}, nil
}

// GetDailyMovementTrend returns per-day ledger activity in the period
func (r *GormInventoryReportRepository) GetDailyMovementTrend(ctx context.Context, filter report.MovementReportFilter) ([]report.DailyMovementTrend, error) {
	var results []report.DailyMovementTrend

	query := r.db.WithContext(ctx).Table("stock_movements m").
		Select(`
			DATE_TRUNC('day', m.occurred_at) as date,
			COUNT(*) as movement_count,
			COALESCE(SUM(CASE WHEN m.type = 'IN' THEN m.quantity ELSE 0 END), 0) as inbound_quantity,
			COALESCE(SUM(CASE WHEN m.type = 'OUT' THEN m.quantity ELSE 0 END), 0) as outbound_quantity
		`).
		Where("m.occurred_at BETWEEN ? AND ?", filter.StartDate, filter.EndDate).
		Group("DATE_TRUNC('day', m.occurred_at)").
		Order("date ASC")

	if filter.ProductID != nil {
		query = query.Where("m.product_id = ?", *filter.ProductID)
	}

	if err := query.Scan(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// GetTopOutboundProducts ranks products by outbound volume in the period
func (r *GormInventoryReportRepository) GetTopOutboundProducts(ctx context.Context, filter report.MovementReportFilter) ([]report.ProductMovementRanking, error) {
	type rankingResult struct {
		ProductID        uuid.UUID
		ProductCode      string
		ProductName      string
		OutboundQuantity int64
		MovementCount    int64
	}

	topN := filter.TopN
	if topN <= 0 {
		topN = 10
	}

	var results []rankingResult

	err := r.db.WithContext(ctx).Table("stock_movements m").
		Select(`
			m.product_id,
			p.code as product_code,
			p.name as product_name,
			COALESCE(SUM(m.quantity), 0) as outbound_quantity,
			COUNT(*) as movement_count
		`).
		Joins("JOIN products p ON p.id = m.product_id").
		Where("m.type = 'OUT' AND m.occurred_at BETWEEN ? AND ?", filter.StartDate, filter.EndDate).
		Group("m.product_id, p.code, p.name").
		Order("outbound_quantity DESC").
		Limit(topN).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	rankings := make([]report.ProductMovementRanking, len(results))
	for i, res := range results {
		rankings[i] = report.ProductMovementRanking{
			Rank:             i + 1,
			ProductID:        res.ProductID,
			ProductCode:      res.ProductCode,
			ProductName:      res.ProductName,
			OutboundQuantity: res.OutboundQuantity,
			MovementCount:    res.MovementCount,
		}
	}
	return rankings, nil
}

// GetStockValueByCategory groups current stock value by category
func (r *GormInventoryReportRepository) GetStockValueByCategory(ctx context.Context) ([]report.StockValueByCategory, error) {
	var results []report.StockValueByCategory

	err := r.db.WithContext(ctx).Table("products p").
		Select(`
			p.category_id,
			COALESCE(c.name, 'Uncategorized') as category_name,
			COUNT(*) as product_count,
			COALESCE(SUM(p.quantity_on_hand), 0) as total_quantity,
			COALESCE(SUM(p.quantity_on_hand * p.purchase_price), 0) as total_value
		`).
		Joins("LEFT JOIN categories c ON c.id = p.category_id").
		Group("p.category_id, c.name").
		Order("total_value DESC").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

// Ensure GormInventoryReportRepository implements InventoryReportRepository
var _ report.InventoryReportRepository = (*GormInventoryReportRepository)(nil)
