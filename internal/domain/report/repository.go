package report

import "context"

// InventoryReportRepository defines read-model queries over products and
// the movement ledger. Implementations aggregate in the database.
type InventoryReportRepository interface {
	// GetStockSummary returns catalog-wide stock statistics. The default
	// reorder level applies to products without an explicit one.
	GetStockSummary(ctx context.Context, defaultReorderLevel int64) (*StockSummary, error)

	// GetMovementSummary aggregates ledger activity in the period
	GetMovementSummary(ctx context.Context, filter MovementReportFilter) (*MovementSummary, error)

	// GetDailyMovementTrend returns per-day ledger activity in the period
	GetDailyMovementTrend(ctx context.Context, filter MovementReportFilter) ([]DailyMovementTrend, error)

	// GetTopOutboundProducts ranks products by outbound volume in the period
	GetTopOutboundProducts(ctx context.Context, filter MovementReportFilter) ([]ProductMovementRanking, error)

	// GetStockValueByCategory groups current stock value by category
	GetStockValueByCategory(ctx context.Context) ([]StockValueByCategory, error)
}
