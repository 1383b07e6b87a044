package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockSummary provides aggregated stock statistics across the catalog
type StockSummary struct {
	TotalProducts   int64           `json:"total_products"`
	ActiveProducts  int64           `json:"active_products"`
	TotalQuantity   int64           `json:"total_quantity"`
	TotalStockValue decimal.Decimal `json:"total_stock_value"`
	LowStockCount   int64           `json:"low_stock_count"`
	OutOfStockCount int64           `json:"out_of_stock_count"`
}

// MovementSummary aggregates ledger activity over a period
type MovementSummary struct {
	PeriodStart      time.Time       `json:"period_start"`
	PeriodEnd        time.Time       `json:"period_end"`
	MovementCount    int64           `json:"movement_count"`
	InboundQuantity  int64           `json:"inbound_quantity"`
	OutboundQuantity int64           `json:"outbound_quantity"`
	AdjustmentCount  int64           `json:"adjustment_count"`
	InboundValue     decimal.Decimal `json:"inbound_value"`
	OutboundValue    decimal.Decimal `json:"outbound_value"`
}

// DailyMovementTrend is a per-day breakdown of ledger activity
type DailyMovementTrend struct {
	Date             time.Time `json:"date"`
	MovementCount    int64     `json:"movement_count"`
	InboundQuantity  int64     `json:"inbound_quantity"`
	OutboundQuantity int64     `json:"outbound_quantity"`
}

// ProductMovementRanking ranks products by outbound volume
type ProductMovementRanking struct {
	Rank             int       `json:"rank"`
	ProductID        uuid.UUID `json:"product_id"`
	ProductCode      string    `json:"product_code"`
	ProductName      string    `json:"product_name"`
	OutboundQuantity int64     `json:"outbound_quantity"`
	MovementCount    int64     `json:"movement_count"`
}

// StockValueByCategory groups current stock value by category
type StockValueByCategory struct {
	CategoryID    *uuid.UUID      `json:"category_id,omitempty"`
	CategoryName  string          `json:"category_name"`
	ProductCount  int64           `json:"product_count"`
	TotalQuantity int64           `json:"total_quantity"`
	TotalValue    decimal.Decimal `json:"total_value"`
}

// MovementReportFilter defines filtering options for movement reports
type MovementReportFilter struct {
	StartDate time.Time
	EndDate   time.Time
	ProductID *uuid.UUID
	TopN      int
}
