package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const DateLayout = "2006-01-02"

// ProductSnapshot is the per-product view handed to the advisory prompt.
type ProductSnapshot struct {
	ProductID    string  `json:"product_id"`
	CurrentStock float64 `json:"current_stock"`
	TotalSales   float64 `json:"total_sales"`
	LastSaleDate *string `json:"last_sale_date"`
}

type ChartSeries struct {
	Labels []string  `json:"labels"`
	Data   []float64 `json:"data"`
}

type InventoryData struct {
	StockSeries ChartSeries `json:"stock_data"`
	SalesSeries ChartSeries `json:"sales_data"`
}

type InventoryAnalysis struct {
	InventoryData
	Snapshots          []ProductSnapshot `json:"snapshots"`
	Narrative          string            `json:"analysis"`
	NarrativeAvailable bool              `json:"analysis_available"`
	GeneratedAt        time.Time         `json:"generated_at"`
}

type RouteRequest struct {
	Start       string   `json:"start"`
	Destination string   `json:"destination"`
	Waypoints   []string `json:"important_points"`
}

// ProductSales is the raw per-product aggregate read from the store.
type ProductSales struct {
	ProductID    string
	CurrentStock decimal.Decimal
	TotalSales   decimal.Decimal
	LastSaleDate *time.Time
}

type DailySales struct {
	Date  time.Time
	Total decimal.Decimal
}
