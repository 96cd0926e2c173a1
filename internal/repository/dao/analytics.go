package dao

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type ProductSales struct {
	ProductID    string          `db:"product_id"`
	CurrentStock decimal.Decimal `db:"current_stock"`
	TotalSales   decimal.Decimal `db:"total_sales"`
	LastSaleDate sql.NullTime    `db:"last_sale_date"`
}

type DailySales struct {
	Date          time.Time       `db:"date"`
	TotalQuantity decimal.Decimal `db:"total_quantity"`
}

const (
	productSalesQuery = `
		SELECT s.product_id,
		       s.quantity                    AS current_stock,
		       COALESCE(SUM(sa.quantity), 0) AS total_sales,
		       MAX(sa.date)                  AS last_sale_date
		FROM stocks s
		LEFT JOIN sales sa ON sa.product_id = s.product_id
		GROUP BY s.product_id, s.quantity
		ORDER BY s.product_id`

	dailySalesQuery = `
		SELECT date, SUM(quantity) AS total_quantity
		FROM sales
		GROUP BY date
		ORDER BY date`
)

// AnalyticsDAO runs the read-only aggregate queries behind charts and the
// inventory analysis.
type AnalyticsDAO struct {
	db *sqlx.DB
}

func NewAnalyticsDAO(db *sqlx.DB) *AnalyticsDAO {
	return &AnalyticsDAO{
		db: db,
	}
}

func (d *AnalyticsDAO) ProductSales(ctx context.Context) ([]ProductSales, error) {
	rows := []ProductSales{}
	if err := d.db.SelectContext(ctx, &rows, productSalesQuery); err != nil {
		return nil, storeErr(err)
	}

	return rows, nil
}

func (d *AnalyticsDAO) DailySales(ctx context.Context) ([]DailySales, error) {
	rows := []DailySales{}
	if err := d.db.SelectContext(ctx, &rows, dailySalesQuery); err != nil {
		return nil, storeErr(err)
	}

	return rows, nil
}
