package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vietanh2810/supply-chain-api/internal/domain"
	"github.com/vietanh2810/supply-chain-api/internal/repository/dao"
)

var (
	ErrProductNotFound   = dao.ErrProductNotFound
	ErrInsufficientStock = dao.ErrInsufficientStock
)

type InventoryDAO interface {
	AddStock(ctx context.Context, productID string, quantity decimal.Decimal, at time.Time) (dao.Stock, error)
	RecordSale(ctx context.Context, sale dao.Sale) (dao.Sale, error)
	FindStock(ctx context.Context, productID string) (dao.Stock, error)
	ListStocks(ctx context.Context) ([]dao.Stock, error)
}

type AnalyticsDAO interface {
	ProductSales(ctx context.Context) ([]dao.ProductSales, error)
	DailySales(ctx context.Context) ([]dao.DailySales, error)
}

type InventoryRepository struct {
	dao       InventoryDAO
	analytics AnalyticsDAO
}

func NewInventoryRepository(dao InventoryDAO, analytics AnalyticsDAO) *InventoryRepository {
	return &InventoryRepository{
		dao:       dao,
		analytics: analytics,
	}
}

func (r *InventoryRepository) AddStock(ctx context.Context, productID string, quantity decimal.Decimal, at time.Time) (domain.StockRecord, error) {
	stock, err := r.dao.AddStock(ctx, productID, quantity, at)
	if err != nil {
		return domain.StockRecord{}, fmt.Errorf("r.dao.AddStock -> %w", err)
	}

	return r.stockDaoToDomain(stock), nil
}

func (r *InventoryRepository) RecordSale(ctx context.Context, sale domain.SaleRecord) (domain.SaleRecord, error) {
	created, err := r.dao.RecordSale(ctx, dao.Sale{
		ProductID: sale.ProductID,
		Quantity:  sale.Quantity,
		Date:      sale.Date,
		CreatedAt: sale.CreatedAt,
	})
	if err != nil {
		return domain.SaleRecord{}, fmt.Errorf("r.dao.RecordSale -> %w", err)
	}

	return r.saleDaoToDomain(created), nil
}

func (r *InventoryRepository) FindStock(ctx context.Context, productID string) (domain.StockRecord, error) {
	stock, err := r.dao.FindStock(ctx, productID)
	if err != nil {
		return domain.StockRecord{}, fmt.Errorf("r.dao.FindStock -> %w", err)
	}

	return r.stockDaoToDomain(stock), nil
}

func (r *InventoryRepository) ListStocks(ctx context.Context) ([]domain.StockRecord, error) {
	stocks, err := r.dao.ListStocks(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListStocks -> %w", err)
	}

	records := make([]domain.StockRecord, len(stocks))
	for i, s := range stocks {
		records[i] = r.stockDaoToDomain(s)
	}

	return records, nil
}

func (r *InventoryRepository) ProductSales(ctx context.Context) ([]domain.ProductSales, error) {
	rows, err := r.analytics.ProductSales(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.analytics.ProductSales -> %w", err)
	}

	products := make([]domain.ProductSales, len(rows))
	for i, row := range rows {
		products[i] = domain.ProductSales{
			ProductID:    row.ProductID,
			CurrentStock: row.CurrentStock,
			TotalSales:   row.TotalSales,
		}
		if row.LastSaleDate.Valid {
			last := row.LastSaleDate.Time
			products[i].LastSaleDate = &last
		}
	}

	return products, nil
}

func (r *InventoryRepository) DailySales(ctx context.Context) ([]domain.DailySales, error) {
	rows, err := r.analytics.DailySales(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.analytics.DailySales -> %w", err)
	}

	daily := make([]domain.DailySales, len(rows))
	for i, row := range rows {
		daily[i] = domain.DailySales{
			Date:  row.Date,
			Total: row.TotalQuantity,
		}
	}

	return daily, nil
}

func (r *InventoryRepository) stockDaoToDomain(s dao.Stock) domain.StockRecord {
	return domain.StockRecord{
		ProductID: s.ProductID,
		Quantity:  s.Quantity,
		UpdatedAt: s.UpdatedAt,
	}
}

func (r *InventoryRepository) saleDaoToDomain(s dao.Sale) domain.SaleRecord {
	return domain.SaleRecord{
		ID:        s.ID,
		ProductID: s.ProductID,
		Quantity:  s.Quantity,
		Date:      s.Date,
		CreatedAt: s.CreatedAt,
	}
}
