package dao

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Stock struct {
	ProductID string          `gorm:"primaryKey"`
	Quantity  decimal.Decimal `gorm:"type:numeric(14,2);not null;check:chk_stocks_quantity_non_negative,quantity >= 0"`
	UpdatedAt time.Time       `gorm:"not null"`
}

type Sale struct {
	ID        uint            `gorm:"primaryKey"`
	ProductID string          `gorm:"not null;index"`
	Quantity  decimal.Decimal `gorm:"type:numeric(14,2);not null;check:chk_sales_quantity_positive,quantity > 0"`
	Date      time.Time       `gorm:"type:date;not null;index"`
	CreatedAt time.Time       `gorm:"not null"`
}

type InventoryDAO struct {
	db *gorm.DB
}

func NewInventoryDAO(db *gorm.DB) *InventoryDAO {
	return &InventoryDAO{
		db: db,
	}
}

// AddStock creates the stock row or adds quantity to it in one statement, so
// concurrent calls for the same product cannot lose an update.
func (d *InventoryDAO) AddStock(ctx context.Context, productID string, quantity decimal.Decimal, at time.Time) (Stock, error) {
	stock := Stock{
		ProductID: productID,
		Quantity:  quantity,
		UpdatedAt: at,
	}

	result := d.db.WithContext(ctx).
		Clauses(
			clause.OnConflict{
				Columns: []clause.Column{{Name: "product_id"}},
				DoUpdates: clause.Assignments(map[string]interface{}{
					"quantity":   gorm.Expr("stocks.quantity + EXCLUDED.quantity"),
					"updated_at": gorm.Expr("EXCLUDED.updated_at"),
				}),
			},
			clause.Returning{},
		).
		Create(&stock)
	if result.Error != nil {
		return Stock{}, writeErr(result.Error)
	}

	return stock, nil
}

// RecordSale appends the sale and decrements the matching stock inside one
// transaction. The decrement only applies while enough stock is on hand.
func (d *InventoryDAO) RecordSale(ctx context.Context, sale Sale) (Sale, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&sale).Error; err != nil {
			return writeErr(err)
		}

		result := tx.Model(&Stock{}).
			Where("product_id = ? AND quantity >= ?", sale.ProductID, sale.Quantity).
			Updates(map[string]interface{}{
				"quantity":   gorm.Expr("quantity - ?", sale.Quantity),
				"updated_at": sale.CreatedAt,
			})
		if result.Error != nil {
			return writeErr(result.Error)
		}
		if result.RowsAffected == 1 {
			return nil
		}

		var count int64
		if err := tx.Model(&Stock{}).Where("product_id = ?", sale.ProductID).Count(&count).Error; err != nil {
			return storeErr(err)
		}
		if count == 0 {
			return ErrProductNotFound
		}

		return ErrInsufficientStock
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrProductNotFound),
			errors.Is(err, ErrInsufficientStock),
			errors.Is(err, ErrStoreUnavailable),
			errors.Is(err, ErrWriteFailed):
			return Sale{}, err
		}

		return Sale{}, writeErr(err)
	}

	return sale, nil
}

func (d *InventoryDAO) FindStock(ctx context.Context, productID string) (Stock, error) {
	var stock Stock

	result := d.db.WithContext(ctx).First(&stock, "product_id = ?", productID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Stock{}, ErrProductNotFound
		}

		return Stock{}, storeErr(result.Error)
	}

	return stock, nil
}

func (d *InventoryDAO) ListStocks(ctx context.Context) ([]Stock, error) {
	var stocks []Stock

	result := d.db.WithContext(ctx).Order("product_id").Find(&stocks)
	if result.Error != nil {
		return nil, storeErr(result.Error)
	}

	return stocks, nil
}

func (d *InventoryDAO) ListSales(ctx context.Context, productID string) ([]Sale, error) {
	var sales []Sale

	result := d.db.WithContext(ctx).Where("product_id = ?", productID).Order("id").Find(&sales)
	if result.Error != nil {
		return nil, storeErr(result.Error)
	}

	return sales, nil
}
