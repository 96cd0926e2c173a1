package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/supply-chain-api/internal/domain"
)

var inventoryNow = time.Date(2024, 6, 10, 15, 4, 5, 0, time.UTC)

func newTestInventoryService(repo *mockInventoryRepo) *InventoryService {
	svc := NewInventoryService(repo)
	svc.now = fixedClock(inventoryNow)
	return svc
}

func TestInventoryService_AddStock(t *testing.T) {
	ctx := context.Background()
	qty := decimal.RequireFromString("12.50")

	repo := new(mockInventoryRepo)
	repo.On("AddStock", ctx, "P1", qty, inventoryNow).
		Return(domain.StockRecord{ProductID: "P1", Quantity: qty, UpdatedAt: inventoryNow}, nil)

	stock, err := newTestInventoryService(repo).AddStock(ctx, "  P1 ", qty)
	require.NoError(t, err)
	assert.True(t, stock.Quantity.Equal(qty))
	repo.AssertExpectations(t)
}

func TestInventoryService_RejectsBadInput(t *testing.T) {
	ctx := context.Background()
	svc := newTestInventoryService(new(mockInventoryRepo))

	_, err := svc.AddStock(ctx, "P1", decimal.Zero)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = svc.AddStock(ctx, "P1", decimal.NewFromInt(-3))
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = svc.AddStock(ctx, " ", decimal.NewFromInt(3))
	assert.ErrorIs(t, err, ErrInvalidProductID)

	_, err = svc.RecordSale(ctx, "P1", decimal.Zero, time.Time{})
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	for _, qty := range []string{"0.001", "0.004", "1.005", "1000000000000", "1e15"} {
		q := decimal.RequireFromString(qty)

		_, err = svc.AddStock(ctx, "P1", q)
		assert.ErrorIs(t, err, ErrInvalidQuantity, "add %s", qty)

		_, err = svc.RecordSale(ctx, "P1", q, time.Time{})
		assert.ErrorIs(t, err, ErrInvalidQuantity, "sale %s", qty)
	}
}

func TestInventoryService_AcceptsStorableQuantities(t *testing.T) {
	ctx := context.Background()

	for _, qty := range []string{"0.01", "1.50", "1.500", "999999999999.99"} {
		q := decimal.RequireFromString(qty)
		repo := new(mockInventoryRepo)
		repo.On("AddStock", ctx, "P1", q, inventoryNow).Return(domain.StockRecord{ProductID: "P1", Quantity: q}, nil)

		_, err := newTestInventoryService(repo).AddStock(ctx, "P1", q)
		assert.NoError(t, err, qty)
		repo.AssertExpectations(t)
	}
}

func TestInventoryService_RecordSale(t *testing.T) {
	ctx := context.Background()
	qty := decimal.NewFromInt(4)

	t.Run("zero date means today", func(t *testing.T) {
		repo := new(mockInventoryRepo)
		repo.On("RecordSale", ctx, mock.MatchedBy(func(s domain.SaleRecord) bool {
			return s.ProductID == "P1" && s.Quantity.Equal(qty) &&
				s.Date.Equal(time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC))
		})).Return(domain.SaleRecord{ID: 1, ProductID: "P1", Quantity: qty}, nil)

		sale, err := newTestInventoryService(repo).RecordSale(ctx, "P1", qty, time.Time{})
		require.NoError(t, err)
		assert.Equal(t, uint(1), sale.ID)
		repo.AssertExpectations(t)
	})

	t.Run("explicit date is truncated", func(t *testing.T) {
		repo := new(mockInventoryRepo)
		repo.On("RecordSale", ctx, mock.MatchedBy(func(s domain.SaleRecord) bool {
			return s.Date.Equal(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))
		})).Return(domain.SaleRecord{ID: 2}, nil)

		_, err := newTestInventoryService(repo).RecordSale(ctx, "P1", qty, time.Date(2024, 1, 15, 18, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	for _, sentinel := range []error{ErrProductNotFound, ErrInsufficientStock, ErrStoreUnavailable, ErrWriteFailed} {
		t.Run(sentinel.Error(), func(t *testing.T) {
			repo := new(mockInventoryRepo)
			repo.On("RecordSale", ctx, mock.Anything).
				Return(domain.SaleRecord{}, fmt.Errorf("r.dao.RecordSale -> %w", sentinel))

			_, err := newTestInventoryService(repo).RecordSale(ctx, "P1", qty, time.Time{})
			assert.ErrorIs(t, err, sentinel)
		})
	}
}
