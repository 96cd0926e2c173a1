package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vietanh2810/supply-chain-api/internal/domain"
	"github.com/vietanh2810/supply-chain-api/internal/repository"
)

var (
	ErrProductNotFound   = repository.ErrProductNotFound
	ErrInsufficientStock = repository.ErrInsufficientStock
	ErrStoreUnavailable  = repository.ErrStoreUnavailable
	ErrWriteFailed       = repository.ErrWriteFailed

	ErrInvalidQuantity  = errors.New("quantity must be positive, below 1e12 and have at most 2 decimals")
	ErrInvalidProductID = errors.New("product id is required")
)

type InventoryRepository interface {
	AddStock(ctx context.Context, productID string, quantity decimal.Decimal, at time.Time) (domain.StockRecord, error)
	RecordSale(ctx context.Context, sale domain.SaleRecord) (domain.SaleRecord, error)
	FindStock(ctx context.Context, productID string) (domain.StockRecord, error)
	ListStocks(ctx context.Context) ([]domain.StockRecord, error)
}

type InventoryService struct {
	repo InventoryRepository
	now  func() time.Time
}

func NewInventoryService(repo InventoryRepository) *InventoryService {
	return &InventoryService{
		repo: repo,
		now:  time.Now,
	}
}

// AddStock creates the stock record or adds quantity to the existing one.
func (s *InventoryService) AddStock(ctx context.Context, productID string, quantity decimal.Decimal) (domain.StockRecord, error) {
	productID, err := checkMutation(productID, quantity)
	if err != nil {
		return domain.StockRecord{}, err
	}

	stock, err := s.repo.AddStock(ctx, productID, quantity, s.now().UTC())
	if err != nil {
		return domain.StockRecord{}, fmt.Errorf("s.repo.AddStock -> %w", err)
	}

	return stock, nil
}

// RecordSale stores the sale and decrements stock as one unit. A zero date
// means today.
func (s *InventoryService) RecordSale(ctx context.Context, productID string, quantity decimal.Decimal, date time.Time) (domain.SaleRecord, error) {
	productID, err := checkMutation(productID, quantity)
	if err != nil {
		return domain.SaleRecord{}, err
	}

	now := s.now().UTC()
	if date.IsZero() {
		date = now
	}

	sale, err := s.repo.RecordSale(ctx, domain.SaleRecord{
		ProductID: productID,
		Quantity:  quantity,
		Date:      domain.SaleDate(date),
		CreatedAt: now,
	})
	if err != nil {
		return domain.SaleRecord{}, fmt.Errorf("s.repo.RecordSale -> %w", err)
	}

	return sale, nil
}

func (s *InventoryService) GetStock(ctx context.Context, productID string) (domain.StockRecord, error) {
	stock, err := s.repo.FindStock(ctx, strings.TrimSpace(productID))
	if err != nil {
		return domain.StockRecord{}, fmt.Errorf("s.repo.FindStock -> %w", err)
	}

	return stock, nil
}

func (s *InventoryService) ListStocks(ctx context.Context) ([]domain.StockRecord, error) {
	stocks, err := s.repo.ListStocks(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListStocks -> %w", err)
	}

	return stocks, nil
}

func checkMutation(productID string, quantity decimal.Decimal) (string, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return "", ErrInvalidProductID
	}

	if !domain.ValidQuantity(quantity) {
		return "", ErrInvalidQuantity
	}

	return productID, nil
}
