package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/vietanh2810/supply-chain-api/internal/domain"
	"github.com/vietanh2810/supply-chain-api/internal/pkg/advisor"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, user domain.User) (domain.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uint) (domain.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *mockUserRepo) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *mockUserRepo) FindByRoles(ctx context.Context, roles ...domain.Role) ([]domain.User, error) {
	args := m.Called(ctx, roles)
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *mockUserRepo) UpdateLastLogin(ctx context.Context, id uint, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

type mockSessionRepo struct {
	mock.Mock
}

func (m *mockSessionRepo) Create(ctx context.Context, session domain.Session) (domain.Session, error) {
	args := m.Called(ctx, session)
	return args.Get(0).(domain.Session), args.Error(1)
}

func (m *mockSessionRepo) FindByID(ctx context.Context, id string) (domain.Session, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Session), args.Error(1)
}

func (m *mockSessionRepo) Revoke(ctx context.Context, id string, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

func (m *mockSessionRepo) ActiveUserIDs(ctx context.Context, now time.Time) (map[uint]bool, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(map[uint]bool), args.Error(1)
}

type mockInventoryRepo struct {
	mock.Mock
}

func (m *mockInventoryRepo) AddStock(ctx context.Context, productID string, quantity decimal.Decimal, at time.Time) (domain.StockRecord, error) {
	args := m.Called(ctx, productID, quantity, at)
	return args.Get(0).(domain.StockRecord), args.Error(1)
}

func (m *mockInventoryRepo) RecordSale(ctx context.Context, sale domain.SaleRecord) (domain.SaleRecord, error) {
	args := m.Called(ctx, sale)
	return args.Get(0).(domain.SaleRecord), args.Error(1)
}

func (m *mockInventoryRepo) FindStock(ctx context.Context, productID string) (domain.StockRecord, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(domain.StockRecord), args.Error(1)
}

func (m *mockInventoryRepo) ListStocks(ctx context.Context) ([]domain.StockRecord, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.StockRecord), args.Error(1)
}

func (m *mockInventoryRepo) ProductSales(ctx context.Context) ([]domain.ProductSales, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.ProductSales), args.Error(1)
}

func (m *mockInventoryRepo) DailySales(ctx context.Context) ([]domain.DailySales, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.DailySales), args.Error(1)
}

type mockCompleter struct {
	mock.Mock
}

func (m *mockCompleter) Complete(ctx context.Context, req advisor.CompletionRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
