package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/supply-chain-api/internal/auth"
	"github.com/vietanh2810/supply-chain-api/internal/domain"
)

var (
	anonymous = auth.Session{}
	admin     = auth.Session{ID: "s-admin", UserID: 1, Role: domain.RoleAdmin}
	manager   = auth.Session{ID: "s-manager", UserID: 2, Role: domain.RoleManager}
	customer  = auth.Session{ID: "s-customer", UserID: 3, Role: domain.RoleCustomer}
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newRouter returns an engine where every request carries session.
func newRouter(session auth.Session) *gin.Engine {
	r := gin.New()
	r.Use(requestid.New())
	r.Use(func(ctx *gin.Context) {
		if session.Authenticated() {
			ctx.Request = ctx.Request.WithContext(auth.WithSession(ctx.Request.Context(), session))
		}
		ctx.Next()
	})
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

type errBody struct {
	Status   string `json:"status"`
	Error    string `json:"error"`
	Redirect string `json:"redirect"`
}

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) Login(ctx context.Context, username, password string) (domain.User, domain.Session, error) {
	args := m.Called(ctx, username, password)
	return args.Get(0).(domain.User), args.Get(1).(domain.Session), args.Error(2)
}

func (m *mockAuthService) Logout(ctx context.Context, sessionID string) error {
	return m.Called(ctx, sessionID).Error(0)
}

type mockUserService struct {
	mock.Mock
}

func (m *mockUserService) Profile(ctx context.Context, id uint) (domain.Profile, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Profile), args.Error(1)
}

func (m *mockUserService) ActiveSessions(ctx context.Context) ([]domain.UserSessionStatus, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.UserSessionStatus), args.Error(1)
}

type mockInventoryService struct {
	mock.Mock
}

func (m *mockInventoryService) AddStock(ctx context.Context, productID string, quantity decimal.Decimal) (domain.StockRecord, error) {
	args := m.Called(ctx, productID, quantity)
	return args.Get(0).(domain.StockRecord), args.Error(1)
}

func (m *mockInventoryService) RecordSale(ctx context.Context, productID string, quantity decimal.Decimal, date time.Time) (domain.SaleRecord, error) {
	args := m.Called(ctx, productID, quantity, date)
	return args.Get(0).(domain.SaleRecord), args.Error(1)
}

func (m *mockInventoryService) ListStocks(ctx context.Context) ([]domain.StockRecord, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.StockRecord), args.Error(1)
}

type mockAnalysisService struct {
	mock.Mock
}

func (m *mockAnalysisService) AnalyzeInventory(ctx context.Context) (domain.InventoryAnalysis, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.InventoryAnalysis), args.Error(1)
}

func (m *mockAnalysisService) InventoryData(ctx context.Context) (domain.InventoryData, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.InventoryData), args.Error(1)
}

type mockAdvisoryService struct {
	mock.Mock
}

func (m *mockAdvisoryService) SuggestRoute(ctx context.Context, req domain.RouteRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *mockAdvisoryService) Chat(ctx context.Context, message string) (string, error) {
	args := m.Called(ctx, message)
	return args.String(0), args.Error(1)
}
