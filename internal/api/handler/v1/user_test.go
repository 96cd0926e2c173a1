package v1

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/supply-chain-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/supply-chain-api/internal/auth"
	"github.com/vietanh2810/supply-chain-api/internal/domain"
	"github.com/vietanh2810/supply-chain-api/internal/service"
)

func userRouter(session auth.Session, svc *mockUserService, stocks *mockInventoryService) http.Handler {
	h := NewUserHandler(svc, stocks)
	r := newRouter(session)
	r.GET("/profile", h.HandleProfile)
	r.GET("/admin/sessions", h.HandleAdminSessions)
	r.GET("/dashboard/admin", h.HandleDashboard(domain.RoleAdmin))
	r.GET("/dashboard/manager", h.HandleDashboard(domain.RoleManager))
	r.GET("/dashboard/customer", h.HandleDashboard(domain.RoleCustomer))
	return r
}

func TestHandleProfile(t *testing.T) {
	svc := new(mockUserService)
	svc.On("Profile", mock.Anything, customer.UserID).Return(domain.Profile{Username: "bob", Role: domain.RoleCustomer}, nil)

	w := doJSON(t, userRouter(customer, svc, new(mockInventoryService)), http.MethodGet, "/profile", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "bob", decode[domain.Profile](t, w).Username)

	svc = new(mockUserService)
	svc.On("Profile", mock.Anything, manager.UserID).Return(domain.Profile{}, service.ErrUserNotFound)

	w = doJSON(t, userRouter(manager, svc, new(mockInventoryService)), http.MethodGet, "/profile", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleAdminSessions(t *testing.T) {
	statuses := []domain.UserSessionStatus{
		{Username: "bob", Role: domain.RoleCustomer, Status: domain.SessionInactive},
		{Username: "maria", Role: domain.RoleManager, Status: domain.SessionActive},
	}

	svc := new(mockUserService)
	svc.On("ActiveSessions", mock.Anything).Return(statuses, nil)

	w := doJSON(t, userRouter(admin, svc, new(mockInventoryService)), http.MethodGet, "/admin/sessions", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, statuses, decode[[]domain.UserSessionStatus](t, w))

	for _, session := range []auth.Session{manager, customer} {
		w = doJSON(t, userRouter(session, svc, new(mockInventoryService)), http.MethodGet, "/admin/sessions", nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	}
}

func TestHandleDashboard(t *testing.T) {
	svc := new(mockUserService)
	svc.On("Profile", mock.Anything, mock.Anything).Return(domain.Profile{Username: "someone"}, nil)
	svc.On("ActiveSessions", mock.Anything).Return([]domain.UserSessionStatus{{Username: "bob"}}, nil)
	stocks := new(mockInventoryService)
	stocks.On("ListStocks", mock.Anything).Return([]domain.StockRecord{{ProductID: "P1"}}, nil)

	sessions := map[domain.Role]auth.Session{
		domain.RoleAdmin:    admin,
		domain.RoleManager:  manager,
		domain.RoleCustomer: customer,
	}

	for dashboard := range sessions {
		for role, session := range sessions {
			w := doJSON(t, userRouter(session, svc, stocks), http.MethodGet, "/dashboard/"+string(dashboard), nil)
			if role != dashboard {
				assert.Equal(t, http.StatusForbidden, w.Code, "%s on %s dashboard", role, dashboard)
				continue
			}
			require.Equal(t, http.StatusOK, w.Code, "%s dashboard", dashboard)

			body := decode[response.DashboardResponse](t, w)
			assert.Equal(t, dashboard == domain.RoleAdmin, len(body.Sessions) == 1)
			assert.Equal(t, dashboard == domain.RoleManager, len(body.Stocks) == 1)
		}
	}

	w := doJSON(t, userRouter(anonymous, svc, stocks), http.MethodGet, "/dashboard/customer", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "/login", decode[errBody](t, w).Redirect)
}
