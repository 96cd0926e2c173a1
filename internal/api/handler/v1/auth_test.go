package v1

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/supply-chain-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/supply-chain-api/internal/api/middleware"
	"github.com/vietanh2810/supply-chain-api/internal/auth"
	"github.com/vietanh2810/supply-chain-api/internal/config"
	"github.com/vietanh2810/supply-chain-api/internal/domain"
	"github.com/vietanh2810/supply-chain-api/internal/pkg/jwthelper"
	"github.com/vietanh2810/supply-chain-api/internal/service"
)

var apiConf = &config.APIConfig{JWTSigningKey: "handler-test-signing-key"}

func authRouter(session auth.Session, svc *mockAuthService) http.Handler {
	h := NewAuthHandler(apiConf, svc)
	r := newRouter(session)
	r.POST("/auth/login", h.HandleLogin)
	r.POST("/auth/logout", h.HandleLogout)
	return r
}

func TestHandleLogin_Success(t *testing.T) {
	expires := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
	svc := new(mockAuthService)
	svc.On("Login", mock.Anything, "maria", "s3cretpass").Return(
		domain.User{ID: 2, Username: "maria", Role: domain.RoleManager},
		domain.Session{ID: "sess-9", UserID: 2, Role: domain.RoleManager, CreatedAt: time.Now(), ExpiresAt: expires},
		nil,
	)

	w := doJSON(t, authRouter(anonymous, svc), http.MethodPost, "/auth/login",
		map[string]string{"username": "maria", "password": "s3cretpass"})
	require.Equal(t, http.StatusOK, w.Code)

	body := decode[response.LoginResponse](t, w)
	assert.Equal(t, "/dashboard/manager", body.Redirect)
	assert.Equal(t, "maria", body.User.Username)
	assert.NotContains(t, w.Body.String(), "password")

	session, err := jwthelper.ParseToken([]byte(apiConf.JWTSigningKey), body.Token)
	require.NoError(t, err)
	assert.Equal(t, "sess-9", session.ID)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, middleware.SessionCookie, cookies[0].Name)
	assert.Equal(t, body.Token, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}

func TestHandleLogin_FailuresLookAlike(t *testing.T) {
	svc := new(mockAuthService)
	svc.On("Login", mock.Anything, "ghost", "whatever1").Return(domain.User{}, domain.Session{}, service.ErrInvalidCredentials)
	svc.On("Login", mock.Anything, "maria", "wrongpass1").Return(domain.User{}, domain.Session{}, service.ErrInvalidCredentials)

	r := authRouter(anonymous, svc)
	unknown := doJSON(t, r, http.MethodPost, "/auth/login", map[string]string{"username": "ghost", "password": "whatever1"})
	wrong := doJSON(t, r, http.MethodPost, "/auth/login", map[string]string{"username": "maria", "password": "wrongpass1"})

	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, unknown.Code, wrong.Code)
	assert.Equal(t, unknown.Body.String(), wrong.Body.String())
	assert.Empty(t, unknown.Result().Cookies())
}

func TestHandleLogin_BadRequest(t *testing.T) {
	svc := new(mockAuthService)

	w := doJSON(t, authRouter(anonymous, svc), http.MethodPost, "/auth/login", map[string]string{"username": "maria"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Login", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleLogin_StoreFailureIsGeneric(t *testing.T) {
	svc := new(mockAuthService)
	svc.On("Login", mock.Anything, "maria", "s3cretpass").
		Return(domain.User{}, domain.Session{}, fmt.Errorf("s.users.FindByUsername -> %w: dial tcp 10.0.0.5:5432", service.ErrStoreUnavailable))

	w := doJSON(t, authRouter(anonymous, svc), http.MethodPost, "/auth/login",
		map[string]string{"username": "maria", "password": "s3cretpass"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "10.0.0.5")
}

func TestHandleLogout(t *testing.T) {
	t.Run("anonymous is sent to login", func(t *testing.T) {
		w := doJSON(t, authRouter(anonymous, new(mockAuthService)), http.MethodPost, "/auth/logout", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "/login", decode[errBody](t, w).Redirect)
	})

	t.Run("revokes and clears cookie", func(t *testing.T) {
		svc := new(mockAuthService)
		svc.On("Logout", mock.Anything, customer.ID).Return(nil)

		w := doJSON(t, authRouter(customer, svc), http.MethodPost, "/auth/logout", nil)
		require.Equal(t, http.StatusOK, w.Code)

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Empty(t, cookies[0].Value)
		assert.Less(t, cookies[0].MaxAge, 0)
		svc.AssertExpectations(t)
	})
}
