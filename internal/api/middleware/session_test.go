package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/supply-chain-api/internal/auth"
	"github.com/vietanh2810/supply-chain-api/internal/domain"
	"github.com/vietanh2810/supply-chain-api/internal/pkg/jwthelper"
	"github.com/vietanh2810/supply-chain-api/internal/service"
)

const testKey = "0123456789abcdef-test"

type stubSessions map[string]domain.Session

func (s stubSessions) ValidateSession(_ context.Context, id string) (domain.Session, error) {
	session, ok := s[id]
	if !ok || !session.Active(time.Now()) {
		return domain.Session{}, service.ErrSessionInactive
	}
	return session, nil
}

func newTestRouter(sessions stubSessions) (*gin.Engine, *auth.Session) {
	gin.SetMode(gin.TestMode)

	var seen auth.Session
	r := gin.New()
	r.Use(NewSessionLoader(testKey, sessions).Load())
	r.GET("/", func(ctx *gin.Context) {
		seen = auth.FromContext(ctx.Request.Context())
		ctx.Status(http.StatusNoContent)
	})

	return r, &seen
}

func signed(t *testing.T, s domain.Session) string {
	t.Helper()
	token, err := jwthelper.GenerateToken([]byte(testKey), s)
	require.NoError(t, err)
	return token
}

func TestSessionLoader(t *testing.T) {
	now := time.Now()
	live := domain.Session{ID: "live", UserID: 5, Role: domain.RoleCustomer, CreatedAt: now, ExpiresAt: now.Add(time.Hour)}
	revokedAt := now
	revoked := domain.Session{ID: "gone", UserID: 5, Role: domain.RoleCustomer, CreatedAt: now, ExpiresAt: now.Add(time.Hour), RevokedAt: &revokedAt}

	sessions := stubSessions{live.ID: live, revoked.ID: revoked}

	t.Run("bearer header", func(t *testing.T) {
		r, seen := newTestRouter(sessions)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+signed(t, live))
		r.ServeHTTP(httptest.NewRecorder(), req)

		assert.Equal(t, uint(5), seen.UserID)
		assert.Equal(t, domain.RoleCustomer, seen.Role)
	})

	t.Run("cookie", func(t *testing.T) {
		r, seen := newTestRouter(sessions)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: signed(t, live)})
		r.ServeHTTP(httptest.NewRecorder(), req)

		assert.True(t, seen.Authenticated())
	})

	t.Run("revoked session is anonymous", func(t *testing.T) {
		r, seen := newTestRouter(sessions)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+signed(t, revoked))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.False(t, seen.Authenticated())
	})

	t.Run("forged token is anonymous", func(t *testing.T) {
		r, seen := newTestRouter(sessions)
		forged, err := jwthelper.GenerateToken([]byte("some-other-signing-key"), live)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+forged)
		r.ServeHTTP(httptest.NewRecorder(), req)

		assert.False(t, seen.Authenticated())
	})

	t.Run("no token", func(t *testing.T) {
		r, seen := newTestRouter(sessions)
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

		assert.False(t, seen.Authenticated())
	})
}
