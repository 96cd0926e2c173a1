package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vietanh2810/supply-chain-api/internal/auth"
	"github.com/vietanh2810/supply-chain-api/internal/domain"
	"github.com/vietanh2810/supply-chain-api/internal/pkg/jwthelper"
	"github.com/vietanh2810/supply-chain-api/internal/service"
)

const SessionCookie = "session"

type SessionValidator interface {
	ValidateSession(ctx context.Context, sessionID string) (domain.Session, error)
}

type SessionLoader struct {
	signingKey []byte
	sessions   SessionValidator
}

func NewSessionLoader(signingKey string, sessions SessionValidator) *SessionLoader {
	return &SessionLoader{
		signingKey: []byte(signingKey),
		sessions:   sessions,
	}
}

// Load attaches the caller's session to the request context. Requests
// without a valid session continue anonymously; the handler decides.
func (l *SessionLoader) Load() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := TokenFromRequest(ctx)
		if token == "" {
			ctx.Next()
			return
		}

		claimed, err := jwthelper.ParseToken(l.signingKey, token)
		if err != nil {
			zap.L().Debug("ignoring invalid session token", zap.Error(err))
			ctx.Next()
			return
		}

		session, err := l.sessions.ValidateSession(ctx.Request.Context(), claimed.ID)
		if err != nil {
			if !errors.Is(err, service.ErrSessionInactive) {
				zap.L().Warn("session lookup failed", zap.String("session_id", claimed.ID), zap.Error(err))
			}
			ctx.Next()
			return
		}

		if session.UserID != claimed.UserID {
			zap.L().Warn("session token subject mismatch", zap.String("session_id", claimed.ID))
			ctx.Next()
			return
		}

		ctx.Request = ctx.Request.WithContext(auth.WithSession(ctx.Request.Context(), auth.Session{
			ID:        session.ID,
			UserID:    session.UserID,
			Role:      session.Role,
			ExpiresAt: session.ExpiresAt,
		}))

		ctx.Next()
	}
}

// TokenFromRequest prefers the bearer header over the session cookie.
func TokenFromRequest(ctx *gin.Context) string {
	if header := ctx.GetHeader("Authorization"); header != "" {
		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}

	if cookie, err := ctx.Cookie(SessionCookie); err == nil {
		return cookie
	}

	return ""
}
