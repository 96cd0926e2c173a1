// Package auth decides whether the session behind a request may run an
// operation. Every decision is made from the session alone; nothing is
// remembered between requests.
package auth

import (
	"context"
	"time"

	"github.com/vietanh2810/supply-chain-api/internal/domain"
)

// Session is the authenticated identity attached to one request. The zero
// value means nobody is logged in.
type Session struct {
	ID        string
	UserID    uint
	Role      domain.Role
	ExpiresAt time.Time
}

func (s Session) Authenticated() bool {
	return s.UserID != 0 && s.ID != ""
}

type DenyReason string

const (
	DenyUnauthenticated DenyReason = "redirect to login"
	DenyForbidden       DenyReason = "403 not authorized"
)

type Decision struct {
	Allowed bool
	Reason  DenyReason
	UserID  uint
	Role    domain.Role
}

// Authorize allows any authenticated session when no role is given.
// Otherwise the session role must be one of required.
func Authorize(s Session, required ...domain.Role) Decision {
	if !s.Authenticated() {
		return Decision{Reason: DenyUnauthenticated}
	}

	if len(required) > 0 && !hasRole(s.Role, required) {
		return Decision{Reason: DenyForbidden, UserID: s.UserID, Role: s.Role}
	}

	return Decision{Allowed: true, UserID: s.UserID, Role: s.Role}
}

func hasRole(role domain.Role, roles []domain.Role) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

type sessionKey struct{}

func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// FromContext returns the zero Session when none was attached.
func FromContext(ctx context.Context) Session {
	s, _ := ctx.Value(sessionKey{}).(Session)
	return s
}
