package domain

import "time"

// Session is a server-side login record. Its ID travels in the signed
// session token, so revoking the row ends the session.
type Session struct {
	ID        string     `json:"id"`
	UserID    uint       `json:"user_id"`
	Role      Role       `json:"role"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt time.Time  `json:"expires_at"`
	RevokedAt *time.Time `json:"revoked_at,omitempty"`
}

func (s Session) Active(now time.Time) bool {
	return s.RevokedAt == nil && now.Before(s.ExpiresAt)
}
