package jwthelper

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/supply-chain-api/internal/domain"
)

var key = []byte("0123456789abcdef0123")

func TestGenerateAndParse(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	in := domain.Session{
		ID:        "5a2f3c1e-1111-4c2b-9a77-2f7bd1e0aa01",
		UserID:    42,
		Role:      domain.RoleManager,
		CreatedAt: now,
		ExpiresAt: now.Add(time.Hour),
	}

	token, err := GenerateToken(key, in)
	require.NoError(t, err)

	out, err := ParseToken(key, token)
	require.NoError(t, err)
	assert.Equal(t, in.ID, out.ID)
	assert.Equal(t, in.UserID, out.UserID)
	assert.Equal(t, in.Role, out.Role)
	assert.True(t, in.ExpiresAt.Equal(out.ExpiresAt))
}

func TestParseToken_Rejects(t *testing.T) {
	now := time.Now()
	valid := domain.Session{ID: "s", UserID: 1, Role: domain.RoleAdmin, CreatedAt: now, ExpiresAt: now.Add(time.Hour)}

	t.Run("wrong key", func(t *testing.T) {
		token, err := GenerateToken([]byte("another-key-another-key"), valid)
		require.NoError(t, err)

		_, err = ParseToken(key, token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		expired := valid
		expired.CreatedAt = now.Add(-2 * time.Hour)
		expired.ExpiresAt = now.Add(-time.Hour)
		token, err := GenerateToken(key, expired)
		require.NoError(t, err)

		_, err = ParseToken(key, token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("unknown role", func(t *testing.T) {
		claims := SessionClaims{
			Role: "root",
			RegisteredClaims: jwt.RegisteredClaims{
				ID:        "s",
				Subject:   "1",
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
		require.NoError(t, err)

		_, err = ParseToken(key, token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := ParseToken(key, "not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
