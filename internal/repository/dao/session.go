package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrSessionNotFound = errors.New("session not found")

type Session struct {
	ID        string    `gorm:"primaryKey;type:uuid"`
	UserID    uint      `gorm:"not null;index"`
	User      User      `gorm:"constraint:OnDelete:CASCADE"`
	Role      string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
	ExpiresAt time.Time `gorm:"not null;index"`
	RevokedAt *time.Time
}

type SessionDAO struct {
	db *gorm.DB
}

func NewSessionDAO(db *gorm.DB) *SessionDAO {
	return &SessionDAO{
		db: db,
	}
}

func (d *SessionDAO) Insert(ctx context.Context, session Session) (Session, error) {
	result := d.db.WithContext(ctx).Omit("User").Create(&session)
	if result.Error != nil {
		return Session{}, writeErr(result.Error)
	}

	return session, nil
}

func (d *SessionDAO) FindByID(ctx context.Context, id string) (Session, error) {
	var session Session

	result := d.db.WithContext(ctx).First(&session, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Session{}, ErrSessionNotFound
		}

		return Session{}, storeErr(result.Error)
	}

	return session, nil
}

// Revoke marks the session as ended. Revoking twice is not an error.
func (d *SessionDAO) Revoke(ctx context.Context, id string, at time.Time) error {
	result := d.db.WithContext(ctx).
		Model(&Session{}).
		Where("id = ? AND revoked_at IS NULL", id).
		Update("revoked_at", at)
	if result.Error != nil {
		return writeErr(result.Error)
	}

	return nil
}

// FindActiveUserIDs lists the users holding at least one live session.
func (d *SessionDAO) FindActiveUserIDs(ctx context.Context, now time.Time) ([]uint, error) {
	var ids []uint

	result := d.db.WithContext(ctx).
		Model(&Session{}).
		Where("revoked_at IS NULL AND expires_at > ?", now).
		Distinct().
		Pluck("user_id", &ids)
	if result.Error != nil {
		return nil, storeErr(result.Error)
	}

	return ids, nil
}
