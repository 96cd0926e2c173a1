package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/vietanh2810/supply-chain-api/internal/domain"
	"github.com/vietanh2810/supply-chain-api/internal/repository/dao"
)

var ErrSessionNotFound = dao.ErrSessionNotFound

type SessionDAO interface {
	Insert(ctx context.Context, session dao.Session) (dao.Session, error)
	FindByID(ctx context.Context, id string) (dao.Session, error)
	Revoke(ctx context.Context, id string, at time.Time) error
	FindActiveUserIDs(ctx context.Context, now time.Time) ([]uint, error)
}

type SessionRepository struct {
	dao SessionDAO
}

func NewSessionRepository(dao SessionDAO) *SessionRepository {
	return &SessionRepository{
		dao: dao,
	}
}

func (r *SessionRepository) Create(ctx context.Context, session domain.Session) (domain.Session, error) {
	created, err := r.dao.Insert(ctx, dao.Session{
		ID:        session.ID,
		UserID:    session.UserID,
		Role:      string(session.Role),
		CreatedAt: session.CreatedAt,
		ExpiresAt: session.ExpiresAt,
	})
	if err != nil {
		return domain.Session{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *SessionRepository) FindByID(ctx context.Context, id string) (domain.Session, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Session{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *SessionRepository) Revoke(ctx context.Context, id string, at time.Time) error {
	if err := r.dao.Revoke(ctx, id, at); err != nil {
		return fmt.Errorf("r.dao.Revoke -> %w", err)
	}

	return nil
}

func (r *SessionRepository) ActiveUserIDs(ctx context.Context, now time.Time) (map[uint]bool, error) {
	ids, err := r.dao.FindActiveUserIDs(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindActiveUserIDs -> %w", err)
	}

	active := make(map[uint]bool, len(ids))
	for _, id := range ids {
		active[id] = true
	}

	return active, nil
}

func (r *SessionRepository) daoToDomain(s dao.Session) domain.Session {
	return domain.Session{
		ID:        s.ID,
		UserID:    s.UserID,
		Role:      domain.Role(s.Role),
		CreatedAt: s.CreatedAt,
		ExpiresAt: s.ExpiresAt,
		RevokedAt: s.RevokedAt,
	}
}
