package service

import (
	"context"
	"fmt"
	"time"

	"github.com/vietanh2810/supply-chain-api/internal/domain"
	"github.com/vietanh2810/supply-chain-api/internal/repository"
)

var (
	ErrUserNotFound = repository.ErrUserNotFound
)

type UserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindByRoles(ctx context.Context, roles ...domain.Role) ([]domain.User, error)
}

type ActiveSessionRepository interface {
	ActiveUserIDs(ctx context.Context, now time.Time) (map[uint]bool, error)
}

type UserService struct {
	repo     UserRepository
	sessions ActiveSessionRepository
	now      func() time.Time
}

func NewUserService(repo UserRepository, sessions ActiveSessionRepository) *UserService {
	return &UserService{
		repo:     repo,
		sessions: sessions,
		now:      time.Now,
	}
}

func (s *UserService) GetUser(ctx context.Context, id uint) (domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return user, nil
}

func (s *UserService) Profile(ctx context.Context, id uint) (domain.Profile, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return domain.Profile{}, err
	}

	return domain.Profile{
		Username:  user.Username,
		Role:      user.Role,
		LastLogin: user.LastLogin,
	}, nil
}

// ActiveSessions lists every manager and customer, marking those that hold
// at least one live session.
func (s *UserService) ActiveSessions(ctx context.Context) ([]domain.UserSessionStatus, error) {
	users, err := s.repo.FindByRoles(ctx, domain.RoleManager, domain.RoleCustomer)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByRoles -> %w", err)
	}

	active, err := s.sessions.ActiveUserIDs(ctx, s.now())
	if err != nil {
		return nil, fmt.Errorf("s.sessions.ActiveUserIDs -> %w", err)
	}

	statuses := make([]domain.UserSessionStatus, len(users))
	for i, u := range users {
		status := domain.SessionInactive
		if active[u.ID] {
			status = domain.SessionActive
		}

		statuses[i] = domain.UserSessionStatus{
			Username:  u.Username,
			Role:      u.Role,
			Status:    status,
			LastLogin: u.LastLogin,
		}
	}

	return statuses, nil
}
