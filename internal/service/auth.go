package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/vietanh2810/supply-chain-api/internal/domain"
	"github.com/vietanh2810/supply-chain-api/internal/repository"
)

var (
	ErrUsernameExists     = repository.ErrUsernameExists
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidRole        = errors.New("invalid role")
	ErrSessionInactive    = errors.New("session expired or revoked")
)

type AuthUserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	FindByUsername(ctx context.Context, username string) (domain.User, error)
	UpdateLastLogin(ctx context.Context, id uint, at time.Time) error
}

type SessionRepository interface {
	Create(ctx context.Context, session domain.Session) (domain.Session, error)
	FindByID(ctx context.Context, id string) (domain.Session, error)
	Revoke(ctx context.Context, id string, at time.Time) error
}

type AuthService struct {
	users    AuthUserRepository
	sessions SessionRepository
	ttl      time.Duration
	cost     int
	now      func() time.Time

	// compared against when the username is unknown
	dummyHash []byte
}

func NewAuthService(users AuthUserRepository, sessions SessionRepository, ttl time.Duration) *AuthService {
	// Only fails for an out-of-range cost.
	dummyHash, _ := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.DefaultCost)

	return &AuthService{
		users:     users,
		sessions:  sessions,
		ttl:       ttl,
		cost:      bcrypt.DefaultCost,
		now:       time.Now,
		dummyHash: dummyHash,
	}
}

// Login checks the credentials and opens a new session. Unknown usernames
// and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (domain.User, domain.Session, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// Same bcrypt work as a real comparison.
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
			return domain.User{}, domain.Session{}, ErrInvalidCredentials
		}

		return domain.User{}, domain.Session{}, fmt.Errorf("s.users.FindByUsername -> %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return domain.User{}, domain.Session{}, ErrInvalidCredentials
	}

	if !user.Role.Valid() {
		return domain.User{}, domain.Session{}, fmt.Errorf("user %d: %w %q", user.ID, ErrInvalidRole, user.Role)
	}

	now := s.now().UTC()
	if err = s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return domain.User{}, domain.Session{}, fmt.Errorf("s.users.UpdateLastLogin -> %w", err)
	}
	user.LastLogin = &now

	session, err := s.sessions.Create(ctx, domain.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Role:      user.Role,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	})
	if err != nil {
		return domain.User{}, domain.Session{}, fmt.Errorf("s.sessions.Create -> %w", err)
	}

	return user, session, nil
}

// Logout revokes the session. Revoking an unknown or already revoked
// session is not an error.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessions.Revoke(ctx, sessionID, s.now().UTC()); err != nil {
		return fmt.Errorf("s.sessions.Revoke -> %w", err)
	}

	return nil
}

func (s *AuthService) ValidateSession(ctx context.Context, sessionID string) (domain.Session, error) {
	session, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return domain.Session{}, ErrSessionInactive
		}

		return domain.Session{}, fmt.Errorf("s.sessions.FindByID -> %w", err)
	}

	if !session.Active(s.now()) {
		return domain.Session{}, ErrSessionInactive
	}

	return session, nil
}

// CreateUser hashes the password and stores the user. It is only used by
// the seeding tool.
func (s *AuthService) CreateUser(ctx context.Context, user domain.User) (domain.User, error) {
	if !user.Role.Valid() {
		return domain.User{}, ErrInvalidRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), s.cost)
	if err != nil {
		return domain.User{}, fmt.Errorf("bcrypt.GenerateFromPassword -> %w", err)
	}
	user.Password = string(hash)

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.users.Create -> %w", err)
	}

	return created, nil
}
