package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrUsernameExists = errors.New("username already exists")
	ErrUserNotFound   = errors.New("user not found")
)

type User struct {
	ID uint `gorm:"primaryKey"`

	Username     string `gorm:"unique;not null"`
	PasswordHash string `gorm:"not null"`

	Role      string `gorm:"not null;check:chk_users_role,role IN ('admin','manager','customer')"`
	LastLogin *time.Time

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type UserDAO struct {
	db *gorm.DB
}

func NewUserDAO(db *gorm.DB) *UserDAO {
	return &UserDAO{
		db: db,
	}
}

func (d *UserDAO) Insert(ctx context.Context, user User) (User, error) {
	result := d.db.WithContext(ctx).Create(&user)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) &&
			err.Code == pgerrcode.UniqueViolation &&
			strings.Contains(err.Message, `unique constraint "uni_users_username"`) {
			return User{}, ErrUsernameExists
		}

		return User{}, writeErr(result.Error)
	}

	return user, nil
}

func (d *UserDAO) FindByID(ctx context.Context, id uint) (User, error) {
	var user User

	result := d.db.WithContext(ctx).First(&user, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, storeErr(result.Error)
	}

	return user, nil
}

func (d *UserDAO) FindByUsername(ctx context.Context, username string) (User, error) {
	var user User

	result := d.db.WithContext(ctx).First(&user, "username = ?", username)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, storeErr(result.Error)
	}

	return user, nil
}

func (d *UserDAO) FindByRoles(ctx context.Context, roles []string) ([]User, error) {
	var users []User

	result := d.db.WithContext(ctx).Where("role IN ?", roles).Order("username").Find(&users)
	if result.Error != nil {
		return nil, storeErr(result.Error)
	}

	return users, nil
}

func (d *UserDAO) UpdateLastLogin(ctx context.Context, id uint, at time.Time) error {
	result := d.db.WithContext(ctx).Model(&User{}).Where("id = ?", id).Update("last_login", at)
	if result.Error != nil {
		return writeErr(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}
