package main

import (
	"errors"
	"strings"

	"github.com/dlclark/regexp2"
	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/vietanh2810/supply-chain-api/internal/domain"
)

const passwordRegexPattern = `^(?=.*[A-Za-z])(?=.*\d).{8,}$`

var (
	passwordExp        = regexp2.MustCompile(passwordRegexPattern, regexp2.None)
	errInvalidPassword = errors.New("the password must be at least 8 characters and contain 1 letter and 1 number")
)

type NewUserInput struct {
	Username string
	Password string
	Role     string
}

func (in *NewUserInput) Validate() error {
	in.Username = strings.TrimSpace(in.Username)

	err := validation.ValidateStruct(
		in,
		validation.Field(&in.Username, validation.Required, validation.Length(3, 150)),
		validation.Field(&in.Password, validation.Required),
		validation.Field(&in.Role, validation.Required, validation.In(
			string(domain.RoleAdmin), string(domain.RoleManager), string(domain.RoleCustomer),
		)),
	)
	if err != nil {
		return err
	}

	// regexp does not support look-ahead.
	ok, err := passwordExp.MatchString(in.Password)
	if err != nil || !ok {
		return errInvalidPassword
	}

	return nil
}

func (in *NewUserInput) ToDomain() domain.User {
	return domain.User{
		Username: in.Username,
		Password: in.Password,
		Role:     domain.Role(in.Role),
	}
}
