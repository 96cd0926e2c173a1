// Command seeduser creates an application user. Users are never created
// through the API.
//
//	seeduser -username maria -password 's3cretpass' -role manager
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload" // Autoload .env file.
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/vietanh2810/supply-chain-api/internal/config"
	"github.com/vietanh2810/supply-chain-api/internal/db"
	"github.com/vietanh2810/supply-chain-api/internal/domain"
	"github.com/vietanh2810/supply-chain-api/internal/logger"
	"github.com/vietanh2810/supply-chain-api/internal/repository"
	"github.com/vietanh2810/supply-chain-api/internal/repository/dao"
	"github.com/vietanh2810/supply-chain-api/internal/service"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "seeduser:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags := pflag.NewFlagSet("seeduser", pflag.ContinueOnError)
	configPath := flags.String("config", "./cmd/app/config.yml", "path to the config file")
	input := NewUserInput{}
	flags.StringVarP(&input.Username, "username", "u", "", "login name")
	flags.StringVarP(&input.Password, "password", "p", "", "password (at least 8 characters, one letter and one digit)")
	flags.StringVarP(&input.Role, "role", "r", string(domain.RoleCustomer), "admin, manager or customer")
	if err := flags.Parse(args); err != nil {
		return err
	}

	if err := input.Validate(); err != nil {
		return err
	}

	if err := logger.Init(os.Getenv("API_ENVIRONMENT")); err != nil {
		return fmt.Errorf("logger.Init -> %w", err)
	}

	conf, err := config.LoadPostgres(*configPath)
	if err != nil {
		return fmt.Errorf("config.LoadPostgres -> %w", err)
	}

	postgresDB, err := db.OpenPostgres(conf)
	if err != nil {
		return fmt.Errorf("db.OpenPostgres -> %w", err)
	}

	if err = dao.InitTables(postgresDB); err != nil {
		return fmt.Errorf("dao.InitTables -> %w", err)
	}

	users := repository.NewUserRepository(dao.NewUserDAO(postgresDB))
	sessions := repository.NewSessionRepository(dao.NewSessionDAO(postgresDB))
	svc := service.NewAuthService(users, sessions, time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	created, err := svc.CreateUser(ctx, input.ToDomain())
	if err != nil {
		if errors.Is(err, service.ErrUsernameExists) {
			return fmt.Errorf("username %q is already taken", input.Username)
		}
		return fmt.Errorf("svc.CreateUser -> %w", err)
	}

	zap.L().Info("user created", zap.Uint("id", created.ID), zap.String("username", created.Username), zap.String("role", string(created.Role)))

	return nil
}
