package app

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/vietanh2810/supply-chain-api/internal/api"
	"github.com/vietanh2810/supply-chain-api/internal/config"
	"github.com/vietanh2810/supply-chain-api/internal/db"
	"github.com/vietanh2810/supply-chain-api/internal/logger"
	"github.com/vietanh2810/supply-chain-api/internal/repository/dao"
)

const configPath = "./cmd/app/config.yml"

func Start() error {
	conf, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return fmt.Errorf("failed to initialize logger -> %w", err)
	}
	defer func() { _ = zap.L().Sync() }()

	config.Watch(configPath, func(e fsnotify.Event) {
		zap.L().Warn("config file changed, restart to apply", zap.String("file", e.Name), zap.String("op", e.Op.String()))
	})

	postgresDB, err := db.OpenPostgres(conf.Postgres)
	if err != nil {
		return fmt.Errorf("failed to initialize database -> %w", err)
	}

	if err = dao.InitTables(postgresDB); err != nil {
		return fmt.Errorf("failed to migrate database -> %w", err)
	}

	analyticsDB, err := db.NewSQLX(postgresDB)
	if err != nil {
		return fmt.Errorf("failed to initialize analytics queries -> %w", err)
	}

	s := api.NewServer(conf, postgresDB, analyticsDB)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err = s.Run(ctx); err != nil {
		return fmt.Errorf("failed to start the server -> %w", err)
	}

	return nil
}
