package db

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/vietanh2810/supply-chain-api/internal/config"
)

func OpenPostgres(conf *config.PostgresConfig) (*gorm.DB, error) {
	if conf.URL != "" {
		return OpenPostgresWithURL(conf.URL, conf)
	}

	return open(conf.DSN(), conf)
}

func OpenPostgresWithURL(url string, conf *config.PostgresConfig) (*gorm.DB, error) {
	return open(url, conf)
}

func open(dsn string, conf *config.PostgresConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("gorm.Open -> %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("db.DB -> %w", err)
	}

	if conf != nil {
		sqlDB.SetMaxOpenConns(conf.MaxOpenConns)
		sqlDB.SetMaxIdleConns(conf.MaxIdleConns)
		sqlDB.SetConnMaxLifetime(conf.ConnMaxLifetime)
		sqlDB.SetConnMaxIdleTime(conf.ConnMaxIdleTime)

		zap.L().Info("postgres pool configured",
			zap.Int("max_open_conns", conf.MaxOpenConns),
			zap.Int("max_idle_conns", conf.MaxIdleConns),
		)
	}

	if err = sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("sqlDB.Ping -> %w", err)
	}

	return db, nil
}

// NewSQLX shares the gorm connection pool with sqlx for hand-written read
// queries.
func NewSQLX(gdb *gorm.DB) (*sqlx.DB, error) {
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("gdb.DB -> %w", err)
	}

	return sqlx.NewDb(sqlDB, "pgx"), nil
}
