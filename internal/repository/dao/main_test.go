package dao

import (
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	os.Exit(run(m))
}

func run(m *testing.M) int {
	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Printf("docker unavailable, postgres tests will skip: %v", err)
		return m.Run()
	}
	if err = pool.Client.Ping(); err != nil {
		log.Printf("docker unavailable, postgres tests will skip: %v", err)
		return m.Run()
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=supply",
			"POSTGRES_PASSWORD=secret",
			"POSTGRES_DB=supply_test",
			"listen_addresses = '*'",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		log.Printf("could not start postgres, tests will skip: %v", err)
		return m.Run()
	}
	defer func() {
		if err := pool.Purge(resource); err != nil {
			log.Printf("could not purge postgres: %v", err)
		}
	}()
	_ = resource.Expire(180)

	dsn := fmt.Sprintf("postgres://supply:secret@%s/supply_test?sslmode=disable", resource.GetHostPort("5432/tcp"))

	pool.MaxWait = 90 * time.Second
	err = pool.Retry(func() error {
		db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: logger.Discard})
		if err != nil {
			return err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		if err = sqlDB.Ping(); err != nil {
			return err
		}
		testDB = db
		return nil
	})
	if err != nil {
		log.Printf("postgres never became ready: %v", err)
		return 1
	}

	if err = InitTables(testDB); err != nil {
		log.Printf("migrations failed: %v", err)
		return 1
	}

	return m.Run()
}

// setupDB hands out a clean database or skips the test when no docker daemon
// was reachable.
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	if testDB == nil {
		t.Skip("postgres test container not available")
	}

	err := testDB.Exec("TRUNCATE sessions, sales, stocks, users RESTART IDENTITY CASCADE").Error
	if err != nil {
		t.Fatalf("truncate: %v", err)
	}

	return testDB
}

func setupSQLX(t *testing.T, db *gorm.DB) *sqlx.DB {
	t.Helper()

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db.DB: %v", err)
	}

	return sqlx.NewDb(sqlDB, "pgx")
}
