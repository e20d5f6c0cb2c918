// Package integration runs the shop API against real databases: an
// in-memory sqlite for the fast path and a PostgreSQL container for the
// migration-backed schema.
package integration

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"github.com/shopledger/backend/internal/infrastructure/config"
	"github.com/shopledger/backend/internal/infrastructure/migration"
	"github.com/shopledger/backend/internal/infrastructure/persistence"
)

// NewSQLiteTestDB opens an in-memory sqlite database with the ledger tables
func NewSQLiteTestDB(t *testing.T) *persistence.Database {
	t.Helper()

	db, err := persistence.NewDatabase(&config.DatabaseConfig{
		Driver:     config.DriverSQLite,
		SQLitePath: ":memory:",
	}, dbLogOptions()...)
	require.NoError(t, err, "Failed to open sqlite database")
	require.NoError(t, db.AutoMigrate(), "Failed to create sqlite tables")

	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}

// NewPostgresTestDB starts a PostgreSQL container and applies the SQL
// migrations. Each call gets its own container.
func NewPostgresTestDB(t *testing.T) *persistence.Database {
	t.Helper()

	ctx := context.Background()
	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("shop_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("shop123"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "Failed to start PostgreSQL container")
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("Warning: Failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	db, err := persistence.NewDatabase(&config.DatabaseConfig{
		Driver:          config.DriverPostgres,
		Host:            host,
		Port:            port.Int(),
		User:            "postgres",
		Password:        "shop123",
		DBName:          "shop_test",
		SSLMode:         "disable",
		MaxOpenConns:    10,
		MaxIdleConns:    2,
		ConnMaxLifetime: 5,
		ConnMaxIdleTime: 1,
	}, dbLogOptions()...)
	require.NoError(t, err, "Failed to connect to database")
	t.Cleanup(func() {
		_ = db.Close()
	})

	sqlDB, err := db.DB.DB()
	require.NoError(t, err)
	m, err := migration.New(sqlDB, findMigrationsPath(t), zap.NewNop())
	require.NoError(t, err, "Failed to create migrator")
	require.NoError(t, m.Up(), "Failed to run migrations")

	return db
}

// dbLogOptions turns on SQL logging when TEST_DB_DEBUG is set
func dbLogOptions() []persistence.Option {
	if os.Getenv("TEST_DB_DEBUG") == "" {
		return nil
	}
	l, _ := zap.NewDevelopment()
	return []persistence.Option{persistence.WithLogger(l, "debug")}
}

// findMigrationsPath locates the migrations directory at the module root
func findMigrationsPath(t *testing.T) string {
	t.Helper()
	_, filename, _, ok := runtime.Caller(0)
	require.True(t, ok)

	path := filepath.Join(filepath.Dir(filename), "..", "..", "migrations")
	_, err := os.Stat(path)
	require.NoError(t, err, "Could not find migrations directory")
	return path
}
