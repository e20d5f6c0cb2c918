package persistence

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/shopledger/backend/internal/domain/catalog"
	"github.com/shopledger/backend/internal/domain/ledger"
	"github.com/shopledger/backend/internal/infrastructure/persistence/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.AllModels()...))
	return db
}

// newMockDB creates a GORM postgres connection backed by sqlmock
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func newTestItem(t *testing.T, shopID uuid.UUID, name string, price int64) *catalog.Item {
	t.Helper()
	item, err := catalog.NewItem(shopID, catalog.DefaultItemAttributes(name, decimal.NewFromInt(price)))
	require.NoError(t, err)
	return item
}

func newTestSale(t *testing.T, shopID, staffID uuid.UUID, amount int64, mode ledger.PaymentMode, at time.Time) *ledger.Transaction {
	t.Helper()
	tx, err := ledger.NewTransaction(ledger.Sale{
		ShopID:         shopID,
		EnteredAmount:  decimal.NewFromInt(amount),
		StaffID:        staffID,
		PaymentMode:    mode,
		DiscountAmount: decimal.Zero,
	})
	require.NoError(t, err)
	tx.CreatedAt = at
	tx.UpdatedAt = at
	return tx
}
