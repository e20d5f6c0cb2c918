package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopledger/backend/internal/domain/shared"
)

func TestGormItemRepository_SaveAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormItemRepository(db)
	ctx := context.Background()
	shopID := uuid.New()

	rice := newTestItem(t, shopID, "Rice", 60)
	rice.MaxDiscountPercentage = decimal.NewFromInt(10)
	rice.MaxDiscountFixed = decimal.NewFromFloat(2.5)
	rice.MinStockAlert = 0
	require.NoError(t, repo.Save(ctx, rice))
	require.NoError(t, repo.Save(ctx, newTestItem(t, shopID, "Atta", 45)))
	require.NoError(t, repo.Save(ctx, newTestItem(t, uuid.New(), "Other shop", 1)))

	t.Run("finds by id within shop", func(t *testing.T) {
		found, err := repo.FindByIDForShop(ctx, shopID, rice.ID)
		require.NoError(t, err)
		assert.Equal(t, "Rice", found.Name)
		assert.True(t, found.BasePrice.Equal(decimal.NewFromInt(60)))
		assert.True(t, found.MaxDiscountPercentage.Equal(decimal.NewFromInt(10)))
		assert.True(t, found.MaxDiscountFixed.Equal(decimal.NewFromFloat(2.5)))
		assert.Equal(t, 0, found.MinStockAlert)
		assert.True(t, found.IsActive)
		assert.Empty(t, found.GetDomainEvents())
	})

	t.Run("unknown id in another shop is not found", func(t *testing.T) {
		_, err := repo.FindByIDForShop(ctx, uuid.New(), rice.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("lists by name", func(t *testing.T) {
		items, err := repo.FindAllForShop(ctx, shopID)
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "Atta", items[0].Name)
		assert.Equal(t, "Rice", items[1].Name)
	})

	t.Run("deactivated items leave the active list", func(t *testing.T) {
		require.NoError(t, rice.Deactivate())
		require.NoError(t, repo.Save(ctx, rice))

		active, err := repo.FindActive(ctx, shopID)
		require.NoError(t, err)
		require.Len(t, active, 1)
		assert.Equal(t, "Atta", active[0].Name)

		count, err := repo.CountActive(ctx, shopID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)

		all, err := repo.FindAllForShop(ctx, shopID)
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("finds by ids including inactive", func(t *testing.T) {
		items, err := repo.FindByIDs(ctx, shopID, []uuid.UUID{rice.ID, uuid.New()})
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.False(t, items[0].IsActive)

		none, err := repo.FindByIDs(ctx, shopID, nil)
		require.NoError(t, err)
		assert.Empty(t, none)
	})
}

func TestGormItemRepository_PersistenceFailure(t *testing.T) {
	db, mock, mockDB := newMockDB(t)
	defer mockDB.Close()

	boom := errors.New("connection reset")
	mock.ExpectQuery(`SELECT \* FROM "items"`).WillReturnError(boom)

	_, err := NewGormItemRepository(db).FindByIDForShop(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, shared.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
