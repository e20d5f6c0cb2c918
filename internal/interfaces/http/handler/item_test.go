package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	catalogapp "github.com/shopledger/backend/internal/application/catalog"
	inventoryapp "github.com/shopledger/backend/internal/application/inventory"
	"github.com/shopledger/backend/internal/domain/catalog"
	"github.com/shopledger/backend/internal/domain/inventory"
	"github.com/shopledger/backend/internal/domain/shared"
	"github.com/shopledger/backend/internal/interfaces/http/dto"
	"github.com/shopledger/backend/tests/testutil"
)

func setupItemHandler(t *testing.T) (*gin.Engine, *testutil.MockItemRepository, *testutil.RecordingPublisher, uuid.UUID) {
	t.Helper()
	shopID := testutil.TestShopID()
	repo := new(testutil.MockItemRepository)
	events := testutil.NewRecordingPublisher()

	h := NewItemHandler(
		catalogapp.NewItemService(repo, events),
		inventoryapp.NewMonitor(repo, nil),
	)
	engine := newShopEngine(shopID)
	items := engine.Group("/items")
	items.GET("", h.List)
	items.GET("/active", h.ListActive)
	items.GET("/low-stock", h.LowStock)
	items.GET("/:id", h.Get)
	items.POST("", h.Create)
	items.PUT("/:id", h.Update)
	items.POST("/:id/deactivate", h.Deactivate)
	items.POST("/:id/activate", h.Activate)
	return engine, repo, events, shopID
}

func TestItemHandler_Create(t *testing.T) {
	engine, repo, events, shopID := setupItemHandler(t)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Item")).Return(nil)

	w := serve(t, engine, http.MethodPost, "/items", map[string]any{
		"name":                    "Masala Tea",
		"base_price":              "20",
		"stock_quantity":          40,
		"max_discount_percentage": "10",
	})

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	item := dataAs[catalogapp.ItemResponse](t, w)
	assert.Equal(t, "Masala Tea", item.Name)
	assert.Equal(t, shopID, item.ShopID)
	assert.True(t, item.BasePrice.Equal(testutil.Dec("20")))
	assert.Equal(t, 40, item.StockQuantity)
	assert.True(t, item.MaxAllowedDiscount.Equal(testutil.Dec("2")))
	assert.True(t, item.IsActive)
	assert.Len(t, events.OnChannel(shared.ChannelItemsChanged), 1)
}

func TestItemHandler_CreateValidation(t *testing.T) {
	engine, repo, _, _ := setupItemHandler(t)

	t.Run("missing price", func(t *testing.T) {
		w := serve(t, engine, http.MethodPost, "/items", map[string]any{"name": "Tea"})
		assertAPIError(t, w, http.StatusBadRequest, dto.ErrCodeValidation)
	})

	t.Run("negative price", func(t *testing.T) {
		w := serve(t, engine, http.MethodPost, "/items", map[string]any{"name": "Tea", "base_price": "-1"})
		assertAPIError(t, w, http.StatusBadRequest, "INVALID_PRICE")
	})

	t.Run("discount percentage above 100", func(t *testing.T) {
		w := serve(t, engine, http.MethodPost, "/items", map[string]any{
			"name":                    "Tea",
			"base_price":              "10",
			"max_discount_percentage": "150",
		})
		assertAPIError(t, w, http.StatusBadRequest, "INVALID_DISCOUNT_PERCENTAGE")
	})

	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestItemHandler_Update(t *testing.T) {
	engine, repo, _, shopID := setupItemHandler(t)
	existing := testutil.NewItem(t, shopID, "Tea", "10")
	repo.On("FindByIDForShop", mock.Anything, shopID, existing.ID).Return(existing, nil)
	repo.On("Save", mock.Anything, existing).Return(nil)

	w := serve(t, engine, http.MethodPut, "/items/"+existing.ID.String(), map[string]any{
		"name":       "Ginger Tea",
		"base_price": "12",
	})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	item := dataAs[catalogapp.ItemResponse](t, w)
	assert.Equal(t, existing.ID, item.ID)
	assert.Equal(t, "Ginger Tea", item.Name)
	assert.True(t, item.BasePrice.Equal(testutil.Dec("12")))
}

func TestItemHandler_UpdateUnknown(t *testing.T) {
	engine, repo, _, shopID := setupItemHandler(t)
	id := uuid.New()
	repo.On("FindByIDForShop", mock.Anything, shopID, id).Return(nil, shared.ErrNotFound)

	w := serve(t, engine, http.MethodPut, "/items/"+id.String(), map[string]any{
		"name":       "Tea",
		"base_price": "10",
	})

	assertAPIError(t, w, http.StatusNotFound, dto.ErrCodeNotFound)
}

func TestItemHandler_GetInvalidID(t *testing.T) {
	engine, _, _, _ := setupItemHandler(t)

	w := serve(t, engine, http.MethodGet, "/items/not-a-uuid", nil)

	assertAPIError(t, w, http.StatusBadRequest, dto.ErrCodeValidation)
}

func TestItemHandler_Lists(t *testing.T) {
	engine, repo, _, shopID := setupItemHandler(t)
	active := testutil.NewItem(t, shopID, "Coffee", "30")
	inactive := testutil.NewItem(t, shopID, "Tea", "10")
	require.NoError(t, inactive.Deactivate())

	repo.On("FindAllForShop", mock.Anything, shopID).Return([]catalog.Item{*active, *inactive}, nil)
	repo.On("FindActive", mock.Anything, shopID).Return([]catalog.Item{*active}, nil)

	all := dataAs[[]catalogapp.ItemResponse](t, serve(t, engine, http.MethodGet, "/items", nil))
	assert.Len(t, all, 2)

	onSale := dataAs[[]catalogapp.ItemResponse](t, serve(t, engine, http.MethodGet, "/items/active", nil))
	require.Len(t, onSale, 1)
	assert.Equal(t, "Coffee", onSale[0].Name)
}

func TestItemHandler_DeactivateAndActivate(t *testing.T) {
	engine, repo, _, shopID := setupItemHandler(t)
	item := testutil.NewItem(t, shopID, "Tea", "10")
	repo.On("FindByIDForShop", mock.Anything, shopID, item.ID).Return(item, nil)
	repo.On("Save", mock.Anything, item).Return(nil)

	path := "/items/" + item.ID.String()

	w := serve(t, engine, http.MethodPost, path+"/deactivate", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, map[string]any{"id": item.ID.String(), "is_active": false}, dataAs[map[string]any](t, w))

	w = serve(t, engine, http.MethodPost, path+"/deactivate", nil)
	assertAPIError(t, w, http.StatusUnprocessableEntity, dto.CodeItemInactive)

	w = serve(t, engine, http.MethodPost, path+"/activate", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.True(t, item.IsActive)
}

func TestItemHandler_LowStock(t *testing.T) {
	engine, repo, _, shopID := setupItemHandler(t)
	empty := testutil.NewItem(t, shopID, "Biscuits", "5")
	stocked := testutil.NewItem(t, shopID, "Tea", "10")
	stocked.StockQuantity = 100
	repo.On("FindActive", mock.Anything, shopID).Return([]catalog.Item{*empty, *stocked}, nil)

	alerts := dataAs[[]inventory.Alert](t, serve(t, engine, http.MethodGet, "/items/low-stock", nil))

	require.Len(t, alerts, 1)
	assert.Equal(t, empty.ID, alerts[0].ItemID)
	assert.True(t, alerts[0].OutOfStock)
}

func TestItemHandler_RequiresShop(t *testing.T) {
	repo := new(testutil.MockItemRepository)
	h := NewItemHandler(catalogapp.NewItemService(repo, testutil.NewRecordingPublisher()), nil)
	engine := newShopEngine(uuid.Nil)
	engine.GET("/items", h.List)

	w := serve(t, engine, http.MethodGet, "/items", nil)

	assertAPIError(t, w, http.StatusBadRequest, dto.ErrCodeInvalidShop)
	repo.AssertNotCalled(t, "FindAllForShop", mock.Anything, mock.Anything)
}
