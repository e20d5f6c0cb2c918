package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopledger/backend/internal/interfaces/http/handler"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestNewRouter(t *testing.T) {
	r := NewRouter(gin.New(), WithAPIVersion("v2"))

	assert.Equal(t, "v2", r.apiVersion)
	assert.Empty(t, r.registrars)
}

func TestDomainGroupMiddlewareAndPrefix(t *testing.T) {
	engine := gin.New()
	g := NewDomainGroup("items", "/items").
		Use(func(c *gin.Context) {
			c.Header("X-Group", "items")
			c.Next()
		}).
		GET("/:id", func(c *gin.Context) {
			c.String(http.StatusOK, c.Param("id"))
		})

	NewRouter(engine,
		WithGroupMiddleware(func(c *gin.Context) {
			c.Header("X-API", "v1")
			c.Next()
		}),
	).RegisterGroups(g).Setup()

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/items/tea", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "tea", w.Body.String())
	assert.Equal(t, "items", w.Header().Get("X-Group"))
	assert.Equal(t, "v1", w.Header().Get("X-API"))
	assert.Equal(t, "items", g.Name())
	assert.Equal(t, "/items", g.Prefix())
}

func shopHandlers() Handlers {
	return Handlers{
		Items:        handler.NewItemHandler(nil, nil),
		Staff:        handler.NewStaffHandler(nil),
		Transactions: handler.NewTransactionHandler(nil),
		Reports:      handler.NewReportHandler(nil),
	}
}

func TestShopRoutesTable(t *testing.T) {
	engine := gin.New()
	NewRouter(engine).RegisterGroups(ShopRoutes(shopHandlers(), nil)...).Setup()

	registered := map[string]bool{}
	for _, route := range engine.Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	expected := []string{
		"GET /api/v1/items",
		"GET /api/v1/items/active",
		"GET /api/v1/items/low-stock",
		"GET /api/v1/items/:id",
		"POST /api/v1/items",
		"PUT /api/v1/items/:id",
		"POST /api/v1/items/:id/deactivate",
		"POST /api/v1/items/:id/activate",
		"GET /api/v1/staff",
		"GET /api/v1/staff/active",
		"GET /api/v1/staff/:id",
		"POST /api/v1/staff",
		"POST /api/v1/staff/lookup",
		"PUT /api/v1/staff/:id",
		"POST /api/v1/staff/:id/deactivate",
		"POST /api/v1/staff/:id/activate",
		"POST /api/v1/transactions",
		"GET /api/v1/transactions",
		"GET /api/v1/transactions/search",
		"GET /api/v1/transactions/outstanding-credit",
		"GET /api/v1/transactions/:id",
		"POST /api/v1/transactions/:id/settle",
		"GET /api/v1/reports/daily",
		"GET /api/v1/reports/overview",
	}
	for _, route := range expected {
		assert.True(t, registered[route], "missing route %s", route)
	}
	assert.Len(t, engine.Routes(), len(expected))
}

func TestShopRoutesSaleLimitGuardsRecording(t *testing.T) {
	engine := gin.New()
	limited := 0
	saleLimit := func(c *gin.Context) {
		limited++
		c.AbortWithStatus(http.StatusTooManyRequests)
	}
	NewRouter(engine).RegisterGroups(ShopRoutes(shopHandlers(), saleLimit)...).Setup()

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/transactions", nil))

	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, 1, limited)
}
