package integration

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	catalogapp "github.com/shopledger/backend/internal/application/catalog"
	inventoryapp "github.com/shopledger/backend/internal/application/inventory"
	ledgerapp "github.com/shopledger/backend/internal/application/ledger"
	reportapp "github.com/shopledger/backend/internal/application/report"
	staffapp "github.com/shopledger/backend/internal/application/staff"
	"github.com/shopledger/backend/internal/domain/shop"
	"github.com/shopledger/backend/internal/infrastructure/event"
	"github.com/shopledger/backend/internal/infrastructure/persistence"
	"github.com/shopledger/backend/internal/interfaces/http/dto"
	"github.com/shopledger/backend/internal/interfaces/http/handler"
	"github.com/shopledger/backend/internal/interfaces/http/middleware"
	"github.com/shopledger/backend/internal/interfaces/http/router"
	"github.com/shopledger/backend/tests/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// testServer is the shop API wired the way cmd/server wires it, minus
// telemetry and Redis
type testServer struct {
	engine *gin.Engine
	bus    *event.InMemoryEventBus
	report *reportapp.Engine
	shopID uuid.UUID
}

type apiResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *dto.ErrorInfo  `json:"error"`
	Meta    *dto.Meta       `json:"meta"`
}

func newTestServer(t *testing.T, db *persistence.Database) *testServer {
	t.Helper()

	itemRepo := persistence.NewGormItemRepository(db.DB)
	staffRepo := persistence.NewGormStaffRepository(db.DB)
	txRepo := persistence.NewGormTransactionRepository(db.DB)

	bus := event.NewInMemoryEventBus(zap.NewNop())
	settings, err := shop.NewSettings("Corner Tea Stall", "INR", "en-IN", "UTC", "stall@upi")
	require.NoError(t, err)

	items := catalogapp.NewItemService(itemRepo, bus)
	members := staffapp.NewStaffService(staffRepo, bus, testutil.FastHasher)
	ledger := ledgerapp.NewTransactionService(txRepo, itemRepo, staffRepo, bus,
		ledgerapp.WithLocation(settings.Location()),
	)
	reports := reportapp.NewEngine(txRepo, staffRepo, reportapp.WithLocation(settings.Location()))
	monitor := inventoryapp.NewMonitor(itemRepo, nil)

	bus.Subscribe(reports)
	bus.Subscribe(monitor)
	require.NoError(t, bus.Start(t.Context()))

	s := &testServer{bus: bus, report: reports, shopID: uuid.New()}

	middleware.SetupValidator()
	s.engine = gin.New()
	s.engine.Use(middleware.RequestID(), middleware.BodyLimit(1<<20))
	s.engine.GET("/health", handler.NewHealthHandler(db, nil).Health)

	r := router.NewRouter(s.engine, router.WithGroupMiddleware(
		middleware.ShopContext(middleware.ShopContextConfig{DefaultShopID: s.shopID}),
	))
	r.RegisterGroups(router.ShopRoutes(router.Handlers{
		Items:        handler.NewItemHandler(items, monitor),
		Staff:        handler.NewStaffHandler(members),
		Transactions: handler.NewTransactionHandler(ledger),
		Reports:      handler.NewReportHandler(reportapp.NewOverviewService(reports, itemRepo, staffRepo, txRepo, settings)),
	}, nil)...)
	r.Setup()
	return s
}

// do sends a request for the default shop, or for shop when given
func (s *testServer) do(t *testing.T, method, path string, body any, shop ...uuid.UUID) (int, apiResponse) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, "/api/v1"+path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if len(shop) > 0 {
		req.Header.Set(middleware.ShopHeaderKey, shop[0].String())
	}

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var resp apiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return w.Code, resp
}

// mustDo is do that requires the given status and decodes the data payload
func mustDo[T any](t *testing.T, s *testServer, status int, method, path string, body any, shop ...uuid.UUID) T {
	t.Helper()

	code, resp := s.do(t, method, path, body, shop...)
	require.Equal(t, status, code, "%s %s: %+v", method, path, resp.Error)
	var out T
	require.NoError(t, json.Unmarshal(resp.Data, &out))
	return out
}

func today() string {
	return time.Now().UTC().Format("2006-01-02")
}
