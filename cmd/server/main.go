package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	catalogapp "github.com/shopledger/backend/internal/application/catalog"
	inventoryapp "github.com/shopledger/backend/internal/application/inventory"
	ledgerapp "github.com/shopledger/backend/internal/application/ledger"
	reportapp "github.com/shopledger/backend/internal/application/report"
	staffapp "github.com/shopledger/backend/internal/application/staff"
	"github.com/shopledger/backend/internal/domain/shop"
	"github.com/shopledger/backend/internal/domain/staff"
	"github.com/shopledger/backend/internal/infrastructure/cache"
	"github.com/shopledger/backend/internal/infrastructure/config"
	"github.com/shopledger/backend/internal/infrastructure/event"
	"github.com/shopledger/backend/internal/infrastructure/logger"
	"github.com/shopledger/backend/internal/infrastructure/migration"
	"github.com/shopledger/backend/internal/infrastructure/persistence"
	"github.com/shopledger/backend/internal/infrastructure/telemetry"
	"github.com/shopledger/backend/internal/interfaces/http/handler"
	"github.com/shopledger/backend/internal/interfaces/http/middleware"
	"github.com/shopledger/backend/internal/interfaces/http/router"
)

const requestTimeout = 15 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting shop ledger",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("database_driver", cfg.Database.Driver),
	)

	ctx := context.Background()

	// Telemetry: tracing and metrics are no-ops unless enabled
	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ExportInterval:    cfg.Telemetry.MetricsInterval,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	meter := meterProvider.Meter(cfg.Telemetry.ServiceName)
	metrics, err := telemetry.NewBusinessMetrics(meter)
	if err != nil {
		log.Fatal("Failed to register business metrics", zap.Error(err))
	}

	// Database
	db, err := openDatabase(cfg, log)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if err := prepareSchema(cfg, db, log); err != nil {
		log.Fatal("Failed to prepare database schema", zap.Error(err))
	}
	log.Info("Database connected successfully")

	// Repositories
	itemRepo := persistence.NewGormItemRepository(db.DB)
	staffRepo := persistence.NewGormStaffRepository(db.DB)
	txRepo := persistence.NewGormTransactionRepository(db.DB)

	// Change notification bus
	bus := event.NewInMemoryEventBus(log, event.WithFailureHook(func(channel string, err error) {
		metrics.RecordBusFailure(context.Background(), channel)
	}))

	// Shop settings
	settings, err := shop.NewSettings(cfg.Shop.Name, cfg.Shop.Currency, cfg.Shop.Locale, cfg.Shop.Timezone, cfg.Shop.UPIID)
	if err != nil {
		log.Fatal("Invalid shop settings", zap.Error(err))
	}

	// Redis is optional: it relays changes to other processes and shares
	// report snapshots between them
	var (
		redisClient *redis.Client
		engineOpts  = []reportapp.EngineOption{
			reportapp.WithLocation(settings.Location()),
			reportapp.WithMetrics(metrics),
			reportapp.WithLogger(log),
		}
	)
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedisClient(ctx, cache.RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Error closing Redis", zap.Error(err))
			}
		}()
		bus.Subscribe(cache.NewRedisChangeRelay(redisClient,
			cache.WithRelayPrefix(cfg.Redis.ChannelPrefix),
			cache.WithRelayLogger(log),
		))
		engineOpts = append(engineOpts, reportapp.WithSnapshotStore(
			cache.NewRedisReportCache(redisClient, cfg.Redis.ChannelPrefix, cfg.Redis.ReportTTL),
		))
		log.Info("Redis connected", zap.String("prefix", cfg.Redis.ChannelPrefix))
	}

	// Application services
	itemService := catalogapp.NewItemService(itemRepo, bus,
		catalogapp.WithDefaultMinStockAlert(cfg.Shop.DefaultMinAlert),
	)
	staffService := staffapp.NewStaffService(staffRepo, bus, staff.NewPasscodeHasher(cfg.Shop.PasscodeCost))
	ledgerService := ledgerapp.NewTransactionService(txRepo, itemRepo, staffRepo, bus,
		ledgerapp.WithLocation(settings.Location()),
		ledgerapp.WithRecentLimits(cfg.Shop.RecentLimit, cfg.Shop.MaxRecentLimit),
		ledgerapp.WithMetrics(metrics),
	)
	reportEngine := reportapp.NewEngine(txRepo, staffRepo, engineOpts...)
	stockMonitor := inventoryapp.NewMonitor(itemRepo, metrics)
	overviewService := reportapp.NewOverviewService(reportEngine, itemRepo, staffRepo, txRepo, settings)

	// Subscribers keep derived views current
	bus.Subscribe(reportEngine)
	bus.Subscribe(stockMonitor)
	if err := bus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}

	// HTTP
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Invalid trusted proxies", zap.Error(err))
	}

	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}

	// Request ID first so every later middleware can log it
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(corsConfig))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     tracerProvider.IsEnabled(),
	}))
	engine.Use(middleware.SpanErrorMarker())
	engine.Use(middleware.HTTPMetrics(meter))
	if cfg.HTTP.RateLimitEnabled {
		engine.Use(middleware.RateLimit(
			middleware.NewWindowRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow),
			middleware.ByClientIP,
		))
	}
	engine.Use(middleware.Timeout(requestTimeout))

	// Health check sits outside the shop group
	healthChecks := map[string]handler.Pinger{}
	if redisClient != nil {
		healthChecks["redis"] = handler.RedisPinger(func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		})
	}
	healthHandler := handler.NewHealthHandler(db, healthChecks)
	engine.GET("/health", healthHandler.Health)

	defaultShopID, err := parseDefaultShop(cfg.Shop.DefaultShopID)
	if err != nil {
		log.Fatal("Invalid default shop id", zap.Error(err))
	}

	var saleLimit gin.HandlerFunc
	if cfg.HTTP.SaleRateLimit > 0 {
		saleLimit = middleware.RateLimit(
			middleware.NewRateLimiter(cfg.HTTP.SaleRateLimit, cfg.HTTP.SaleRateBurst),
			middleware.ByShop,
		)
	}

	r := router.NewRouter(engine,
		router.WithAPIVersion("v1"),
		router.WithGroupMiddleware(
			middleware.ShopContext(middleware.ShopContextConfig{DefaultShopID: defaultShopID}),
			middleware.ShopSpanAttributes(),
		),
	)
	r.RegisterGroups(router.ShopRoutes(router.Handlers{
		Items:        handler.NewItemHandler(itemService, stockMonitor),
		Staff:        handler.NewStaffHandler(staffService),
		Transactions: handler.NewTransactionHandler(ledgerService),
		Reports:      handler.NewReportHandler(overviewService),
	}, saleLimit)...)
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := bus.Stop(shutdownCtx); err != nil {
		log.Error("Failed to stop event bus", zap.Error(err))
	}
	if err := meterProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Failed to flush metrics", zap.Error(err))
	}
	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Failed to flush traces", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// openDatabase connects with the zap-backed GORM logger and, when enabled,
// the query tracing plugin
func openDatabase(cfg *config.Config, log *zap.Logger) (*persistence.Database, error) {
	opts := []persistence.Option{persistence.WithLogger(log, cfg.Log.Level)}
	if cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled {
		system := "postgresql"
		if cfg.Database.Driver == config.DriverSQLite {
			system = "sqlite"
		}
		opts = append(opts, persistence.WithPlugins(telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
			DBSystem:   system,
			LogFullSQL: !cfg.IsProduction(),
		})))
	}
	return persistence.NewDatabase(&cfg.Database, opts...)
}

// prepareSchema creates the sqlite tables from the models, or applies the SQL
// migrations to postgres when auto-migration is on
func prepareSchema(cfg *config.Config, db *persistence.Database, log *zap.Logger) error {
	if cfg.Database.Driver == config.DriverSQLite {
		return db.AutoMigrate()
	}
	if !cfg.Database.AutoMigrate {
		return nil
	}

	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	m, err := migration.New(sqlDB, cfg.Database.MigrationsPath, log)
	if err != nil {
		return err
	}
	// closing the migrator would close the shared connection pool
	return m.Up()
}

func parseDefaultShop(raw string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.Nil, nil
	}
	return uuid.Parse(raw)
}
