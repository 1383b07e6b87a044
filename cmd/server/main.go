package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"

	catalogapp "github.com/ims/backend/internal/application/catalog"
	identityapp "github.com/ims/backend/internal/application/identity"
	inventoryapp "github.com/ims/backend/internal/application/inventory"
	partnerapp "github.com/ims/backend/internal/application/partner"
	reportapp "github.com/ims/backend/internal/application/report"
	"github.com/ims/backend/internal/domain/inventory"
	"github.com/ims/backend/internal/infrastructure/auth"
	"github.com/ims/backend/internal/infrastructure/config"
	"github.com/ims/backend/internal/infrastructure/event"
	"github.com/ims/backend/internal/infrastructure/logger"
	"github.com/ims/backend/internal/infrastructure/persistence"
	"github.com/ims/backend/internal/infrastructure/telemetry"
	"github.com/ims/backend/internal/interfaces/http/handler"
	"github.com/ims/backend/internal/interfaces/http/middleware"
	"github.com/ims/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting IMS backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		if err := tracerProvider.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLogLevel(cfg.Log.Level))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	if err := telemetry.RegisterDBTracing(db.DB, cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled, log); err != nil {
		log.Warn("Failed to register database tracing", zap.Error(err))
	}

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	supplierRepo := persistence.NewGormSupplierRepository(db.DB)
	movementRepo := persistence.NewGormMovementRepository(db.DB)
	alertRepo := persistence.NewGormAlertRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	reportRepo := persistence.NewGormInventoryReportRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	// Event bus
	eventBus := event.NewInMemoryEventBus(log)
	lowStockHandler := inventoryapp.NewLowStockAlertHandler(log)
	if err := eventBus.Subscribe(inventory.EventTypeLowStockAlertRaised, lowStockHandler); err != nil {
		log.Fatal("Failed to subscribe low-stock handler", zap.Error(err))
	}

	// Application services
	defaultThreshold := cfg.Inventory.DefaultReorderThreshold

	alertService := inventoryapp.NewAlertService(alertRepo, productRepo, defaultThreshold, log)
	alertService.SetEventPublisher(eventBus)

	ledgerService := inventoryapp.NewLedgerService(txScope, movementRepo, alertService, log)
	ledgerService.SetEventPublisher(eventBus)
	ledgerService.SetMaxRetries(cfg.Inventory.StockWriteMaxRetries)

	productService := catalogapp.NewProductService(productRepo, categoryRepo, supplierRepo, defaultThreshold, log)
	categoryService := catalogapp.NewCategoryService(categoryRepo, productRepo)
	supplierService := partnerapp.NewSupplierService(supplierRepo)

	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, identityapp.AuthServiceConfig{
		MaxLoginAttempts: cfg.Auth.MaxLoginAttempts,
		LockDuration:     cfg.Auth.LockDuration,
	}, log)
	userService := identityapp.NewUserService(userRepo, log)

	reportService := reportapp.NewReportService(reportRepo, productRepo, movementRepo, alertRepo, defaultThreshold)

	// HTTP handlers
	handlers := router.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Stock:    handler.NewStockHandler(ledgerService),
		Alert:    handler.NewAlertHandler(alertService),
		Product:  handler.NewProductHandler(productService),
		Category: handler.NewCategoryHandler(categoryService),
		Supplier: handler.NewSupplierHandler(supplierService),
		User:     handler.NewUserHandler(userService),
		Report:   handler.NewReportHandler(reportService),
		System:   handler.NewSystemHandler(db),
	}

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	if cfg.Telemetry.Enabled {
		engine.Use(otelgin.Middleware(cfg.Telemetry.ServiceName))
	}

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService: jwtService,
		SkipPaths: []string{
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
			"/api/v1/system/health",
			"/api/v1/system/info",
		},
		Logger: log,
	}))
	router.RegisterAPIRoutes(r, handlers)
	r.Setup()

	// Plain health endpoint outside API versioning for probes
	engine.GET("/health", handlers.System.Health)

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

func gormLogLevel(level string) gormlogger.LogLevel {
	switch level {
	case "debug":
		return gormlogger.Info
	case "warn", "error":
		return gormlogger.Error
	default:
		return gormlogger.Warn
	}
}
