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
	financeapp "github.com/marketrent/backend/internal/application/finance"
	leasingapp "github.com/marketrent/backend/internal/application/leasing"
	"github.com/marketrent/backend/internal/domain/shared"
	"github.com/marketrent/backend/internal/infrastructure/auth"
	"github.com/marketrent/backend/internal/infrastructure/cache"
	"github.com/marketrent/backend/internal/infrastructure/config"
	"github.com/marketrent/backend/internal/infrastructure/logger"
	"github.com/marketrent/backend/internal/infrastructure/persistence"
	"github.com/marketrent/backend/internal/infrastructure/scheduler"
	"github.com/marketrent/backend/internal/infrastructure/storage"
	"github.com/marketrent/backend/internal/infrastructure/telemetry"
	"github.com/marketrent/backend/internal/interfaces/http/handler"
	"github.com/marketrent/backend/internal/interfaces/http/middleware"
	"github.com/marketrent/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

//	@title			Market Rent API
//	@version		1.0
//	@description	Lease, payment and expense bookkeeping for a market's rental spaces

//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	logCfg := &logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	}
	log, err := logger.New(logCfg)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	log.Info("Starting market rent backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	serviceName := cfg.Telemetry.ServiceName
	if serviceName == "" {
		serviceName = cfg.App.Name
	}

	// OpenTelemetry logs: bridge zap so every entry is also exported
	loggerProvider, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.LogsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       serviceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize OTEL logs", zap.Error(err))
	}
	if loggerProvider.IsEnabled() {
		baseCore, err := logger.NewCore(logCfg)
		if err != nil {
			log.Fatal("Failed to build log core", zap.Error(err))
		}
		otelCore := telemetry.NewZapOTELCore(loggerProvider, logger.ParseLevel(cfg.Log.Level))
		log = telemetry.NewBridgedLogger(baseCore, otelCore, zap.AddCaller())
	}
	defer func() {
		_ = log.Sync()
	}()

	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       serviceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}

	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.MetricsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ExportInterval:    cfg.Telemetry.MetricsInterval,
		ServiceName:       serviceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}

	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:         cfg.Telemetry.ProfilingEnabled,
		ServerAddress:   cfg.Telemetry.ProfilingServer,
		ApplicationName: serviceName,
	}, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	if profiler.IsEnabled() && tracerProvider.IsEnabled() {
		if err := tracerProvider.EnableSpanProfiles(); err != nil {
			log.Warn("Failed to link spans to profiles", zap.Error(err))
		}
	}

	// Create GORM logger backed by zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Database.LogLevel),
		logger.WithSlowThreshold(cfg.Telemetry.DBSlowQueryThresh))

	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if db.Driver() == "sqlite" {
		if err := db.AutoMigrate(); err != nil {
			log.Fatal("Failed to migrate sqlite schema", zap.Error(err))
		}
	}
	log.Info("Database connected successfully", zap.String("driver", db.Driver()))

	dbSystem := "postgresql"
	if db.Driver() == "sqlite" {
		dbSystem = "sqlite"
	}
	if err := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
		Enabled:         cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
		SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
		DBSystem:        dbSystem,
	}, log).Register(db.DB); err != nil {
		log.Warn("Failed to register database tracing", zap.Error(err))
	}
	if meterProvider.IsEnabled() {
		if sqlDB, err := db.DB.DB(); err == nil {
			dbMetrics, err := telemetry.NewDBMetrics(meterProvider.Meter("marketrent.db"), sqlDB, cfg.Telemetry.DBSlowQueryThresh, log)
			if err == nil {
				err = dbMetrics.Register(db.DB)
			}
			if err != nil {
				log.Warn("Failed to register database metrics", zap.Error(err))
			}
		}
	}

	// Initialize repositories
	spaceRepo := persistence.NewGormSpaceRepository(db.DB)
	tenantRepo := persistence.NewGormTenantRepository(db.DB)
	contractRepo := persistence.NewGormContractRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	expenseRepo := persistence.NewGormExpenseRepository(db.DB)

	// Initialize application services
	spaceService := leasingapp.NewSpaceService(spaceRepo, contractRepo, log)
	tenantService := leasingapp.NewTenantService(tenantRepo, log)
	contractService := leasingapp.NewContractService(contractRepo)
	paymentService := leasingapp.NewPaymentService(paymentRepo, log)
	dashboardService := leasingapp.NewDashboardService(spaceRepo, contractRepo, paymentRepo, expenseRepo)
	expenseService := financeapp.NewExpenseService(expenseRepo, log)

	leaseMetrics, err := telemetry.NewLeaseMetrics(telemetry.LeaseMetricsConfig{
		Meter:             meterProvider.Meter("marketrent.leasing"),
		Logger:            log,
		OccupancyProvider: spaceService,
	})
	if err != nil {
		log.Warn("Lease metrics disabled", zap.Error(err))
		leaseMetrics = nil
	}
	if meterProvider.IsEnabled() {
		leaseMetrics.StartPeriodicCollection(ctx, cfg.Telemetry.MetricsInterval)
	}

	lifecycleService := leasingapp.NewLifecycleService(spaceRepo, tenantRepo, contractRepo, paymentRepo,
		leasingapp.WithLogger(log),
		leasingapp.WithMetrics(leaseMetrics),
	)

	uploadService := leasingapp.NewUploadService(newObjectStorage(ctx, cfg, log), cfg.Storage.PresignExpiration, log)

	// Idempotency store for payment recording
	var idempotencyStore shared.IdempotencyStore
	engineCfg := router.EngineConfig{
		Logger:           log,
		HTTP:             cfg.HTTP,
		ServiceName:      serviceName,
		IdempotencyTTL:   cfg.Idempotency.TTL,
		TracingEnabled:   cfg.Telemetry.Enabled,
		MeterProvider:    meterProvider,
		ProfilingEnabled: profiler.IsEnabled(),
	}
	if cfg.Idempotency.Enabled {
		store, err := cache.NewIdempotencyStoreFactory(cfg.Redis,
			cache.WithLogger(log),
			cache.WithKeyPrefix(cfg.Idempotency.KeyPrefix),
			cache.WithInMemoryFallback(true),
		).CreateStore(ctx)
		if err != nil {
			log.Fatal("Failed to create idempotency store", zap.Error(err))
		}
		engineCfg.IdempotencyStore = store
		idempotencyStore = store
	}

	tokens, err := auth.NewJWTService(cfg.JWT)
	if err != nil {
		log.Fatal("Failed to initialize JWT service", zap.Error(err))
	}
	engineCfg.Tokens = tokens

	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		defer limiter.Stop()
		engineCfg.RateLimiter = limiter
	}

	// Overdue sweeper
	sweeper := scheduler.NewOverdueSweeper(paymentRepo, log, scheduler.OverdueSweeperConfig{
		Enabled:  cfg.Scheduler.OverdueEnabled,
		Interval: cfg.Scheduler.OverdueInterval,
		Timeout:  cfg.Scheduler.OverdueTimeout,
	}, scheduler.WithSweeperMetrics(leaseMetrics))
	if err := sweeper.Start(ctx); err != nil {
		log.Fatal("Failed to start overdue sweeper", zap.Error(err))
	}

	// Setup Gin mode
	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := router.NewEngine(engineCfg, router.Handlers{
		System:    handler.NewSystemHandler(cfg.App.Name, version, db),
		Space:     handler.NewSpaceHandler(spaceService),
		Tenant:    handler.NewTenantHandler(tenantService, lifecycleService),
		Contract:  handler.NewContractHandler(contractService, lifecycleService),
		Payment:   handler.NewPaymentHandler(paymentService, lifecycleService),
		Expense:   handler.NewExpenseHandler(expenseService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
		Upload:    handler.NewUploadHandler(uploadService),
	})

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

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := sweeper.Stop(shutdownCtx); err != nil {
		log.Error("Error stopping overdue sweeper", zap.Error(err))
	}
	leaseMetrics.Stop()
	cancel()

	if idempotencyStore != nil {
		if err := idempotencyStore.Close(); err != nil {
			log.Error("Error closing idempotency store", zap.Error(err))
		}
	}
	if err := profiler.Stop(); err != nil {
		log.Error("Error stopping profiler", zap.Error(err))
	}
	if err := meterProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down meter provider", zap.Error(err))
	}
	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down tracer provider", zap.Error(err))
	}
	if err := loggerProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down logger provider", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// newObjectStorage returns S3 storage when enabled, otherwise the stub that
// issues deterministic local URLs
func newObjectStorage(ctx context.Context, cfg *config.Config, log *zap.Logger) leasingapp.ObjectStorage {
	if !cfg.Storage.Enabled {
		log.Info("Object storage disabled, using stub upload URLs")
		return storage.NewStubObjectStorage(cfg.Storage.PublicBaseURL)
	}

	s3Storage, err := storage.NewS3ObjectStorage(&cfg.Storage,
		storage.WithLogger(log),
		storage.WithPresignExpiration(cfg.Storage.PresignExpiration),
	)
	if err != nil {
		log.Fatal("Failed to initialize object storage", zap.Error(err))
	}
	if err := s3Storage.EnsureBucket(ctx); err != nil {
		log.Warn("Storage bucket check failed", zap.Error(err))
	}
	return s3Storage
}
