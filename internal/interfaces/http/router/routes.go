package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/marketrent/backend/internal/domain/shared"
	"github.com/marketrent/backend/internal/infrastructure/config"
	"github.com/marketrent/backend/internal/infrastructure/logger"
	"github.com/marketrent/backend/internal/infrastructure/telemetry"
	"github.com/marketrent/backend/internal/interfaces/http/handler"
	"github.com/marketrent/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// Handlers groups the HTTP handlers mounted by NewEngine
type Handlers struct {
	System    *handler.SystemHandler
	Space     *handler.SpaceHandler
	Tenant    *handler.TenantHandler
	Contract  *handler.ContractHandler
	Payment   *handler.PaymentHandler
	Expense   *handler.ExpenseHandler
	Dashboard *handler.DashboardHandler
	Upload    *handler.UploadHandler
}

// EngineConfig holds everything the HTTP engine needs besides its handlers
type EngineConfig struct {
	Logger      *zap.Logger
	HTTP        config.HTTPConfig
	ServiceName string

	Tokens middleware.TokenValidator

	// IdempotencyStore guards payment recording and applying; nil disables the check
	IdempotencyStore shared.IdempotencyStore
	IdempotencyTTL   time.Duration

	// RateLimiter throttles API requests per user or client IP; nil disables it
	RateLimiter *middleware.RateLimiter

	TracingEnabled   bool
	MeterProvider    *telemetry.MeterProvider
	ProfilingEnabled bool
}

// NewEngine builds the gin engine with the full middleware chain,
// the public health probe and the authenticated /api/v1 resources
func NewEngine(cfg EngineConfig, h Handlers) *gin.Engine {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Warn("Invalid trusted proxies, trusting none", zap.Error(err))
		_ = engine.SetTrustedProxies(nil)
	}

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}

	engine.Use(
		logger.Recovery(log),
		middleware.RequestID(),
		logger.GinMiddleware(log),
		middleware.TracingWithConfig(middleware.TracingConfig{
			ServiceName: cfg.ServiceName,
			Enabled:     cfg.TracingEnabled,
		}),
		middleware.SpanErrorMarker(),
		middleware.HTTPMetrics(middleware.HTTPMetricsConfig{
			MeterProvider: cfg.MeterProvider,
			Enabled:       cfg.MeterProvider != nil,
		}),
		middleware.CORSWithConfig(corsConfig),
		middleware.Secure(),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
	)

	if h.System != nil {
		engine.GET("/health", h.System.Health)
	}

	r := NewRouter(engine, WithAPIVersion("v1"))
	r.Use(
		middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
			Validator: cfg.Tokens,
			Logger:    log,
		}),
		middleware.TracingAttributeInjector(),
		middleware.ProfilingWithConfig(middleware.ProfilingConfig{
			Enabled:   cfg.ProfilingEnabled,
			SkipPaths: []string{"/health"},
		}),
	)
	if cfg.RateLimiter != nil {
		r.Use(middleware.RateLimit(cfg.RateLimiter))
	}

	r.Register(apiGroups(cfg, h)...)
	r.Setup()

	return engine
}

// apiGroups declares the resource routes. Every authenticated role may read;
// space, tenant and contract writes are reserved for the owner.
func apiGroups(cfg EngineConfig, h Handlers) []RouteRegistrar {
	owner := middleware.RequireOwner()
	var groups []RouteRegistrar

	if h.Space != nil {
		spaces := NewDomainGroup("spaces", "/spaces")
		spaces.GET("", h.Space.List)
		spaces.GET("/:id", h.Space.GetByID)
		spaces.POST("", owner, h.Space.Create)
		spaces.PUT("/:id", owner, h.Space.Update)
		spaces.DELETE("/:id", owner, h.Space.Delete)
		groups = append(groups, spaces)
	}

	if h.Tenant != nil {
		tenants := NewDomainGroup("tenants", "/tenants")
		tenants.GET("", h.Tenant.List)
		tenants.GET("/:id", h.Tenant.GetByID)
		tenants.POST("", owner, h.Tenant.Create)
		tenants.POST("/with-contract", owner, h.Tenant.CreateWithContract)
		tenants.PUT("/:id", owner, h.Tenant.Update)
		tenants.DELETE("/:id", owner, h.Tenant.Delete)
		groups = append(groups, tenants)
	}

	if h.Contract != nil {
		contracts := NewDomainGroup("contracts", "/contracts")
		contracts.GET("", h.Contract.List)
		contracts.GET("/:id", h.Contract.GetByID)
		contracts.POST("", owner, h.Contract.Create)
		contracts.PUT("/:id", owner, h.Contract.Update)
		contracts.POST("/:id/terminate", owner, h.Contract.Terminate)
		contracts.DELETE("/:id", owner, h.Contract.Delete)
		groups = append(groups, contracts)
	}

	if h.Payment != nil {
		idempotent := middleware.Idempotency(middleware.IdempotencyConfig{
			Store:  cfg.IdempotencyStore,
			TTL:    cfg.IdempotencyTTL,
			Logger: cfg.Logger,
		})
		payments := NewDomainGroup("payments", "/payments")
		payments.GET("", h.Payment.List)
		payments.GET("/:id", h.Payment.GetByID)
		payments.POST("", idempotent, h.Payment.Record)
		payments.POST("/:id/apply", idempotent, h.Payment.Apply)
		payments.DELETE("/:id", owner, h.Payment.Delete)
		groups = append(groups, payments)
	}

	if h.Expense != nil {
		expenses := NewDomainGroup("expenses", "/expenses")
		expenses.GET("", h.Expense.List)
		expenses.GET("/summary", h.Expense.Summary)
		expenses.GET("/:id", h.Expense.GetByID)
		expenses.POST("", h.Expense.Create)
		expenses.PUT("/:id", h.Expense.Update)
		expenses.DELETE("/:id", h.Expense.Delete)
		groups = append(groups, expenses)
	}

	if h.Dashboard != nil {
		dashboard := NewDomainGroup("dashboard", "/dashboard")
		dashboard.GET("/summary", h.Dashboard.Summary)
		groups = append(groups, dashboard)
	}

	if h.Upload != nil {
		uploads := NewDomainGroup("uploads", "/uploads")
		uploads.POST("/contract-documents", owner, h.Upload.ContractDocument)
		uploads.POST("/space-photos", owner, h.Upload.SpacePhoto)
		groups = append(groups, uploads)
	}

	return groups
}
