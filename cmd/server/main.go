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
	"go.uber.org/zap"

	"github.com/shoprank/backend/internal/infrastructure/config"
	"github.com/shoprank/backend/internal/infrastructure/ecommerce"
	"github.com/shoprank/backend/internal/infrastructure/logger"
	"github.com/shoprank/backend/internal/infrastructure/telemetry"
	"github.com/shoprank/backend/internal/interfaces/http/handler"
	"github.com/shoprank/backend/internal/interfaces/http/middleware"
	"github.com/shoprank/backend/internal/interfaces/http/router"
)

// instrumentationName scopes the meters created by this binary
const instrumentationName = "github.com/shoprank/backend"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting ranking API",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", cfg.App.Version),
	)

	ctx := context.Background()

	// Telemetry providers; disabled providers fall back to the global no-op
	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    cfg.App.Version,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.MetricsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ExportInterval:    cfg.Telemetry.MetricsExportInterval,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    cfg.App.Version,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}

	meter := meterProvider.Meter(instrumentationName)
	upstreamMetrics, err := telemetry.NewUpstreamMetrics(meter)
	if err != nil {
		log.Warn("Upstream metrics disabled", zap.Error(err))
	}

	// Marketplace adapters read credentials on every call
	credentials := config.NewEnvCredentials()
	if current := credentials.Current(); !current.HasCoupang() || !current.HasNaver() {
		log.Warn("Marketplace credentials incomplete",
			zap.Bool("coupang", current.HasCoupang()),
			zap.Bool("naver", current.HasNaver()),
		)
	}

	httpClient := ecommerce.NewHTTPClient(time.Duration(cfg.Upstream.TimeoutSeconds) * time.Second)
	adapterOpts := []ecommerce.AdapterOption{
		ecommerce.WithHTTPClient(httpClient),
		ecommerce.WithLogger(log),
		ecommerce.WithCallRecorder(upstreamMetrics),
	}
	coupang := ecommerce.NewCoupangAdapter(coupangConfigProvider(credentials, cfg.Upstream), adapterOpts...)
	naver := ecommerce.NewNaverAdapter(naverConfigProvider(credentials, cfg.Upstream), adapterOpts...)

	// Handlers
	rankingHandler := handler.NewRankingHandler(coupang, naver, upstreamMetrics)
	systemHandler := handler.NewSystemHandler(cfg.App.Name, cfg.App.Version, platformStatus(credentials))

	// Set Gin mode based on environment
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. CORS - Handle cross-origin requests and preflights
	// 5. Tracing - Server span per request, tagged with request_id
	// 6. Metrics - Request count, latency and size
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	cors := middleware.DefaultCORSConfig()
	cors.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	cors.AllowMethods = cfg.HTTP.CORSAllowMethods
	cors.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	engine.Use(middleware.CORSWithConfig(cors))
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     tracerProvider.IsEnabled(),
	}))
	engine.Use(middleware.TracingAttributeInjector())
	engine.Use(middleware.SpanErrorMarker())
	engine.Use(middleware.HTTPMetricsWithMeter(meter, meterProvider.IsEnabled()))

	router.NewRouter(engine).
		Register(rankingHandler.Routes()...).
		Register(systemHandler.Routes()...).
		Setup()

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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := meterProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Meter provider shutdown failed", zap.Error(err))
	}
	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Tracer provider shutdown failed", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
