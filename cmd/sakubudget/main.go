package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/yudhapratama/sakubudget-go/internal/config"
	"github.com/yudhapratama/sakubudget-go/internal/domain"
	"github.com/yudhapratama/sakubudget-go/internal/handler"
	"github.com/yudhapratama/sakubudget-go/internal/infra/backendapi"
	"github.com/yudhapratama/sakubudget-go/internal/infra/cache"
	"github.com/yudhapratama/sakubudget-go/internal/infra/export"
	"github.com/yudhapratama/sakubudget-go/internal/infra/observability"
	"github.com/yudhapratama/sakubudget-go/internal/infra/resilience"
	"github.com/yudhapratama/sakubudget-go/internal/port"
	"github.com/yudhapratama/sakubudget-go/internal/service"

	"go.uber.org/zap"
)

func main() {
	// --- Load .env file (for local development) ---
	_ = config.LoadDotEnv(".env")

	// --- Config ---
	cfg := config.Load()

	// --- Logger ---
	logger := observability.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	logger.Info("configuration loaded",
		zap.Int("port", cfg.Port),
		zap.String("log_level", cfg.LogLevel),
		zap.String("backend_api_url", cfg.BackendAPIURL),
		zap.Duration("http_timeout", cfg.HTTPTimeout),
		zap.Duration("cache_ttl", cfg.CacheTTL),
		zap.Int("max_retries", cfg.MaxRetries),
		zap.Duration("initial_backoff", cfg.InitialBackoff),
	)

	// --- Tracing ---
	shutdown, err := observability.InitTracer(cfg.OTLPEndpoint, "sakubudget-engine")
	if err != nil {
		logger.Fatal("failed to init tracer", zap.Error(err))
	}
	defer shutdown(context.Background())

	// --- Metrics ---
	metrics := observability.NewMetrics()

	// --- Cache ---
	dashboardCache := cache.New[*domain.DashboardSnapshot](cfg.CacheTTL)

	// --- Resilience ---
	resilienceCfg := resilience.Config{
		MaxRetries:     cfg.MaxRetries,
		InitialBackoff: cfg.InitialBackoff,
		MaxConcurrency: cfg.MaxConcurrency,
	}
	cb := resilience.NewCircuitBreaker("backend-api")

	// --- Backend client ---
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	backend := backendapi.NewClient(httpClient, cfg.BackendAPIURL, cfg.BackendAPIKey, cb, resilienceCfg, metrics, logger)

	// --- Exporters ---
	exporters := []port.ReportExporter{export.NewExcelExporter()}
	pdfExporter, err := export.NewPDFExporter(cfg.PDFFontDir)
	if err != nil {
		logger.Warn("pdf export disabled: fonts unavailable",
			zap.String("font_dir", cfg.PDFFontDir),
			zap.Error(err),
		)
	} else {
		exporters = append(exporters, pdfExporter)
	}

	// --- Services ---
	analyticsSvc := service.NewAnalyticsService(backend, dashboardCache, metrics, logger)
	reportSvc := service.NewReportService(backend, exporters, metrics, logger)
	tokenSvc := service.NewTokenService([]byte(cfg.JWTSecret))

	// --- Router ---
	router := handler.NewRouter(analyticsSvc, reportSvc, tokenSvc, metrics, logger)

	// --- Server ---
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// --- Graceful shutdown ---
	go func() {
		logger.Info("server starting", zap.Int("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}
