// Package handler exposes the analytics engine over HTTP.
// Routes follow the API contract consumed by the SakuBudget frontend.
package handler

import (
	"net/http"
	"time"

	"github.com/yudhapratama/sakubudget-go/internal/domain"
	"github.com/yudhapratama/sakubudget-go/internal/infra/observability"
	"github.com/yudhapratama/sakubudget-go/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// NewRouter creates the HTTP router with all routes and middleware.
func NewRouter(analyticsSvc *service.AnalyticsService, reportSvc *service.ReportService, tokenSvc *service.TokenService, metrics *observability.Metrics, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// --- Middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.ZapLoggerMiddleware(logger))
	r.Use(observability.TracingMiddleware)
	r.Use(requestCounterMiddleware(metrics))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))

	// --- Operational endpoints ---
	r.Get("/healthz", healthzHandler(analyticsSvc, logger))
	r.Get("/readyz", readyzHandler())
	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	// --- API v1 ---
	r.Route("/v1", func(r chi.Router) {
		r.Get("/metrics/engine", engineMetricsHandler(metrics))

		r.Route("/users/{userId}", func(r chi.Router) {
			r.Get("/budget/overview", budgetOverviewHandler(analyticsSvc, logger))
			r.Get("/spending/categories", categoryBreakdownHandler(analyticsSvc, logger))
			r.Get("/spending/trend", spendingTrendHandler(analyticsSvc, logger))
			r.Get("/history", historyHandler(analyticsSvc, logger))

			// Exports can carry the full ledger, so they require auth.
			r.Group(func(r chi.Router) {
				r.Use(JWTAuthMiddleware(tokenSvc, logger))
				r.Post("/reports/export", exportReportHandler(reportSvc, logger))
			})
		})
	})

	return r
}

// requestCounterMiddleware feeds the engine request counter that the
// metrics snapshot endpoint reads back.
func requestCounterMiddleware(metrics *observability.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			if ww.Status() >= 500 {
				metrics.IncrRequest("error")
			} else {
				metrics.IncrRequest("success")
			}
		})
	}
}

func healthzHandler(analyticsSvc *service.AnalyticsService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		now := time.Now().Format(time.RFC3339)

		services := []domain.ServiceHealth{
			{Name: "sakubudget-engine", Status: "healthy", LatencyMs: 0, LastChecked: now},
		}

		if analyticsSvc != nil {
			start := time.Now()
			_, err := analyticsSvc.History(ctx, "health-check", 1, 1)
			latency := time.Since(start).Milliseconds()
			status := "healthy"
			if err != nil {
				logger.Debug("healthz: backend probe failed", zap.Error(err))
				status = "degraded"
			}
			services = append(services, domain.ServiceHealth{
				Name: "backend-api", Status: status, LatencyMs: latency, LastChecked: now,
			})
		}

		overallStatus := "healthy"
		for _, s := range services {
			if s.Status == "degraded" {
				overallStatus = "degraded"
			}
		}

		writeJSON(w, http.StatusOK, domain.HealthStatus{
			Status:   overallStatus,
			Services: services,
		})
	}
}

func readyzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func engineMetricsHandler(metrics *observability.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, metrics.GetEngineSnapshot())
	}
}
