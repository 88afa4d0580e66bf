package handler

import (
	"net/http"
	"strconv"

	"github.com/yudhapratama/sakubudget-go/internal/domain"
	"github.com/yudhapratama/sakubudget-go/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ============================================================
// GET /v1/users/{userId}/budget/overview
// ============================================================

func budgetOverviewHandler(svc *service.AnalyticsService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := chi.URLParam(r, "userId")
		period := r.URL.Query().Get("period")

		overview, err := svc.BudgetOverview(r.Context(), userID, period)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, overview)
	}
}

// ============================================================
// GET /v1/users/{userId}/spending/categories
// ============================================================

func categoryBreakdownHandler(svc *service.AnalyticsService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := chi.URLParam(r, "userId")

		filter := domain.TransactionExpense
		switch r.URL.Query().Get("type") {
		case "", string(domain.TransactionExpense):
		case string(domain.TransactionIncome):
			filter = domain.TransactionIncome
		default:
			writeError(w, http.StatusBadRequest, "type must be income or expense")
			return
		}

		limit := 0
		if v := r.URL.Query().Get("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
				return
			}
			limit = n
		}

		breakdown, err := svc.CategoryBreakdown(r.Context(), userID, filter, limit)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"type":       filter,
			"categories": breakdown,
		})
	}
}

// ============================================================
// GET /v1/users/{userId}/spending/trend
// ============================================================

func spendingTrendHandler(svc *service.AnalyticsService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := chi.URLParam(r, "userId")

		metric, ok := domain.ParseTrendMetric(r.URL.Query().Get("metric"))
		if !ok {
			writeError(w, http.StatusBadRequest, "metric must be income, expense or net")
			return
		}
		granularity, ok := domain.ParseGranularity(r.URL.Query().Get("granularity"))
		if !ok {
			writeError(w, http.StatusBadRequest, "granularity must be day, week or month")
			return
		}

		trend, err := svc.SpendingTrend(r.Context(), userID, metric, granularity)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, trend)
	}
}

// ============================================================
// GET /v1/users/{userId}/history
// ============================================================

func historyHandler(svc *service.AnalyticsService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := chi.URLParam(r, "userId")
		page, pageSize := parsePagination(r)

		history, err := svc.History(r.Context(), userID, page, pageSize)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, history)
	}
}
