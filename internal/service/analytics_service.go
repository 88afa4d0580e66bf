package service

import (
	"context"
	"fmt"
	"time"

	"github.com/yudhapratama/sakubudget-go/internal/domain"
	"github.com/yudhapratama/sakubudget-go/internal/infra/observability"
	"github.com/yudhapratama/sakubudget-go/internal/port"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var analyticsTracer = otel.Tracer("service/analytics")

// historyFetchSize is the page size used when an aggregation needs the
// full period ledger rather than one display page.
const historyFetchSize = 500

// AnalyticsService orchestrates budget and spending analytics over the
// coerced backend snapshots.
type AnalyticsService struct {
	store   port.BackendStore
	cache   port.Cache[*domain.DashboardSnapshot]
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewAnalyticsService creates a new analytics service.
func NewAnalyticsService(store port.BackendStore, cache port.Cache[*domain.DashboardSnapshot], metrics *observability.Metrics, logger *zap.Logger) *AnalyticsService {
	return &AnalyticsService{store: store, cache: cache, metrics: metrics, logger: logger}
}

// BudgetOverview returns the 50/30/20 budget state for one period.
// A backend with no data for the user yields HasData=false, never an
// error.
func (s *AnalyticsService) BudgetOverview(ctx context.Context, userID, period string) (*domain.BudgetOverview, error) {
	ctx, span := analyticsTracer.Start(ctx, "AnalyticsService.BudgetOverview")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", userID))

	start := time.Now()
	defer func() { s.metrics.RecordRequestDuration("budget_overview", time.Since(start)) }()

	if userID == "" {
		return nil, &domain.ErrValidation{Field: "user_id", Message: "required"}
	}

	snap, err := s.fetchDashboard(ctx, userID, period)
	if err != nil {
		return nil, err
	}
	if snap == nil {
		s.logger.Info("no dashboard data for user",
			zap.String("user_id", userID),
			zap.String("period", period),
		)
		return &domain.BudgetOverview{PeriodLabel: period}, nil
	}

	overview := OverviewFromSnapshot(snap)
	return &overview, nil
}

// CategoryBreakdown aggregates the period's transactions of one type
// per category. Percentages are computed over the full aggregation;
// limit only truncates the returned slice afterwards, so truncation
// never changes any category's share. limit <= 0 returns everything.
func (s *AnalyticsService) CategoryBreakdown(ctx context.Context, userID string, filter domain.TransactionType, limit int) ([]domain.CategoryBreakdown, error) {
	ctx, span := analyticsTracer.Start(ctx, "AnalyticsService.CategoryBreakdown")
	defer span.End()

	start := time.Now()
	defer func() { s.metrics.RecordRequestDuration("category_breakdown", time.Since(start)) }()

	if userID == "" {
		return nil, &domain.ErrValidation{Field: "user_id", Message: "required"}
	}

	history, err := s.store.FetchHistory(ctx, userID, 1, historyFetchSize)
	if err != nil {
		return nil, err
	}
	if history == nil {
		return []domain.CategoryBreakdown{}, nil
	}

	breakdown := AggregateByCategory(history.Transactions, filter)
	if limit > 0 && len(breakdown) > limit {
		breakdown = breakdown[:limit]
	}
	return breakdown, nil
}

// SpendingTrend returns the period series at one granularity plus the
// latest-vs-previous comparison over one metric. When the backend has
// no precomputed series the ledger is bucketed locally; fewer than two
// periods surfaces as the explicit insufficient-data result.
func (s *AnalyticsService) SpendingTrend(ctx context.Context, userID string, metric domain.TrendMetric, granularity domain.PeriodGranularity) (*domain.SpendingTrend, error) {
	ctx, span := analyticsTracer.Start(ctx, "AnalyticsService.SpendingTrend")
	defer span.End()

	start := time.Now()
	defer func() { s.metrics.RecordRequestDuration("spending_trend", time.Since(start)) }()

	if userID == "" {
		return nil, &domain.ErrValidation{Field: "user_id", Message: "required"}
	}

	series, err := s.store.FetchAnalytics(ctx, userID, granularity)
	if err != nil {
		return nil, err
	}
	if len(series) == 0 {
		history, err := s.store.FetchHistory(ctx, userID, 1, historyFetchSize)
		if err != nil {
			return nil, err
		}
		if history != nil {
			series = PeriodSeries(history.Transactions, granularity)
		}
	}

	return &domain.SpendingTrend{
		Granularity: granularity,
		Series:      series,
		Trend:       ComputeTrend(series, metric),
	}, nil
}

// History returns one page of the user's transaction and goal ledger.
func (s *AnalyticsService) History(ctx context.Context, userID string, page, pageSize int) (*domain.History, error) {
	ctx, span := analyticsTracer.Start(ctx, "AnalyticsService.History")
	defer span.End()

	if userID == "" {
		return nil, &domain.ErrValidation{Field: "user_id", Message: "required"}
	}

	history, err := s.store.FetchHistory(ctx, userID, page, pageSize)
	if err != nil {
		return nil, err
	}
	if history == nil {
		return &domain.History{
			Transactions: []domain.Transaction{},
			Goals:        []domain.SavingsGoal{},
			CurrentPage:  page,
		}, nil
	}
	return history, nil
}

func (s *AnalyticsService) fetchDashboard(ctx context.Context, userID, period string) (*domain.DashboardSnapshot, error) {
	key := fmt.Sprintf("dashboard:%s:%s", userID, period)
	if snap, ok := s.cache.Get(key); ok {
		s.metrics.IncrCacheHit("dashboard")
		return snap, nil
	}
	s.metrics.IncrCacheMiss("dashboard")

	snap, err := s.store.FetchDashboard(ctx, userID, period)
	if err != nil {
		return nil, err
	}
	if snap != nil {
		s.cache.Set(key, snap)
	}
	return snap, nil
}
