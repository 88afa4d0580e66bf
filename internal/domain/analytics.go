package domain

import "github.com/shopspring/decimal"

// ============================================================
// Spending Analytics
// ============================================================

// CategoryBreakdown is one category's share of the filtered total.
// Lists of these are always ordered by amount descending, ties broken
// by category name ascending (case-insensitive).
type CategoryBreakdown struct {
	Category          string          `json:"category"`
	Amount            decimal.Decimal `json:"amount"`
	PercentageOfTotal decimal.Decimal `json:"percentage_of_total"`
	Color             string          `json:"color"`
}

// PeriodGranularity selects the calendar bucketing for trend series.
type PeriodGranularity string

const (
	GranularityDay   PeriodGranularity = "day"
	GranularityWeek  PeriodGranularity = "week"
	GranularityMonth PeriodGranularity = "month"
)

// ParseGranularity maps a query-string value onto a granularity.
// The empty string defaults to monthly.
func ParseGranularity(s string) (PeriodGranularity, bool) {
	switch PeriodGranularity(s) {
	case GranularityDay, GranularityWeek, GranularityMonth:
		return PeriodGranularity(s), true
	case "":
		return GranularityMonth, true
	}
	return "", false
}

// PeriodBucket is one calendar period's income/expense totals.
// Period keys are lexicographically sortable (2006-01-02 / 2006-W02 / 2006-01).
type PeriodBucket struct {
	Period  string          `json:"period"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
}

// ============================================================
// Trend
// ============================================================

// TrendMetric names the series a trend is computed over.
type TrendMetric string

const (
	MetricIncome  TrendMetric = "income"
	MetricExpense TrendMetric = "expense"
	MetricNet     TrendMetric = "net"
)

// ParseTrendMetric maps a query-string value onto a trend metric.
// The empty string defaults to expense, the metric users watch most.
func ParseTrendMetric(s string) (TrendMetric, bool) {
	switch TrendMetric(s) {
	case MetricIncome, MetricExpense, MetricNet:
		return TrendMetric(s), true
	case "":
		return MetricExpense, true
	}
	return "", false
}

// TrendResult compares the latest two period entries of one metric.
// HasSufficientData is false when fewer than two periods exist; the
// numeric fields are zero in that case and must not be interpreted.
type TrendResult struct {
	Metric            TrendMetric     `json:"metric"`
	HasSufficientData bool            `json:"has_sufficient_data"`
	LatestValue       decimal.Decimal `json:"latest_value"`
	PreviousValue     decimal.Decimal `json:"previous_value"`
	DeltaAmount       decimal.Decimal `json:"delta_amount"`
	DeltaPercentage   decimal.Decimal `json:"delta_percentage"`
	IsImproving       bool            `json:"is_improving"`
}

// SpendingTrend is the trend endpoint's payload: the full period series
// plus the latest-vs-previous comparison over one metric.
type SpendingTrend struct {
	Granularity PeriodGranularity `json:"granularity"`
	Series      []PeriodBucket    `json:"series"`
	Trend       TrendResult       `json:"trend"`
}

// ============================================================
// Financial Health
// ============================================================

// HealthLevel is the qualitative tier of a health score.
type HealthLevel string

const (
	HealthExcellent        HealthLevel = "excellent"
	HealthGood             HealthLevel = "good"
	HealthFair             HealthLevel = "fair"
	HealthNeedsImprovement HealthLevel = "needs_improvement"
)

// Demoted returns the level one tier lower, flooring at NeedsImprovement.
func (l HealthLevel) Demoted() HealthLevel {
	switch l {
	case HealthExcellent:
		return HealthGood
	case HealthGood:
		return HealthFair
	default:
		return HealthNeedsImprovement
	}
}

// HealthScore is the 0-100 composite budget-adherence indicator.
type HealthScore struct {
	Score       float64         `json:"score"`
	Level       HealthLevel     `json:"level"`
	SavingsRate decimal.Decimal `json:"savings_rate"`
	NetBalance  decimal.Decimal `json:"net_balance"`
}

// EngineMetrics is the operational snapshot served by the engine
// metrics endpoint, read back from the Prometheus registry.
type EngineMetrics struct {
	TotalRequests    int64   `json:"total_requests"`
	ErrorRate        float64 `json:"error_rate"`
	CacheHitRate     float64 `json:"cache_hit_rate"`
	ReportsGenerated int64   `json:"reports_generated"`
	BackendErrors    int64   `json:"backend_errors"`
	Period           string  `json:"period"`
}
