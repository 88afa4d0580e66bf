package service

import (
	"github.com/yudhapratama/sakubudget-go/internal/domain"

	"github.com/shopspring/decimal"
)

var (
	excellentRate = decimal.NewFromInt(20)
	goodRate      = decimal.NewFromInt(10)
)

// ComputeTrend compares the latest two entries of a period series over
// one metric. Fewer than two periods yields the explicit
// insufficient-data result instead of fabricated zero deltas.
//
// Improvement is direction-aware: expenses improve when they fall,
// income and net improve when they rise. An unchanged value is never
// an improvement. The percentage delta divides by the absolute
// previous value and is zero when the previous value is zero.
func ComputeTrend(series []domain.PeriodBucket, metric domain.TrendMetric) domain.TrendResult {
	if len(series) < 2 {
		return domain.TrendResult{Metric: metric}
	}

	latest := metricValue(series[len(series)-1], metric)
	previous := metricValue(series[len(series)-2], metric)
	delta := latest.Sub(previous)

	deltaPct := decimal.Zero
	if !previous.IsZero() {
		deltaPct = delta.Div(previous.Abs()).Mul(hundred).Round(2)
	}

	improving := delta.IsPositive()
	if metric == domain.MetricExpense {
		improving = delta.IsNegative()
	}

	return domain.TrendResult{
		Metric:            metric,
		HasSufficientData: true,
		LatestValue:       latest,
		PreviousValue:     previous,
		DeltaAmount:       delta,
		DeltaPercentage:   deltaPct,
		IsImproving:       improving,
	}
}

func metricValue(b domain.PeriodBucket, metric domain.TrendMetric) decimal.Decimal {
	switch metric {
	case domain.MetricIncome:
		return b.Income
	case domain.MetricExpense:
		return b.Expense
	default:
		return b.Net
	}
}

// ComputeHealthScore condenses a period's budget adherence into a
// 0-100 score and a qualitative level.
//
// The score starts at 50 plus the savings rate (net balance as a
// percent of monthly income), clamped to [0,100], then loses half of
// the worst bucket's overuse percentage (itself capped at 100), and is
// clamped again. A higher savings rate never lowers the score and a
// deeper overspend never raises it.
//
// The level is banded on the savings rate (>=20 excellent, >=10 good,
// >=0 fair, else needs_improvement) and demoted one tier when any
// bucket runs over budget.
func ComputeHealthScore(usages []domain.BucketUsage, netBalance, monthlyIncome decimal.Decimal) domain.HealthScore {
	savingsRate := decimal.Zero
	if monthlyIncome.IsPositive() {
		savingsRate = netBalance.Div(monthlyIncome).Mul(hundred).Round(2)
	}

	maxOveruse := decimal.Zero
	for _, u := range usages {
		over := u.PercentUsed.Sub(hundred)
		if over.GreaterThan(maxOveruse) {
			maxOveruse = over
		}
	}

	level := domain.HealthNeedsImprovement
	switch {
	case savingsRate.GreaterThanOrEqual(excellentRate):
		level = domain.HealthExcellent
	case savingsRate.GreaterThanOrEqual(goodRate):
		level = domain.HealthGood
	case savingsRate.GreaterThanOrEqual(decimal.Zero):
		level = domain.HealthFair
	}
	if maxOveruse.IsPositive() {
		level = level.Demoted()
	}

	rate, _ := savingsRate.Float64()
	score := clampScore(50 + rate)

	overuse, _ := maxOveruse.Float64()
	if overuse > 100 {
		overuse = 100
	}
	score = clampScore(score - overuse/2)

	return domain.HealthScore{
		Score:       score,
		Level:       level,
		SavingsRate: savingsRate,
		NetBalance:  netBalance,
	}
}

func clampScore(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}
