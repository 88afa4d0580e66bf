// Package service provides the business logic layer (use cases).
// The pure computation core (allocation, aggregation, trend, health,
// report assembly) lives in plain functions; AnalyticsService and
// ReportService orchestrate them over the backend store.
package service

import (
	"github.com/yudhapratama/sakubudget-go/internal/domain"

	"github.com/shopspring/decimal"
)

var (
	hundred    = decimal.NewFromInt(100)
	needsRatio = decimal.New(5, -1)
	wantsRatio = decimal.New(3, -1)
)

// Allocate splits a monthly income 50/30/20 into needs, wants and
// savings targets. Needs and wants are rounded to two decimal places;
// savings takes the remainder so the three targets always sum exactly
// to the rounded income. Non-positive income yields all-zero targets.
func Allocate(monthlyIncome decimal.Decimal) domain.BudgetAllocation {
	if !monthlyIncome.IsPositive() {
		return domain.BudgetAllocation{
			MonthlyIncome: decimal.Zero,
			NeedsTarget:   decimal.Zero,
			WantsTarget:   decimal.Zero,
			SavingsTarget: decimal.Zero,
		}
	}

	income := monthlyIncome.Round(2)
	needs := income.Mul(needsRatio).Round(2)
	wants := income.Mul(wantsRatio).Round(2)
	savings := income.Sub(needs).Sub(wants)

	return domain.BudgetAllocation{
		MonthlyIncome: income,
		NeedsTarget:   needs,
		WantsTarget:   wants,
		SavingsTarget: savings,
	}
}

// Usage derives bucket consumption from a target and the amount spent.
// Remaining is target minus spent and goes negative on overspend.
// PercentUsed is unclamped, rounded to two decimal places, and zero
// when the target is not positive.
func Usage(bucket domain.Bucket, target, spent decimal.Decimal) domain.BucketUsage {
	percent := decimal.Zero
	if target.IsPositive() {
		percent = spent.Div(target).Mul(hundred).Round(2)
	}
	return domain.BucketUsage{
		Bucket:      bucket,
		Target:      target,
		Spent:       spent,
		Remaining:   target.Sub(spent),
		PercentUsed: percent,
	}
}

// OverviewFromSnapshot turns one coerced dashboard snapshot into the
// full budget overview: allocation, the three bucket usages in fixed
// needs/wants/savings order, and the health score.
func OverviewFromSnapshot(snap *domain.DashboardSnapshot) domain.BudgetOverview {
	if snap == nil {
		return domain.BudgetOverview{}
	}

	alloc := Allocate(snap.MonthlyIncome)
	usages := make([]domain.BucketUsage, 0, len(domain.BudgetBuckets))
	for _, b := range domain.BudgetBuckets {
		usages = append(usages, Usage(b, alloc.TargetFor(b), snap.Spending.For(b)))
	}
	net := snap.TotalIncome.Sub(snap.TotalExpense)

	return domain.BudgetOverview{
		HasData:       true,
		PeriodLabel:   snap.PeriodLabel,
		MonthlyIncome: alloc.MonthlyIncome,
		TotalIncome:   snap.TotalIncome,
		TotalExpense:  snap.TotalExpense,
		NetBalance:    net,
		TotalSaved:    snap.TotalSaved,
		Allocation:    alloc,
		Usages:        usages,
		Unallocated:   snap.Spending.Unallocated,
		Health:        ComputeHealthScore(usages, net, alloc.MonthlyIncome),
	}
}
