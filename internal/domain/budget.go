package domain

import "github.com/shopspring/decimal"

// ============================================================
// 50/30/20 Budget
// ============================================================

// BudgetAllocation is the 50/30/20 split of a monthly income.
// Derived, never persisted. The three targets always sum exactly
// to the rounded income.
type BudgetAllocation struct {
	MonthlyIncome decimal.Decimal `json:"monthly_income"`
	NeedsTarget   decimal.Decimal `json:"needs_target"`
	WantsTarget   decimal.Decimal `json:"wants_target"`
	SavingsTarget decimal.Decimal `json:"savings_target"`
}

// TargetFor returns the allocation target for one bucket.
func (a BudgetAllocation) TargetFor(b Bucket) decimal.Decimal {
	switch b {
	case BucketNeeds:
		return a.NeedsTarget
	case BucketWants:
		return a.WantsTarget
	case BucketSavings:
		return a.SavingsTarget
	}
	return decimal.Zero
}

// BucketUsage describes how much of one bucket's target has been spent.
// Remaining goes negative when the bucket is over budget; PercentUsed
// is the raw, unclamped value rounded to two decimal places.
type BucketUsage struct {
	Bucket      Bucket          `json:"bucket"`
	Target      decimal.Decimal `json:"target"`
	Spent       decimal.Decimal `json:"spent"`
	Remaining   decimal.Decimal `json:"remaining"`
	PercentUsed decimal.Decimal `json:"percent_used"`
}

// ProgressFraction returns PercentUsed/100 clamped to [0,1] for
// progress-bar rendering. The stored PercentUsed stays raw.
func (u BucketUsage) ProgressFraction() float64 {
	f, _ := u.PercentUsed.Div(hundred).Float64()
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// IsOverBudget reports whether spending exceeded the bucket target.
func (u BucketUsage) IsOverBudget() bool {
	return u.PercentUsed.GreaterThan(hundred)
}

// BucketTotals are per-bucket expense sums. Unallocated collects
// expense that carries no bucket, so Needs+Wants+Savings+Unallocated
// equals total expense.
type BucketTotals struct {
	Needs       decimal.Decimal `json:"needs"`
	Wants       decimal.Decimal `json:"wants"`
	Savings     decimal.Decimal `json:"savings"`
	Unallocated decimal.Decimal `json:"unallocated"`
}

// For returns the sum for one of the three real buckets.
func (t BucketTotals) For(b Bucket) decimal.Decimal {
	switch b {
	case BucketNeeds:
		return t.Needs
	case BucketWants:
		return t.Wants
	case BucketSavings:
		return t.Savings
	}
	return decimal.Zero
}

// DashboardSnapshot is the coerced form of one backend dashboard
// payload: the monthly income, the period's flow totals, and per-bucket
// expense sums. A nil snapshot means the backend holds no data for the
// user and period at all.
type DashboardSnapshot struct {
	PeriodLabel   string
	MonthlyIncome decimal.Decimal
	TotalIncome   decimal.Decimal
	TotalExpense  decimal.Decimal
	TotalSaved    decimal.Decimal
	Spending      BucketTotals
}

// BudgetOverview is the full budget state for one reporting period.
// HasData is false when the backend holds no dashboard data at all;
// everything else is zero-valued in that case.
type BudgetOverview struct {
	HasData       bool             `json:"has_data"`
	PeriodLabel   string           `json:"period_label"`
	MonthlyIncome decimal.Decimal  `json:"monthly_income"`
	TotalIncome   decimal.Decimal  `json:"total_income"`
	TotalExpense  decimal.Decimal  `json:"total_expense"`
	NetBalance    decimal.Decimal  `json:"net_balance"`
	TotalSaved    decimal.Decimal  `json:"total_saved"`
	Allocation    BudgetAllocation `json:"allocation"`
	Usages        []BucketUsage    `json:"usages"`
	Unallocated   decimal.Decimal  `json:"unallocated"`
	Health        HealthScore      `json:"health"`
}
