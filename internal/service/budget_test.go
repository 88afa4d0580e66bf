package service_test

import (
	"testing"

	"github.com/yudhapratama/sakubudget-go/internal/domain"
	"github.com/yudhapratama/sakubudget-go/internal/service"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestAllocate_SplitsFiftyThirtyTwenty(t *testing.T) {
	alloc := service.Allocate(dec("2000000"))

	if !alloc.NeedsTarget.Equal(dec("1000000")) {
		t.Errorf("expected needs 1000000, got %s", alloc.NeedsTarget)
	}
	if !alloc.WantsTarget.Equal(dec("600000")) {
		t.Errorf("expected wants 600000, got %s", alloc.WantsTarget)
	}
	if !alloc.SavingsTarget.Equal(dec("400000")) {
		t.Errorf("expected savings 400000, got %s", alloc.SavingsTarget)
	}
}

func TestAllocate_TargetsAlwaysSumToIncome(t *testing.T) {
	incomes := []string{"2000000", "100.01", "0.07", "3333333.33", "1", "999999.99"}
	for _, s := range incomes {
		income := dec(s)
		alloc := service.Allocate(income)

		sum := alloc.NeedsTarget.Add(alloc.WantsTarget).Add(alloc.SavingsTarget)
		if !sum.Equal(income.Round(2)) {
			t.Errorf("income %s: targets sum to %s", s, sum)
		}
	}
}

func TestAllocate_NonPositiveIncome(t *testing.T) {
	for _, s := range []string{"0", "-500"} {
		alloc := service.Allocate(dec(s))
		if !alloc.NeedsTarget.IsZero() || !alloc.WantsTarget.IsZero() || !alloc.SavingsTarget.IsZero() {
			t.Errorf("income %s: expected all-zero targets, got %+v", s, alloc)
		}
	}
}

func TestUsage_UnderBudget(t *testing.T) {
	u := service.Usage(domain.BucketNeeds, dec("1000000"), dec("900000"))

	if !u.Remaining.Equal(dec("100000")) {
		t.Errorf("expected remaining 100000, got %s", u.Remaining)
	}
	if !u.PercentUsed.Equal(dec("90")) {
		t.Errorf("expected percent 90, got %s", u.PercentUsed)
	}
	if u.IsOverBudget() {
		t.Error("expected not over budget")
	}
}

func TestUsage_OverBudgetKeepsRawValues(t *testing.T) {
	u := service.Usage(domain.BucketWants, dec("600000"), dec("700000"))

	if !u.Remaining.Equal(dec("-100000")) {
		t.Errorf("expected remaining -100000, got %s", u.Remaining)
	}
	if !u.PercentUsed.Equal(dec("116.67")) {
		t.Errorf("expected percent 116.67, got %s", u.PercentUsed)
	}
	if !u.IsOverBudget() {
		t.Error("expected over budget")
	}
	if got := u.ProgressFraction(); got != 1 {
		t.Errorf("expected progress fraction clamped to 1, got %f", got)
	}
}

func TestUsage_ZeroTarget(t *testing.T) {
	u := service.Usage(domain.BucketSavings, decimal.Zero, dec("50000"))

	if !u.PercentUsed.IsZero() {
		t.Errorf("expected percent 0 for zero target, got %s", u.PercentUsed)
	}
	if !u.Remaining.Equal(dec("-50000")) {
		t.Errorf("expected remaining -50000, got %s", u.Remaining)
	}
}

func TestOverviewFromSnapshot(t *testing.T) {
	snap := &domain.DashboardSnapshot{
		PeriodLabel:   "June 2025",
		MonthlyIncome: dec("2000000"),
		TotalIncome:   dec("2100000"),
		TotalExpense:  dec("1900000"),
		TotalSaved:    dec("300000"),
		Spending: domain.BucketTotals{
			Needs:       dec("900000"),
			Wants:       dec("700000"),
			Savings:     dec("300000"),
			Unallocated: dec("50000"),
		},
	}

	overview := service.OverviewFromSnapshot(snap)

	if !overview.HasData {
		t.Fatal("expected HasData")
	}
	if !overview.NetBalance.Equal(dec("200000")) {
		t.Errorf("expected net 200000, got %s", overview.NetBalance)
	}
	if len(overview.Usages) != 3 {
		t.Fatalf("expected 3 usages, got %d", len(overview.Usages))
	}
	order := []domain.Bucket{domain.BucketNeeds, domain.BucketWants, domain.BucketSavings}
	for i, want := range order {
		if overview.Usages[i].Bucket != want {
			t.Errorf("usage[%d]: expected bucket %s, got %s", i, want, overview.Usages[i].Bucket)
		}
	}
	if !overview.Usages[1].PercentUsed.Equal(dec("116.67")) {
		t.Errorf("expected wants percent 116.67, got %s", overview.Usages[1].PercentUsed)
	}
	if !overview.Unallocated.Equal(dec("50000")) {
		t.Errorf("expected unallocated 50000, got %s", overview.Unallocated)
	}
}

func TestOverviewFromSnapshot_Nil(t *testing.T) {
	overview := service.OverviewFromSnapshot(nil)
	if overview.HasData {
		t.Error("expected HasData false for nil snapshot")
	}
}
