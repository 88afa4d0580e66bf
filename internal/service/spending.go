package service

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/yudhapratama/sakubudget-go/internal/domain"

	"github.com/shopspring/decimal"
)

// categoryPalette cycles through chart colors by rank. Assigning by
// rank keeps colors stable for a given aggregation result.
var categoryPalette = []string{
	"#A29BFE", "#74B9FF", "#81ECEC", "#FFEAA7", "#FAB1A0",
	"#55EFC4", "#FD79A8", "#E17055", "#00CEC9", "#DFE6E9",
}

// AggregateByCategory sums transactions of one type per category and
// computes each category's share of the filtered total. The result is
// ordered by amount descending, ties broken by category name ascending
// (case-insensitive), so equal inputs always produce equal output.
func AggregateByCategory(txns []domain.Transaction, filter domain.TransactionType) []domain.CategoryBreakdown {
	totals := make(map[string]decimal.Decimal)
	grand := decimal.Zero
	for _, tx := range txns {
		if tx.Type != filter {
			continue
		}
		totals[tx.Category] = totals[tx.Category].Add(tx.Amount)
		grand = grand.Add(tx.Amount)
	}

	out := make([]domain.CategoryBreakdown, 0, len(totals))
	for category, amount := range totals {
		pct := decimal.Zero
		if grand.IsPositive() {
			pct = amount.Div(grand).Mul(hundred).Round(2)
		}
		out = append(out, domain.CategoryBreakdown{
			Category:          category,
			Amount:            amount,
			PercentageOfTotal: pct,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].Amount.Equal(out[j].Amount) {
			return out[i].Amount.GreaterThan(out[j].Amount)
		}
		return strings.ToLower(out[i].Category) < strings.ToLower(out[j].Category)
	})
	for i := range out {
		out[i].Color = categoryPalette[i%len(categoryPalette)]
	}
	return out
}

// BucketByBudgetType sums expense transactions into their 50/30/20
// buckets. Expenses without a bucket land in Unallocated, so the four
// sums together always equal total expense. Income is ignored.
func BucketByBudgetType(txns []domain.Transaction) domain.BucketTotals {
	var totals domain.BucketTotals
	for _, tx := range txns {
		if tx.Type != domain.TransactionExpense {
			continue
		}
		switch tx.Bucket {
		case domain.BucketNeeds:
			totals.Needs = totals.Needs.Add(tx.Amount)
		case domain.BucketWants:
			totals.Wants = totals.Wants.Add(tx.Amount)
		case domain.BucketSavings:
			totals.Savings = totals.Savings.Add(tx.Amount)
		default:
			totals.Unallocated = totals.Unallocated.Add(tx.Amount)
		}
	}
	return totals
}

// PeriodSeries groups transactions into calendar periods and sums
// income and expense per period. Keys are lexicographically sortable
// so the returned series is in ascending period order. Periods with no
// transactions simply do not appear.
func PeriodSeries(txns []domain.Transaction, granularity domain.PeriodGranularity) []domain.PeriodBucket {
	byPeriod := make(map[string]*domain.PeriodBucket)
	for _, tx := range txns {
		key := periodKey(tx.OccurredAt, granularity)
		bucket, ok := byPeriod[key]
		if !ok {
			bucket = &domain.PeriodBucket{Period: key}
			byPeriod[key] = bucket
		}
		switch tx.Type {
		case domain.TransactionIncome:
			bucket.Income = bucket.Income.Add(tx.Amount)
		case domain.TransactionExpense:
			bucket.Expense = bucket.Expense.Add(tx.Amount)
		}
	}

	keys := make([]string, 0, len(byPeriod))
	for k := range byPeriod {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	series := make([]domain.PeriodBucket, 0, len(keys))
	for _, k := range keys {
		b := byPeriod[k]
		b.Net = b.Income.Sub(b.Expense)
		series = append(series, *b)
	}
	return series
}

func periodKey(t time.Time, granularity domain.PeriodGranularity) string {
	switch granularity {
	case domain.GranularityDay:
		return t.Format("2006-01-02")
	case domain.GranularityWeek:
		year, week := t.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	default:
		return t.Format("2006-01")
	}
}
