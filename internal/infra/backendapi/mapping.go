package backendapi

import (
	"time"

	"github.com/yudhapratama/sakubudget-go/internal/coerce"
	"github.com/yudhapratama/sakubudget-go/internal/domain"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Mapping functions are the only place backend payload shapes are
// known. Missing or malformed fields collapse to defaults; a record is
// only dropped when its amount is negative, which the backend contract
// forbids.

func mapDashboard(m map[string]any) *domain.DashboardSnapshot {
	return &domain.DashboardSnapshot{
		PeriodLabel:   coerce.String(m["period_label"], ""),
		MonthlyIncome: moneyField(m, "monthly_income"),
		TotalIncome:   nestedMoney(m, "totals", "income"),
		TotalExpense:  nestedMoney(m, "totals", "expense"),
		TotalSaved:    nestedMoney(m, "totals", "saved"),
		Spending: domain.BucketTotals{
			Needs:       nestedMoney(m, "spending", "needs"),
			Wants:       nestedMoney(m, "spending", "wants"),
			Savings:     nestedMoney(m, "spending", "savings"),
			Unallocated: nestedMoney(m, "spending", "unallocated"),
		},
	}
}

func mapPeriodSeries(m map[string]any) []domain.PeriodBucket {
	raw := coerce.Slice(m["series"], nil)
	series := make([]domain.PeriodBucket, 0, len(raw))
	for _, item := range raw {
		entry := coerce.Map(item, nil)
		if entry == nil {
			continue
		}
		income := moneyField(entry, "income")
		expense := moneyField(entry, "expense")
		series = append(series, domain.PeriodBucket{
			Period:  coerce.String(entry["period"], ""),
			Income:  income,
			Expense: expense,
			Net:     income.Sub(expense),
		})
	}
	return series
}

func (c *Client) mapHistory(m map[string]any) *domain.History {
	rawTxns := coerce.Slice(m["transactions"], nil)
	txns := make([]domain.Transaction, 0, len(rawTxns))
	for _, item := range rawTxns {
		entry := coerce.Map(item, nil)
		if entry == nil {
			continue
		}
		amount := coerce.Decimal(entry["amount"], decimal.Zero)
		if amount.IsNegative() {
			c.logger.Warn("backend: dropping transaction with negative amount",
				zap.String("transaction_id", coerce.String(entry["id"], "")),
			)
			continue
		}
		txns = append(txns, domain.Transaction{
			ID:          coerce.String(entry["id"], ""),
			Type:        transactionType(coerce.String(entry["type"], "")),
			Amount:      amount,
			Category:    coerce.String(entry["category"], "uncategorized"),
			Bucket:      bucket(coerce.String(entry["budget_type"], "")),
			Description: coerce.String(entry["description"], ""),
			OccurredAt:  coerce.Time(entry["date"], time.Time{}),
			Status:      coerce.String(entry["status"], "completed"),
		})
	}

	rawGoals := coerce.Slice(m["savings_goals"], nil)
	goals := make([]domain.SavingsGoal, 0, len(rawGoals))
	for _, item := range rawGoals {
		entry := coerce.Map(item, nil)
		if entry == nil {
			continue
		}
		goals = append(goals, mapGoal(entry))
	}

	return &domain.History{
		Transactions: txns,
		Goals:        goals,
		CurrentPage:  coerce.Int(coerce.Nested(m, []string{"pagination", "current_page"}, nil), 1),
		TotalItems:   coerce.Int(coerce.Nested(m, []string{"pagination", "total_items"}, nil), len(txns)),
	}
}

func mapGoal(entry map[string]any) domain.SavingsGoal {
	goal := domain.SavingsGoal{
		ID:            coerce.String(entry["id"], ""),
		ItemName:      coerce.String(entry["item_name"], "Unknown"),
		TargetAmount:  coerce.Decimal(entry["target_amount"], decimal.Zero),
		CurrentAmount: coerce.Decimal(entry["current_amount"], decimal.Zero),
		Status:        goalStatus(coerce.String(entry["status"], "")),
		IsUrgent:      coerce.Bool(entry["is_urgent"], false),
	}
	if targetDate := coerce.Time(entry["target_date"], time.Time{}); !targetDate.IsZero() {
		goal.TargetDate = &targetDate
	}
	return goal
}

// moneyField coerces one top-level money value, clamping negatives to
// zero. Aggregate fields are non-negative by contract; sign lives on
// the transaction type.
func moneyField(m map[string]any, key string) decimal.Decimal {
	d := coerce.Decimal(m[key], decimal.Zero)
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

func nestedMoney(m map[string]any, path ...string) decimal.Decimal {
	d := coerce.NestedDecimal(m, path, decimal.Zero)
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

func transactionType(s string) domain.TransactionType {
	if s == string(domain.TransactionIncome) {
		return domain.TransactionIncome
	}
	return domain.TransactionExpense
}

func bucket(s string) domain.Bucket {
	switch domain.Bucket(s) {
	case domain.BucketNeeds, domain.BucketWants, domain.BucketSavings:
		return domain.Bucket(s)
	}
	return domain.BucketUnset
}

func goalStatus(s string) domain.GoalStatus {
	if s == string(domain.GoalCompleted) {
		return domain.GoalCompleted
	}
	return domain.GoalActive
}
