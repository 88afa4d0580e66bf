// Package domain defines the data model of the budget analytics engine:
// transactions, savings goals, budget allocations, spending analytics,
// and the exportable report document.
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ============================================================
// Transactions
// ============================================================

// TransactionType distinguishes money coming in from money going out.
type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

// Bucket is the 50/30/20 budget bucket a transaction is assigned to.
// BucketUnset marks transactions the user never classified; they count
// toward total expense but toward none of the three bucket sums.
type Bucket string

const (
	BucketNeeds   Bucket = "needs"
	BucketWants   Bucket = "wants"
	BucketSavings Bucket = "savings"
	BucketUnset   Bucket = ""
)

// BudgetBuckets lists the three real buckets in display order.
var BudgetBuckets = []Bucket{BucketNeeds, BucketWants, BucketSavings}

// Transaction is a single income or expense record as delivered by the
// data backend. Amounts are non-negative; the Type field carries the sign.
// Immutable once fetched.
type Transaction struct {
	ID          string          `json:"id"`
	Type        TransactionType `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Bucket      Bucket          `json:"budget_bucket"`
	Description string          `json:"description"`
	OccurredAt  time.Time       `json:"occurred_at"`
	Status      string          `json:"status"`
}

// ============================================================
// Savings Goals
// ============================================================

// GoalStatus is the lifecycle state of a savings goal.
type GoalStatus string

const (
	GoalActive    GoalStatus = "active"
	GoalCompleted GoalStatus = "completed"
)

// SavingsGoal is a target the user is saving toward.
type SavingsGoal struct {
	ID            string          `json:"id"`
	ItemName      string          `json:"item_name"`
	TargetAmount  decimal.Decimal `json:"target_amount"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	TargetDate    *time.Time      `json:"target_date,omitempty"`
	Status        GoalStatus      `json:"status"`
	IsUrgent      bool            `json:"is_urgent"`
}

// ProgressPercentage returns current/target*100, rounded to two decimal
// places. Zero when the target is not positive. Values above 100 are
// preserved; display clamping is the caller's concern.
func (g SavingsGoal) ProgressPercentage() decimal.Decimal {
	if !g.TargetAmount.IsPositive() {
		return decimal.Zero
	}
	return g.CurrentAmount.Div(g.TargetAmount).Mul(hundred).Round(2)
}

// ============================================================
// History
// ============================================================

// History is one page of the user's transaction and goal ledger,
// with the backend's pagination metadata passed through.
type History struct {
	Transactions []Transaction `json:"transactions"`
	Goals        []SavingsGoal `json:"savings_goals"`
	CurrentPage  int           `json:"current_page"`
	TotalItems   int           `json:"total_items"`
}

var hundred = decimal.NewFromInt(100)
