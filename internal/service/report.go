package service

import (
	"strings"

	"github.com/yudhapratama/sakubudget-go/internal/domain"

	"github.com/shopspring/decimal"
)

const reportTitle = "SakuBudget Financial Report"

var bucketLabels = map[domain.Bucket]string{
	domain.BucketNeeds:   "Needs",
	domain.BucketWants:   "Wants",
	domain.BucketSavings: "Savings",
}

var kindLabels = map[domain.ReportKind]string{
	domain.ReportSummary:  "Summary",
	domain.ReportDetailed: "Detailed",
	domain.ReportBudget:   "Budget Analysis",
	domain.ReportGoals:    "Savings Goals",
}

// BuildReport assembles the serialization-ready document for one report
// kind from an immutable data snapshot. Section order is fixed; a kind
// only selects which optional sections appear. Building twice from the
// same input yields an identical document, so nothing here reads the
// clock or any other ambient state.
//
// Every kind carries Title, Financial Summary and Footer. Detailed adds
// Transactions, Budget adds Budget Analysis, Goals adds Savings Goals.
// A snapshot without data collapses to Title and Footer; empty ledgers
// drop their sections rather than emitting empty tables.
func BuildReport(kind domain.ReportKind, data domain.ReportData) *domain.ReportDocument {
	doc := &domain.ReportDocument{Kind: kind}
	doc.Sections = append(doc.Sections, titleSection(kind, data))

	if data.HasData {
		doc.Sections = append(doc.Sections, summarySection(data))

		if kind == domain.ReportBudget && data.HasBudget {
			doc.Sections = append(doc.Sections, budgetSection(data))
		}
		if kind == domain.ReportDetailed && len(data.Transactions) > 0 {
			doc.Sections = append(doc.Sections, transactionsSection(data.Transactions))
		}
		if kind == domain.ReportGoals && len(data.Goals) > 0 {
			doc.Sections = append(doc.Sections, goalsSection(data.Goals))
		}
	}

	doc.Sections = append(doc.Sections, footerSection())
	return doc
}

func titleSection(kind domain.ReportKind, data domain.ReportData) domain.ReportSection {
	label := kindLabels[kind]
	if label == "" {
		label = string(kind)
	}
	return domain.ReportSection{
		Title: "Title",
		Rows: []domain.ReportRow{
			{Cells: []string{reportTitle}, IsHeader: true, SpanColumns: 6},
			{Cells: []string{"Period: " + data.PeriodLabel}, SpanColumns: 6},
			{Cells: []string{"Report Type: " + label}, SpanColumns: 6},
		},
	}
}

func summarySection(data domain.ReportData) domain.ReportSection {
	return domain.ReportSection{
		Title: "Financial Summary",
		Rows: []domain.ReportRow{
			summaryRow("Total Income", data.TotalIncome),
			summaryRow("Total Expense", data.TotalExpense),
			summaryRow("Net Balance", data.NetBalance),
			summaryRow("Total Real Savings", data.TotalSaved),
		},
	}
}

func summaryRow(label string, amount decimal.Decimal) domain.ReportRow {
	return domain.ReportRow{Cells: []string{label, amount.String(), FormatIDR(amount)}}
}

func budgetSection(data domain.ReportData) domain.ReportSection {
	rows := []domain.ReportRow{
		{
			Cells: []string{
				"Base Income", FormatIDR(data.MonthlyIncome),
				"Budget Health", string(data.Health.Level),
			},
			IsHeader: true,
		},
	}
	for _, u := range data.Usages {
		rows = append(rows, domain.ReportRow{Cells: []string{
			bucketLabels[u.Bucket],
			FormatIDR(u.Spent),
			FormatIDR(u.Target),
			FormatIDR(u.Remaining),
			u.PercentUsed.StringFixed(2) + "%",
		}})
	}
	return domain.ReportSection{Title: "Budget Analysis", Rows: rows}
}

func transactionsSection(txns []domain.Transaction) domain.ReportSection {
	rows := make([]domain.ReportRow, 0, len(txns)+1)
	rows = append(rows, domain.ReportRow{
		Cells:    []string{"Date", "Type", "Amount", "Category", "Budget Bucket", "Description", "Status"},
		IsHeader: true,
	})
	for _, tx := range txns {
		bucket := string(tx.Bucket)
		if bucket == "" {
			bucket = "-"
		}
		rows = append(rows, domain.ReportRow{Cells: []string{
			tx.OccurredAt.Format("2006-01-02"),
			string(tx.Type),
			FormatIDR(tx.Amount),
			tx.Category,
			bucket,
			tx.Description,
			tx.Status,
		}})
	}
	return domain.ReportSection{Title: "Transactions", Rows: rows}
}

func goalsSection(goals []domain.SavingsGoal) domain.ReportSection {
	rows := make([]domain.ReportRow, 0, len(goals)+1)
	rows = append(rows, domain.ReportRow{
		Cells:    []string{"Goal", "Target", "Current", "Progress", "Target Date", "Status"},
		IsHeader: true,
	})
	for _, g := range goals {
		targetDate := "-"
		if g.TargetDate != nil {
			targetDate = g.TargetDate.Format("2006-01-02")
		}
		rows = append(rows, domain.ReportRow{Cells: []string{
			g.ItemName,
			FormatIDR(g.TargetAmount),
			FormatIDR(g.CurrentAmount),
			g.ProgressPercentage().StringFixed(2) + "%",
			targetDate,
			string(g.Status),
		}})
	}
	return domain.ReportSection{Title: "Savings Goals", Rows: rows}
}

func footerSection() domain.ReportSection {
	return domain.ReportSection{
		Title: "Footer",
		Rows: []domain.ReportRow{
			{Cells: []string{"Generated by SakuBudget"}, SpanColumns: 6},
			{Cells: []string{"Based on the 50/30/20 budgeting method"}, SpanColumns: 6},
		},
	}
}

// FormatIDR renders an amount in Indonesian rupiah display form:
// "Rp 1.500.000" with dot thousand separators and a comma decimal
// part when the amount is not whole.
func FormatIDR(amount decimal.Decimal) string {
	rounded := amount.Round(2)
	negative := rounded.IsNegative()
	abs := rounded.Abs()

	intPart := abs.Truncate(0)
	fracPart := abs.Sub(intPart)

	digits := intPart.String()
	var groups []string
	for len(digits) > 3 {
		groups = append([]string{digits[len(digits)-3:]}, groups...)
		digits = digits[:len(digits)-3]
	}
	groups = append([]string{digits}, groups...)

	out := "Rp " + strings.Join(groups, ".")
	if !fracPart.IsZero() {
		frac := fracPart.StringFixed(2)
		out += "," + frac[strings.Index(frac, ".")+1:]
	}
	if negative {
		return "-" + out
	}
	return out
}
