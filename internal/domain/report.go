package domain

import "github.com/shopspring/decimal"

// ============================================================
// Exportable Report
// ============================================================

// ReportKind selects which optional sections a report carries.
// Every kind keeps the fixed section order; a kind only omits.
type ReportKind string

const (
	ReportSummary  ReportKind = "summary"
	ReportDetailed ReportKind = "detailed"
	ReportBudget   ReportKind = "budget"
	ReportGoals    ReportKind = "goals"
)

// ParseReportKind maps a request value onto a report kind.
// The empty string defaults to summary.
func ParseReportKind(s string) (ReportKind, bool) {
	switch ReportKind(s) {
	case ReportSummary, ReportDetailed, ReportBudget, ReportGoals:
		return ReportKind(s), true
	case "":
		return ReportSummary, true
	}
	return "", false
}

// ReportRow is one ordered row of cells inside a section.
// SpanColumns > 0 asks the serializer to merge the first cell
// across that many columns (titles, footers).
type ReportRow struct {
	Cells       []string `json:"cells"`
	IsHeader    bool     `json:"is_header"`
	SpanColumns int      `json:"span_columns,omitempty"`
}

// ReportSection is one titled, ordered block of rows.
type ReportSection struct {
	Title string      `json:"title"`
	Rows  []ReportRow `json:"rows"`
}

// ReportDocument is the assembled, serialization-ready report.
// Section order is fixed: Title, Financial Summary, Budget Analysis,
// Transactions, Savings Goals, Footer. Kinds omit sections, never
// reorder them.
type ReportDocument struct {
	Kind     ReportKind      `json:"kind"`
	Sections []ReportSection `json:"sections"`
}

// ReportData is the immutable input snapshot a report is built from.
// HasData false collapses the document to Title and Footer only;
// HasBudget gates the Budget Analysis section; empty slices drop the
// ledger sections.
type ReportData struct {
	PeriodLabel   string
	HasData       bool
	HasBudget     bool
	MonthlyIncome decimal.Decimal
	TotalIncome   decimal.Decimal
	TotalExpense  decimal.Decimal
	NetBalance    decimal.Decimal
	TotalSaved    decimal.Decimal
	Allocation    BudgetAllocation
	Usages        []BucketUsage
	Health        HealthScore
	Transactions  []Transaction
	Goals         []SavingsGoal
}

// ExportArtifact is a serialized report ready to stream to the client.
type ExportArtifact struct {
	Filename    string
	ContentType string
	Data        []byte
}
