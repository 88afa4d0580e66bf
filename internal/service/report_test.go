package service_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/yudhapratama/sakubudget-go/internal/domain"
	"github.com/yudhapratama/sakubudget-go/internal/service"
)

func fullReportData() domain.ReportData {
	alloc := service.Allocate(dec("2000000"))
	usages := []domain.BucketUsage{
		service.Usage(domain.BucketNeeds, alloc.NeedsTarget, dec("900000")),
		service.Usage(domain.BucketWants, alloc.WantsTarget, dec("700000")),
		service.Usage(domain.BucketSavings, alloc.SavingsTarget, dec("300000")),
	}
	targetDate := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	return domain.ReportData{
		PeriodLabel:   "June 2025",
		HasData:       true,
		HasBudget:     true,
		MonthlyIncome: dec("2000000"),
		TotalIncome:   dec("2100000"),
		TotalExpense:  dec("1900000"),
		NetBalance:    dec("200000"),
		TotalSaved:    dec("300000"),
		Allocation:    alloc,
		Usages:        usages,
		Health:        service.ComputeHealthScore(usages, dec("200000"), dec("2000000")),
		Transactions: []domain.Transaction{
			{
				ID: "tx-1", Type: domain.TransactionExpense, Amount: dec("150000"),
				Category: "food", Bucket: domain.BucketNeeds, Description: "groceries",
				OccurredAt: time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC), Status: "completed",
			},
		},
		Goals: []domain.SavingsGoal{
			{
				ID: "goal-1", ItemName: "Laptop", TargetAmount: dec("15000000"),
				CurrentAmount: dec("5000000"), TargetDate: &targetDate, Status: domain.GoalActive,
			},
		},
	}
}

func sectionTitles(doc *domain.ReportDocument) []string {
	titles := make([]string, len(doc.Sections))
	for i, s := range doc.Sections {
		titles[i] = s.Title
	}
	return titles
}

func TestBuildReport_SummarySections(t *testing.T) {
	doc := service.BuildReport(domain.ReportSummary, fullReportData())

	want := []string{"Title", "Financial Summary", "Footer"}
	if got := sectionTitles(doc); !reflect.DeepEqual(got, want) {
		t.Errorf("expected sections %v, got %v", want, got)
	}
}

func TestBuildReport_SummaryRowLabels(t *testing.T) {
	doc := service.BuildReport(domain.ReportSummary, fullReportData())

	summary := doc.Sections[1]
	want := []string{"Total Income", "Total Expense", "Net Balance", "Total Real Savings"}
	if len(summary.Rows) != len(want) {
		t.Fatalf("expected %d summary rows, got %d", len(want), len(summary.Rows))
	}
	for i, label := range want {
		if summary.Rows[i].Cells[0] != label {
			t.Errorf("row %d: expected label %q, got %q", i, label, summary.Rows[i].Cells[0])
		}
	}
	if summary.Rows[3].Cells[2] != "Rp 300.000" {
		t.Errorf("expected formatted savings amount, got %q", summary.Rows[3].Cells[2])
	}
}

func TestBuildReport_KindSelectsSections(t *testing.T) {
	data := fullReportData()
	cases := []struct {
		kind domain.ReportKind
		want []string
	}{
		{domain.ReportDetailed, []string{"Title", "Financial Summary", "Transactions", "Footer"}},
		{domain.ReportBudget, []string{"Title", "Financial Summary", "Budget Analysis", "Footer"}},
		{domain.ReportGoals, []string{"Title", "Financial Summary", "Savings Goals", "Footer"}},
	}
	for _, tc := range cases {
		doc := service.BuildReport(tc.kind, data)
		if got := sectionTitles(doc); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("%s: expected %v, got %v", tc.kind, tc.want, got)
		}
	}
}

func TestBuildReport_NoDataCollapsesToTitleAndFooter(t *testing.T) {
	doc := service.BuildReport(domain.ReportDetailed, domain.ReportData{PeriodLabel: "June 2025"})

	want := []string{"Title", "Footer"}
	if got := sectionTitles(doc); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestBuildReport_EmptyLedgerDropsSection(t *testing.T) {
	data := fullReportData()
	data.Transactions = nil
	doc := service.BuildReport(domain.ReportDetailed, data)

	for _, s := range doc.Sections {
		if s.Title == "Transactions" {
			t.Error("expected transactions section dropped for empty ledger")
		}
	}
}

func TestBuildReport_BudgetSectionRows(t *testing.T) {
	doc := service.BuildReport(domain.ReportBudget, fullReportData())

	var budget *domain.ReportSection
	for i := range doc.Sections {
		if doc.Sections[i].Title == "Budget Analysis" {
			budget = &doc.Sections[i]
		}
	}
	if budget == nil {
		t.Fatal("budget analysis section missing")
	}
	if len(budget.Rows) != 4 {
		t.Fatalf("expected header plus 3 bucket rows, got %d", len(budget.Rows))
	}
	if !budget.Rows[0].IsHeader {
		t.Error("expected first row to be the header")
	}
	if budget.Rows[1].Cells[0] != "Needs" || budget.Rows[2].Cells[0] != "Wants" || budget.Rows[3].Cells[0] != "Savings" {
		t.Errorf("expected fixed bucket order, got %v %v %v",
			budget.Rows[1].Cells[0], budget.Rows[2].Cells[0], budget.Rows[3].Cells[0])
	}
	if budget.Rows[2].Cells[4] != "116.67%" {
		t.Errorf("expected wants percent cell 116.67%%, got %s", budget.Rows[2].Cells[4])
	}
}

func TestBuildReport_TransactionRowCount(t *testing.T) {
	data := fullReportData()
	doc := service.BuildReport(domain.ReportDetailed, data)

	for _, s := range doc.Sections {
		if s.Title == "Transactions" {
			if len(s.Rows) != len(data.Transactions)+1 {
				t.Errorf("expected %d rows, got %d", len(data.Transactions)+1, len(s.Rows))
			}
			return
		}
	}
	t.Fatal("transactions section missing")
}

func TestBuildReport_Deterministic(t *testing.T) {
	data := fullReportData()
	first := service.BuildReport(domain.ReportBudget, data)
	second := service.BuildReport(domain.ReportBudget, data)

	if !reflect.DeepEqual(first, second) {
		t.Error("building twice from the same snapshot produced different documents")
	}
}

func TestFormatIDR(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2000000", "Rp 2.000.000"},
		{"1500", "Rp 1.500"},
		{"999", "Rp 999"},
		{"0", "Rp 0"},
		{"-100000", "-Rp 100.000"},
		{"1234567.5", "Rp 1.234.567,50"},
	}
	for _, tc := range cases {
		if got := service.FormatIDR(dec(tc.in)); got != tc.want {
			t.Errorf("%s: expected %q, got %q", tc.in, tc.want, got)
		}
	}
}
