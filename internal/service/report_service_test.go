package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/yudhapratama/sakubudget-go/internal/domain"
	"github.com/yudhapratama/sakubudget-go/internal/infra/observability"
	"github.com/yudhapratama/sakubudget-go/internal/port"
	"github.com/yudhapratama/sakubudget-go/internal/service"

	"go.uber.org/zap"
)

type fakeExporter struct {
	format string
	err    error
	doc    *domain.ReportDocument
}

func (f *fakeExporter) Format() string        { return f.format }
func (f *fakeExporter) ContentType() string   { return "application/octet-stream" }
func (f *fakeExporter) FileExtension() string { return f.format }

func (f *fakeExporter) Export(doc *domain.ReportDocument) ([]byte, error) {
	f.doc = doc
	if f.err != nil {
		return nil, f.err
	}
	return []byte("artifact"), nil
}

func newReportService(store *mockStore, exporters ...port.ReportExporter) *service.ReportService {
	return service.NewReportService(store, exporters, observability.NewMetrics(), zap.NewNop())
}

func TestExport_Success(t *testing.T) {
	store := &mockStore{
		dashboard: &domain.DashboardSnapshot{
			PeriodLabel:   "June 2025",
			MonthlyIncome: dec("2000000"),
			TotalIncome:   dec("2000000"),
			TotalExpense:  dec("1500000"),
		},
		history: &domain.History{Transactions: []domain.Transaction{
			expense("rent", "900000", domain.BucketNeeds, june),
			expense("movies", "600000", domain.BucketWants, june),
		}},
	}
	exporter := &fakeExporter{format: "xlsx"}
	svc := newReportService(store, exporter)

	artifact, err := svc.Export(context.Background(), "user-1", domain.ReportBudget, "2025-06", "xlsx")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.HasPrefix(artifact.Filename, "sakubudget-budget-") || !strings.HasSuffix(artifact.Filename, ".xlsx") {
		t.Errorf("unexpected filename %q", artifact.Filename)
	}
	if string(artifact.Data) != "artifact" {
		t.Errorf("unexpected payload %q", artifact.Data)
	}

	if exporter.doc == nil {
		t.Fatal("exporter never received a document")
	}
	titles := sectionTitles(exporter.doc)
	want := []string{"Title", "Financial Summary", "Budget Analysis", "Footer"}
	for i, title := range want {
		if titles[i] != title {
			t.Fatalf("expected sections %v, got %v", want, titles)
		}
	}
}

func TestExport_BucketSpendsDerivedFromLedger(t *testing.T) {
	store := &mockStore{
		dashboard: &domain.DashboardSnapshot{
			MonthlyIncome: dec("2000000"),
			// Dashboard claims zero spending; the ledger disagrees.
			Spending: domain.BucketTotals{},
		},
		history: &domain.History{Transactions: []domain.Transaction{
			expense("rent", "700000", domain.BucketNeeds, june),
		}},
	}
	exporter := &fakeExporter{format: "xlsx"}
	svc := newReportService(store, exporter)

	if _, err := svc.Export(context.Background(), "user-1", domain.ReportBudget, "", "xlsx"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	var budget *domain.ReportSection
	for i := range exporter.doc.Sections {
		if exporter.doc.Sections[i].Title == "Budget Analysis" {
			budget = &exporter.doc.Sections[i]
		}
	}
	if budget == nil {
		t.Fatal("budget section missing")
	}
	if budget.Rows[1].Cells[1] != "Rp 700.000" {
		t.Errorf("expected needs spent from ledger, got %q", budget.Rows[1].Cells[1])
	}
}

func TestExport_UnsupportedFormat(t *testing.T) {
	svc := newReportService(&mockStore{}, &fakeExporter{format: "xlsx"})

	_, err := svc.Export(context.Background(), "user-1", domain.ReportSummary, "", "csv")
	var validation *domain.ErrValidation
	if !errors.As(err, &validation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestExport_SerializerFailure(t *testing.T) {
	store := &mockStore{dashboard: &domain.DashboardSnapshot{MonthlyIncome: dec("2000000")}}
	svc := newReportService(store, &fakeExporter{format: "pdf", err: errors.New("font missing")})

	_, err := svc.Export(context.Background(), "user-1", domain.ReportSummary, "", "pdf")
	var exportFailed *domain.ErrExportFailed
	if !errors.As(err, &exportFailed) {
		t.Fatalf("expected export failure, got %v", err)
	}
}

func TestExport_NoDataStillProducesDocument(t *testing.T) {
	exporter := &fakeExporter{format: "xlsx"}
	svc := newReportService(&mockStore{}, exporter)

	if _, err := svc.Export(context.Background(), "user-1", domain.ReportDetailed, "2025-06", "xlsx"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	titles := sectionTitles(exporter.doc)
	if len(titles) != 2 || titles[0] != "Title" || titles[1] != "Footer" {
		t.Errorf("expected title and footer only, got %v", titles)
	}
}

func TestExport_BackendFailurePropagates(t *testing.T) {
	store := &mockStore{historyErr: &domain.ErrExternalService{Service: "backend-api", Err: errors.New("down")}}
	svc := newReportService(store, &fakeExporter{format: "xlsx"})

	_, err := svc.Export(context.Background(), "user-1", domain.ReportSummary, "", "xlsx")
	var external *domain.ErrExternalService
	if !errors.As(err, &external) {
		t.Fatalf("expected external service error, got %v", err)
	}
}
