package service

import (
	"context"
	"fmt"
	"time"

	"github.com/yudhapratama/sakubudget-go/internal/domain"
	"github.com/yudhapratama/sakubudget-go/internal/infra/observability"
	"github.com/yudhapratama/sakubudget-go/internal/port"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var reportTracer = otel.Tracer("service/report")

// ReportService assembles report documents from backend snapshots and
// serializes them through the registered exporters.
type ReportService struct {
	store     port.BackendStore
	exporters map[string]port.ReportExporter
	metrics   *observability.Metrics
	logger    *zap.Logger
}

// NewReportService creates a new report service. Exporters are keyed
// by their Format().
func NewReportService(store port.BackendStore, exporters []port.ReportExporter, metrics *observability.Metrics, logger *zap.Logger) *ReportService {
	byFormat := make(map[string]port.ReportExporter, len(exporters))
	for _, e := range exporters {
		byFormat[e.Format()] = e
	}
	return &ReportService{store: store, exporters: byFormat, metrics: metrics, logger: logger}
}

// Export builds the requested report kind for one user and period and
// serializes it into the requested format. The dashboard and the
// ledger are fetched concurrently; either one missing degrades the
// document instead of failing the export.
func (s *ReportService) Export(ctx context.Context, userID string, kind domain.ReportKind, period, format string) (*domain.ExportArtifact, error) {
	ctx, span := reportTracer.Start(ctx, "ReportService.Export")
	defer span.End()
	span.SetAttributes(
		attribute.String("user.id", userID),
		attribute.String("report.kind", string(kind)),
		attribute.String("report.format", format),
	)

	start := time.Now()
	defer func() { s.metrics.RecordRequestDuration("report_export", time.Since(start)) }()

	if userID == "" {
		return nil, &domain.ErrValidation{Field: "user_id", Message: "required"}
	}
	exporter, ok := s.exporters[format]
	if !ok {
		return nil, &domain.ErrValidation{Field: "format", Message: "unsupported export format"}
	}

	data, err := s.collectReportData(ctx, userID, kind, period)
	if err != nil {
		return nil, err
	}

	doc := BuildReport(kind, *data)
	payload, err := exporter.Export(doc)
	if err != nil {
		return nil, &domain.ErrExportFailed{Format: format, Err: err}
	}

	s.metrics.IncrReportGenerated(format)
	s.logger.Info("report exported",
		zap.String("user_id", userID),
		zap.String("kind", string(kind)),
		zap.String("format", format),
		zap.Int("bytes", len(payload)),
	)

	filename := fmt.Sprintf("sakubudget-%s-%s.%s", kind, uuid.NewString()[:8], exporter.FileExtension())
	return &domain.ExportArtifact{
		Filename:    filename,
		ContentType: exporter.ContentType(),
		Data:        payload,
	}, nil
}

// collectReportData fetches the dashboard and the full ledger in
// parallel and folds them into one immutable snapshot. Bucket spends
// are derived from the ledger itself so the budget table and the
// transaction table always agree.
func (s *ReportService) collectReportData(ctx context.Context, userID string, kind domain.ReportKind, period string) (*domain.ReportData, error) {
	var (
		snap    *domain.DashboardSnapshot
		history *domain.History
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		snap, err = s.store.FetchDashboard(gctx, userID, period)
		return err
	})
	g.Go(func() error {
		var err error
		history, err = s.store.FetchHistory(gctx, userID, 1, historyFetchSize)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	data := &domain.ReportData{PeriodLabel: period}
	if history != nil {
		data.Transactions = history.Transactions
		data.Goals = history.Goals
	}
	if snap == nil {
		return data, nil
	}

	data.HasData = true
	data.PeriodLabel = snap.PeriodLabel
	data.TotalIncome = snap.TotalIncome
	data.TotalExpense = snap.TotalExpense
	data.NetBalance = snap.TotalIncome.Sub(snap.TotalExpense)
	data.TotalSaved = snap.TotalSaved

	if snap.MonthlyIncome.IsPositive() {
		data.HasBudget = true
		data.MonthlyIncome = snap.MonthlyIncome
		data.Allocation = Allocate(snap.MonthlyIncome)

		spending := snap.Spending
		if history != nil && len(history.Transactions) > 0 {
			spending = BucketByBudgetType(history.Transactions)
		}
		for _, b := range domain.BudgetBuckets {
			data.Usages = append(data.Usages, Usage(b, data.Allocation.TargetFor(b), spending.For(b)))
		}
		data.Health = ComputeHealthScore(data.Usages, data.NetBalance, data.MonthlyIncome)
	}
	return data, nil
}
