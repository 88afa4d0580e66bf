// Package port defines the interfaces (ports) for external dependencies.
// Following hexagonal architecture, these ports decouple the domain/service
// layer from concrete implementations.
package port

import (
	"context"

	"github.com/yudhapratama/sakubudget-go/internal/domain"
)

// BackendStore retrieves the user's financial records from the data
// backend. Implemented by the backend API adapter.
//
// FetchDashboard returns (nil, nil) when the backend holds no data for
// the user and period; callers translate that into an explicit empty
// state rather than an error.
type BackendStore interface {
	FetchDashboard(ctx context.Context, userID, period string) (*domain.DashboardSnapshot, error)
	FetchAnalytics(ctx context.Context, userID string, granularity domain.PeriodGranularity) ([]domain.PeriodBucket, error)
	FetchHistory(ctx context.Context, userID string, page, pageSize int) (*domain.History, error)
}

// ReportExporter serializes an assembled report document into one
// downloadable format.
type ReportExporter interface {
	Format() string
	ContentType() string
	FileExtension() string
	Export(doc *domain.ReportDocument) ([]byte, error)
}

// Cache provides generic caching with TTL.
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, value T)
	Delete(key string)
}
