// Package backendapi adapts the main SakuBudget backend's JSON API to
// the engine's port.BackendStore. Payloads arrive as loosely typed
// JSON; everything is coerced into domain types exactly once, here, so
// the computation layer never sees a raw map.
package backendapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/yudhapratama/sakubudget-go/internal/domain"
	"github.com/yudhapratama/sakubudget-go/internal/infra/observability"
	"github.com/yudhapratama/sakubudget-go/internal/infra/resilience"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("backendapi")

// Client wraps HTTP calls to the SakuBudget backend API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	cb         *gobreaker.CircuitBreaker
	cfg        resilience.Config
	bulkhead   *resilience.Bulkhead
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// NewClient creates a backend API client. Concurrent backend calls are
// capped at cfg.MaxConcurrency.
func NewClient(httpClient *http.Client, baseURL, apiKey string, cb *gobreaker.CircuitBreaker, cfg resilience.Config, metrics *observability.Metrics, logger *zap.Logger) *Client {
	maxConcurrency := cfg.MaxConcurrency
	if maxConcurrency <= 0 {
		maxConcurrency = 10
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     apiKey,
		cb:         cb,
		cfg:        cfg,
		bulkhead:   resilience.NewBulkhead(maxConcurrency),
		metrics:    metrics,
		logger:     logger,
	}
}

// doRequest executes an authenticated GET against the backend.
// 404 and 204 mean "no data" and return a nil body without error.
func (c *Client) doRequest(ctx context.Context, path string) ([]byte, error) {
	reqURL := fmt.Sprintf("%s%s", c.baseURL, path)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		c.logger.Error("backend: failed to create request",
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, err
	}

	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("backend: request failed",
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Error("backend: failed to read response body",
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, err
	}

	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("backend: non-2xx response",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(body)),
		)
		return nil, fmt.Errorf("backend returned status %d", resp.StatusCode)
	}

	c.logger.Debug("backend: request OK",
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
	)
	return body, nil
}

// fetchPayload runs doRequest through the circuit breaker and retry
// policy and decodes the body into a generic map. Numbers decode as
// json.Number so money values survive verbatim into decimals.
// A nil map without error means the backend has no data.
func (c *Client) fetchPayload(ctx context.Context, path string) (map[string]any, error) {
	if err := c.bulkhead.Acquire(ctx); err != nil {
		return nil, &domain.ErrTimeout{Operation: "backend-api " + path}
	}
	defer c.bulkhead.Release()

	var payload map[string]any

	_, err := c.cb.Execute(func() (any, error) {
		return nil, resilience.RetryWithBackoff(ctx, c.cfg, func() error {
			body, err := c.doRequest(ctx, path)
			if err != nil {
				return err
			}
			if len(body) == 0 || bytes.Equal(bytes.TrimSpace(body), []byte("null")) {
				payload = nil
				return nil
			}

			dec := json.NewDecoder(bytes.NewReader(body))
			dec.UseNumber()
			if err := dec.Decode(&payload); err != nil {
				return fmt.Errorf("decode backend payload: %w", err)
			}
			return nil
		})
	})
	if err != nil {
		c.metrics.IncrBackendError("backend-api")
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			return nil, &domain.ErrCircuitOpen{Service: "backend-api"}
		}
		return nil, &domain.ErrExternalService{Service: "backend-api", Err: err}
	}
	return payload, nil
}

// FetchDashboard retrieves the user's dashboard snapshot for one
// period. A backend without data yields (nil, nil).
func (c *Client) FetchDashboard(ctx context.Context, userID, period string) (*domain.DashboardSnapshot, error) {
	ctx, span := tracer.Start(ctx, "BackendAPI.FetchDashboard")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", userID))

	path := fmt.Sprintf("/api/v1/users/%s/dashboard", url.PathEscape(userID))
	if period != "" {
		path += "?period=" + url.QueryEscape(period)
	}

	payload, err := c.fetchPayload(ctx, path)
	if err != nil {
		return nil, err
	}
	if len(payload) == 0 {
		return nil, nil
	}
	return mapDashboard(payload), nil
}

// FetchAnalytics retrieves the precomputed period series at one
// granularity. Missing data yields an empty series.
func (c *Client) FetchAnalytics(ctx context.Context, userID string, granularity domain.PeriodGranularity) ([]domain.PeriodBucket, error) {
	ctx, span := tracer.Start(ctx, "BackendAPI.FetchAnalytics")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", userID))

	path := fmt.Sprintf("/api/v1/users/%s/analytics?granularity=%s",
		url.PathEscape(userID), url.QueryEscape(string(granularity)))

	payload, err := c.fetchPayload(ctx, path)
	if err != nil {
		return nil, err
	}
	return mapPeriodSeries(payload), nil
}

// FetchHistory retrieves one page of the user's transactions and
// savings goals.
func (c *Client) FetchHistory(ctx context.Context, userID string, page, pageSize int) (*domain.History, error) {
	ctx, span := tracer.Start(ctx, "BackendAPI.FetchHistory")
	defer span.End()
	span.SetAttributes(
		attribute.String("user.id", userID),
		attribute.Int("page", page),
	)

	path := fmt.Sprintf("/api/v1/users/%s/history?page=%d&page_size=%d",
		url.PathEscape(userID), page, pageSize)

	payload, err := c.fetchPayload(ctx, path)
	if err != nil {
		return nil, err
	}
	if payload == nil {
		return nil, nil
	}
	return c.mapHistory(payload), nil
}
