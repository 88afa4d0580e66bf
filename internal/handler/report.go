package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/yudhapratama/sakubudget-go/internal/domain"
	"github.com/yudhapratama/sakubudget-go/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ============================================================
// POST /v1/users/{userId}/reports/export
// ============================================================

type exportRequest struct {
	Kind   string `json:"kind"`
	Format string `json:"format"`
	Period string `json:"period"`
}

func exportReportHandler(svc *service.ReportService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := chi.URLParam(r, "userId")

		// The token's subject must match the ledger being exported.
		if authUserID := UserIDFromContext(r.Context()); authUserID != "" && authUserID != userID {
			writeError(w, http.StatusForbidden, "token does not grant access to this user")
			return
		}

		var req exportRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		kind, ok := domain.ParseReportKind(req.Kind)
		if !ok {
			writeError(w, http.StatusBadRequest, "kind must be summary, detailed, budget or goals")
			return
		}
		if req.Format == "" {
			req.Format = "xlsx"
		}

		artifact, err := svc.Export(r.Context(), userID, kind, req.Period, req.Format)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		w.Header().Set("Content-Type", artifact.ContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.Filename))
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(artifact.Data); err != nil {
			logger.Warn("export: failed to stream artifact", zap.Error(err))
		}
	}
}
