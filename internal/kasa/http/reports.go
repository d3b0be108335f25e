package http

import (
	"net/http"

	"github.com/tallyworks/kasa/internal/kasa/domain"
	"github.com/tallyworks/kasa/internal/kasa/service"
	"github.com/tallyworks/kasa/pkg/httpx"
)

type ReportsHandler struct {
	ReportService *service.ReportService
}

// HandleSummary aggregates the ledger over an optional from/to range.
func (h *ReportsHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := httpx.UserIDFromCtx(ctx)
	companyID := r.PathValue("companyID")

	var from, to domain.Date
	var err error
	if raw := r.URL.Query().Get("from"); raw != "" {
		if from, err = domain.ParseDate(raw); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "from must be YYYY-MM-DD")
			return
		}
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		if to, err = domain.ParseDate(raw); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "to must be YYYY-MM-DD")
			return
		}
	}

	summary, err := h.ReportService.Summarize(ctx, companyID, userID, from, to)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	resp := SummaryResponse{
		Totals:     summary.Totals,
		ByCategory: summary.ByCategory,
		ByDay:      summary.ByDay,
	}
	if !summary.From.IsZero() {
		resp.From = summary.From.String()
	}
	if !summary.To.IsZero() {
		resp.To = summary.To.String()
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleOverview returns the dashboard payload.
func (h *ReportsHandler) HandleOverview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := httpx.UserIDFromCtx(ctx)
	companyID := r.PathValue("companyID")

	overview, err := h.ReportService.Dashboard(ctx, companyID, userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, OverviewResponse{
		Totals: overview.Totals,
		Today:  overview.Today,
		Recent: toTransactionResponses(overview.Recent),
	})
}
