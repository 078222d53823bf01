package handler

import (
	"debt-ledger/internal/api/handler/dto"
	"debt-ledger/internal/domain/dashboard"
	"debt-ledger/internal/domain/debt"
	"log/slog"
	"net/http"
)

type SummarySource interface {
	Summary() dashboard.Summary
	Today() debt.Date
}

type DashboardHandler struct {
	source SummarySource
	logger *slog.Logger
}

func NewDashboardHandler(s SummarySource, l *slog.Logger) *DashboardHandler {
	if s == nil {
		panic("summary source cannot be nil")
	}
	if l == nil {
		panic("logger cannot be nil")
	}
	return &DashboardHandler{
		source: s,
		logger: l.With("component", "DashboardHandler"),
	}
}

// GetDashboard handles GET /dashboard
// @Summary Dashboard totals
// @Description Customer count, pending and paid totals, overdue count and the five most recent debts.
// @Tags Dashboard
// @Produce json
// @Success 200 {object} dto.DashboardResponse "Summary"
// @Failure 401 {object} dto.ErrorResponse "Not signed in"
// @Router /dashboard [get]
// @Security BearerAuth
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	summary := h.source.Summary()
	h.logger.DebugContext(r.Context(), "Dashboard computed",
		slog.Int("customers", summary.CustomerCount),
		slog.Int("overdue", summary.OverdueCount),
	)
	respondJSON(w, http.StatusOK, dto.NewDashboardResponse(summary, h.source.Today()))
}
