package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/diewo77/fibertelecom/httpx"
	"github.com/diewo77/fibertelecom/internal/services"
)

type DashboardHandler struct {
	reports *services.Reporting
	log     *zap.Logger
}

func NewDashboardHandler(reports *services.Reporting, log *zap.Logger) *DashboardHandler {
	return &DashboardHandler{reports: reports, log: log}
}

// Show: GET /dashboard
func (h *DashboardHandler) Show(w http.ResponseWriter, r *http.Request) {
	d, err := h.reports.Dashboard(r.Context())
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, d)
}
