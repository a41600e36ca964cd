package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/diewo77/fibertelecom/httpx"
	"github.com/diewo77/fibertelecom/internal/services"
)

type CollectionHandler struct {
	collector *services.Collector
	reports   *services.Reporting
	log       *zap.Logger
}

func NewCollectionHandler(collector *services.Collector, reports *services.Reporting, log *zap.Logger) *CollectionHandler {
	return &CollectionHandler{collector: collector, reports: reports, log: log}
}

// Debtors: GET /collections lists customers still owing money.
func (h *CollectionHandler) Debtors(w http.ResponseWriter, r *http.Request) {
	debtors, err := h.reports.ConsolidatedDebtByCustomer(r.Context())
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": debtors, "total": len(debtors)})
}

// Apply: POST /collections {customer_id, amount, method}
func (h *CollectionHandler) Apply(w http.ResponseWriter, r *http.Request) {
	var in services.CollectionInput
	if !decode(w, r, &in) {
		return
	}
	res, err := h.collector.Apply(r.Context(), in)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, res)
}
