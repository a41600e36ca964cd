package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/diewo77/fibertelecom/httpx"
	"github.com/diewo77/fibertelecom/internal/receipt"
	"github.com/diewo77/fibertelecom/internal/services"
)

type SaleHandler struct {
	sales    *services.SaleEngine
	business receipt.Business
	log      *zap.Logger
}

func NewSaleHandler(sales *services.SaleEngine, business receipt.Business, log *zap.Logger) *SaleHandler {
	return &SaleHandler{sales: sales, business: business, log: log}
}

// Create: POST /sales
func (h *SaleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in services.SaleInput
	if !decode(w, r, &in) {
		return
	}
	sale, err := h.sales.CreateSale(r.Context(), in)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, sale)
}

// List: GET /sales (history, newest first)
func (h *SaleHandler) List(w http.ResponseWriter, r *http.Request) {
	sales, err := h.sales.ListSales(r.Context())
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": sales, "total": len(sales)})
}

// Balance: GET /sales/{id}/balance
func (h *SaleHandler) Balance(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	b, err := h.sales.Balance(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"sale_id": id, "balance": b})
}

// Reverse: DELETE /sales/{id}
func (h *SaleHandler) Reverse(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	res, err := h.sales.ReverseSale(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, res)
}

// Receipt: GET /sales/{id}/receipt
func (h *SaleHandler) Receipt(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	snap, err := h.sales.Receipt(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	data, err := receipt.PDF(h.business, *snap)
	if err != nil {
		h.log.Error("receipt rendering failed", zap.Uint("sale_id", id), zap.Error(err))
		httpx.JSONError(w, http.StatusInternalServerError, "pdf_generation_failed", nil)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\""+receipt.Filename(id)+"\"")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
