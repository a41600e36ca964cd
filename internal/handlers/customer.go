package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/diewo77/fibertelecom/httpx"
	"github.com/diewo77/fibertelecom/internal/services"
)

type CustomerHandler struct {
	customers *services.Customers
	sales     *services.SaleEngine
	log       *zap.Logger
}

func NewCustomerHandler(customers *services.Customers, sales *services.SaleEngine, log *zap.Logger) *CustomerHandler {
	return &CustomerHandler{customers: customers, sales: sales, log: log}
}

// List: GET /customers
func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.customers.List(r.Context())
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": list, "total": len(list)})
}

// Upsert: POST /customers
func (h *CustomerHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var in services.CustomerInput
	if !decode(w, r, &in) {
		return
	}
	c, err := h.customers.Upsert(r.Context(), in)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, c)
}

// Delete: DELETE /customers/{id}. Sales of the customer are kept.
func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.customers.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Sales: GET /customers/{id}/sales, oldest first with balances.
func (h *CustomerHandler) Sales(w http.ResponseWriter, r *http.Request) {
	sales, err := h.sales.ListCustomerSales(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": sales, "total": len(sales)})
}
