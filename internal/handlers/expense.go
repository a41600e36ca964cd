package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/diewo77/fibertelecom/httpx"
	"github.com/diewo77/fibertelecom/internal/services"
)

type ExpenseHandler struct {
	expenses *services.Expenses
	log      *zap.Logger
}

func NewExpenseHandler(expenses *services.Expenses, log *zap.Logger) *ExpenseHandler {
	return &ExpenseHandler{expenses: expenses, log: log}
}

// List: GET /expenses
func (h *ExpenseHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.expenses.List(r.Context())
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": list, "total": len(list)})
}

// Record: POST /expenses {concept, amount}
func (h *ExpenseHandler) Record(w http.ResponseWriter, r *http.Request) {
	var in services.ExpenseInput
	if !decode(w, r, &in) {
		return
	}
	e, err := h.expenses.Record(r.Context(), in)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, e)
}
