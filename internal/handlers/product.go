package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/diewo77/fibertelecom/httpx"
	"github.com/diewo77/fibertelecom/internal/models"
	"github.com/diewo77/fibertelecom/internal/services"
)

type ProductHandler struct {
	catalog *services.Catalog
	log     *zap.Logger
}

func NewProductHandler(catalog *services.Catalog, log *zap.Logger) *ProductHandler {
	return &ProductHandler{catalog: catalog, log: log}
}

type productView struct {
	models.Product
	NeedsReorder bool `json:"needs_reorder"`
}

// List: GET /products, ?sellable=1 for the sales picker, ?low_stock=1 for reorder alerts.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var (
		products []models.Product
		err      error
	)
	switch {
	case q.Get("sellable") == "1":
		products, err = h.catalog.ListSellable(r.Context())
	case q.Get("low_stock") == "1":
		products, err = h.catalog.ListLowStock(r.Context())
	default:
		products, err = h.catalog.ListProducts(r.Context())
	}
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	out := make([]productView, len(products))
	for i := range products {
		out[i] = productView{Product: products[i], NeedsReorder: products[i].NeedsReorder()}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": out, "total": len(out)})
}

// Upsert: POST /products creates or replaces by name.
func (h *ProductHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var in services.ProductInput
	if !decode(w, r, &in) {
		return
	}
	p, err := h.catalog.UpsertProduct(r.Context(), in)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}

// Delete: DELETE /products/{name}
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeleteProduct(r.Context(), r.PathValue("name")); err != nil {
		writeError(w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
