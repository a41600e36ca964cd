package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/diewo77/fibertelecom/httpx"
	"github.com/diewo77/fibertelecom/internal/services"
)

var statusBySentinel = []struct {
	err    error
	status int
}{
	{services.ErrProductNotFound, http.StatusNotFound},
	{services.ErrCustomerNotFound, http.StatusNotFound},
	{services.ErrSaleNotFound, http.StatusNotFound},
	{services.ErrInsufficientStock, http.StatusConflict},
	{services.ErrOverpaymentRejected, http.StatusConflict},
	{services.ErrNoOutstandingDebt, http.StatusConflict},
}

// writeError maps a service error onto a JSON error response.
func writeError(w http.ResponseWriter, log *zap.Logger, err error) {
	var ve *services.ValidationError
	if errors.As(err, &ve) {
		httpx.JSONError(w, http.StatusBadRequest, ve.Err.Error(), ve.Violations)
		return
	}
	for _, s := range statusBySentinel {
		if errors.Is(err, s.err) {
			httpx.JSONError(w, s.status, s.err.Error(), err.Error())
			return
		}
	}
	if errors.Is(err, services.ErrDataIntegrity) {
		log.Error("data integrity fault", zap.Error(err))
		httpx.JSONError(w, http.StatusInternalServerError, services.ErrDataIntegrity.Error(), nil)
		return
	}
	log.Error("storage failure", zap.Error(err))
	httpx.JSONError(w, http.StatusInternalServerError, services.ErrStorage.Error(), nil)
}

func parseID(r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// decode reads the JSON body into dst, answering 400 itself on failure.
func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := httpx.DecodeJSON(r, dst); err != nil {
		if errors.Is(err, httpx.ErrEmptyBody) {
			httpx.JSONError(w, http.StatusBadRequest, "empty_body", nil)
			return false
		}
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return false
	}
	return true
}
