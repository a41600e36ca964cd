package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/diewo77/fibertelecom/auth"
	"github.com/diewo77/fibertelecom/internal/clock"
	"github.com/diewo77/fibertelecom/internal/models"
	"github.com/diewo77/fibertelecom/internal/receipt"
	"github.com/diewo77/fibertelecom/internal/services"
)

func setupE2EApp(t *testing.T) (*App, *gorm.DB) {
	t.Helper()
	dbi, err := gorm.Open(sqlite.Open("file:e2e_"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, dbi.AutoMigrate(models.All()...))

	clk := clock.NewMockClock(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))
	cred, err := auth.NewCredential("admin", "", "fiber2026")
	require.NoError(t, err)
	svc := services.New(dbi, clk, zap.NewNop())
	return NewApp(dbi, svc, cred, clk, receipt.Business{Name: "FIBERTELECOM"}, zap.NewNop()), dbi
}

func send(app http.Handler, method, target, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	app.ServeHTTP(w, req)
	return w
}

func TestViewsRequireLogin(t *testing.T) {
	app, _ := setupE2EApp(t)
	for _, target := range []string{"/dashboard", "/products", "/sales", "/customers", "/collections", "/expenses"} {
		w := send(app, http.MethodGet, target, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, target)
	}

	w := send(app, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSaleFlowE2E(t *testing.T) {
	app, dbi := setupE2EApp(t)
	require.NoError(t, dbi.Create(&models.Product{Name: "Router-X", Stock: 10, ReorderLevel: 2,
		NormalPrice: decimal.NewFromInt(50), SpecialPrice: decimal.NewFromInt(40)}).Error)

	w := send(app, http.MethodPost, "/login", `{"user":"admin","password":"fiber2026"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var sess *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == "session" {
			sess = c
		}
	}
	require.NotNil(t, sess, "no session cookie")

	w = send(app, http.MethodPost, "/customers", `{"id":"V-1","name":"Ana Rivas"}`, sess)
	require.Equal(t, http.StatusOK, w.Code)

	w = send(app, http.MethodPost, "/sales", `{"customer_id":"V-1","product_name":"Router-X","quantity":2,"tier":"special","initial_payment":30,"method":"cash"}`, sess)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = send(app, http.MethodPost, "/collections", `{"customer_id":"V-1","amount":50,"method":"transfer"}`, sess)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = send(app, http.MethodGet, "/sales/1/balance", "", sess)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"balance":"0"`)

	w = send(app, http.MethodGet, "/sales/1/receipt", "", sess)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))

	w = send(app, http.MethodGet, "/dashboard", "", sess)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total_collected":"80"`)
	assert.Contains(t, w.Body.String(), `"total_debt":"0"`)

	w = send(app, http.MethodDelete, "/sales/1", "", sess)
	require.Equal(t, http.StatusOK, w.Code)

	var p models.Product
	require.NoError(t, dbi.First(&p, "name = ?", "Router-X").Error)
	assert.Equal(t, 10, p.Stock)
}

func TestWithLoggingAddsRequestID(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	h := withLogging(zap.New(core), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.EqualValues(t, http.StatusTeapot, fields["status"])
	assert.Equal(t, w.Header().Get("X-Request-ID"), fields["request_id"])

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Request-ID", "abc")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, "abc", w.Header().Get("X-Request-ID"))
}
