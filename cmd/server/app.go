package main

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/diewo77/fibertelecom/auth"
	"github.com/diewo77/fibertelecom/httpx"
	"github.com/diewo77/fibertelecom/internal/clock"
	"github.com/diewo77/fibertelecom/internal/db"
	"github.com/diewo77/fibertelecom/internal/handlers"
	"github.com/diewo77/fibertelecom/internal/receipt"
	"github.com/diewo77/fibertelecom/internal/services"
)

// App is the main application handler that sets up all routes.
type App struct {
	mux       *http.ServeMux
	db        *gorm.DB
	clock     clock.Clock
	routerCfg *handlers.RouterConfig
}

// NewApp creates a new application with all routes configured.
func NewApp(dbConn *gorm.DB, svc *services.Services, cred auth.Credential, clk clock.Clock, business receipt.Business, log *zap.Logger) *App {
	app := &App{
		mux:       http.NewServeMux(),
		db:        dbConn,
		clock:     clk,
		routerCfg: handlers.NewRouterConfig(svc, cred, clk, business, log),
	}
	app.setupRoutes()
	return app
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	auth.Middleware(a.clock.Now)(a.mux).ServeHTTP(w, r)
}

// setupRoutes configures all application routes.
func (a *App) setupRoutes() {
	// ─────────────────────────────────────────────────────────────────────────
	// Public routes (no auth required)
	// ─────────────────────────────────────────────────────────────────────────
	ah := a.routerCfg.AuthHandler

	a.mux.HandleFunc("POST /login", ah.Login)
	a.mux.HandleFunc("POST /logout", ah.Logout)
	a.mux.HandleFunc("GET /healthz", a.healthz)

	// ─────────────────────────────────────────────────────────────────────────
	// Views (require the shared login)
	// ─────────────────────────────────────────────────────────────────────────
	dh := a.routerCfg.DashboardHandler
	ph := a.routerCfg.ProductHandler
	sh := a.routerCfg.SaleHandler
	ch := a.routerCfg.CustomerHandler
	coh := a.routerCfg.CollectionHandler
	eh := a.routerCfg.ExpenseHandler

	a.mux.Handle("GET /dashboard", a.requireAuth(dh.Show))

	// Inventory
	a.mux.Handle("GET /products", a.requireAuth(ph.List))
	a.mux.Handle("POST /products", a.requireAuth(ph.Upsert))
	a.mux.Handle("DELETE /products/{name}", a.requireAuth(ph.Delete))

	// Sales and history
	a.mux.Handle("POST /sales", a.requireAuth(sh.Create))
	a.mux.Handle("GET /sales", a.requireAuth(sh.List))
	a.mux.Handle("GET /sales/{id}/balance", a.requireAuth(sh.Balance))
	a.mux.Handle("GET /sales/{id}/receipt", a.requireAuth(sh.Receipt))
	a.mux.Handle("DELETE /sales/{id}", a.requireAuth(sh.Reverse))

	// Customers
	a.mux.Handle("GET /customers", a.requireAuth(ch.List))
	a.mux.Handle("POST /customers", a.requireAuth(ch.Upsert))
	a.mux.Handle("DELETE /customers/{id}", a.requireAuth(ch.Delete))
	a.mux.Handle("GET /customers/{id}/sales", a.requireAuth(ch.Sales))

	// Collections
	a.mux.Handle("GET /collections", a.requireAuth(coh.Debtors))
	a.mux.Handle("POST /collections", a.requireAuth(coh.Apply))

	// Expenses
	a.mux.Handle("GET /expenses", a.requireAuth(eh.List))
	a.mux.Handle("POST /expenses", a.requireAuth(eh.Record))
}

// requireAuth wraps a handler to require the session cookie.
func (a *App) requireAuth(h http.HandlerFunc) http.Handler {
	return auth.RequireAuth(h)
}

func (a *App) healthz(w http.ResponseWriter, r *http.Request) {
	if err := db.Ping(a.db.WithContext(r.Context())); err != nil {
		httpx.JSONError(w, http.StatusServiceUnavailable, "db_unavailable", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ─────────────────────────────────────────────────────────────────────────────
// Middleware
// ─────────────────────────────────────────────────────────────────────────────

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// withLogging logs one line per request with a request id, echoed back
// in X-Request-ID.
func withLogging(log *zap.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqID := r.Header.Get("X-Request-ID")
		if reqID == "" {
			reqID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", reqID)
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Info("request",
			zap.String("request_id", reqID),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}
