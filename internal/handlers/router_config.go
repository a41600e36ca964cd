package handlers

import (
	"go.uber.org/zap"

	"github.com/diewo77/fibertelecom/auth"
	"github.com/diewo77/fibertelecom/internal/clock"
	"github.com/diewo77/fibertelecom/internal/receipt"
	"github.com/diewo77/fibertelecom/internal/services"
)

// RouterConfig holds the configured handler for each view.
type RouterConfig struct {
	AuthHandler *AuthHandler

	DashboardHandler  *DashboardHandler
	ProductHandler    *ProductHandler
	SaleHandler       *SaleHandler
	CustomerHandler   *CustomerHandler
	CollectionHandler *CollectionHandler
	ExpenseHandler    *ExpenseHandler
}

// NewRouterConfig wires every handler to the shared services.
//
//	cfg := handlers.NewRouterConfig(svc, cred, clk, business, log)
//	mux.Handle("POST /sales", auth.RequireAuth(http.HandlerFunc(cfg.SaleHandler.Create)))
func NewRouterConfig(svc *services.Services, cred auth.Credential, clk clock.Clock, business receipt.Business, log *zap.Logger) *RouterConfig {
	return &RouterConfig{
		AuthHandler:       NewAuthHandler(cred, clk, log),
		DashboardHandler:  NewDashboardHandler(svc.Reporting, log),
		ProductHandler:    NewProductHandler(svc.Catalog, log),
		SaleHandler:       NewSaleHandler(svc.Sales, business, log),
		CustomerHandler:   NewCustomerHandler(svc.Customers, svc.Sales, log),
		CollectionHandler: NewCollectionHandler(svc.Collector, svc.Reporting, log),
		ExpenseHandler:    NewExpenseHandler(svc.Expenses, log),
	}
}
