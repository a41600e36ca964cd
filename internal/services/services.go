// Package services holds the ledger's business rules: pricing, the sale
// engine, the collection allocator and reporting, plus the plain catalog,
// customer and expense commands.
package services

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/diewo77/fibertelecom/internal/clock"
	"github.com/diewo77/fibertelecom/internal/store"
)

// Services bundles every component over one store handle.
type Services struct {
	Store     *store.Store
	Catalog   *Catalog
	Customers *Customers
	Expenses  *Expenses
	Sales     *SaleEngine
	Collector *Collector
	Reporting *Reporting
}

func New(db *gorm.DB, clk clock.Clock, log *zap.Logger) *Services {
	if log == nil {
		log = zap.NewNop()
	}
	st := store.New(db)
	engine := NewSaleEngine(st, clk, log)
	return &Services{
		Store:     st,
		Catalog:   NewCatalog(st, log),
		Customers: NewCustomers(st, log),
		Expenses:  NewExpenses(st, clk, log),
		Sales:     engine,
		Collector: NewCollector(st, engine, clk, log),
		Reporting: NewReporting(st, engine),
	}
}
