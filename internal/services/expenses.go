package services

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/diewo77/fibertelecom/internal/clock"
	"github.com/diewo77/fibertelecom/internal/models"
	"github.com/diewo77/fibertelecom/internal/store"
	"github.com/diewo77/fibertelecom/validation"
)

type ExpenseInput struct {
	Concept string          `json:"concept"`
	Amount  decimal.Decimal `json:"amount"`
	Date    time.Time       `json:"date"`
}

type Expenses struct {
	store *store.Store
	clock clock.Clock
	log   *zap.Logger
}

func NewExpenses(st *store.Store, clk clock.Clock, log *zap.Logger) *Expenses {
	return &Expenses{store: st, clock: clk, log: log}
}

// Record stores an operating expense dated today unless in.Date is set.
func (x *Expenses) Record(ctx context.Context, in ExpenseInput) (*models.Expense, error) {
	in.Concept = strings.TrimSpace(in.Concept)
	v := validation.Violations{}
	validation.Required("concept", in.Concept, v)
	validation.PositiveDecimal("amount", in.Amount, v)
	validation.MaxScale("amount", in.Amount, MoneyScale, v)
	if err := invalid(v, ErrInvalidExpense); err != nil {
		return nil, err
	}

	date := clock.Today(x.clock)
	if !in.Date.IsZero() {
		date = clock.Date(in.Date)
	}
	e := &models.Expense{Concept: in.Concept, Amount: in.Amount, Date: date}
	if err := x.store.WithContext(ctx).InsertExpense(e); err != nil {
		return nil, storageErr("insert expense", err)
	}
	x.log.Info("expense recorded", zap.Uint("expense_id", e.ID), zap.String("amount", e.Amount.String()))
	return e, nil
}

func (x *Expenses) List(ctx context.Context) ([]models.Expense, error) {
	out, err := x.store.WithContext(ctx).ListExpenses()
	if err != nil {
		return nil, storageErr("list expenses", err)
	}
	return out, nil
}
